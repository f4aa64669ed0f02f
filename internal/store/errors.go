package store

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// LockedError reports a block whose lock.move attribute forbids the move.
type LockedError struct {
	ClientID string
}

func (e LockedError) Error() string {
	return fmt.Sprintf("block is locked: %s", e.ClientID)
}

type InvalidMoveError struct {
	Reason string
}

func (e InvalidMoveError) Error() string {
	return "invalid move: " + e.Reason
}
