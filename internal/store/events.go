package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"listview/internal/model"

	"github.com/google/uuid"
)

func (s Store) eventsPath() string {
	return filepath.Join(s.Dir, eventsFileName)
}

// AppendEvent appends one line to the append-only event log.
func (s Store) AppendEvent(doc, typ, entityID string, payload any) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return errors.New("append event: missing type")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	ev := model.Event{
		ID:       uuid.NewString(),
		TS:       time.Now().UTC(),
		Document: doc,
		Type:     typ,
		EntityID: entityID,
		Payload:  payload,
	}
	line, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(s.eventsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

// ReadEvents returns the last limit events (all when limit <= 0), oldest
// first. Unparseable lines are reported with their line number.
func (s Store) ReadEvents(limit int) ([]model.Event, error) {
	f, err := os.Open(s.eventsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Event{}, nil
		}
		return nil, err
	}
	defer f.Close()

	out := []model.Event{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ev model.Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", s.eventsPath(), lineNo, err)
		}
		out = append(out, ev)
		if limit > 0 && len(out) > limit {
			out = out[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
