package listview

import "fmt"

type indexKind uint8

const (
	indexUndefined indexKind = iota
	indexNull
	indexValue
)

// Index is an optional row index that keeps "never set" (undefined) apart
// from "explicitly nothing" (null). The zero value is undefined.
type Index struct {
	kind indexKind
	n    int
}

func Undefined() Index { return Index{} }
func Null() Index      { return Index{kind: indexNull} }
func At(n int) Index   { return Index{kind: indexValue, n: n} }

func (i Index) IsUndefined() bool { return i.kind == indexUndefined }
func (i Index) IsNull() bool      { return i.kind == indexNull }

// Value returns the index and whether one is set.
func (i Index) Value() (int, bool) { return i.n, i.kind == indexValue }

func (i Index) String() string {
	switch i.kind {
	case indexNull:
		return "null"
	case indexValue:
		return fmt.Sprintf("%d", i.n)
	default:
		return "undefined"
	}
}

// Flag is a boolean that may be undefined. The zero value is undefined.
type Flag uint8

const (
	FlagUndefined Flag = iota
	FlagFalse
	FlagTrue
)

func flagOf(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// True reports whether the flag is defined and set.
func (f Flag) True() bool { return f == FlagTrue }

func (f Flag) MarshalJSON() ([]byte, error) {
	switch f {
	case FlagTrue:
		return []byte("true"), nil
	case FlagFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// DropPosition says where, relative to the target row, a drop lands.
type DropPosition string

const (
	DropTop    DropPosition = "top"
	DropBottom DropPosition = "bottom"
	DropInside DropPosition = "inside"
)

func ParseDropPosition(s string) (DropPosition, error) {
	switch DropPosition(s) {
	case DropTop, DropBottom, DropInside:
		return DropPosition(s), nil
	default:
		return "", fmt.Errorf("invalid drop position %q (want top|bottom|inside)", s)
	}
}

// Displacement is the visual shift applied to a row while something is
// being dragged. The zero value is undefined.
type Displacement string

const (
	DisplacementUndefined Displacement = ""
	DisplacementUp        Displacement = "up"
	DisplacementDown      Displacement = "down"
	DisplacementNormal    Displacement = "normal"
)

type DisplacementInput struct {
	BlockIndexes      map[string]int
	DropTargetIndex   Index
	DropPosition      DropPosition
	ClientID          string
	FirstDraggedIndex Index
	IsDragged         bool
}

type DisplacementValues struct {
	Displacement         Displacement `json:"displacement,omitempty"`
	IsAfterDraggedBlocks Flag         `json:"isAfterDraggedBlocks"`
	IsNesting            Flag         `json:"isNesting"`
}

// GetDragDisplacementValues decides how a row shifts to make room for a drop.
//
// Rows being dragged get no values at all. A tracked drag with a target moves
// rows between the dragged blocks and the target toward the gap. A tracked
// drag with a null target closes the gap the dragged blocks left. An external
// drop (no dragged index) opens a gap at the target.
func GetDragDisplacementValues(in DisplacementInput) DisplacementValues {
	var out DisplacementValues
	if in.IsDragged {
		return out
	}

	out.IsNesting = FlagFalse
	this, hasThis := in.BlockIndexes[in.ClientID]
	first, hasFirst := in.FirstDraggedIndex.Value()
	target, hasTarget := in.DropTargetIndex.Value()

	out.IsAfterDraggedBlocks = flagOf(hasThis && hasFirst && this > first)

	switch {
	case hasTarget && hasFirst:
		if !hasThis {
			break
		}
		switch {
		case this >= first && this < target:
			out.Displacement = DisplacementUp
		case this < first && this >= target:
			out.Displacement = DisplacementDown
		default:
			out.Displacement = DisplacementNormal
		}
		out.IsNesting = flagOf(target-1 == this && in.DropPosition == DropInside)

	case in.DropTargetIndex.IsNull() && hasFirst:
		if hasThis && this >= first {
			out.Displacement = DisplacementUp
		} else {
			out.Displacement = DisplacementNormal
		}

	case hasTarget && in.FirstDraggedIndex.IsUndefined():
		if !hasThis {
			break
		}
		if this < target {
			out.Displacement = DisplacementNormal
		} else {
			out.Displacement = DisplacementDown
		}

	case in.DropTargetIndex.IsNull():
		out.Displacement = DisplacementNormal
	}
	return out
}
