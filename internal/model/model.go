package model

import "time"

// Block is one node of a nested block document.
//
// Name and Attributes are opaque to the list view; they are carried through so
// renderers can label rows.
type Block struct {
	ClientID    string         `json:"clientId" yaml:"clientId"`
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	InnerBlocks []Block        `json:"innerBlocks,omitempty" yaml:"innerBlocks,omitempty"`
}

// HasChildren reports whether the block has at least one inner block.
func (b Block) HasChildren() bool { return len(b.InnerBlocks) > 0 }

// Label returns a short human label for the block.
func (b Block) Label() string {
	if b.Attributes != nil {
		for _, k := range []string{"title", "content", "label"} {
			if s, ok := b.Attributes[k].(string); ok && s != "" {
				return s
			}
		}
	}
	if b.Name != "" {
		return b.Name
	}
	return b.ClientID
}

// AcceptsChildren reports whether blocks may be nested inside b: it already
// has children or is marked as a container.
func (b Block) AcceptsChildren() bool {
	if len(b.InnerBlocks) > 0 {
		return true
	}
	v, _ := b.Attributes["container"].(bool)
	return v
}

// Locked reports whether the block opts out of being moved
// (attributes.lock.move == true).
func (b Block) Locked() bool {
	if b.Attributes == nil {
		return false
	}
	switch lock := b.Attributes["lock"].(type) {
	case map[string]any:
		v, _ := lock["move"].(bool)
		return v
	case map[any]any:
		// yaml.v2 decodes nested maps with interface keys.
		v, _ := lock["move"].(bool)
		return v
	}
	return false
}

// Document is a named, ordered list of top-level blocks.
type Document struct {
	ID     string  `json:"id"`
	Blocks []Block `json:"blocks"`
}

// Selection is a block selection range. Start == End for a single selection;
// both empty when nothing is selected.
type Selection struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (s Selection) Empty() bool { return s.Start == "" || s.End == "" }

func (s Selection) Multi() bool { return !s.Empty() && s.Start != s.End }

// Event is one entry of the append-only events log.
type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Document string    `json:"document"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
