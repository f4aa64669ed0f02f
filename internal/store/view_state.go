package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const viewStateFileName = "view_state.json"

// ViewState is what the interactive view restores on relaunch. It is best
// effort: a missing or corrupt file reads as empty.
type ViewState struct {
	Version int `json:"version"`

	// Expanded holds explicit expand/collapse choices per document. Ids not
	// present fall back to the expand-by-default setting.
	Expanded map[string]map[string]bool `json:"expanded,omitempty"`

	// Focused is the last focused block per document.
	Focused map[string]string `json:"focused,omitempty"`
}

func (s Store) viewStatePath() string {
	return filepath.Join(s.Dir, viewStateFileName)
}

func (s Store) LoadViewState() (*ViewState, error) {
	empty := &ViewState{Version: 1}
	if strings.TrimSpace(s.Dir) == "" {
		return empty, nil
	}
	b, err := os.ReadFile(s.viewStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return empty, nil
		}
		return nil, err
	}
	var st ViewState
	if err := json.Unmarshal(b, &st); err != nil {
		return empty, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveViewState(st *ViewState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, viewStateFileName+".*.tmp", s.viewStatePath(), b, 0o644)
}

// DocumentExpanded returns the saved expand map for doc, never nil.
func (st *ViewState) DocumentExpanded(doc string) map[string]bool {
	if st == nil || st.Expanded == nil || st.Expanded[doc] == nil {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(st.Expanded[doc]))
	for k, v := range st.Expanded[doc] {
		out[k] = v
	}
	return out
}

func (st *ViewState) SetDocumentExpanded(doc string, expanded map[string]bool) {
	if st.Expanded == nil {
		st.Expanded = map[string]map[string]bool{}
	}
	st.Expanded[doc] = expanded
}

func (st *ViewState) SetFocused(doc, id string) {
	if st.Focused == nil {
		st.Focused = map[string]string{}
	}
	if id == "" {
		delete(st.Focused, doc)
		return
	}
	st.Focused[doc] = id
}
