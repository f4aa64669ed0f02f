package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type GlobalConfig struct {
	// CurrentDocument is opened when no --document flag or env var is set.
	CurrentDocument string `json:"currentDocument,omitempty"`

	// View holds list view preferences. Unset fields take defaults.
	View *ViewConfig `json:"view,omitempty"`
}

type ViewConfig struct {
	ExpandByDefault *bool `json:"expandByDefault,omitempty"`
	// RowHeight and NestThreshold are in pixels; the terminal UI maps one
	// row to RowHeight and one column to RowHeight/4.
	RowHeight      int    `json:"rowHeight,omitempty"`
	NestThreshold  int    `json:"nestThreshold,omitempty"`
	WindowOverscan int    `json:"windowOverscan,omitempty"`
	Glyphs         string `json:"glyphs,omitempty"`
}

const (
	DefaultRowHeight      = 36
	DefaultNestThreshold  = 60
	DefaultWindowOverscan = 4
)

// Resolved returns a copy with every default filled in.
func (c *ViewConfig) Resolved() ViewConfig {
	var out ViewConfig
	if c != nil {
		out = *c
	}
	if out.ExpandByDefault == nil {
		t := true
		out.ExpandByDefault = &t
	}
	if out.RowHeight <= 0 {
		out.RowHeight = DefaultRowHeight
	}
	if out.NestThreshold <= 0 {
		out.NestThreshold = DefaultNestThreshold
	}
	if out.WindowOverscan <= 0 {
		out.WindowOverscan = DefaultWindowOverscan
	}
	switch strings.ToLower(strings.TrimSpace(out.Glyphs)) {
	case "ascii":
		out.Glyphs = "ascii"
	default:
		out.Glyphs = "unicode"
	}
	return out
}

func (c ViewConfig) ExpandsByDefault() bool {
	return c.ExpandByDefault == nil || *c.ExpandByDefault
}

func ConfigDir() (string, error) {
	// Lets tests stay out of ~/.listview.
	if v := strings.TrimSpace(os.Getenv("LISTVIEW_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp names keep a CLI and a TUI writing at once from clobbering
	// each other.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
