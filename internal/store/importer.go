package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"listview/internal/model"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

// DecodeDocument parses a nested block document. name picks the format by
// extension: .yaml/.yml is YAML, anything else JSON. Both a bare block list
// and {"blocks": [...]} are accepted.
func DecodeDocument(name string, data []byte) ([]model.Block, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) ([]model.Block, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var doc model.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json document: %w", err)
		}
		return doc.Blocks, nil
	}
	var blocks []model.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("decode json blocks: %w", err)
	}
	return blocks, nil
}

func decodeYAML(data []byte) ([]model.Block, error) {
	var doc struct {
		Blocks []model.Block `yaml:"blocks"`
	}
	if err := yaml.Unmarshal(data, &doc); err == nil && doc.Blocks != nil {
		return normalizeYAML(doc.Blocks), nil
	}
	var blocks []model.Block
	if err := yaml.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("decode yaml blocks: %w", err)
	}
	return normalizeYAML(blocks), nil
}

// normalizeYAML converts yaml.v2's map[interface{}]interface{} values into
// JSON-compatible maps so attributes can be stored.
func normalizeYAML(blocks []model.Block) []model.Block {
	for i := range blocks {
		if blocks[i].Attributes != nil {
			blocks[i].Attributes = normalizeValue(blocks[i].Attributes).(map[string]any)
		}
		blocks[i].InnerBlocks = normalizeYAML(blocks[i].InnerBlocks)
	}
	return blocks
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}

// PrepareImport assigns ids to blocks that have none and rejects duplicate
// ids. It returns a copy.
func PrepareImport(blocks []model.Block) ([]model.Block, error) {
	seen := map[string]bool{}
	var walk func(in []model.Block) ([]model.Block, error)
	walk = func(in []model.Block) ([]model.Block, error) {
		if len(in) == 0 {
			return nil, nil
		}
		out := make([]model.Block, len(in))
		for i, b := range in {
			b.ClientID = strings.TrimSpace(b.ClientID)
			if b.ClientID == "" {
				b.ClientID = uuid.NewString()
			}
			if seen[b.ClientID] {
				return nil, fmt.Errorf("duplicate client id %s", b.ClientID)
			}
			seen[b.ClientID] = true
			inner, err := walk(b.InnerBlocks)
			if err != nil {
				return nil, err
			}
			b.InnerBlocks = inner
			out[i] = b
		}
		return out, nil
	}
	out, err := walk(blocks)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Block{}
	}
	return out, nil
}
