package column

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads a column definition from a JSON or YAML file.
func LoadFromFile(path string) (*Column, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	col, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return col, nil
}

// Parse decodes and validates a column definition. The format is picked
// from the extension (".yaml", ".yml" or ".json").
func Parse(data []byte, ext string) (*Column, error) {
	var col Column
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &col); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &col); err != nil {
			return nil, err
		}
	}

	if err := col.Validate(); err != nil {
		return nil, err
	}
	return &col, nil
}
