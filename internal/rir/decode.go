package rir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a Program from a JSON or YAML file, selecting the decoder by
// file extension. Grounded on the teacher's dual-format decode idiom
// (internal/eval_harness/spec.go uses yaml.v3; internal/manifest/manifest.go
// uses encoding/json) generalized into one entry point.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read RIR document: %w", err)
	}

	var prog Program
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &prog); err != nil {
			return nil, fmt.Errorf("failed to parse RIR YAML: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, &prog); err != nil {
			return nil, fmt.Errorf("failed to parse RIR JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unrecognized RIR document extension %q", ext)
	}

	return &prog, nil
}
