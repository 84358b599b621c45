package descriptor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// DetectFormat returns the descriptor format implied by a file name.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported descriptor format %q (want .yaml, .yml, .json or .toml)", filepath.Ext(path))
	}
}

// ParseFile reads a descriptor file and decodes it according to its extension.
func ParseFile(path string) (*Extension, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	ext, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}
	return ext, nil
}

// Parse decodes descriptor bytes in the given format.
func Parse(data []byte, format string) (*Extension, error) {
	var ext Extension
	if err := unmarshal(data, format, &ext); err != nil {
		return nil, err
	}
	return &ext, nil
}

// LoadFile parses and validates a descriptor. Validation issues are returned
// as a *ValidationFailure so callers can list them.
func LoadFile(path string) (*Extension, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data, format)
	if err != nil {
		return nil, fmt.Errorf("validating descriptor %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &ValidationFailure{Path: path, Issues: result.Issues}
	}

	ext, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}
	return ext, nil
}

func unmarshal(data []byte, format string, v interface{}) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("unmarshaling YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("unmarshaling JSON: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("unmarshaling TOML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported descriptor format %q", format)
	}
	return nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
