// Package savefile reads and writes save files, picking the encoding from
// the file extension: .yaml/.yml use YAML, .json uses JSON.
package savefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for extensions other than yaml, yml and json.
var ErrUnknownFormat = errors.New("savefile: unknown format")

// Format is a save file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Marshal encodes v in format f.
func Marshal(f Format, v any) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Unmarshal decodes data in format f into v.
func Unmarshal(f Format, data []byte, v any) error {
	switch f {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatJSON:
		return json.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Save writes v to path, creating parent directories.
func Save(path string, v any) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Marshal(f, v)
	if err != nil {
		return fmt.Errorf("savefile: encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("savefile: create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("savefile: write %s: %w", path, err)
	}
	return nil
}

// Load reads path into v.
func Load(path string, v any) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("savefile: read %s: %w", path, err)
	}
	if err := Unmarshal(f, data, v); err != nil {
		return fmt.Errorf("savefile: decode %s: %w", path, err)
	}
	return nil
}

// DefaultDir is where saves made during play go: ~/.chase/saves.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("savefile: %w", err)
	}
	return filepath.Join(home, ".chase", "saves"), nil
}
