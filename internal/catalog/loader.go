// Package catalog reads catalog and preference documents from JSON or YAML.
//
// YAML documents are converted to JSON before decoding so both formats share
// the field names and the defaults applied by the model's JSON decoders.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for file extensions other than .json, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode decodes data in the given format into v.
func Decode(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
	case FormatYAML:
		converted, err := yamlToJSON(data)
		if err != nil {
			return err
		}
		data = converted
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := json.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("decode %s document: %w", format, err)
	}
	return nil
}

// Parse decodes a catalog document.
func Parse(data []byte, format Format) (model.Catalog, error) {
	var c model.Catalog
	if err := Decode(data, format, &c); err != nil {
		return model.Catalog{}, err
	}
	return c, nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (model.Catalog, error) {
	var c model.Catalog
	if err := LoadInto(path, &c); err != nil {
		return model.Catalog{}, err
	}
	return c, nil
}

// LoadInto reads the document at path into v, choosing the format by extension.
func LoadInto(path string, v any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data, format, v)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml document: %w", err)
	}
	if doc == nil {
		return nil, errors.New("decode yaml document: empty document")
	}
	return json.Marshal(normalize(doc))
}

// normalize rewrites map[any]any nodes, which encoding/json cannot marshal,
// into map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}
