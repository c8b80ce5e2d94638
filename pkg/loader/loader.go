// Package loader turns scene documents into validated raytracer scenes.
//
// Documents are JSON (C-style comments and trailing commas allowed) or YAML,
// with three top-level arrays: planes, spheres and light_sources. Unknown
// fields are ignored and missing fields keep their zero value.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v2"

	"raycaster/pkg/raytracer"
)

// Format selects the document syntax
type Format int

// Supported formats
const (
	FormatJSON Format = iota
	FormatYAML
)

// Loader produces a validated scene from a path
type Loader interface {
	Load(path string) (*raytracer.Scene, error)
}

// FileLoader reads scene documents from the local filesystem
type FileLoader struct{}

// NewFileLoader creates a loader for files on disk
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads, parses and validates the scene at path.
// The format is picked from the extension; anything but .yaml/.yml is JSON.
func (l *FileLoader) Load(path string) (*raytracer.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	scene, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

// FormatForPath guesses the document format from a file extension
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes and validates a scene document
func Parse(data []byte, format Format) (*raytracer.Scene, error) {
	var doc document

	switch format {
	case FormatYAML:
		if err := decodeYAML(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := decodeJSON(data, &doc); err != nil {
			return nil, err
		}
	}

	return doc.toScene()
}

func decodeJSON(data []byte, doc *document) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := json.Unmarshal(std, doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "(root)"
			}
			return invalid(field, "expected %s, got %s", typeErr.Type, typeErr.Value)
		}
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}

func decodeYAML(data []byte, doc *document) error {
	if err := yaml.Unmarshal(data, doc); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return invalid("(document)", "%s", strings.Join(typeErr.Errors, "; "))
		}
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}
