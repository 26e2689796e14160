package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/flowserve/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.GraphLoader over a workflow file on disk.
// The format is chosen by extension: .json, .yaml/.yml or .hcl.
// The file is read on every Load, so edits are picked up without restarting.
type Loader struct {
	path string
}

// NewLoader creates a loader for path. The path is not read until Load.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the file served by the loader.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the file.
func (l *Loader) Load(ctx context.Context) (*domain.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, l.path)
		}
		return nil, fmt.Errorf("failed to read workflow %s: %w", l.path, err)
	}

	return Decode(l.path, data)
}

// Decode parses data in the format implied by filename's extension.
func Decode(filename string, data []byte) (*domain.Definition, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return domain.ParseDefinition(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".hcl":
		return decodeHCL(filename, data)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// decodeYAML goes through a generic document and back to JSON, so both
// formats share one set of decoding rules (including the sourceHandle alias).
func decodeYAML(data []byte) (*domain.Definition, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
	}
	return domain.ParseDefinition(raw)
}
