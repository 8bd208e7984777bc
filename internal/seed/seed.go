// Package seed provides the built-in entity catalog and loads replacement
// catalogs from YAML files.
//
// The built-in catalog is baked into the binary with go:embed so a fresh
// library has content without any files on disk.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrEmptySeed is returned when a seed file declares no entities.
var ErrEmptySeed = errors.New("seed file declares no entities")

// seedFile is the YAML document layout shared by the built-in catalog and
// external seed files.
type seedFile struct {
	Entities []types.Entity `yaml:"entities"`
}

// Defaults returns the built-in catalog in declaration order.
func Defaults() ([]types.Entity, error) {
	entities, err := Parse(defaultsYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in catalog: %w", err)
	}
	return entities, nil
}

// Load returns the catalog from path, or the built-in catalog when path is
// empty.
func Load(path string) ([]types.Entity, error) {
	if path == "" {
		return Defaults()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	entities, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return entities, nil
}

// Parse decodes a YAML seed document and validates every entity. Unknown
// categories are rejected while decoding; an entity without an ID is
// rejected with ErrInvalidID.
func Parse(data []byte) ([]types.Entity, error) {
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, err
	}
	if len(sf.Entities) == 0 {
		return nil, ErrEmptySeed
	}
	for i, e := range sf.Entities {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entity %d (%q): %w", i, e.ID, err)
		}
	}
	return sf.Entities, nil
}
