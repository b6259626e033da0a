package catalog

import (
	"os"

	"gopkg.in/yaml.v3"

	engerr "github.com/chaos-world/status-core/internal/errors"
)

// File is the YAML authoring schema for a catalog
type File struct {
	NonConcurrentCategories []string             `yaml:"non_concurrent_categories"`
	Effects                 []EffectDefinition   `yaml:"effects"`
	Immunities              []ImmunityDefinition `yaml:"immunities"`
}

// Load parses a YAML catalog document into a snapshot
func Load(data []byte) (*Snapshot, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, engerr.WrapWithCode(err, engerr.CodeValidation, "failed to parse catalog yaml")
	}
	return NewSnapshot(file.Effects, file.Immunities, file.NonConcurrentCategories)
}

// LoadFile reads and parses a YAML catalog file
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, engerr.Wrapf(err, "failed to read catalog file %s", path)
	}
	return Load(data)
}
