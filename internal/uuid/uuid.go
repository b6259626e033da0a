// uuid simple generator that allows mocking
package uuid

import (
	"github.com/google/uuid"
)

// Generator is an interface for generating UUIDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// PrefixedGenerator wraps another generator and prefixes every ID,
// so instance IDs read like "inst_550e8400-...".
type PrefixedGenerator struct {
	prefix string
	inner  Generator
}

// New generates a prefixed ID
func (g *PrefixedGenerator) New() string {
	return g.prefix + g.inner.New()
}

// NewPrefixedGenerator creates a generator that prefixes IDs from inner
func NewPrefixedGenerator(prefix string, inner Generator) *PrefixedGenerator {
	return &PrefixedGenerator{prefix: prefix, inner: inner}
}
