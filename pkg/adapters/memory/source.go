package memory

import (
	"context"
	"fmt"

	"github.com/tracery-dev/tracery/pkg/schema"
)

// Source implements ports.SchemaSource over an in-memory registry.
type Source struct {
	registry *schema.Registry
}

// NewSource wraps an already-built registry.
func NewSource(reg *schema.Registry) *Source {
	return &Source{registry: reg}
}

// NewFromSchemas creates a Source from loose schema definitions.
// This handles registration automatically, improving DX for tests.
func NewFromSchemas(schemas map[schema.TypeID]*schema.Schema) (*Source, error) {
	reg := schema.NewRegistry()
	for id, s := range schemas {
		if id == "" {
			return nil, fmt.Errorf("schema missing type ID")
		}
		if s == nil {
			return nil, fmt.Errorf("schema for %s is nil", id)
		}
		reg.Register(id, s)
	}
	return &Source{registry: reg}, nil
}

// Fetch returns the wrapped registry.
func (s *Source) Fetch(ctx context.Context) (*schema.Registry, error) {
	return s.registry, nil
}
