package dsl

import (
	"fmt"

	"github.com/tracery-dev/tracery/pkg/adapters/memory"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// Builder manages the registry construction.
type Builder struct {
	types map[schema.TypeID]*TypeBuilder
}

// New creates a new registry builder.
func New() *Builder {
	return &Builder{
		types: make(map[schema.TypeID]*TypeBuilder),
	}
}

// Type declares a type in the registry.
// If the type already exists, it returns the existing builder.
func (b *Builder) Type(id schema.TypeID) *TypeBuilder {
	if tb, ok := b.types[id]; ok {
		return tb
	}
	tb := &TypeBuilder{
		id:      id,
		builder: b,
	}
	b.types[id] = tb
	return tb
}

// Scalar declares a value leaf with a representation hint and returns
// the Builder so leaf declarations chain.
func (b *Builder) Scalar(id schema.TypeID, hint schema.Scalar) *Builder {
	b.Type(id).Value(hint)
	return b
}

// Build validates the declared types and compiles them into a memory
// Source.
func (b *Builder) Build() (*memory.Source, error) {
	reg := schema.NewRegistry()
	for id, tb := range b.types {
		s := tb.schema
		reg.Register(id, &s)
	}

	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	return memory.NewSource(reg), nil
}
