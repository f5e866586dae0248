package dsl

import "github.com/tracery-dev/tracery/pkg/schema"

// TypeBuilder provides a fluent API for configuring one type schema.
type TypeBuilder struct {
	id      schema.TypeID
	schema  schema.Schema
	builder *Builder
}

// Value marks the type as an opaque leaf with a scalar representation
// hint.
func (tb *TypeBuilder) Value(hint schema.Scalar) *TypeBuilder {
	tb.schema.Kind = schema.KindValue
	tb.schema.Scalar = hint
	return tb
}

// Example attaches a schema-supplied example payload.
func (tb *TypeBuilder) Example(v any) *TypeBuilder {
	tb.schema.Example = v
	return tb
}

// Field adds a named field and marks the type as a struct.
func (tb *TypeBuilder) Field(name string, t schema.TypeID) *TypeBuilder {
	tb.schema.Kind = schema.KindStruct
	if tb.schema.Properties == nil {
		tb.schema.Properties = make(map[string]schema.TypeID)
	}
	tb.schema.Properties[name] = t
	return tb
}

// Tuple marks the type as a tuple struct with the given positions.
func (tb *TypeBuilder) Tuple(positions ...schema.TypeID) *TypeBuilder {
	tb.schema.Kind = schema.KindTupleStruct
	tb.schema.PrefixItems = positions
	return tb
}

// Array marks the type as a fixed-length sequence.
func (tb *TypeBuilder) Array(element schema.TypeID, length int) *TypeBuilder {
	tb.schema.Kind = schema.KindArray
	tb.schema.Items = element
	tb.schema.Length = length
	return tb
}

// List marks the type as a variable-length sequence.
func (tb *TypeBuilder) List(element schema.TypeID) *TypeBuilder {
	tb.schema.Kind = schema.KindList
	tb.schema.Items = element
	return tb
}

// Set marks the type as an unordered collection.
func (tb *TypeBuilder) Set(element schema.TypeID) *TypeBuilder {
	tb.schema.Kind = schema.KindSet
	tb.schema.Items = element
	return tb
}

// Map marks the type as a keyed collection.
func (tb *TypeBuilder) Map(key, value schema.TypeID) *TypeBuilder {
	tb.schema.Kind = schema.KindMap
	tb.schema.KeyType = key
	tb.schema.ValueType = value
	return tb
}

// Unit adds a unit variant and marks the type as an enum.
func (tb *TypeBuilder) Unit(name string) *TypeBuilder {
	tb.schema.Kind = schema.KindEnum
	tb.schema.Variants = append(tb.schema.Variants, schema.Variant{Name: name})
	return tb
}

// TupleVariant adds a tuple-shaped variant and marks the type as an
// enum.
func (tb *TypeBuilder) TupleVariant(name string, positions ...schema.TypeID) *TypeBuilder {
	tb.schema.Kind = schema.KindEnum
	tb.schema.Variants = append(tb.schema.Variants, schema.Variant{Name: name, Tuple: positions})
	return tb
}

// RecordVariant adds a record-shaped variant and marks the type as an
// enum.
func (tb *TypeBuilder) RecordVariant(name string, fields ...schema.Field) *TypeBuilder {
	tb.schema.Kind = schema.KindEnum
	tb.schema.Variants = append(tb.schema.Variants, schema.Variant{Name: name, Fields: fields})
	return tb
}

// F is a shorthand for a record variant field.
func F(name string, t schema.TypeID) schema.Field {
	return schema.Field{Name: name, Type: t}
}

// Build returns the underlying schema document.
// This is primarily used by the Builder, but exposed for advanced usage.
func (tb *TypeBuilder) Build() schema.Schema {
	return tb.schema
}
