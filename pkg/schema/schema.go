package schema

import (
	"fmt"
	"sort"
)

// TypeID identifies a type in the registry. Equality is exact string
// match; the builder never interprets the identifier's contents.
type TypeID string

// Kind is the closed set of schema classifications. Every traversal
// decision in the builder dispatches on this discriminator.
type Kind string

const (
	// KindStruct is a record with named fields (properties).
	KindStruct Kind = "struct"
	// KindEnum is a variant set; each variant is unit, tuple or record shaped.
	KindEnum Kind = "enum"
	// KindTupleStruct is an ordered sequence of typed positions (prefixItems).
	KindTupleStruct Kind = "tuple_struct"
	// KindArray is a fixed-length homogeneous sequence (items + length).
	KindArray Kind = "array"
	// KindList is a variable-length homogeneous sequence (items).
	KindList Kind = "list"
	// KindSet is an unordered homogeneous collection (items).
	KindSet Kind = "set"
	// KindMap is a keyed collection (keyType + valueType).
	KindMap Kind = "map"
	// KindValue is an opaque leaf; examples come from knowledge, the
	// schema's own example, or the scalar hint.
	KindValue Kind = "value"
)

// Valid reports whether k is one of the eight known classifications.
func (k Kind) Valid() bool {
	switch k {
	case KindStruct, KindEnum, KindTupleStruct, KindArray, KindList, KindSet, KindMap, KindValue:
		return true
	}
	return false
}

// ParseKind converts a wire string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown schema kind: %q", s)
	}
	return k, nil
}

// Scalar hints how a value-kind type is represented on the wire.
type Scalar string

const (
	ScalarString Scalar = "string"
	ScalarBool   Scalar = "bool"
	ScalarInt    Scalar = "int"
	ScalarUint   Scalar = "uint"
	ScalarFloat  Scalar = "float"
	ScalarChar   Scalar = "char"
)

// Default returns a placeholder example for the hint. The second
// return is false when the hint is empty or unrecognized, in which
// case the value cannot be represented without curated knowledge.
func (s Scalar) Default() (any, bool) {
	switch s {
	case ScalarString:
		return "", true
	case ScalarBool:
		return true, true
	case ScalarInt:
		return 0, true
	case ScalarUint:
		return 0, true
	case ScalarFloat:
		return 0.0, true
	case ScalarChar:
		return "a", true
	}
	return nil, false
}

// Schema describes one reflected type. Which fields are meaningful
// depends on Kind; the rest stay at their zero values. Schemas are
// immutable once registered.
type Schema struct {
	Kind Kind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// Items is the element type for array, list and set kinds.
	Items TypeID `json:"items,omitempty" yaml:"items,omitempty" mapstructure:"items"`

	// Length is the fixed element count for array kinds.
	Length int `json:"length,omitempty" yaml:"length,omitempty" mapstructure:"length"`

	// Properties maps field names to their types for struct kinds.
	Properties map[string]TypeID `json:"properties,omitempty" yaml:"properties,omitempty" mapstructure:"properties"`

	// PrefixItems lists the ordered position types for tuple kinds.
	PrefixItems []TypeID `json:"prefixItems,omitempty" yaml:"prefixItems,omitempty" mapstructure:"prefixItems"`

	// Variants lists the named alternatives for enum kinds, in
	// declaration order.
	Variants []Variant `json:"variants,omitempty" yaml:"variants,omitempty" mapstructure:"variants"`

	// KeyType and ValueType describe map kinds.
	KeyType   TypeID `json:"keyType,omitempty" yaml:"keyType,omitempty" mapstructure:"keyType"`
	ValueType TypeID `json:"valueType,omitempty" yaml:"valueType,omitempty" mapstructure:"valueType"`

	// Scalar is the representation hint for value kinds.
	Scalar Scalar `json:"scalar,omitempty" yaml:"scalar,omitempty" mapstructure:"scalar"`

	// Example is an optional schema-supplied example for value kinds.
	// It loses to curated knowledge but beats the scalar default.
	Example any `json:"example,omitempty" yaml:"example,omitempty" mapstructure:"example"`
}

// Classification returns the schema's kind, degrading unknown
// discriminators to KindValue so a malformed document truncates to a
// not-mutable leaf instead of failing the traversal.
func (s *Schema) Classification() Kind {
	if s.Kind.Valid() {
		return s.Kind
	}
	return KindValue
}

// FieldNames returns the struct property names in sorted order.
// Sorted enumeration keeps repeated builds byte-identical.
func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
