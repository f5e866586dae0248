// Package schema defines the type-schema dialect consumed by the
// mutation-path builder and the registry that holds it.
//
// A Registry maps opaque type identifiers to Schema documents. Each
// document describes one reflected type in a JSON-Schema-like dialect:
// a `kind` discriminator plus the structural fields that kind needs
// (properties for structs, variants for enums, prefixItems for tuples,
// items/length for arrays, keyType/valueType for maps, a scalar hint
// for plain values).
//
// Basic usage:
//
//	reg := schema.NewRegistry()
//	reg.Register("geom.Vec2", &schema.Schema{
//	    Kind: schema.KindTupleStruct,
//	    PrefixItems: []schema.TypeID{"f32", "f32"},
//	})
//	reg.Register("f32", &schema.Schema{
//	    Kind:   schema.KindValue,
//	    Scalar: schema.ScalarFloat,
//	})
//
//	if err := reg.Validate(); err != nil {
//	    // dangling references, malformed kinds, ...
//	}
//
// Registries are also decodable from raw JSON/YAML maps (the shape a
// reflection endpoint returns):
//
//	reg, err := schema.DecodeRegistry(raw)
//
// A Registry is immutable once handed to the builder: construct it
// fully, then share it by reference across concurrent traversals.
package schema
