/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing type registries.

It allows developers to define reflected type schemas using a type-safe, fluent builder pattern
instead of relying on external JSON or YAML documents. This is particularly useful for tests,
curated demo registries, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/tracery-dev/tracery/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Scalar("f32", schema.ScalarFloat)

		b.Type("geom.Vec2").
			Field("x", "f32").
			Field("y", "f32")

		b.Type("core.OptionVec2").
			Unit("None").
			TupleVariant("Some", "geom.Vec2")

		b.Type("demo.Sprite").
			Field("custom_size", "core.OptionVec2")

		// The resulting source can be used as a ports.SchemaSource
		source, err := b.Build()
		// ... pass source to tracery.New(...)
		_, _ = source, err
	}
*/
package dsl
