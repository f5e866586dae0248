package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tracery-dev/tracery/pkg/dsl"
	"github.com/tracery-dev/tracery/pkg/schema"
)

func main() {
	targetDir := "examples/demo"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating demo registry in: %s\n", targetDir)

	b := dsl.New()

	// 1. Scalars
	b.Scalar("f32", schema.ScalarFloat)
	b.Scalar("u8", schema.ScalarUint)
	b.Scalar("bool", schema.ScalarBool)
	b.Scalar("alloc::string::String", schema.ScalarString)

	// 2. Math building blocks
	b.Type("geom.Vec2").
		Field("x", "f32").
		Field("y", "f32")
	b.Type("geom.Color").Tuple("u8", "u8", "u8")

	// 3. An optional value (enum with unit and payload variants)
	b.Type("core.OptionVec2").
		Unit("None").
		TupleVariant("Some", "geom.Vec2")

	// 4. Collections
	b.Type("demo.Tags").List("alloc::string::String")
	b.Type("demo.Palette").Array("geom.Color", 4)

	// 5. The demo component tying it together
	b.Type("demo.Sprite").
		Field("name", "alloc::string::String").
		Field("position", "geom.Vec2").
		Field("custom_size", "core.OptionVec2").
		Field("palette", "demo.Palette").
		Field("tags", "demo.Tags").
		Field("visible", "bool")

	src, err := b.Build()
	check(err)

	reg, err := src.Fetch(context.TODO())
	check(err)

	out, err := json.MarshalIndent(reg, "", "  ")
	check(err)

	target := filepath.Join(targetDir, "registry.json")
	check(os.WriteFile(target, append(out, '\n'), 0644))

	fmt.Println("Done. Verify contents in", target)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
