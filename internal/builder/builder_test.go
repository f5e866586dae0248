package builder_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracery-dev/tracery/internal/builder"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/knowledge"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// spriteRegistry is the canonical fixture: a struct holding an optional
// two-field vector behind an enum.
func spriteRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.Register("f32", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarFloat})
	reg.Register("geom.Vec2", &schema.Schema{
		Kind:       schema.KindStruct,
		Properties: map[string]schema.TypeID{"x": "f32", "y": "f32"},
	})
	reg.Register("core.OptionVec2", &schema.Schema{
		Kind: schema.KindEnum,
		Variants: []schema.Variant{
			{Name: "None"},
			{Name: "Some", Tuple: []schema.TypeID{"geom.Vec2"}},
		},
	})
	reg.Register("demo.Sprite", &schema.Schema{
		Kind:       schema.KindStruct,
		Properties: map[string]schema.TypeID{"custom_size": "core.OptionVec2"},
	})
	return reg
}

func TestSpriteScenario(t *testing.T) {
	cat := builder.New(spriteRegistry()).Build("demo.Sprite")

	require.Equal(t, schema.TypeID("demo.Sprite"), cat.RootType)
	assert.Equal(t, []string{"", ".custom_size", ".custom_size.0", ".custom_size.0.x", ".custom_size.0.y"},
		cat.SortedPaths())

	root, ok := cat.Entry("")
	require.True(t, ok)
	assert.Equal(t, domain.StatusMutable, root.Status)
	assert.Equal(t, map[string]any{"custom_size": "None"}, root.Example)

	size, ok := cat.Entry(".custom_size")
	require.True(t, ok)
	assert.Equal(t, domain.StatusMutable, size.Status)
	require.Len(t, size.Examples, 2, "one group per distinct signature")
	assert.Equal(t, []string{"None"}, size.Examples[0].ApplicableVariants)
	assert.Equal(t, "unit", size.Examples[0].Signature)
	assert.Equal(t, "None", size.Examples[0].Example)
	assert.Equal(t, []string{"Some"}, size.Examples[1].ApplicableVariants)
	assert.Equal(t, "tuple(geom.Vec2)", size.Examples[1].Signature)
	assert.Equal(t, map[string]any{"Some": map[string]any{"x": 0.0, "y": 0.0}}, size.Examples[1].Example)
	assert.Nil(t, size.Example, "enum roots publish groups, not a single example")

	for _, leaf := range []string{".custom_size.0.x", ".custom_size.0.y"} {
		entry, ok := cat.Entry(leaf)
		require.True(t, ok, leaf)
		assert.Equal(t, domain.StatusMutable, entry.Status, leaf)
		assert.Equal(t, schema.TypeID("f32"), entry.Type, leaf)
		assert.Equal(t, 0.0, entry.Example, leaf)
	}

	// Leaves under the Some variant carry a root-complete requirement.
	x, _ := cat.Entry(".custom_size.0.x")
	require.NotNil(t, x.Requirement)
	assert.Equal(t,
		map[string]any{"custom_size": map[string]any{"Some": map[string]any{"x": 0.0, "y": 0.0}}},
		x.Requirement.Example)
	assert.Equal(t, []domain.VariantStep{{Path: ".custom_size", Variant: "Some"}}, x.Requirement.VariantPath)
}

func TestStructExampleMatchesFieldPaths(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("f32", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarFloat})
	reg.Register("geom.Vec3", &schema.Schema{
		Kind:        schema.KindTupleStruct,
		PrefixItems: []schema.TypeID{"f32", "f32", "f32"},
	})
	reg.Register("demo.Transform", &schema.Schema{
		Kind: schema.KindStruct,
		Properties: map[string]schema.TypeID{
			"translation": "geom.Vec3",
			"scale":       "f32",
		},
	})

	cat := builder.New(reg).Build("demo.Transform")

	root, ok := cat.Entry("")
	require.True(t, ok)
	rootExample, ok := root.Example.(map[string]any)
	require.True(t, ok)

	for field, want := range rootExample {
		entry, ok := cat.Entry("." + field)
		require.True(t, ok, field)
		assert.Equal(t, want, entry.Example, "root field %q must equal its own path's example", field)
	}
}

func TestUnitEnumGrouping(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("demo.Anchor", &schema.Schema{
		Kind: schema.KindEnum,
		Variants: []schema.Variant{
			{Name: "TopLeft"},
			{Name: "Center"},
			{Name: "BottomRight"},
		},
	})

	cat := builder.New(reg).Build("demo.Anchor")

	root, ok := cat.Entry("")
	require.True(t, ok)
	require.Len(t, root.Examples, 1, "three unit variants share one signature")
	assert.Equal(t, []string{"TopLeft", "Center", "BottomRight"}, root.Examples[0].ApplicableVariants)
	assert.Equal(t, "unit", root.Examples[0].Signature)
	assert.Equal(t, "TopLeft", root.Examples[0].Example)
	assert.Equal(t, domain.StatusMutable, root.Status)
	assert.Equal(t, 1, cat.Len(), "unit variants expand no children")
}

func TestIdempotence(t *testing.T) {
	reg := spriteRegistry()

	first, err := json.Marshal(builder.New(reg).Build("demo.Sprite"))
	require.NoError(t, err)
	second, err := json.Marshal(builder.New(reg).Build("demo.Sprite"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "two runs must serialize byte-identically")
}

func TestDepthLimitTerminatesSelfReference(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("demo.Node", &schema.Schema{
		Kind:       schema.KindStruct,
		Properties: map[string]schema.TypeID{"next": "demo.OptionNode"},
	})
	reg.Register("demo.OptionNode", &schema.Schema{
		Kind: schema.KindEnum,
		Variants: []schema.Variant{
			{Name: "None"},
			{Name: "Some", Tuple: []schema.TypeID{"demo.Node"}},
		},
	})

	var limitHits int
	cat := builder.New(reg,
		builder.WithMaxDepth(3),
		builder.WithHooks(domain.BuildHooks{
			OnDepthLimit: func(schema.TypeID, int) { limitHits++ },
		}),
	).Build("demo.Node")

	assert.Equal(t, []string{"", ".next", ".next.0", ".next.0.next", ".next.0.next.0"},
		cat.SortedPaths(), "the self-referential chain must be finite")
	assert.Positive(t, limitHits)

	truncated, ok := cat.Entry(".next.0.next.0")
	require.True(t, ok)
	assert.Equal(t, domain.StatusNotMutable, truncated.Status)
	assert.Equal(t, domain.ReasonRecursionLimitExceeded, truncated.Reason)
	assert.Nil(t, truncated.Example)
}

func TestMapSkipPropagation(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("string", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarString})
	reg.Register("u32", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarUint})
	reg.Register("demo.Stats", &schema.Schema{
		Kind:       schema.KindStruct,
		Properties: map[string]schema.TypeID{"hits": "u32", "misses": "u32"},
	})
	reg.Register("demo.Scores", &schema.Schema{
		Kind:      schema.KindMap,
		KeyType:   "string",
		ValueType: "demo.Stats",
	})

	cat := builder.New(reg).Build("demo.Scores")

	assert.Equal(t, []string{""}, cat.SortedPaths(),
		"no map key, value, or value-field path may publish")

	root, ok := cat.Entry("")
	require.True(t, ok)
	require.NotNil(t, root.Example)
	example, ok := root.Example.(map[string]any)
	require.True(t, ok)
	require.Len(t, example, 1, "one representative entry")
	for _, v := range example {
		assert.Equal(t, map[string]any{"hits": 0, "misses": 0}, v)
	}
	assert.Equal(t, domain.StatusMutable, root.Status)
}

func TestSetChildrenAreSkipped(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("u32", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarUint})
	reg.Register("demo.Tags", &schema.Schema{Kind: schema.KindSet, Items: "u32"})

	cat := builder.New(reg).Build("demo.Tags")

	assert.Equal(t, []string{""}, cat.SortedPaths())
	root, _ := cat.Entry("")
	assert.Equal(t, []any{0}, root.Example)
}

func TestPathRequirementCompleteness(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("u32", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarUint})
	reg.Register("demo.InnerEnum", &schema.Schema{
		Kind: schema.KindEnum,
		Variants: []schema.Variant{
			{Name: "Conditional", Tuple: []schema.TypeID{"u32"}},
		},
	})
	reg.Register("demo.Outer", &schema.Schema{
		Kind: schema.KindEnum,
		Variants: []schema.Variant{
			{Name: "Nested", Fields: []schema.Field{{Name: "inner", Type: "demo.InnerEnum"}}},
		},
	})

	cat := builder.New(reg).Build("demo.Outer")

	entry, ok := cat.Entry(".inner.0")
	require.True(t, ok)
	require.NotNil(t, entry.Requirement)
	assert.Equal(t,
		map[string]any{"Nested": map[string]any{"inner": map[string]any{"Conditional": 0}}},
		entry.Requirement.Example,
		"the requirement example must cover the full value from the root down")
	assert.Equal(t, []domain.VariantStep{
		{Path: "", Variant: "Nested"},
		{Path: ".inner", Variant: "Conditional"},
	}, entry.Requirement.VariantPath)

	inner, ok := cat.Entry(".inner")
	require.True(t, ok)
	require.NotNil(t, inner.Requirement)
	assert.Equal(t,
		map[string]any{"Nested": map[string]any{"inner": map[string]any{"Conditional": 0}}},
		inner.Requirement.Example)
	assert.Equal(t, []domain.VariantStep{{Path: "", Variant: "Nested"}}, inner.Requirement.VariantPath)
}

func TestKnowledgePrecedence(t *testing.T) {
	t.Run("exact entry beats schema example", func(t *testing.T) {
		reg := schema.NewRegistry()
		reg.Register("demo.Color", &schema.Schema{
			Kind:    schema.KindValue,
			Example: map[string]any{"schema": true},
		})

		kb := knowledge.New().Set(knowledge.Exact("demo.Color"), []any{1.0, 0.0, 0.0, 1.0})
		cat := builder.New(reg, builder.WithKnowledge(kb)).Build("demo.Color")

		root, _ := cat.Entry("")
		assert.Equal(t, []any{1.0, 0.0, 0.0, 1.0}, root.Example)
	})

	t.Run("exact entry stops recursion into struct fields", func(t *testing.T) {
		reg := spriteRegistry()
		kb := knowledge.New().Set(knowledge.Exact("geom.Vec2"), []any{3.0, 4.0})

		var hits int
		cat := builder.New(reg,
			builder.WithKnowledge(kb),
			builder.WithHooks(domain.BuildHooks{OnKnowledgeHit: func(schema.TypeID) { hits++ }}),
		).Build("demo.Sprite")

		entry, ok := cat.Entry(".custom_size.0")
		require.True(t, ok)
		assert.Equal(t, []any{3.0, 4.0}, entry.Example)
		assert.Equal(t, domain.StatusMutable, entry.Status)
		assert.Equal(t, 1, hits)

		_, ok = cat.Entry(".custom_size.0.x")
		assert.False(t, ok, "knowledge short-circuits child expansion")
	})

	t.Run("field entry beats exact entry", func(t *testing.T) {
		reg := schema.NewRegistry()
		reg.Register("f32", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarFloat})
		reg.Register("demo.Window", &schema.Schema{
			Kind:       schema.KindStruct,
			Properties: map[string]schema.TypeID{"width": "f32", "height": "f32"},
		})

		kb := knowledge.New().
			Set(knowledge.Exact("f32"), 1.0).
			Set(knowledge.Field("demo.Window", "width"), 1920.0)

		cat := builder.New(reg, builder.WithKnowledge(kb)).Build("demo.Window")

		width, _ := cat.Entry(".width")
		assert.Equal(t, 1920.0, width.Example)
		height, _ := cat.Entry(".height")
		assert.Equal(t, 1.0, height.Example)
	})

	t.Run("variant entry replaces group expansion", func(t *testing.T) {
		reg := spriteRegistry()
		kb := knowledge.New().Set(
			knowledge.Variant("core.OptionVec2", "tuple(geom.Vec2)"),
			map[string]any{"Some": []any{9.0, 9.0}},
		)

		cat := builder.New(reg, builder.WithKnowledge(kb)).Build("demo.Sprite")

		size, _ := cat.Entry(".custom_size")
		require.Len(t, size.Examples, 2)
		assert.Equal(t, map[string]any{"Some": []any{9.0, 9.0}}, size.Examples[1].Example)

		_, ok := cat.Entry(".custom_size.0")
		assert.False(t, ok, "curated signature groups expand no children")
	})
}

func TestNotInRegistry(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("f32", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarFloat})
	reg.Register("demo.Mixed", &schema.Schema{
		Kind: schema.KindStruct,
		Properties: map[string]schema.TypeID{
			"good": "f32",
			"bad":  "demo.Ghost",
		},
	})

	cat := builder.New(reg).Build("demo.Mixed")

	bad, ok := cat.Entry(".bad")
	require.True(t, ok, "unresolvable paths publish, flagged not mutable")
	assert.Equal(t, domain.StatusNotMutable, bad.Status)
	assert.Equal(t, domain.ReasonNotInRegistry, bad.Reason)
	assert.Nil(t, bad.Example)

	root, _ := cat.Entry("")
	assert.Equal(t, domain.StatusPartiallyMutable, root.Status)
	assert.Equal(t, domain.ReasonMixedChildMutability, root.Reason)
}

func TestMissingSerializationSupport(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("demo.Handle", &schema.Schema{Kind: schema.KindValue})
	reg.Register("demo.Wrapper", &schema.Schema{
		Kind:       schema.KindStruct,
		Properties: map[string]schema.TypeID{"handle": "demo.Handle"},
	})

	cat := builder.New(reg).Build("demo.Wrapper")

	handle, _ := cat.Entry(".handle")
	assert.Equal(t, domain.StatusNotMutable, handle.Status)
	assert.Equal(t, domain.ReasonMissingSerializationSupport, handle.Reason)

	root, _ := cat.Entry("")
	assert.Equal(t, domain.StatusNotMutable, root.Status)
	assert.Equal(t, domain.ReasonAllChildrenNotMutable, root.Reason)
}

func TestUnknownRootType(t *testing.T) {
	cat := builder.New(schema.NewRegistry()).Build("demo.Ghost")

	require.Equal(t, 1, cat.Len(), "the catalogue always completes")
	root, _ := cat.Entry("")
	assert.Equal(t, domain.StatusNotMutable, root.Status)
	assert.Equal(t, domain.ReasonNotInRegistry, root.Reason)
}

func TestTupleSignatureCollision(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("f32", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarFloat})
	reg.Register("string", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarString})
	reg.Register("demo.Either", &schema.Schema{
		Kind: schema.KindEnum,
		Variants: []schema.Variant{
			{Name: "Num", Tuple: []schema.TypeID{"f32"}},
			{Name: "Text", Tuple: []schema.TypeID{"string"}},
		},
	})

	cat := builder.New(reg).Build("demo.Either")

	root, _ := cat.Entry("")
	require.Len(t, root.Examples, 2, "distinct element types are distinct signatures")

	// Both signatures emit ".0"; the first declared group keeps the path.
	entry, ok := cat.Entry(".0")
	require.True(t, ok)
	assert.Equal(t, schema.TypeID("f32"), entry.Type)
	require.NotNil(t, entry.Requirement)
	assert.Equal(t, "Num", entry.Requirement.VariantPath[0].Variant)
}

func TestArrayAndListExamples(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Register("u8", &schema.Schema{Kind: schema.KindValue, Scalar: schema.ScalarUint})
	reg.Register("demo.Rgb", &schema.Schema{Kind: schema.KindArray, Items: "u8", Length: 3})
	reg.Register("demo.Bytes", &schema.Schema{Kind: schema.KindList, Items: "u8"})

	rgb := builder.New(reg).Build("demo.Rgb")
	assert.Equal(t, []string{"", ".0", ".1", ".2"}, rgb.SortedPaths())
	root, _ := rgb.Entry("")
	assert.Equal(t, []any{0, 0, 0}, root.Example)

	bytes := builder.New(reg).Build("demo.Bytes")
	assert.Equal(t, []string{"", ".0"}, bytes.SortedPaths(),
		"lists publish one representative element path")
	root, _ = bytes.Entry("")
	assert.Equal(t, []any{0, 0}, root.Example, "list examples repeat the representative item")
}

func TestBuildHooks(t *testing.T) {
	var built []string
	cat := builder.New(spriteRegistry(), builder.WithHooks(domain.BuildHooks{
		OnPathBuilt: func(path string, _ domain.MutationStatus) { built = append(built, path) },
	})).Build("demo.Sprite")

	assert.Len(t, built, cat.Len(), "one callback per published record")
	assert.Contains(t, built, "")
	assert.Contains(t, built, ".custom_size.0.y")
}

func TestCatalogueCarriesFingerprint(t *testing.T) {
	reg := spriteRegistry()
	cat := builder.New(reg).Build("demo.Sprite")
	assert.Equal(t, reg.Fingerprint(), cat.Fingerprint)
}
