package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tracery-dev/tracery/internal/presentation/markdown"
	"github.com/tracery-dev/tracery/pkg/domain"
)

func TestRender(t *testing.T) {
	cat := &domain.Catalogue{
		RootType:    "demo.Sprite",
		Fingerprint: "abc123",
		Paths: map[string]domain.PathEntry{
			"": {
				Path:        "",
				Description: "The root demo.Sprite value",
				Type:        "demo.Sprite",
				Kind:        domain.RootValue("demo.Sprite"),
				Status:      domain.StatusMutable,
				Example:     map[string]any{"custom_size": "None"},
			},
			".custom_size": {
				Path:        ".custom_size",
				Description: "The custom_size field of demo.Sprite",
				Type:        "core.OptionVec2",
				Kind:        domain.StructField("custom_size", "core.OptionVec2", "demo.Sprite"),
				Status:      domain.StatusMutable,
				Examples: []domain.ExampleGroup{
					{ApplicableVariants: []string{"None"}, Signature: "unit", Example: "None"},
					{ApplicableVariants: []string{"Some"}, Signature: "tuple(geom.Vec2)", Example: map[string]any{"Some": map[string]any{"x": 0.0, "y": 0.0}}},
				},
			},
			".custom_size.0": {
				Path:        ".custom_size.0",
				Description: "Element 0 of core.OptionVec2",
				Type:        "geom.Vec2",
				Kind:        domain.IndexedElement(0, "geom.Vec2", "core.OptionVec2"),
				Status:      domain.StatusMutable,
				Example:     map[string]any{"x": 0.0, "y": 0.0},
				Requirement: &domain.PathRequirement{
					Description: `Reachable only with .custom_size set to variant "Some"`,
					Example:     map[string]any{"custom_size": map[string]any{"Some": map[string]any{"x": 0.0, "y": 0.0}}},
					VariantPath: []domain.VariantStep{{Path: ".custom_size", Variant: "Some"}},
				},
			},
		},
	}

	doc := markdown.Render(cat)

	assert.Contains(t, doc, "# Mutation Paths: demo.Sprite")
	assert.Contains(t, doc, "Registry fingerprint: `abc123`")
	assert.Contains(t, doc, "3 paths published.")

	// Summary table rows
	assert.Contains(t, doc, "| `(root)` | demo.Sprite | mutable |")
	assert.Contains(t, doc, "| `.custom_size` | core.OptionVec2 | mutable |")

	// Per-path sections
	assert.Contains(t, doc, "## `(root)`")
	assert.Contains(t, doc, "## `.custom_size`")
	assert.Contains(t, doc, "**None** (`unit`):")
	assert.Contains(t, doc, "**Some** (`tuple(geom.Vec2)`):")

	// Variant-guarded path carries its requirement
	assert.Contains(t, doc, `> Reachable only with .custom_size set to variant "Some"`)
	assert.Contains(t, doc, "Complete value from the root:")
	assert.Contains(t, doc, "```json")
}

func TestRenderFrozenPath(t *testing.T) {
	cat := &domain.Catalogue{
		RootType: "demo.Node",
		Paths: map[string]domain.PathEntry{
			"": {
				Path:    "",
				Type:    "demo.Node",
				Kind:    domain.RootValue("demo.Node"),
				Status:  domain.StatusMutable,
				Example: map[string]any{},
			},
			".next": {
				Path:   ".next",
				Type:   "demo.Node",
				Kind:   domain.StructField("next", "demo.Node", "demo.Node"),
				Status: domain.StatusNotMutable,
				Reason: domain.ReasonRecursionLimitExceeded,
			},
		},
	}

	doc := markdown.Render(cat)

	assert.Contains(t, doc, "Reason: `recursion_limit_exceeded`.")
	assert.NotContains(t, doc, "## `.next`\n\nType `demo.Node`, status `not_mutable`.\n\nExample payload:")
}
