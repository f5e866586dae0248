package tracery_test

import (
	"context"
	"testing"

	"github.com/tracery-dev/tracery"
	"github.com/tracery-dev/tracery/pkg/adapters/memory"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/knowledge"
	"github.com/tracery-dev/tracery/pkg/schema"
)

func TestMaxDepthBoundsRecursiveTypes(t *testing.T) {
	// 1. A self-referential struct: Tree { value: f32, next: Tree }
	src, err := memory.NewFromSchemas(map[schema.TypeID]*schema.Schema{
		"f32": {Kind: schema.KindValue, Scalar: schema.ScalarFloat},
		"demo.Tree": {Kind: schema.KindStruct, Properties: map[string]schema.TypeID{
			"value": "f32",
			"next":  "demo.Tree",
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// 2. Init engine with a tight recursion bound
	eng, err := tracery.New("demo", tracery.WithSource(src), tracery.WithMaxDepth(1))
	if err != nil {
		t.Fatalf("Failed to init engine: %v", err)
	}

	cat, err := eng.Catalogue(context.Background(), "demo.Tree")
	if err != nil {
		t.Fatal(err)
	}

	// 3. The walk terminates at ".next.next" with a frozen entry
	frozen, ok := cat.Paths[".next.next"]
	if !ok {
		t.Fatalf("Expected a truncated entry at .next.next, got paths %v", cat.SortedPaths())
	}
	if frozen.Status != domain.StatusNotMutable {
		t.Errorf("Expected not_mutable at the depth bound, got %s", frozen.Status)
	}
	if frozen.Reason != domain.ReasonRecursionLimitExceeded {
		t.Errorf("Expected recursion_limit_exceeded, got %s", frozen.Reason)
	}
	if _, deeper := cat.Paths[".next.next.next"]; deeper {
		t.Error("Expected no paths beyond the depth bound")
	}

	// 4. Mutability rolls up through the truncated branch
	if got := cat.Paths[".next"].Status; got != domain.StatusNotMutable {
		t.Errorf("Expected .next to be not_mutable (all children frozen), got %s", got)
	}
	rootEntry := cat.Paths[""]
	if rootEntry.Status != domain.StatusPartiallyMutable {
		t.Errorf("Expected partially_mutable root, got %s", rootEntry.Status)
	}
	if rootEntry.Reason != domain.ReasonMixedChildMutability {
		t.Errorf("Expected mixed_child_mutability on root, got %s", rootEntry.Reason)
	}
}

func TestKnowledgeOverridesGeneratedExamples(t *testing.T) {
	// 1. Curated value for the quaternion type wins over generic generation
	kb := knowledge.New().
		Set(knowledge.Exact("glam.Quat"), map[string]any{"x": 0.0, "y": 0.0, "z": 0.0, "w": 1.0})

	src, err := memory.NewFromSchemas(map[schema.TypeID]*schema.Schema{
		"f32": {Kind: schema.KindValue, Scalar: schema.ScalarFloat},
		"glam.Quat": {Kind: schema.KindStruct, Properties: map[string]schema.TypeID{
			"x": "f32", "y": "f32", "z": "f32", "w": "f32",
		}},
		"demo.Transform": {Kind: schema.KindStruct, Properties: map[string]schema.TypeID{
			"rotation": "glam.Quat",
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	eng, err := tracery.New("demo", tracery.WithSource(src), tracery.WithKnowledge(kb))
	if err != nil {
		t.Fatalf("Failed to init engine: %v", err)
	}

	cat, err := eng.Catalogue(context.Background(), "demo.Transform")
	if err != nil {
		t.Fatal(err)
	}

	// 2. The curated payload appears verbatim on the field path
	rot, ok := cat.Paths[".rotation"]
	if !ok {
		t.Fatalf("Expected a .rotation entry, got %v", cat.SortedPaths())
	}
	example, ok := rot.Example.(map[string]any)
	if !ok {
		t.Fatalf("Expected a map example on .rotation, got %T", rot.Example)
	}
	if example["w"] != 1.0 {
		t.Errorf("Expected identity quaternion w=1, got %v", example["w"])
	}

	// 3. Knowledge is authoritative: no child paths below the curated type
	if _, has := cat.Paths[".rotation.x"]; has {
		t.Error("Expected traversal to stop at the curated type, but .rotation.x was emitted")
	}
}

func TestDefaultKnowledgeCoversOpaqueTypes(t *testing.T) {
	// Durations register as opaque values with no scalar hint; the
	// built-in defaults supply a payload where generic generation cannot.
	src, err := memory.NewFromSchemas(map[schema.TypeID]*schema.Schema{
		"core::time::Duration": {Kind: schema.KindValue},
		"demo.Timer": {Kind: schema.KindStruct, Properties: map[string]schema.TypeID{
			"duration": "core::time::Duration",
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	eng, err := tracery.New("demo", tracery.WithSource(src))
	if err != nil {
		t.Fatalf("Failed to init engine: %v", err)
	}

	cat, err := eng.Catalogue(context.Background(), "demo.Timer")
	if err != nil {
		t.Fatal(err)
	}

	duration := cat.Paths[".duration"]
	if duration.Status != domain.StatusMutable {
		t.Errorf("Expected the curated default to make .duration mutable, got %s", duration.Status)
	}
	if duration.Example == nil {
		t.Error("Expected a curated example payload for the duration")
	}
}
