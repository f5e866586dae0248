package tracery_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tracery-dev/tracery"
	"github.com/tracery-dev/tracery/pkg/adapters/memory"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/ports"
	"github.com/tracery-dev/tracery/pkg/schema"
)

func TestFacade_Integration(t *testing.T) {
	// 0. Setup temp registry document
	dir := t.TempDir()
	regFile := filepath.Join(dir, "registry.json")
	content := []byte(`{
		"f32": {"kind": "value", "scalar": "float"},
		"geom.Vec2": {"kind": "struct", "properties": {"x": "f32", "y": "f32"}}
	}`)
	if err := os.WriteFile(regFile, content, 0644); err != nil {
		t.Fatal(err)
	}

	// 1. Test initialization
	eng, err := tracery.New(regFile)
	if err != nil {
		t.Fatalf("Failed to initialize engine with path %s: %v", regFile, err)
	}
	if eng.Name != "registry.json" {
		t.Errorf("Expected engine name 'registry.json', got %q", eng.Name)
	}

	// 2. Test catalogue build
	ctx := context.Background()
	cat, err := eng.Catalogue(ctx, "geom.Vec2")
	if err != nil {
		t.Fatalf("Catalogue failed: %v", err)
	}
	if cat.RootType != "geom.Vec2" {
		t.Errorf("Expected root type 'geom.Vec2', got %q", cat.RootType)
	}
	if len(cat.Paths) != 3 {
		t.Errorf("Expected 3 paths (root, .x, .y), got %d", len(cat.Paths))
	}
	root, ok := cat.Paths[""]
	if !ok {
		t.Fatal("Expected an entry at the empty (root) path")
	}
	if root.Status != domain.StatusMutable {
		t.Errorf("Expected mutable root, got %s", root.Status)
	}

	// 3. Unknown roots surface the sentinel
	if _, err := eng.Catalogue(ctx, "demo.Ghost"); !errors.Is(err, domain.ErrTypeNotFound) {
		t.Errorf("Expected ErrTypeNotFound for unknown root, got %v", err)
	}

	// 4. Registry accessors
	if got := eng.Types(); len(got) != 2 {
		t.Errorf("Expected 2 registered types, got %d", len(got))
	}
	if eng.Fingerprint() == "" {
		t.Error("Expected a non-empty registry fingerprint")
	}
	if err := eng.Validate(); err != nil {
		t.Errorf("Expected a valid registry, got %v", err)
	}
}

func TestFacade_RequiresPathOrSource(t *testing.T) {
	if _, err := tracery.New(""); err == nil {
		t.Fatal("Expected an error when neither a path nor a source is given")
	}
}

func vecSource(t *testing.T) *memory.Source {
	t.Helper()
	src, err := memory.NewFromSchemas(map[schema.TypeID]*schema.Schema{
		"f32":       {Kind: schema.KindValue, Scalar: schema.ScalarFloat},
		"geom.Vec2": {Kind: schema.KindStruct, Properties: map[string]schema.TypeID{"x": "f32", "y": "f32"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return src
}

func TestFacade_StoreServesRepeatBuilds(t *testing.T) {
	var builds int
	hooks := domain.BuildHooks{
		OnPathBuilt: func(path string, _ domain.MutationStatus) {
			if path == "" {
				builds++
			}
		},
	}

	eng, err := tracery.New("demo",
		tracery.WithSource(vecSource(t)),
		tracery.WithStore(memory.NewStore()),
		tracery.WithBuildHooks(hooks),
	)
	if err != nil {
		t.Fatalf("Failed to init engine: %v", err)
	}

	ctx := context.Background()

	// First call builds and saves.
	first, err := eng.Catalogue(ctx, "geom.Vec2")
	if err != nil {
		t.Fatal(err)
	}
	if builds != 1 {
		t.Fatalf("Expected exactly one build, got %d", builds)
	}

	// Second call must come from the store, not a rebuild.
	second, err := eng.Catalogue(ctx, "geom.Vec2")
	if err != nil {
		t.Fatal(err)
	}
	if builds != 1 {
		t.Errorf("Expected the store to serve the second call, but a rebuild ran (%d builds)", builds)
	}
	if second.Fingerprint != first.Fingerprint {
		t.Errorf("Stored catalogue fingerprint mismatch: %s vs %s", second.Fingerprint, first.Fingerprint)
	}
	if len(second.Paths) != len(first.Paths) {
		t.Errorf("Stored catalogue path count mismatch: %d vs %d", len(second.Paths), len(first.Paths))
	}
}

func TestFacade_WatchUnsupportedSource(t *testing.T) {
	eng, err := tracery.New("demo", tracery.WithSource(vecSource(t)))
	if err != nil {
		t.Fatalf("Failed to init engine: %v", err)
	}

	// The in-memory source has no change feed.
	if _, err := eng.Watch(context.Background()); err == nil {
		t.Fatal("Expected Watch to fail for a source without watch support")
	}
}

func TestFacade_WatchFileSource(t *testing.T) {
	dir := t.TempDir()
	regFile := filepath.Join(dir, "registry.json")
	if err := os.WriteFile(regFile, []byte(`{"f32": {"kind": "value", "scalar": "float"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	eng, err := tracery.New(regFile)
	if err != nil {
		t.Fatalf("Failed to init engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := eng.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed for a file-backed source: %v", err)
	}
	if ch == nil {
		t.Fatal("Expected a change channel, got nil")
	}
}

// recordingLocker counts acquisitions and releases.
type recordingLocker struct {
	locks   int
	unlocks int
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.locks++
	return func(context.Context) error {
		l.unlocks++
		return nil
	}, nil
}

func TestFacade_LockerGuardsBuilds(t *testing.T) {
	locker := &recordingLocker{}

	eng, err := tracery.New("demo",
		tracery.WithSource(vecSource(t)),
		tracery.WithStore(memory.NewStore()),
		tracery.WithLocker(locker),
	)
	if err != nil {
		t.Fatalf("Failed to init engine: %v", err)
	}

	ctx := context.Background()

	// First call misses the store, so the build runs under the lock.
	if _, err := eng.Catalogue(ctx, "geom.Vec2"); err != nil {
		t.Fatal(err)
	}
	if locker.locks != 1 {
		t.Errorf("Expected one lock acquisition, got %d", locker.locks)
	}
	if locker.unlocks != 1 {
		t.Errorf("Expected the lock to be released, got %d releases", locker.unlocks)
	}

	// Second call is served from the store before any locking.
	if _, err := eng.Catalogue(ctx, "geom.Vec2"); err != nil {
		t.Fatal(err)
	}
	if locker.locks != 1 {
		t.Errorf("Expected no further lock acquisitions on a cache hit, got %d", locker.locks)
	}
}
