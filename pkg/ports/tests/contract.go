package tests

import (
	"context"
	"testing"

	"github.com/tracery-dev/tracery/pkg/ports"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// SchemaSourceContractTest is a reusable test suite that verifies if an adapter
// complies with ports.SchemaSource.
func SchemaSourceContractTest(t *testing.T, source ports.SchemaSource, wantTypes []schema.TypeID) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Fetch (Success)
	t.Run("Fetch_Success", func(t *testing.T) {
		reg, err := source.Fetch(ctx)
		if err != nil {
			t.Fatalf("unexpected error fetching registry: %v", err)
		}
		if reg == nil {
			t.Fatal("expected a registry, got nil")
		}

		if reg.Len() != len(wantTypes) {
			t.Errorf("expected %d types, got %d", len(wantTypes), reg.Len())
		}

		// Verify all expected IDs are present
		for _, id := range wantTypes {
			if !reg.Contains(id) {
				t.Errorf("type %s missing from registry", id)
			}
		}
	})

	// 2. Test Fetch stability: two fetches describe the same snapshot
	t.Run("Fetch_Stable", func(t *testing.T) {
		first, err := source.Fetch(ctx)
		if err != nil {
			t.Fatalf("unexpected error fetching registry: %v", err)
		}
		second, err := source.Fetch(ctx)
		if err != nil {
			t.Fatalf("unexpected error fetching registry: %v", err)
		}
		if first.Fingerprint() != second.Fingerprint() {
			t.Errorf("fingerprint changed between fetches: %s vs %s", first.Fingerprint(), second.Fingerprint())
		}
	})

	// 3. Test canceled context
	t.Run("Fetch_Canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()
		// Sources without I/O may legitimately ignore cancellation; remote
		// ones must not hang.
		_, _ = source.Fetch(canceled)
	})
}
