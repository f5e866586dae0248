package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/ports"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// CatalogueStoreContractTest is a reusable test suite that verifies if an
// adapter complies with ports.CatalogueStore.
func CatalogueStoreContractTest(t *testing.T, store ports.CatalogueStore) {
	ctx := context.Background()
	fingerprint := "contract-test-" + time.Now().Format("20060102150405")

	catalogue := func(root schema.TypeID) *domain.Catalogue {
		return &domain.Catalogue{
			RootType:    root,
			Fingerprint: fingerprint,
			Paths: map[string]domain.PathEntry{
				"": {
					Path:    "",
					Type:    root,
					Kind:    domain.RootValue(root),
					Status:  domain.StatusMutable,
					Example: map[string]any{"x": 0.0, "count": 42},
				},
				".x": {
					Path:    ".x",
					Type:    "f32",
					Kind:    domain.StructField("x", "f32", root),
					Status:  domain.StatusMutable,
					Example: 0.0,
				},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Build a catalogue
		cat := catalogue("demo.Sprite")

		// 2. Save
		err := store.Save(ctx, cat)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, fingerprint, "demo.Sprite")
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, cat.RootType, loaded.RootType)
		assert.Equal(t, cat.Fingerprint, loaded.Fingerprint)
		require.Equal(t, cat.Len(), loaded.Len())

		x, ok := loaded.Entry(".x")
		require.True(t, ok)
		assert.Equal(t, domain.StatusMutable, x.Status)
		// JSON persistence may convert numeric types; just check presence.
		root, _ := loaded.Entry("")
		assert.NotNil(t, root.Example)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, fingerprint, "demo.Ghost")
		assert.ErrorIs(t, err, domain.ErrCatalogueNotFound)
	})

	t.Run("Load Wrong Fingerprint", func(t *testing.T) {
		_, err := store.Load(ctx, "stale-"+fingerprint, "demo.Sprite")
		assert.ErrorIs(t, err, domain.ErrCatalogueNotFound,
			"a catalogue must never be served for a different registry snapshot")
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Save(ctx, catalogue("demo.Transform"))
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, fingerprint, "demo.Transform")
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, fingerprint, "demo.Transform")
		assert.ErrorIs(t, err, domain.ErrCatalogueNotFound, "Load after Delete should return ErrCatalogueNotFound")
	})

	t.Run("List", func(t *testing.T) {
		// Setup: store catalogues for 2 root types
		_ = store.Save(ctx, catalogue("demo.Camera"))
		_ = store.Save(ctx, catalogue("demo.Window"))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, fingerprint, "demo.Camera")
			_ = store.Delete(ctx, fingerprint, "demo.Window")
		}()

		// List
		roots, err := store.List(ctx, fingerprint)
		require.NoError(t, err)
		assert.Contains(t, roots, schema.TypeID("demo.Camera"))
		assert.Contains(t, roots, schema.TypeID("demo.Window"))
	})
}
