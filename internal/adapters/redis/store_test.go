package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracery-dev/tracery/internal/adapters/redis"
	"github.com/tracery-dev/tracery/pkg/domain"
	contract "github.com/tracery-dev/tracery/pkg/ports/tests"
	"github.com/tracery-dev/tracery/pkg/schema"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newTestClient(t)

	store := redis.NewFromClient(client)
	contract.CatalogueStoreContractTest(t, store)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	mr, client := newTestClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(time.Minute), redis.WithPrefix("test:cat:"))
	ctx := context.Background()

	cat := &domain.Catalogue{
		RootType:    "demo.Sprite",
		Fingerprint: "abc",
		Paths:       map[string]domain.PathEntry{},
	}
	require.NoError(t, store.Save(ctx, cat))

	// Key exists under the configured prefix
	assert.True(t, mr.Exists("test:cat:abc:demo.Sprite"))

	// Past the TTL the blob is gone
	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "abc", "demo.Sprite")
	assert.ErrorIs(t, err, domain.ErrCatalogueNotFound)
}

func TestRedisStore_IndexFollowsDeletes(t *testing.T) {
	_, client := newTestClient(t)

	store := redis.NewFromClient(client)
	ctx := context.Background()

	for _, root := range []string{"demo.Camera", "demo.Sprite"} {
		require.NoError(t, store.Save(ctx, &domain.Catalogue{
			RootType:    schema.TypeID(root),
			Fingerprint: "fp1",
			Paths:       map[string]domain.PathEntry{},
		}))
	}

	roots, err := store.List(ctx, "fp1")
	require.NoError(t, err)
	assert.Equal(t, []schema.TypeID{"demo.Camera", "demo.Sprite"}, roots)

	require.NoError(t, store.Delete(ctx, "fp1", "demo.Camera"))

	roots, err = store.List(ctx, "fp1")
	require.NoError(t, err)
	assert.Equal(t, []schema.TypeID{"demo.Sprite"}, roots)
}
