package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// Store implements ports.CatalogueStore using Redis. Catalogues are
// stored as JSON blobs keyed by fingerprint and root type, with a ZSET
// index per fingerprint so List stays cheap.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for cached catalogues.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for catalogue entries.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "tracery:catalogue:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(fingerprint string, root schema.TypeID) string {
	return s.prefix + fingerprint + ":" + string(root)
}

func (s *Store) indexKey(fingerprint string) string {
	return s.prefix + "index:" + fingerprint
}

// Save persists the catalogue to Redis.
func (s *Store) Save(ctx context.Context, cat *domain.Catalogue) error {
	data, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("failed to marshal catalogue: %w", err)
	}

	pipe := s.client.Pipeline()

	// 1. Save JSON with TTL (0 means no expiration)
	pipe.Set(ctx, s.key(cat.Fingerprint, cat.RootType), data, s.ttl)

	// 2. Add to index (ZSET). Score = Now + TTL so expired members can be
	// pruned lazily; +Inf-ish when entries never expire.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(cat.Fingerprint), backend.Z{
		Score:  score,
		Member: string(cat.RootType),
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the catalogue from Redis.
func (s *Store) Load(ctx context.Context, fingerprint string, root schema.TypeID) (*domain.Catalogue, error) {
	val, err := s.client.Get(ctx, s.key(fingerprint, root)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrCatalogueNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var cat domain.Catalogue
	if err := json.Unmarshal([]byte(val), &cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalogue: %w", err)
	}

	return &cat, nil
}

// Delete removes the catalogue.
func (s *Store) Delete(ctx context.Context, fingerprint string, root schema.TypeID) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(fingerprint, root))
	pipe.ZRem(ctx, s.indexKey(fingerprint), string(root))

	_, err := pipe.Exec(ctx)
	return err
}

// List returns root types cached under the fingerprint, using ZSET lazy
// cleanup to drop expired members first.
func (s *Store) List(ctx context.Context, fingerprint string) ([]schema.TypeID, error) {
	now := float64(time.Now().Unix())

	// ZREMRANGEBYSCORE key -inf (now); removes nothing when everything
	// scores far in the future.
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(fingerprint), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired catalogues: %w", err)
	}

	members, err := s.client.ZRange(ctx, s.indexKey(fingerprint), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogues: %w", err)
	}

	roots := make([]schema.TypeID, 0, len(members))
	for _, m := range members {
		roots = append(roots, schema.TypeID(m))
	}
	return roots, nil
}

// Locker returns a distributed locker sharing this store's client and
// key prefix, for coordinating builds across replicas.
func (s *Store) Locker() *Locker {
	return NewLocker(s.client, s.prefix)
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
