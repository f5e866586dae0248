package tracery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/tracery-dev/tracery/internal/builder"
	"github.com/tracery-dev/tracery/pkg/adapters/file"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/knowledge"
	"github.com/tracery-dev/tracery/pkg/ports"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// buildLockTTL bounds how long a replica can hold the distributed build
// lock; expiry frees the key if the holder dies mid-build.
const buildLockTTL = 30 * time.Second

// Engine is the high-level entry point for the Tracery library.
// It wraps the internal builder and provides a simplified API for consumers.
type Engine struct {
	source   ports.SchemaSource
	store    ports.CatalogueStore
	locker   ports.DistributedLocker
	kb       *knowledge.Base
	maxDepth int
	hooks    domain.BuildHooks
	logger   *slog.Logger
	Name     string

	mu       sync.RWMutex
	registry *schema.Registry
	builder  *builder.Builder
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource injects a custom SchemaSource, bypassing the default file adapter.
func WithSource(s ports.SchemaSource) Option {
	return func(e *Engine) {
		e.source = s
	}
}

// WithStore registers a catalogue store consulted before each build.
// Catalogues are keyed by registry fingerprint and root type, so a stale
// cache can never serve paths for a registry that has since changed.
func WithStore(s ports.CatalogueStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLocker registers a distributed lock taken around cache-miss
// builds, so replicas sharing a store traverse a changed registry once
// instead of once per instance. Only meaningful together with WithStore.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithKnowledge replaces the curated example overrides. Pass
// knowledge.New() to disable the built-in defaults entirely.
func WithKnowledge(kb *knowledge.Base) Option {
	return func(e *Engine) {
		e.kb = kb
	}
}

// WithMaxDepth overrides the traversal recursion bound (default 10).
// Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// WithBuildHooks registers observability hooks.
func WithBuildHooks(hooks domain.BuildHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Tracery Engine.
// By default, it reads the registry from a JSON or YAML document at the
// given path. If the WithSource option is provided, registryPath can be
// empty and the file adapter is skipped.
func New(registryPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply options first to check if a source is provided
	for _, opt := range opts {
		opt(eng)
	}

	// If no source was injected, initialize the default file adapter
	if eng.source == nil {
		if registryPath == "" {
			return nil, fmt.Errorf("registryPath is required when no custom source is provided")
		}

		absPath, err := filepath.Abs(registryPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		eng.Name = filepath.Base(absPath)
		eng.source = file.New(absPath)
	} else {
		// If a custom source is provided, registryPath still serves as a descriptive label.
		if registryPath != "" {
			eng.Name = filepath.Base(registryPath)
		}
	}

	// Ensure logger is initialized (so we don't pass nil to the builder, which would overwrite its default)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Enrich logger with the registry name if available
	if eng.Name != "" {
		eng.logger = eng.logger.With("registry", eng.Name)
	}

	// The curated defaults cover opaque engine types; WithKnowledge replaces them.
	if eng.kb == nil {
		eng.kb = knowledge.Defaults()
	}

	if err := eng.Refresh(context.Background()); err != nil {
		return nil, err
	}

	return eng, nil
}

// Refresh re-fetches the registry from the source and swaps in a builder
// over the new snapshot. Concurrent Catalogue calls keep using the old
// snapshot until the swap completes.
func (e *Engine) Refresh(ctx context.Context) error {
	reg, err := e.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch registry: %w", err)
	}

	opts := []builder.Option{
		builder.WithKnowledge(e.kb),
		builder.WithHooks(e.hooks),
		builder.WithLogger(e.logger),
		builder.WithMaxDepth(e.maxDepth),
	}

	e.mu.Lock()
	e.registry = reg
	e.builder = builder.New(reg, opts...)
	e.mu.Unlock()

	return nil
}

// Catalogue returns the mutation-path catalogue for the given root type.
// When a store is configured it is consulted first; a miss triggers a
// build whose result is saved back best-effort. With a locker configured
// the build runs under a distributed lock, with a second store read after
// acquisition in case another replica finished the same build meanwhile.
func (e *Engine) Catalogue(ctx context.Context, root schema.TypeID) (*domain.Catalogue, error) {
	e.mu.RLock()
	reg, b := e.registry, e.builder
	e.mu.RUnlock()

	if !reg.Contains(root) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTypeNotFound, root)
	}

	fingerprint := reg.Fingerprint()
	if cat, ok := e.fromStore(ctx, fingerprint, root); ok {
		return cat, nil
	}

	if e.store != nil && e.locker != nil {
		unlock, err := e.locker.Lock(ctx, "build:"+fingerprint+":"+string(root), buildLockTTL)
		if err != nil {
			e.logger.Warn("distributed build lock unavailable, building locally", "type", root, "err", err)
		} else {
			// A failed release is covered by the TTL.
			defer func() { _ = unlock(ctx) }()
			if cat, ok := e.fromStore(ctx, fingerprint, root); ok {
				return cat, nil
			}
		}
	}

	cat := b.Build(root)

	if e.store != nil {
		if err := e.store.Save(ctx, cat); err != nil {
			e.logger.Warn("catalogue store write failed", "type", root, "err", err)
		}
	}

	return cat, nil
}

// fromStore attempts a cache read. Store errors other than a plain miss
// are logged and treated as misses.
func (e *Engine) fromStore(ctx context.Context, fingerprint string, root schema.TypeID) (*domain.Catalogue, bool) {
	if e.store == nil {
		return nil, false
	}
	cached, err := e.store.Load(ctx, fingerprint, root)
	if err == nil {
		e.logger.Debug("catalogue served from store", "type", root)
		return cached, true
	}
	if !errors.Is(err, domain.ErrCatalogueNotFound) {
		e.logger.Warn("catalogue store read failed", "type", root, "err", err)
	}
	return nil, false
}

// Types returns the ids of all registered types in sorted order.
func (e *Engine) Types() []schema.TypeID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.Types()
}

// Fingerprint returns the canonical fingerprint of the loaded registry.
func (e *Engine) Fingerprint() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.Fingerprint()
}

// Validate checks the loaded registry for dangling references and
// malformed shapes. The catalogue builder tolerates these (they surface
// as not-mutable paths), so validation is advisory.
func (e *Engine) Validate() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.Validate()
}

// Registry returns the current registry snapshot for introspection tools.
func (e *Engine) Registry() *schema.Registry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry
}

// Watch returns a channel that signals when the underlying registry changes.
// Returns an error if the source does not support watching. Callers should
// Refresh on each signal.
func (e *Engine) Watch(ctx context.Context) (<-chan struct{}, error) {
	if w, ok := e.source.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current source does not support watching")
}

// Source returns the underlying SchemaSource used by the engine.
func (e *Engine) Source() ports.SchemaSource {
	return e.source
}
