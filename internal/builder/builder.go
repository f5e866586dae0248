package builder

import (
	"io"
	"log/slog"

	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/knowledge"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// DefaultMaxDepth bounds the traversal. Deep enough for real component
// trees, small enough that self-referential schemas terminate quickly.
const DefaultMaxDepth = 10

// Builder runs mutation-path traversals over one registry. It is
// read-only after construction and safe for concurrent Build calls.
type Builder struct {
	registry *schema.Registry
	kb       *knowledge.Base
	maxDepth int
	hooks    domain.BuildHooks
	log      *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithKnowledge sets the curated example overrides consulted before
// generic traversal.
func WithKnowledge(kb *knowledge.Base) Option {
	return func(b *Builder) {
		b.kb = kb
	}
}

// WithMaxDepth overrides the recursion bound. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(b *Builder) {
		if depth >= 1 {
			b.maxDepth = depth
		}
	}
}

// WithHooks registers traversal observability callbacks.
func WithHooks(hooks domain.BuildHooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// WithLogger sets a structured logger for traversal diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// New creates a Builder over the given registry.
func New(registry *schema.Registry, opts ...Option) *Builder {
	b := &Builder{
		registry: registry,
		maxDepth: DefaultMaxDepth,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the mutation-path catalogue for one root type. The
// catalogue always completes: types missing from the registry, branches
// beyond the depth bound, and unrepresentable leaves surface as
// not-mutable entries instead of errors.
func (b *Builder) Build(root schema.TypeID) *domain.Catalogue {
	ctx := buildContext{
		path:   "",
		kind:   domain.RootValue(root),
		action: domain.ActionCreate,
	}

	tree := b.build(ctx, 0)

	cat := &domain.Catalogue{
		RootType:    root,
		Fingerprint: b.registry.Fingerprint(),
		Paths:       make(map[string]domain.PathEntry, len(tree.records)),
	}
	for _, r := range tree.records {
		if _, exists := cat.Paths[r.path]; exists {
			// Two signature groups can claim the same child path (two
			// tuple-shaped signatures both emit ".0"); the first group
			// in declaration order keeps it.
			b.log.Debug("dropping colliding path record", "path", r.path, "type", r.typeID)
			continue
		}
		cat.Paths[r.path] = publish(r)
	}

	b.log.Debug("catalogue built",
		"root", root,
		"paths", len(cat.Paths),
		"status", tree.status,
	)
	return cat
}

// publish converts an internal record into its published entry.
func publish(r *record) domain.PathEntry {
	entry := domain.PathEntry{
		Path:        r.path,
		Description: r.kind.Describe(),
		Type:        r.typeID,
		Kind:        r.kind,
		Status:      r.status,
		Reason:      r.reason,
		Requirement: r.requirement,
	}
	if len(r.groups) > 0 {
		entry.Examples = r.groups
	} else {
		entry.Example = r.example
	}
	return entry
}
