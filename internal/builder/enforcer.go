package builder

import (
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/knowledge"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// childSpec is one child descriptor produced by a builder's enumerate
// step: the child's identity plus the action it inherits.
type childSpec struct {
	kind   domain.PathKind
	action domain.PathAction
}

// build drives one traversal level. It is the only place that recurses:
// depth guard, registry check, knowledge short-circuit, dispatch,
// status roll-up and record emission all happen here or in the helpers
// it calls. Builders never bypass it.
func (b *Builder) build(ctx buildContext, depth int) subtree {
	if depth > b.maxDepth {
		b.hooks.DepthLimit(ctx.kind.Type, depth)
		return b.unbuildable(ctx, domain.ReasonRecursionLimitExceeded)
	}

	s, ok := b.registry.Lookup(ctx.kind.Type)
	if !ok {
		return b.unbuildable(ctx, domain.ReasonNotInRegistry)
	}

	// Curated knowledge is authoritative and stops recursion. A field
	// entry is more specific than a type entry, so it is checked first.
	if ctx.kind.Origin == domain.OriginField {
		if v, ok := b.kb.Lookup(knowledge.Field(ctx.kind.Parent, ctx.kind.Field)); ok {
			return b.curated(ctx, v)
		}
	}
	if v, ok := b.kb.Lookup(knowledge.Exact(ctx.kind.Type)); ok {
		return b.curated(ctx, v)
	}

	switch s.Classification() {
	case schema.KindStruct:
		return b.buildStruct(ctx, s, depth)
	case schema.KindEnum:
		return b.buildEnum(ctx, s, depth)
	case schema.KindTupleStruct:
		return b.buildTuple(ctx, s, depth)
	case schema.KindArray:
		return b.buildArray(ctx, s, depth)
	case schema.KindList:
		return b.buildList(ctx, s, depth)
	case schema.KindSet:
		return b.buildSet(ctx, s, depth)
	case schema.KindMap:
		return b.buildMap(ctx, s, depth)
	default:
		return b.buildValue(ctx, s)
	}
}

// buildNode runs the shared child flow for every classification except
// enums: recurse per descriptor, collect examples keyed by descriptor,
// assemble, roll up, compose requirement examples, emit.
func (b *Builder) buildNode(ctx buildContext, depth int, specs []childSpec, assemble func(children map[string]any) any) subtree {
	statuses := make([]domain.MutationStatus, 0, len(specs))
	collected := make(map[string]any, len(specs))
	var descendants []*record

	for _, spec := range specs {
		childCtx := ctx.child(spec.kind, spec.action)
		child := b.build(childCtx, depth+1)
		collected[spec.kind.ChildKey()] = child.example
		statuses = append(statuses, child.status)
		descendants = append(descendants, child.records...)
	}

	example := assemble(collected)
	status, reason := domain.RollUp(statuses)
	b.compose(descendants, ctx.path, example)
	return b.emit(ctx, example, status, reason, nil, descendants)
}

// unbuildable returns the single not-mutable record for a branch that
// cannot be traversed. This is the only failure channel: no panic path
// exists for malformed-but-registered schemas.
func (b *Builder) unbuildable(ctx buildContext, reason domain.MutationReason) subtree {
	return b.emit(ctx, nil, domain.StatusNotMutable, reason, nil, nil)
}

// curated synthesizes a record directly from a knowledge example.
func (b *Builder) curated(ctx buildContext, example any) subtree {
	b.hooks.KnowledgeHit(ctx.kind.Type)
	return b.emit(ctx, example, domain.StatusMutable, "", nil, nil)
}

// emit finalizes a level: the node's own record joins the descendant
// records unless the node is in skip mode.
func (b *Builder) emit(ctx buildContext, example any, status domain.MutationStatus, reason domain.MutationReason, groups []domain.ExampleGroup, descendants []*record) subtree {
	tree := subtree{
		example: example,
		status:  status,
		reason:  reason,
		records: descendants,
	}
	if ctx.action == domain.ActionCreate {
		tree.records = append(tree.records, &record{
			path:    ctx.path,
			kind:    ctx.kind,
			typeID:  ctx.kind.Type,
			example: example,
			status:  status,
			reason:  reason,
			groups:  groups,
		})
		b.hooks.PathBuilt(ctx.path, status)
	}
	return tree
}
