package builder

import (
	"fmt"
	"strconv"

	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// buildStruct enumerates one child per named field, in sorted order,
// and assembles an object keyed by field name.
func (b *Builder) buildStruct(ctx buildContext, s *schema.Schema, depth int) subtree {
	fields := s.FieldNames()
	specs := make([]childSpec, len(fields))
	for i, name := range fields {
		specs[i] = childSpec{
			kind:   domain.StructField(name, s.Properties[name], ctx.kind.Type),
			action: domain.ActionCreate,
		}
	}
	return b.buildNode(ctx, depth, specs, func(children map[string]any) any {
		return children
	})
}

// buildTuple enumerates one child per declared position and assembles
// an ordered list.
func (b *Builder) buildTuple(ctx buildContext, s *schema.Schema, depth int) subtree {
	specs := make([]childSpec, len(s.PrefixItems))
	for i, el := range s.PrefixItems {
		specs[i] = childSpec{
			kind:   domain.IndexedElement(i, el, ctx.kind.Type),
			action: domain.ActionCreate,
		}
	}
	return b.buildNode(ctx, depth, specs, func(children map[string]any) any {
		return orderedList(children, len(specs))
	})
}

// buildArray enumerates the fixed number of element positions.
func (b *Builder) buildArray(ctx buildContext, s *schema.Schema, depth int) subtree {
	length := s.Length
	if length < 1 {
		length = 1
	}
	specs := make([]childSpec, length)
	for i := 0; i < length; i++ {
		specs[i] = childSpec{
			kind:   domain.IndexedElement(i, s.Items, ctx.kind.Type),
			action: domain.ActionCreate,
		}
	}
	return b.buildNode(ctx, depth, specs, func(children map[string]any) any {
		return orderedList(children, length)
	})
}

// buildList enumerates a single representative element at position 0.
// List elements are index-addressable, so the element path publishes.
func (b *Builder) buildList(ctx buildContext, s *schema.Schema, depth int) subtree {
	specs := []childSpec{{
		kind:   domain.IndexedElement(0, s.Items, ctx.kind.Type),
		action: domain.ActionCreate,
	}}
	return b.buildNode(ctx, depth, specs, func(children map[string]any) any {
		item := children["0"]
		return []any{item, item}
	})
}

// buildSet traverses a single representative item in skip mode: the
// protocol can replace the whole set but cannot address one member.
func (b *Builder) buildSet(ctx buildContext, s *schema.Schema, depth int) subtree {
	specs := []childSpec{{
		kind:   domain.IndexedElement(0, s.Items, ctx.kind.Type),
		action: domain.ActionSkip,
	}}
	return b.buildNode(ctx, depth, specs, func(children map[string]any) any {
		return []any{children["0"]}
	})
}

// buildMap traverses one representative key and one representative
// value, both in skip mode, and assembles a one-entry object.
func (b *Builder) buildMap(ctx buildContext, s *schema.Schema, depth int) subtree {
	specs := []childSpec{
		{kind: domain.StructField("key", s.KeyType, ctx.kind.Type), action: domain.ActionSkip},
		{kind: domain.StructField("value", s.ValueType, ctx.kind.Type), action: domain.ActionSkip},
	}
	return b.buildNode(ctx, depth, specs, func(children map[string]any) any {
		key := "key"
		if k := children["key"]; k != nil {
			if s := fmt.Sprintf("%v", k); s != "" {
				key = s
			}
		}
		return map[string]any{key: children["value"]}
	})
}

// buildValue produces an opaque leaf. Curated knowledge was already
// consulted by the enforcer; here the schema's own example and the
// scalar hint remain, in that order.
func (b *Builder) buildValue(ctx buildContext, s *schema.Schema) subtree {
	if s.Example != nil {
		return b.emit(ctx, s.Example, domain.StatusMutable, "", nil, nil)
	}
	if v, ok := s.Scalar.Default(); ok {
		return b.emit(ctx, v, domain.StatusMutable, "", nil, nil)
	}
	return b.unbuildable(ctx, domain.ReasonMissingSerializationSupport)
}

// orderedList rebuilds the positional example list from children keyed
// by decimal index.
func orderedList(children map[string]any, length int) []any {
	items := make([]any, length)
	for i := 0; i < length; i++ {
		items[i] = children[strconv.Itoa(i)]
	}
	return items
}
