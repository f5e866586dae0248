package builder

import (
	"strconv"

	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/knowledge"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// signatureGroup is one structural shape of an enum: every variant
// sharing the signature, with the first declared variant as the
// representative that gets expanded.
type signatureGroup struct {
	representative schema.Variant
	signature      schema.VariantSignature
	names          []string
}

// groupVariants deduplicates variants by structural signature. Group
// order follows the first declaration of each signature; names within a
// group keep declaration order.
func groupVariants(variants []schema.Variant) []signatureGroup {
	var groups []signatureGroup
	index := make(map[string]int, len(variants))
	for _, v := range variants {
		key := v.Signature().Key()
		if i, ok := index[key]; ok {
			groups[i].names = append(groups[i].names, v.Name)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, signatureGroup{
			representative: v,
			signature:      v.Signature(),
			names:          []string{v.Name},
		})
	}
	return groups
}

// buildEnum expands one enum level: one example per unique signature,
// flat child paths through each signature's representative, and
// requirement bookkeeping so descendants record which variant makes
// them reachable.
func (b *Builder) buildEnum(ctx buildContext, s *schema.Schema, depth int) subtree {
	groups := groupVariants(s.Variants)
	if len(groups) == 0 {
		return b.unbuildable(ctx, domain.ReasonMissingSerializationSupport)
	}

	published := make([]domain.ExampleGroup, 0, len(groups))
	var statuses []domain.MutationStatus
	var descendants []*record

	for _, g := range groups {
		// A curated example for this signature is authoritative: no
		// child expansion for the group.
		if v, ok := b.kb.Lookup(knowledge.Variant(ctx.kind.Type, g.signature.Key())); ok {
			b.hooks.KnowledgeHit(ctx.kind.Type)
			published = append(published, domain.ExampleGroup{
				ApplicableVariants: g.names,
				Signature:          g.signature.Key(),
				Example:            v,
			})
			continue
		}

		specs := variantChildren(ctx.kind.Type, g.representative)
		collected := make(map[string]any, len(specs))
		var groupRecords []*record
		for _, spec := range specs {
			childCtx := ctx.child(spec.kind, spec.action)
			child := b.build(childCtx, depth+1)
			collected[spec.kind.ChildKey()] = child.example
			statuses = append(statuses, child.status)
			groupRecords = append(groupRecords, child.records...)
		}

		example := assembleVariant(g.representative, collected)
		b.composeGroup(groupRecords, ctx.path, example, g.signature, g.representative.Name)
		descendants = append(descendants, groupRecords...)
		published = append(published, domain.ExampleGroup{
			ApplicableVariants: g.names,
			Signature:          g.signature.Key(),
			Example:            example,
		})
	}

	status, reason := domain.RollUp(statuses)
	// The single example a parent assembles with is the first group's.
	return b.emit(ctx, published[0].Example, status, reason, published, descendants)
}

// variantChildren enumerates the representative's children: one indexed
// element per tuple position, one field per record field, none for unit.
func variantChildren(enum schema.TypeID, v schema.Variant) []childSpec {
	sig := v.Signature()
	switch sig.Kind {
	case schema.SignatureTuple:
		specs := make([]childSpec, len(sig.Elements))
		for i, el := range sig.Elements {
			specs[i] = childSpec{kind: domain.IndexedElement(i, el, enum), action: domain.ActionCreate}
		}
		return specs
	case schema.SignatureRecord:
		specs := make([]childSpec, len(sig.Fields))
		for i, f := range sig.Fields {
			specs[i] = childSpec{kind: domain.StructField(f.Name, f.Type, enum), action: domain.ActionCreate}
		}
		return specs
	default:
		return nil
	}
}

// assembleVariant wraps assembled children in the representative's
// name: unit variants are the bare name, single-element tuples hold the
// inner value directly, wider tuples an ordered list, records an object.
func assembleVariant(v schema.Variant, children map[string]any) any {
	sig := v.Signature()
	switch sig.Kind {
	case schema.SignatureTuple:
		if len(sig.Elements) == 1 {
			return map[string]any{v.Name: children["0"]}
		}
		items := make([]any, len(sig.Elements))
		for i := range sig.Elements {
			items[i] = children[strconv.Itoa(i)]
		}
		return map[string]any{v.Name: items}
	case schema.SignatureRecord:
		fields := make(map[string]any, len(sig.Fields))
		for _, f := range sig.Fields {
			fields[f.Name] = children[f.Name]
		}
		return map[string]any{v.Name: fields}
	default:
		return v.Name
	}
}
