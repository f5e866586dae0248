package builder

import (
	"strconv"
	"strings"

	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// compose runs the requirement rewrite at a non-enum level: every
// descendant record holding a requirement gets its example spliced into
// a copy of this level's assembled example, extending the example's
// coverage up to this level.
func (b *Builder) compose(records []*record, ownPath string, ownExample any) {
	for _, r := range records {
		if r.requirement == nil {
			continue
		}
		rel := relativeSegments(ownPath, r.reqRoot)
		r.requirement.Example = splice(deepCopy(ownExample), rel, r.requirement.Example)
		r.reqRoot = ownPath
	}
}

// composeGroup runs the requirement rewrite at an enum level for one
// signature group. Descendants lacking a requirement get one seeded
// from their own example first; then every requirement example is
// spliced into the group's example and the enum's own (path, variant)
// step is prepended to the variant chain.
func (b *Builder) composeGroup(records []*record, enumPath string, groupExample any, sig schema.VariantSignature, variantName string) {
	for _, r := range records {
		if r.requirement == nil {
			r.requirement = &domain.PathRequirement{Example: deepCopy(r.example)}
			r.reqRoot = r.path
		}
		rel := relativeSegments(enumPath, r.reqRoot)
		r.requirement.Example = spliceVariant(deepCopy(groupExample), rel, r.requirement.Example, sig, variantName)
		r.reqRoot = enumPath
		r.requirement.VariantPath = append(
			[]domain.VariantStep{{Path: enumPath, Variant: variantName}},
			r.requirement.VariantPath...,
		)
		r.requirement.Description = domain.DescribeVariantPath(r.requirement.VariantPath)
	}
}

// spliceVariant substitutes value into a copy of a signature group's
// example. The first segment crosses the variant wrapper, where the
// signature disambiguates what the wrapper holds: single-element tuples
// hold the inner value directly, wider tuples an array, records an
// object of fields.
func spliceVariant(base any, segs []string, value any, sig schema.VariantSignature, variantName string) any {
	if len(segs) == 0 {
		return value
	}
	wrapper, ok := base.(map[string]any)
	if !ok {
		return base
	}
	inner, ok := wrapper[variantName]
	if !ok {
		return base
	}

	switch sig.Kind {
	case schema.SignatureTuple:
		idx, ok := parseIndex(segs[0])
		if !ok {
			return base
		}
		if len(sig.Elements) == 1 {
			if idx == 0 {
				wrapper[variantName] = splice(inner, segs[1:], value)
			}
			return wrapper
		}
		if arr, isArr := inner.([]any); isArr && idx < len(arr) {
			arr[idx] = splice(arr[idx], segs[1:], value)
			wrapper[variantName] = arr
		}
		return wrapper
	case schema.SignatureRecord:
		wrapper[variantName] = splice(inner, segs, value)
		return wrapper
	default:
		return wrapper
	}
}

// splice walks segs into base (a private copy) and replaces the value
// at the final segment. Numeric segments index arrays; name segments
// index object fields. A single-key object whose key does not match the
// segment is treated as a variant wrapper and descended through; a
// genuine one-field record is indistinguishable from a wrapper at this
// point.
func splice(base any, segs []string, value any) any {
	if len(segs) == 0 {
		return value
	}
	seg := segs[0]

	if idx, ok := parseIndex(seg); ok {
		switch b := base.(type) {
		case []any:
			if idx < len(b) {
				b[idx] = splice(b[idx], segs[1:], value)
			}
			return b
		case map[string]any:
			if len(b) == 1 {
				for k, inner := range b {
					if arr, isArr := inner.([]any); isArr && idx < len(arr) {
						arr[idx] = splice(arr[idx], segs[1:], value)
						b[k] = arr
					} else if idx == 0 {
						b[k] = splice(inner, segs[1:], value)
					}
				}
			}
			return b
		}
		return base
	}

	if b, ok := base.(map[string]any); ok {
		if _, exists := b[seg]; exists {
			b[seg] = splice(b[seg], segs[1:], value)
			return b
		}
		if len(b) == 1 {
			for k, inner := range b {
				b[k] = splice(inner, segs, value)
			}
		}
		return b
	}
	return base
}

// relativeSegments splits the part of full below base into path
// segments. base must be a prefix of full.
func relativeSegments(base, full string) []string {
	rel := strings.TrimPrefix(full, base)
	rel = strings.TrimPrefix(rel, ".")
	if rel == "" {
		return nil
	}
	return strings.Split(rel, ".")
}

// deepCopy clones the JSON-shaped value trees examples are made of.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}

func parseIndex(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
