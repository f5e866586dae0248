package schema

import (
	"fmt"
	"strings"
)

// Validate checks the registry for structural problems: unknown kinds,
// dangling type references, malformed shapes. It reports every problem
// found rather than stopping at the first. A registry that fails
// validation can still be traversed; dangling references simply
// surface as not-mutable leaves.
func (r *Registry) Validate() error {
	var problems []string

	report := func(id TypeID, format string, args ...any) {
		problems = append(problems, fmt.Sprintf("%s: %s", id, fmt.Sprintf(format, args...)))
	}

	checkRef := func(id TypeID, role string, ref TypeID) {
		if ref == "" {
			report(id, "%s type is empty", role)
			return
		}
		if !r.Contains(ref) {
			report(id, "%s references unknown type %q", role, ref)
		}
	}

	for _, id := range r.Types() {
		s := r.schemas[id]
		if s == nil {
			report(id, "schema is nil")
			continue
		}
		if !s.Kind.Valid() {
			report(id, "unknown kind %q", s.Kind)
			continue
		}

		switch s.Kind {
		case KindStruct:
			for _, name := range s.FieldNames() {
				if name == "" {
					report(id, "property with empty name")
					continue
				}
				checkRef(id, fmt.Sprintf("property %q", name), s.Properties[name])
			}

		case KindEnum:
			if len(s.Variants) == 0 {
				report(id, "enum has no variants")
			}
			seen := make(map[string]bool, len(s.Variants))
			for _, v := range s.Variants {
				if v.Name == "" {
					report(id, "variant with empty name")
					continue
				}
				if seen[v.Name] {
					report(id, "duplicate variant %q", v.Name)
				}
				seen[v.Name] = true
				if len(v.Tuple) > 0 && len(v.Fields) > 0 {
					report(id, "variant %q declares both tuple and fields", v.Name)
				}
				for i, el := range v.Tuple {
					checkRef(id, fmt.Sprintf("variant %q position %d", v.Name, i), el)
				}
				for _, f := range v.Fields {
					if f.Name == "" {
						report(id, "variant %q has a field with empty name", v.Name)
						continue
					}
					checkRef(id, fmt.Sprintf("variant %q field %q", v.Name, f.Name), f.Type)
				}
			}

		case KindTupleStruct:
			if len(s.PrefixItems) == 0 {
				report(id, "tuple struct has no positions")
			}
			for i, el := range s.PrefixItems {
				checkRef(id, fmt.Sprintf("position %d", i), el)
			}

		case KindArray:
			if s.Length < 1 {
				report(id, "array length must be at least 1, got %d", s.Length)
			}
			checkRef(id, "element", s.Items)

		case KindList, KindSet:
			checkRef(id, "element", s.Items)

		case KindMap:
			checkRef(id, "key", s.KeyType)
			checkRef(id, "value", s.ValueType)

		case KindValue:
			// No structural requirements. An empty scalar hint just
			// means examples must come from knowledge or the schema.
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("registry validation found %d problem(s):\n- %s",
			len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}
