package schema

import "strings"

// Variant is one named alternative of an enum type. Exactly one shape
// applies: no Tuple and no Fields means a unit variant, Tuple means an
// ordered sequence of typed positions, Fields means a record.
type Variant struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Tuple lists the position types of a tuple-shaped variant.
	Tuple []TypeID `json:"tuple,omitempty" yaml:"tuple,omitempty" mapstructure:"tuple"`

	// Fields lists the named fields of a record-shaped variant, in
	// declaration order.
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:"fields"`
}

// Field is a named, typed field inside a record-shaped variant.
type Field struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Type TypeID `json:"type" yaml:"type" mapstructure:"type"`
}

// SignatureKind distinguishes the three structural shapes a variant
// can take.
type SignatureKind string

const (
	SignatureUnit   SignatureKind = "unit"
	SignatureTuple  SignatureKind = "tuple"
	SignatureRecord SignatureKind = "struct"
)

// VariantSignature is the structural shape of a variant with its name
// erased. Two variants with equal signatures carry identical data and
// are interchangeable for traversal purposes.
type VariantSignature struct {
	Kind     SignatureKind
	Elements []TypeID
	Fields   []Field
}

// Signature computes the variant's structural signature. A variant
// declaring both Tuple and Fields is treated as a record; the registry
// validator rejects that shape up front.
func (v Variant) Signature() VariantSignature {
	switch {
	case len(v.Fields) > 0:
		return VariantSignature{Kind: SignatureRecord, Fields: v.Fields}
	case len(v.Tuple) > 0:
		return VariantSignature{Kind: SignatureTuple, Elements: v.Tuple}
	default:
		return VariantSignature{Kind: SignatureUnit}
	}
}

// Key returns the canonical rendering used to group variants and to
// address knowledge entries. Equal signatures always render equal keys.
func (sig VariantSignature) Key() string {
	switch sig.Kind {
	case SignatureTuple:
		var b strings.Builder
		b.WriteString("tuple(")
		for i, el := range sig.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(string(el))
		}
		b.WriteString(")")
		return b.String()
	case SignatureRecord:
		var b strings.Builder
		b.WriteString("struct{")
		for i, f := range sig.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			b.WriteString(string(f.Type))
		}
		b.WriteString("}")
		return b.String()
	default:
		return "unit"
	}
}

func (sig VariantSignature) String() string { return sig.Key() }
