package domain

import (
	"fmt"
	"strconv"

	"github.com/tracery-dev/tracery/pkg/schema"
)

// PathOrigin defines why a node exists in the traversal tree.
type PathOrigin string

const (
	// OriginRoot is the traversal entry point; its path is the empty string.
	OriginRoot PathOrigin = "root_value"
	// OriginField is a named field of a struct (or of a record-shaped
	// enum variant).
	OriginField PathOrigin = "struct_field"
	// OriginIndex is a numbered position: tuple and array elements,
	// list/set items, and enum tuple-variant positions.
	OriginIndex PathOrigin = "indexed_element"
)

// PathKind identifies a node in the traversal tree: its origin, its own
// type, and the parent it hangs off. It renders the node's path segment
// and human description, and keys the node's result in its parent.
type PathKind struct {
	Origin PathOrigin    `json:"origin"`
	Type   schema.TypeID `json:"type"`
	Parent schema.TypeID `json:"parent_type,omitempty"`
	Field  string        `json:"field,omitempty"`
	Index  int           `json:"index,omitempty"`
}

// RootValue is the PathKind of a traversal root.
func RootValue(t schema.TypeID) PathKind {
	return PathKind{Origin: OriginRoot, Type: t}
}

// StructField is the PathKind of a named field.
func StructField(field string, t, parent schema.TypeID) PathKind {
	return PathKind{Origin: OriginField, Type: t, Parent: parent, Field: field}
}

// IndexedElement is the PathKind of a numbered position.
func IndexedElement(index int, t, parent schema.TypeID) PathKind {
	return PathKind{Origin: OriginIndex, Type: t, Parent: parent, Index: index}
}

// Segment returns the path grammar fragment this node appends to its
// parent's path: "" for the root, ".name" for a field, ".N" for an
// indexed position.
func (k PathKind) Segment() string {
	switch k.Origin {
	case OriginField:
		return "." + k.Field
	case OriginIndex:
		return "." + strconv.Itoa(k.Index)
	default:
		return ""
	}
}

// ChildKey keys this node's assembled example inside its parent's
// collection: the field name for fields, the decimal index otherwise.
func (k PathKind) ChildKey() string {
	switch k.Origin {
	case OriginField:
		return k.Field
	case OriginIndex:
		return strconv.Itoa(k.Index)
	default:
		return ""
	}
}

// Describe renders the human description published with the path.
func (k PathKind) Describe() string {
	switch k.Origin {
	case OriginField:
		return fmt.Sprintf("The %s field of %s", k.Field, k.Parent)
	case OriginIndex:
		return fmt.Sprintf("Element %d of %s", k.Index, k.Parent)
	default:
		return fmt.Sprintf("The root %s value", k.Type)
	}
}

// PathAction controls whether a node's own path is published. Skip is
// declared by parents whose children the remote protocol cannot address
// individually (maps, sets); it propagates to every descendant.
type PathAction string

const (
	ActionCreate PathAction = "create"
	ActionSkip   PathAction = "skip"
)
