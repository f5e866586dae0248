package domain

// MutationStatus reports whether a path can be mutated through the
// remote protocol. It is computed bottom-up from the node's children.
type MutationStatus string

const (
	// StatusMutable means the path and all of its children accept mutations.
	StatusMutable MutationStatus = "mutable"
	// StatusPartiallyMutable means some children accept mutations and
	// some do not.
	StatusPartiallyMutable MutationStatus = "partially_mutable"
	// StatusNotMutable means neither the path nor any child accepts
	// mutations.
	StatusNotMutable MutationStatus = "not_mutable"
)

// MutationReason explains a status that is not fully mutable.
type MutationReason string

const (
	// ReasonRecursionLimitExceeded marks a branch truncated by the depth guard.
	ReasonRecursionLimitExceeded MutationReason = "recursion_limit_exceeded"
	// ReasonNotInRegistry marks a reference to a type the registry does not hold.
	ReasonNotInRegistry MutationReason = "not_in_registry"
	// ReasonMissingSerializationSupport marks an opaque leaf with no
	// representable example value.
	ReasonMissingSerializationSupport MutationReason = "missing_serialization_support"
	// ReasonAllChildrenNotMutable rolls up from children that are all immutable.
	ReasonAllChildrenNotMutable MutationReason = "all_children_not_mutable"
	// ReasonMixedChildMutability rolls up from children with differing statuses.
	ReasonMixedChildMutability MutationReason = "mixed_child_mutability"
)

// RollUp derives a parent's status from its children's statuses.
// A node with no children is mutable. The returned reason is empty
// for StatusMutable.
func RollUp(children []MutationStatus) (MutationStatus, MutationReason) {
	if len(children) == 0 {
		return StatusMutable, ""
	}

	mutable, immutable := 0, 0
	for _, st := range children {
		switch st {
		case StatusMutable:
			mutable++
		case StatusNotMutable:
			immutable++
		}
	}

	switch {
	case mutable == len(children):
		return StatusMutable, ""
	case immutable == len(children):
		return StatusNotMutable, ReasonAllChildrenNotMutable
	default:
		return StatusPartiallyMutable, ReasonMixedChildMutability
	}
}
