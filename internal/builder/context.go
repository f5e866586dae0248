package builder

import (
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// buildContext is the immutable per-call state of one traversal level.
// Everything shared across levels (registry, knowledge, hooks) lives on
// the Builder; the context only carries what differs per node.
type buildContext struct {
	// path is the node's absolute path in catalogue grammar ("" for
	// the root).
	path string

	// kind identifies the node: origin, own type, parent type, and the
	// field name or index that links it to its parent.
	kind domain.PathKind

	// action says whether this node's record is published. Skip
	// propagates: every descendant of a skipped node is skipped.
	action domain.PathAction
}

// child derives the context for one child node.
func (c buildContext) child(kind domain.PathKind, action domain.PathAction) buildContext {
	if c.action == domain.ActionSkip {
		action = domain.ActionSkip
	}
	return buildContext{
		path:   c.path + kind.Segment(),
		kind:   kind,
		action: action,
	}
}

// record is the internal per-path result. Created once per emitted
// node; after creation only the requirement fields change, rewritten by
// ancestor stack frames during the unwind.
type record struct {
	path    string
	kind    domain.PathKind
	typeID  schema.TypeID
	example any
	status  domain.MutationStatus
	reason  domain.MutationReason

	// groups is set for enum nodes built from schema: one example per
	// structural signature.
	groups []domain.ExampleGroup

	// requirement tracks the ancestor variant selections needed to
	// reach this path. reqRoot is the path whose assembled example the
	// requirement's example currently covers; it rises level by level
	// until it reaches the traversal root.
	requirement *domain.PathRequirement
	reqRoot     string
}

// subtree is what one build call returns to its parent frame: the
// node's assembled example and rolled-up status, plus every record the
// subtree emitted. The slice is owned by the caller, which may rewrite
// requirement state on the records before passing them further up.
type subtree struct {
	example any
	status  domain.MutationStatus
	reason  domain.MutationReason
	records []*record
}
