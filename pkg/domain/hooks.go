package domain

import "github.com/tracery-dev/tracery/pkg/schema"

// BuildHooks defines callbacks for traversal observability. All fields
// are optional; hooks observe the build and never influence its result.
type BuildHooks struct {
	// OnPathBuilt fires once per emitted record, including the root.
	OnPathBuilt func(path string, status MutationStatus)
	// OnKnowledgeHit fires when a curated example short-circuits recursion.
	OnKnowledgeHit func(t schema.TypeID)
	// OnDepthLimit fires when the depth guard truncates a branch.
	OnDepthLimit func(t schema.TypeID, depth int)
}

// PathBuilt invokes OnPathBuilt if set.
func (h BuildHooks) PathBuilt(path string, status MutationStatus) {
	if h.OnPathBuilt != nil {
		h.OnPathBuilt(path, status)
	}
}

// KnowledgeHit invokes OnKnowledgeHit if set.
func (h BuildHooks) KnowledgeHit(t schema.TypeID) {
	if h.OnKnowledgeHit != nil {
		h.OnKnowledgeHit(t)
	}
}

// DepthLimit invokes OnDepthLimit if set.
func (h BuildHooks) DepthLimit(t schema.TypeID, depth int) {
	if h.OnDepthLimit != nil {
		h.OnDepthLimit(t, depth)
	}
}
