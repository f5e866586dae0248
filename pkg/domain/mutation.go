package domain

import "github.com/tracery-dev/tracery/pkg/schema"

// MutationRequest asks a remote reflection endpoint to set the value at
// one mutation path of a live object.
type MutationRequest struct {
	// Type is the registry identifier of the root type being mutated.
	Type schema.TypeID `json:"type"`
	// Path addresses the location inside the value, in catalogue path
	// grammar ("" for the whole value).
	Path string `json:"path"`
	// Value is the payload to write at the path.
	Value any `json:"value"`
	// Target optionally names the live object instance; the endpoint's
	// default target is used when empty.
	Target string `json:"target,omitempty"`
}
