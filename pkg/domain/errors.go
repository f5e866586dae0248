package domain

import "errors"

// ErrTypeNotFound is returned when a requested root type is absent from
// the registry.
var ErrTypeNotFound = errors.New("type not found in registry")

// ErrCatalogueNotFound is returned when a catalogue store holds no
// entry for the requested key.
var ErrCatalogueNotFound = errors.New("catalogue not found")
