package fontconfig

import (
	"github.com/google/uuid"
)

// FontId is an opaque identifier for a single face. A font collection file
// yields one FontId per face it contains. FontIds are stable for the
// lifetime of the process that created them but carry no semantic content
// beyond uniqueness: callers must not infer ordering or provenance from the
// value itself.
type FontId struct {
	id uuid.UUID
}

// NewFontId returns a fresh, process-unique FontId. IDs are time-ordered
// (UUIDv7) when the platform clock supports it, falling back to random
// (UUIDv4) IDs otherwise; either way two calls never collide.
func NewFontId() FontId {
	if id, err := uuid.NewV7(); err == nil {
		return FontId{id: id}
	}
	return FontId{id: uuid.New()}
}

// String formats the id as a 5-group hex string (the canonical UUID
// rendering), suitable for debug output and logs.
func (f FontId) String() string {
	return f.id.String()
}

// IsZero reports whether f is the zero value, i.e. never assigned by
// NewFontId. Useful for sentinel/"not found" returns.
func (f FontId) IsZero() bool {
	return f.id == uuid.Nil
}
