package fontconfig

import (
	"fmt"
	"os"
)

// FontSource is a tagged alternative between an embedded, owned byte buffer
// (Memory) and a filesystem reference (Disk). Disk sources hold only a path
// and are read lazily; Memory sources own their bytes for the lifetime of
// the registry.
type FontSource struct {
	kind sourceKind

	// Memory fields.
	memoryBytes []byte
	memoryId    string

	// shared / Disk fields.
	path  string
	index int // face index within the file, for collections
}

type sourceKind uint8

const (
	sourceDisk sourceKind = iota
	sourceMemory
)

// DiskSource builds a FontSource referring to a face at faceIndex within
// the file at path.
func DiskSource(path string, faceIndex int) FontSource {
	return FontSource{kind: sourceDisk, path: path, index: faceIndex}
}

// MemorySource builds a FontSource owning bytes directly, identified by an
// opaque caller-supplied id (e.g. "embedded:brand-sans").
func MemorySource(id string, bytes []byte, faceIndex int) FontSource {
	return FontSource{kind: sourceMemory, memoryId: id, memoryBytes: bytes, index: faceIndex}
}

// IsMemory reports whether the source is an in-memory (embedded) font.
func (s FontSource) IsMemory() bool { return s.kind == sourceMemory }

// IsDisk reports whether the source is a filesystem path.
func (s FontSource) IsDisk() bool { return s.kind == sourceDisk }

// Path returns the filesystem path for a Disk source, or "" otherwise.
func (s FontSource) Path() string { return s.path }

// FaceIndex returns the face index within the underlying file (nonzero
// only for font collections).
func (s FontSource) FaceIndex() int { return s.index }

// Bytes returns the raw font bytes, reading from disk on demand for Disk
// sources. A plain read is sufficient and keeps the package free of
// platform-specific mmap code.
func (s FontSource) Bytes() ([]byte, error) {
	switch s.kind {
	case sourceMemory:
		return s.memoryBytes, nil
	case sourceDisk:
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("reading font file %s: %w", s.path, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("fontconfig: invalid font source")
	}
}
