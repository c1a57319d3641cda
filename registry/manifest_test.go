package registry

import (
	"testing"

	"github.com/fschutt/gofontconfig/fontconfig"
)

func TestManifestSaveLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")

	want := fontManifest{
		Version: manifestVersion,
		Entries: map[string]manifestEntry{
			"/fonts/Arial.ttf": {
				ModTimeUnix: 1234,
				FileSize:    5678,
				Faces: []manifestFace{
					{Pattern: fontconfig.DefaultPattern(), FaceIndex: 0},
				},
			},
		},
	}

	if err := saveManifest("", want); err != nil {
		t.Fatalf("saveManifest failed: %v", err)
	}

	got, ok := loadManifest("")
	if !ok {
		t.Fatalf("expected loadManifest to find the just-written manifest")
	}
	if len(got.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got.Entries))
	}
	entry, ok := got.Entries["/fonts/Arial.ttf"]
	if !ok {
		t.Fatalf("expected the Arial.ttf entry to round-trip")
	}
	if entry.FileSize != 5678 || entry.ModTimeUnix != 1234 {
		t.Errorf("entry metadata did not round-trip: %+v", entry)
	}
}

func TestManifestLoadMissingReturnsFalse(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")

	if _, ok := loadManifest(""); ok {
		t.Errorf("expected loadManifest to report false when no manifest has been written")
	}
}

func TestManifestVersionMismatchRejected(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")

	bad := fontManifest{Version: manifestVersion + 1, Entries: map[string]manifestEntry{}}
	if err := saveManifest("", bad); err != nil {
		t.Fatalf("saveManifest failed: %v", err)
	}
	if _, ok := loadManifest(""); ok {
		t.Errorf("expected a version-mismatched manifest to be rejected")
	}
}
