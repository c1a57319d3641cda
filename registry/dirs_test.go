package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsFontFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"Arial.ttf", true},
		{"Arial.TTF", true},
		{"NotoSans.otf", true},
		{"bundle.ttc", true},
		{"readme.txt", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		if got := isFontFile(tt.path); got != tt.want {
			t.Errorf("isFontFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestGuessFamilyFromFilenameStripsStyleSuffixes(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"Arial.ttf", "arial"},
		{"Arial-Bold.ttf", "arial"},
		{"Arial-BoldItalic.ttf", "arial"},
		{"DejaVuSansMono-Bold.ttf", "dejavusansmono"},
	}
	for _, tt := range tests {
		if got := guessFamilyFromFilename(tt.path); got != tt.want {
			t.Errorf("guessFamilyFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDedupStrings(t *testing.T) {
	got := dedupStrings([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseFontsConfExpandsHomePrefix(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, "fonts.conf")
	contents := `<?xml version="1.0"?>
<fontconfig>
	<dir>/usr/share/extra-fonts</dir>
	<dir>~/.extra-fonts</dir>
</fontconfig>`
	if err := os.WriteFile(confPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test fixture: %v", err)
	}

	dirs := parseFontsConf(confPath, "/home/alice")
	if len(dirs) != 2 {
		t.Fatalf("expected 2 dirs, got %v", dirs)
	}
	if dirs[0] != "/usr/share/extra-fonts" {
		t.Errorf("dirs[0] = %q, want %q", dirs[0], "/usr/share/extra-fonts")
	}
	if dirs[1] != filepath.Join("/home/alice", ".extra-fonts") {
		t.Errorf("dirs[1] = %q, want the expanded home path", dirs[1])
	}
}

func TestParseFontsConfMissingFileReturnsNil(t *testing.T) {
	if got := parseFontsConf("/nonexistent/fonts.conf", "/home/alice"); got != nil {
		t.Errorf("expected nil for a missing file, got %v", got)
	}
}
