package registry

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/fschutt/gofontconfig/fontconfig"
)

// manifestVersion is bumped whenever the on-disk encoding changes shape;
// a mismatched manifest is treated as absent rather than partially loaded.
const manifestVersion = 1

// fontManifest is the gob-serializable on-disk cache: per-file metadata
// plus the parsed pattern for every face the file contains, keyed by
// absolute path so a subsequent run can skip re-parsing unchanged files
// entirely.
type fontManifest struct {
	Version uint32
	Entries map[string]manifestEntry
}

type manifestEntry struct {
	ModTimeUnix int64
	FileSize    int64
	Faces       []manifestFace
}

type manifestFace struct {
	Pattern   fontconfig.FcPattern
	FaceIndex int
}

// manifestPath returns the on-disk cache location, mirroring each OS's
// conventional cache directory. A non-empty override bypasses OS detection
// entirely, for callers that set Config.CacheDir.
func manifestPath(override string) (string, bool) {
	if override != "" {
		return filepath.Join(override, "manifest.gob"), true
	}

	home, err := homedir.Dir()
	if err != nil || home == "" {
		return "", false
	}

	var base string
	switch runtime.GOOS {
	case "darwin":
		base = filepath.Join(home, "Library", "Caches", "gofontconfig")
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			base = filepath.Join(local, "gofontconfig")
		} else {
			base = filepath.Join(home, "AppData", "Local", "gofontconfig")
		}
	default:
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			base = filepath.Join(xdg, "gofontconfig")
		} else {
			base = filepath.Join(home, ".cache", "gofontconfig")
		}
	}
	return filepath.Join(base, "manifest.gob"), true
}

// loadManifest reads and decodes the on-disk manifest, returning ok=false
// if it is absent, unreadable, corrupt, or the wrong version.
func loadManifest(cacheDirOverride string) (fontManifest, bool) {
	path, ok := manifestPath(cacheDirOverride)
	if !ok {
		return fontManifest{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fontManifest{}, false
	}
	var m fontManifest
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return fontManifest{}, false
	}
	if m.Version != manifestVersion {
		return fontManifest{}, false
	}
	return m, true
}

// saveManifest encodes m, writes it to a temporary file beside the manifest
// and renames that over the manifest, creating parent directories as
// needed. Failures are non-fatal: a missing cache just means a slower next
// startup, not a broken one.
func saveManifest(cacheDirOverride string, m fontManifest) error {
	path, ok := manifestPath(cacheDirOverride)
	if !ok {
		return fmt.Errorf("gofontconfig: no cache directory available for this platform")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("encoding font manifest: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing font manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing font manifest: %w", err)
	}
	return nil
}

func fileMetadata(path string) (modTimeUnix, size int64) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0
	}
	return info.ModTime().Unix(), info.Size()
}
