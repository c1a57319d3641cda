package registry

import (
	"container/heap"
	"os"
	"path/filepath"
	"strings"
)

// scout enumerates every configured font directory, guesses a family name
// per file from its filename, and seeds both knownPaths and the build
// queue before flagging the scan complete. It runs once, in its own
// goroutine, for the lifetime of a Registry.
func (r *Registry) scout() {
	defer func() {
		r.scanComplete.Store(true)
		r.queueCond.L.Lock()
		r.queueCond.Broadcast()
		r.queueCond.L.Unlock()
	}()

	dirs := r.cfg.Dirs
	if dirs == nil {
		dirs = fontDirectories()
	}

	var found []string
	for _, dir := range dirs {
		if r.isShuttingDown() {
			return
		}
		found = append(found, walkFontFiles(dir)...)
	}

	common := commonFamiliesForOS()

	r.knownPathsMu.Lock()
	r.queueCond.L.Lock()
	for _, path := range found {
		guessed := guessFamilyFromFilename(path)
		r.knownPaths[guessed] = append(r.knownPaths[guessed], path)

		priority := PriorityLow
		for _, cf := range common {
			if strings.Contains(guessed, cf) {
				priority = PriorityHigh
				break
			}
		}
		heap.Push(r.queue, buildJob{priority: priority, path: path, guessedFamily: guessed})
	}
	r.filesDiscovered.Store(int64(len(found)))
	r.queueCond.L.Unlock()
	r.knownPathsMu.Unlock()

	r.queueCond.L.Lock()
	r.queueCond.Broadcast()
	r.queueCond.L.Unlock()
}

// walkFontFiles recursively collects font files under dir. Unreadable
// directories (permission errors, races with deletion) are skipped rather
// than aborting the whole scan.
func walkFontFiles(dir string) []string {
	var out []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			out = append(out, walkFontFiles(path)...)
			continue
		}
		if isFontFile(path) {
			out = append(out, path)
		}
	}
	return out
}
