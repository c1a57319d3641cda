package registry

import (
	"container/heap"
	"context"
	"log"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fschutt/gofontconfig/fontconfig"
)

// Logger is the minimal logging surface the registry needs; log.Logger
// satisfies it, so passing nil to New falls back to log.New(log.Writer(),
// "gofontconfig: ", log.Flags()).
type Logger interface {
	Printf(format string, args ...interface{})
}

// requestDeadline bounds how long RequestFonts will block for a single
// call before giving up and returning whatever chains it can build from
// the fonts loaded so far, unless overridden by Config.RequestDeadline.
const requestDeadline = 5 * time.Second

// Config overrides a Registry's defaults. The zero value uses the OS's
// conventional font directories and cache location and the package's
// default request deadline.
type Config struct {
	// CacheDir overrides the OS-conventional manifest cache directory.
	CacheDir string
	// Dirs overrides the OS-detected list of font directories to scan.
	// A nil slice means "use the platform defaults".
	Dirs []string
	// RequestDeadline overrides how long RequestFonts blocks before giving
	// up. Zero means use the package default.
	RequestDeadline time.Duration
}

func (c Config) requestDeadline() time.Duration {
	if c.RequestDeadline > 0 {
		return c.RequestDeadline
	}
	return requestDeadline
}

// pendingRequest tracks one in-flight RequestFonts call so builder
// goroutines can wake it as soon as every family it needs is present.
type pendingRequest struct {
	families  []string // normalized
	satisfied atomic.Bool
}

// Registry is the concurrently-populated, asynchronous font database. A
// scout goroutine enumerates font directories and a worker pool parses
// files from a priority queue while the cache it writes into is safe for
// concurrent reads from any other goroutine via Query/FuzzyQueryByName/
// RequestFonts.
type Registry struct {
	logger Logger
	cfg    Config

	cache *fontconfig.FcFontCache

	knownPathsMu sync.RWMutex
	knownPaths   map[string][]string // normalized guessed family -> file paths

	queueCond *sync.Cond
	queue     *jobQueue

	processedMu sync.Mutex
	processed   map[string]struct{}

	pendingMu sync.Mutex
	pending   []*pendingRequest
	pendingCh chan struct{} // closed and replaced each time pending state changes, to wake waiters

	scanComplete  atomic.Bool
	buildComplete atomic.Bool
	cacheLoaded   atomic.Bool
	shuttingDown  atomic.Bool

	filesDiscovered atomic.Int64
	filesParsed     atomic.Int64
	facesLoaded     atomic.Int64

	group errgroup.Group
}

// New returns an empty, unstarted Registry using platform defaults for font
// directories, cache location, and request deadline. Call Spawn to begin
// background scanning and parsing.
func New(logger Logger) *Registry {
	return NewWithConfig(logger, Config{})
}

// NewWithConfig is New but lets the caller override the font directories
// scanned, the on-disk cache location, and the RequestFonts deadline —
// useful for tests and for hosts that already know exactly where their
// fonts live.
func NewWithConfig(logger Logger, cfg Config) *Registry {
	if logger == nil {
		logger = log.New(log.Writer(), "gofontconfig: ", log.Flags())
	}
	r := &Registry{
		logger:     logger,
		cfg:        cfg,
		cache:      fontconfig.NewFontCache(),
		knownPaths: make(map[string][]string),
		queue:      newJobQueue(),
		processed:  make(map[string]struct{}),
		pendingCh:  make(chan struct{}),
	}
	r.queueCond = sync.NewCond(&sync.Mutex{})
	heap.Init(r.queue)
	return r
}

// RegisterMemoryFonts parses and adds embedded font bytes immediately,
// ahead of any disk scanning; named buffers are available to Query calls
// as soon as this returns.
func (r *Registry) RegisterMemoryFonts(fonts map[string][]byte) {
	for name, data := range fonts {
		faces, err := fontconfig.ParseFaces(data)
		if err != nil {
			r.logger.Printf("gofontconfig: skipping memory font %q: %v", name, err)
			continue
		}
		for i, face := range faces {
			r.cache.AddFace(face, fontconfig.MemorySource(name, data, i))
		}
	}
}

// Spawn starts the scout goroutine and a worker pool sized to
// runtime.NumCPU()-1 (minimum 1). It returns immediately; scanning and
// parsing continue in the background until the scout has finished and the
// queue has drained, or until Shutdown is called.
func (r *Registry) Spawn() {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}

	r.group.Go(func() error {
		r.scout()
		return nil
	})

	for i := 0; i < n; i++ {
		r.group.Go(func() error {
			r.buildWorker()
			return nil
		})
	}
}

// LoadDiskCache attempts to populate the registry from the on-disk
// manifest written by a previous run. It returns true if a usable cache
// was found: in that case RequestFonts can resolve chains immediately
// without waiting on the scout or worker pool, since everything the
// manifest named is already in the cache.
func (r *Registry) LoadDiskCache() bool {
	manifest, ok := loadManifest(r.cfg.CacheDir)
	if !ok {
		return false
	}

	r.processedMu.Lock()
	for path, entry := range manifest.Entries {
		r.processed[path] = struct{}{}
		for _, face := range entry.Faces {
			r.cache.AddFace(face.Pattern, fontconfig.DiskSource(path, face.FaceIndex))
			r.facesLoaded.Add(1)
		}
	}
	r.processedMu.Unlock()

	r.cacheLoaded.Store(true)
	return true
}

// SaveDiskCache writes the current registry contents to the on-disk
// manifest so the next process startup can skip re-parsing unchanged
// files.
func (r *Registry) SaveDiskCache() error {
	entries := make(map[string]manifestEntry)
	for _, item := range r.cache.List() {
		src, ok := r.cache.Source(item.Id)
		if !ok || !src.IsDisk() {
			continue
		}
		path := src.Path()
		entry, exists := entries[path]
		if !exists {
			mtime, size := fileMetadata(path)
			entry = manifestEntry{ModTimeUnix: mtime, FileSize: size}
		}
		entry.Faces = append(entry.Faces, manifestFace{Pattern: item.Pattern, FaceIndex: src.FaceIndex()})
		entries[path] = entry
	}
	return saveManifest(r.cfg.CacheDir, fontManifest{Version: manifestVersion, Entries: entries})
}

// Shutdown signals all background goroutines to stop and waits for them to
// exit.
func (r *Registry) Shutdown() {
	r.shuttingDown.Store(true)
	r.queueCond.L.Lock()
	r.queueCond.Broadcast()
	r.queueCond.L.Unlock()
	_ = r.group.Wait()
}

func (r *Registry) isShuttingDown() bool { return r.shuttingDown.Load() }

// Progress reports (files discovered, files parsed, faces loaded) for
// status displays.
func (r *Registry) Progress() (discovered, parsed, faces int) {
	return int(r.filesDiscovered.Load()), int(r.filesParsed.Load()), int(r.facesLoaded.Load())
}

func (r *Registry) IsScanComplete() bool  { return r.scanComplete.Load() }
func (r *Registry) IsBuildComplete() bool { return r.buildComplete.Load() }

// Query runs a direct synchronous query against whatever is currently
// loaded, without blocking for background work to finish.
func (r *Registry) Query(pattern fontconfig.FcPattern) (fontconfig.FontMatch, bool) {
	return r.cache.Query(pattern)
}

// FuzzyQueryByName runs a direct synchronous name search against whatever
// is currently loaded.
func (r *Registry) FuzzyQueryByName(name string, style fontconfig.FcPattern) []fontconfig.FontMatch {
	return r.cache.FuzzyQueryByName(name, style)
}

// Metadata returns the pattern for a previously returned FontId.
func (r *Registry) Metadata(id fontconfig.FontId) (fontconfig.FcPattern, bool) {
	return r.cache.Metadata(id)
}

// Bytes returns the raw font bytes backing id, reading from disk lazily
// for disk-sourced faces.
func (r *Registry) Bytes(id fontconfig.FontId) ([]byte, error) {
	src, ok := r.cache.Source(id)
	if !ok {
		return nil, errFontNotFound
	}
	return src.Bytes()
}

// RequestFonts is the main blocking entry point: given one family stack
// per logical text style, it boosts any not-yet-loaded families to
// Critical priority, waits (up to requestDeadline) for the worker pool to
// satisfy them, and returns one resolved FontFallbackChain per input
// stack, in order.
//
// If a disk cache was successfully loaded via LoadDiskCache, RequestFonts
// never blocks: chains are resolved immediately from the cache, and any
// newly installed fonts the background scan turns up become visible to
// later calls.
func (r *Registry) RequestFonts(ctx context.Context, familyStacks [][]string) []fontconfig.FontFallbackChain {
	return r.RequestFontsForOS(ctx, fontconfig.Current(), familyStacks)
}

// RequestFontsForOS is RequestFonts but expands generic families against an
// explicitly chosen OS's default stack rather than the host's own — for a
// host (e.g. a document generator) that must target a fixed platform's
// font set regardless of where it runs.
func (r *Registry) RequestFontsForOS(ctx context.Context, os fontconfig.OperatingSystem, familyStacks [][]string) []fontconfig.FontFallbackChain {
	style := fontconfig.DefaultPattern()

	if r.cacheLoaded.Load() {
		return r.resolveChains(os, familyStacks, style)
	}

	needed := make([]string, 0, len(familyStacks))
	seen := make(map[string]struct{})
	for _, stack := range familyStacks {
		for _, fam := range fontconfig.ExpandFamilyStackForOS(stack, os) {
			norm := fontconfig.NormalizeFamilyName(fam)
			if _, dup := seen[norm]; dup {
				continue
			}
			seen[norm] = struct{}{}
			needed = append(needed, norm)
		}
	}

	var missing []string
	for _, fam := range needed {
		if !r.cache.HasNormalizedFamily(fam) {
			missing = append(missing, fam)
		}
	}
	if len(missing) == 0 {
		return r.resolveChains(os, familyStacks, style)
	}

	dl := r.cfg.requestDeadline()
	deadline := time.Now().Add(dl)

	for !r.scanComplete.Load() {
		if time.Now().After(deadline) || r.isShuttingDown() {
			r.logger.Printf("gofontconfig: timed out waiting for font scout (%s)", dl)
			return r.resolveChains(os, familyStacks, style)
		}
		time.Sleep(time.Millisecond)
	}

	r.boostToCritical(missing)

	req := &pendingRequest{families: missing}
	r.pendingMu.Lock()
	r.pending = append(r.pending, req)
	r.pendingMu.Unlock()

	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	for !req.satisfied.Load() {
		if r.buildComplete.Load() {
			break
		}
		r.pendingMu.Lock()
		ch := r.pendingCh
		r.pendingMu.Unlock()

		select {
		case <-ch:
		case <-timer.C:
			r.logger.Printf("gofontconfig: timed out waiting for fonts %v (%s)", missing, dl)
			return r.resolveChains(os, familyStacks, style)
		case <-ctx.Done():
			return r.resolveChains(os, familyStacks, style)
		}
	}

	return r.resolveChains(os, familyStacks, style)
}

func (r *Registry) resolveChains(os fontconfig.OperatingSystem, familyStacks [][]string, style fontconfig.FcPattern) []fontconfig.FontFallbackChain {
	out := make([]fontconfig.FontFallbackChain, 0, len(familyStacks))
	for _, stack := range familyStacks {
		out = append(out, r.cache.ResolveChainForOS(os, stack, style))
	}
	return out
}

// boostToCritical pushes Critical-priority jobs for every known path
// matching (exactly or as a substring either direction) a missing family,
// so the worker pool services them before the rest of the low-priority
// backlog.
func (r *Registry) boostToCritical(missing []string) {
	r.knownPathsMu.RLock()
	defer r.knownPathsMu.RUnlock()

	r.queueCond.L.Lock()
	defer r.queueCond.L.Unlock()

	for _, family := range missing {
		for knownFamily, paths := range r.knownPaths {
			if knownFamily == family || containsEither(knownFamily, family) {
				for _, path := range paths {
					heap.Push(r.queue, buildJob{priority: PriorityCritical, path: path, guessedFamily: knownFamily})
				}
			}
		}
	}
	r.queueCond.Broadcast()
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// checkPendingRequests marks any pending request whose every family is now
// present in the cache as satisfied, and wakes RequestFonts waiters.
func (r *Registry) checkPendingRequests() {
	r.pendingMu.Lock()
	remaining := r.pending[:0]
	anySatisfied := false
	for _, req := range r.pending {
		allFound := true
		for _, fam := range req.families {
			if !r.cache.HasNormalizedFamily(fam) {
				allFound = false
				break
			}
		}
		if allFound {
			req.satisfied.Store(true)
			anySatisfied = true
			continue
		}
		remaining = append(remaining, req)
	}
	r.pending = remaining
	if anySatisfied {
		close(r.pendingCh)
		r.pendingCh = make(chan struct{})
	}
	r.pendingMu.Unlock()
}

var errFontNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "gofontconfig: font id not found" }
