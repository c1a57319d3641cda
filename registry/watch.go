package registry

import (
	"container/heap"

	"github.com/fsnotify/fsnotify"
)

// WatchDirectories optionally starts an fsnotify watcher over every
// configured font directory so that fonts installed after startup (e.g. by
// a user opening a font manager) are picked up without restarting the
// process. It is opt-in: most callers are satisfied by the one-shot scout
// pass and don't need the extra file descriptors a watcher holds open.
//
// The returned stop function removes all watches and stops the
// goroutine; it is safe to call multiple times.
func (r *Registry) WatchDirectories() (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := r.cfg.Dirs
	if dirs == nil {
		dirs = fontDirectories()
	}

	for _, dir := range dirs {
		// Best effort: a directory that doesn't exist on this machine (e.g.
		// a Windows-only path checked on Linux) is simply skipped.
		_ = watcher.Add(dir)
	}

	done := make(chan struct{})
	go r.watchLoop(watcher, done)

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		watcher.Close()
		<-done
	}, nil
}

func (r *Registry) watchLoop(watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			r.handleWatchEvent(event)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Watch errors (e.g. a removed directory) are logged, not fatal.
			r.logger.Printf("gofontconfig: font directory watch error: %v", werr)
		}
	}
}

func (r *Registry) handleWatchEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if !isFontFile(event.Name) {
		return
	}

	guessed := guessFamilyFromFilename(event.Name)

	r.knownPathsMu.Lock()
	r.knownPaths[guessed] = append(r.knownPaths[guessed], event.Name)
	r.knownPathsMu.Unlock()

	r.queueCond.L.Lock()
	heap.Push(r.queue, buildJob{priority: PriorityHigh, path: event.Name, guessedFamily: guessed})
	r.queueCond.Broadcast()
	r.queueCond.L.Unlock()
}
