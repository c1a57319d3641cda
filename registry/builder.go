package registry

import (
	"container/heap"
	"sync"
	"time"

	"github.com/fschutt/gofontconfig/fontconfig"
)

// buildWorker pops jobs from the priority queue, parses the referenced
// font file, and inserts every face it yields into the shared cache. Each
// of the registry's worker pool goroutines runs one instance of this loop
// until Shutdown or until the scout is done and the queue runs dry.
func (r *Registry) buildWorker() {
	for {
		job, ok := r.nextJob()
		if !ok {
			return
		}

		if r.alreadyProcessed(job.path) {
			continue
		}

		data, err := readFontFile(job.path)
		if err == nil {
			faces, parseErr := fontconfig.ParseFaces(data)
			if parseErr == nil {
				for i, pattern := range faces {
					r.cache.AddFace(pattern, fontconfig.DiskSource(job.path, i))
					r.facesLoaded.Add(1)
				}
			}
		}

		r.filesParsed.Add(1)
		r.checkPendingRequests()
	}
}

// nextJob blocks (via queueCond) until a job is available, the scout has
// finished and the queue is permanently empty, or shutdown was requested.
func (r *Registry) nextJob() (buildJob, bool) {
	r.queueCond.L.Lock()
	defer r.queueCond.L.Unlock()

	for {
		if r.isShuttingDown() {
			return buildJob{}, false
		}
		if r.queue.Len() > 0 {
			job := heap.Pop(r.queue).(buildJob)
			return job, true
		}
		if r.scanComplete.Load() {
			if r.buildComplete.CompareAndSwap(false, true) {
				r.wakeAllPending()
			}
			return buildJob{}, false
		}

		waitOnCond(r.queueCond, 100*time.Millisecond)
	}
}

// waitOnCond blocks on cond for at most timeout, relying on the caller
// already holding cond.L. sync.Cond has no native timed wait, so this
// wakes a helper goroutine that broadcasts after the timeout — cheap
// because build queues are short-lived and polling is bounded to once per
// iteration of nextJob's loop.
func waitOnCond(cond *sync.Cond, timeout time.Duration) {
	done := make(chan struct{})
	timer := time.AfterFunc(timeout, func() {
		cond.L.Lock()
		cond.Broadcast()
		cond.L.Unlock()
		close(done)
	})
	cond.Wait()
	timer.Stop()
	select {
	case <-done:
	default:
	}
}

func (r *Registry) alreadyProcessed(path string) bool {
	r.processedMu.Lock()
	defer r.processedMu.Unlock()
	if _, seen := r.processed[path]; seen {
		return true
	}
	r.processed[path] = struct{}{}
	return false
}

func (r *Registry) wakeAllPending() {
	r.pendingMu.Lock()
	close(r.pendingCh)
	r.pendingCh = make(chan struct{})
	r.pendingMu.Unlock()
}

func readFontFile(path string) ([]byte, error) {
	return fontconfig.DiskSource(path, 0).Bytes()
}
