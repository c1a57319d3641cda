package registry

import (
	"container/heap"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestHandleWatchEventEnqueuesFontFile(t *testing.T) {
	r := New(testLogger{t})

	r.handleWatchEvent(fsnotify.Event{Name: "/fonts/NewFont.ttf", Op: fsnotify.Create})

	r.queueCond.L.Lock()
	n := r.queue.Len()
	var job buildJob
	if n > 0 {
		job = heap.Pop(r.queue).(buildJob)
	}
	r.queueCond.L.Unlock()

	if n != 1 {
		t.Fatalf("expected 1 job to be enqueued, got %d", n)
	}
	if job.path != "/fonts/NewFont.ttf" || job.priority != PriorityHigh {
		t.Errorf("unexpected job: %+v", job)
	}
}

func TestHandleWatchEventIgnoresNonFontFiles(t *testing.T) {
	r := New(testLogger{t})
	r.handleWatchEvent(fsnotify.Event{Name: "/fonts/readme.txt", Op: fsnotify.Create})

	r.queueCond.L.Lock()
	n := r.queue.Len()
	r.queueCond.L.Unlock()
	if n != 0 {
		t.Errorf("expected non-font files to be ignored, got %d queued jobs", n)
	}
}

func TestHandleWatchEventIgnoresUnrelatedOps(t *testing.T) {
	r := New(testLogger{t})
	r.handleWatchEvent(fsnotify.Event{Name: "/fonts/Arial.ttf", Op: fsnotify.Remove})

	r.queueCond.L.Lock()
	n := r.queue.Len()
	r.queueCond.L.Unlock()
	if n != 0 {
		t.Errorf("expected Remove events to be ignored, got %d queued jobs", n)
	}
}
