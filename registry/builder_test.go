package registry

import (
	"sync"
	"testing"
	"time"
)

func TestNextJobReturnsQueuedJobBeforeScanComplete(t *testing.T) {
	r := New(testLogger{t})

	r.queueCond.L.Lock()
	r.queue.Push(buildJob{priority: PriorityHigh, path: "a.ttf", guessedFamily: "a"})
	r.queueCond.Broadcast()
	r.queueCond.L.Unlock()

	job, ok := r.nextJob()
	if !ok || job.path != "a.ttf" {
		t.Fatalf("expected to get the queued job, got %+v, %v", job, ok)
	}
}

func TestNextJobReturnsFalseOnceScanCompleteAndQueueDrained(t *testing.T) {
	r := New(testLogger{t})
	r.scanComplete.Store(true)

	_, ok := r.nextJob()
	if ok {
		t.Errorf("expected nextJob to report no more work once the scan is complete and the queue is empty")
	}
	if !r.buildComplete.Load() {
		t.Errorf("expected nextJob to flip buildComplete when it drains the queue")
	}
}

func TestNextJobReturnsFalseWhenShuttingDown(t *testing.T) {
	r := New(testLogger{t})
	r.shuttingDown.Store(true)

	_, ok := r.nextJob()
	if ok {
		t.Errorf("expected nextJob to report no more work once shutdown has been requested")
	}
}

func TestAlreadyProcessedMarksPathsSeenOnce(t *testing.T) {
	r := New(testLogger{t})

	if r.alreadyProcessed("a.ttf") {
		t.Errorf("expected the first call for a fresh path to report unseen")
	}
	if !r.alreadyProcessed("a.ttf") {
		t.Errorf("expected the second call for the same path to report already seen")
	}
	if r.alreadyProcessed("b.ttf") {
		t.Errorf("expected a distinct path to report unseen")
	}
}

func TestWaitOnCondReturnsAfterTimeoutWithNoSignal(t *testing.T) {
	cond := sync.NewCond(&sync.Mutex{})
	cond.L.Lock()
	start := time.Now()
	waitOnCond(cond, 20*time.Millisecond)
	elapsed := time.Since(start)
	cond.L.Unlock()

	if elapsed < 20*time.Millisecond {
		t.Errorf("expected waitOnCond to block for roughly the timeout, elapsed only %v", elapsed)
	}
}

func TestWaitOnCondReturnsImmediatelyOnSignal(t *testing.T) {
	cond := sync.NewCond(&sync.Mutex{})
	go func() {
		time.Sleep(20 * time.Millisecond) // give the main goroutine time to enter cond.Wait first
		cond.L.Lock()
		cond.Signal()
		cond.L.Unlock()
	}()

	cond.L.Lock()
	start := time.Now()
	waitOnCond(cond, time.Second)
	elapsed := time.Since(start)
	cond.L.Unlock()

	if elapsed > 500*time.Millisecond {
		t.Errorf("expected waitOnCond to return promptly once signaled, took %v", elapsed)
	}
}
