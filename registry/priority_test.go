package registry

import (
	"container/heap"
	"testing"
)

func TestJobQueueOrdersByPriorityThenFIFO(t *testing.T) {
	q := newJobQueue()
	heap.Init(q)

	heap.Push(q, buildJob{priority: PriorityLow, path: "low-1"})
	heap.Push(q, buildJob{priority: PriorityCritical, path: "critical-1"})
	heap.Push(q, buildJob{priority: PriorityLow, path: "low-2"})
	heap.Push(q, buildJob{priority: PriorityHigh, path: "high-1"})

	var order []string
	for q.Len() > 0 {
		job := heap.Pop(q).(buildJob)
		order = append(order, job.path)
	}

	want := []string{"critical-1", "high-1", "low-1", "low-2"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: got %q, want %q (full: %v)", i, order[i], want[i], order)
		}
	}
}

func TestJobQueueStartsEmpty(t *testing.T) {
	q := newJobQueue()
	if q.Len() != 0 {
		t.Errorf("expected a freshly constructed queue to be empty")
	}
}
