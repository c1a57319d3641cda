// Package registry implements the asynchronous, concurrently-populated
// counterpart of fontconfig: a scout goroutine enumerates font directories,
// a worker pool parses files in priority order, and the main goroutine can
// block on RequestFonts until the families it needs are ready.
package registry

// Priority orders build jobs in the queue. Higher values are processed
// first.
type Priority int

const (
	// PriorityLow is assigned to everything the scout discovers by default.
	PriorityLow Priority = iota
	// PriorityMedium ranks between Low and High. Nothing in this package
	// enqueues at this level: LoadDiskCache inserts manifest entries
	// directly into the cache without queueing build jobs.
	PriorityMedium
	// PriorityHigh is assigned to the OS's own common default families
	// (sans-serif/serif/monospace stand-ins), so they tend to be ready
	// before an application asks for them.
	PriorityHigh
	// PriorityCritical is assigned when the main goroutine is blocked in
	// RequestFonts waiting specifically for this job.
	PriorityCritical
)

// buildJob is one unit of work for the worker pool: parse every face of the
// font file at path and insert the results.
type buildJob struct {
	priority      Priority
	path          string
	guessedFamily string
}

// jobQueue is a priority queue (max-heap by priority, FIFO within a
// priority tier) guarded by the caller; it implements container/heap's
// Interface so the registry can use heap.Push/heap.Pop directly.
type jobQueue struct {
	jobs []buildJob
	seq  []int64 // insertion sequence, to break ties FIFO within a tier
	next int64
}

func newJobQueue() *jobQueue {
	return &jobQueue{}
}

func (q *jobQueue) Len() int { return len(q.jobs) }

func (q *jobQueue) Less(i, j int) bool {
	if q.jobs[i].priority != q.jobs[j].priority {
		return q.jobs[i].priority > q.jobs[j].priority
	}
	return q.seq[i] < q.seq[j]
}

func (q *jobQueue) Swap(i, j int) {
	q.jobs[i], q.jobs[j] = q.jobs[j], q.jobs[i]
	q.seq[i], q.seq[j] = q.seq[j], q.seq[i]
}

func (q *jobQueue) Push(x any) {
	q.jobs = append(q.jobs, x.(buildJob))
	q.seq = append(q.seq, q.next)
	q.next++
}

func (q *jobQueue) Pop() any {
	n := len(q.jobs)
	job := q.jobs[n-1]
	q.jobs = q.jobs[:n-1]
	q.seq = q.seq[:n-1]
	return job
}
