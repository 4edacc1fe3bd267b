package observation

// FlushQueue defers notifications to a drain point, so that several
// synchronous changes of one observer produce a single notification.
//
// Add drains the queue immediately, unless a drain is already in progress or
// a batch is open; in both cases the flushable runs before the drain or the
// batch ends. Entries run in the order they were first added, and entries
// added while draining run in the same drain.
type FlushQueue struct {
	pending  []Flushable
	queued   map[Flushable]struct{}
	draining bool
	drains   int
	batch    int
}

// NewFlushQueue creates an empty FlushQueue.
func NewFlushQueue() *FlushQueue {
	return &FlushQueue{queued: make(map[Flushable]struct{})}
}

// Add adds a flushable to the queue. Adding a flushable that is already
// pending has no effect.
func (q *FlushQueue) Add(f Flushable) {
	if _, ok := q.queued[f]; ok {
		return
	}
	q.queued[f] = struct{}{}
	q.pending = append(q.pending, f)
	if !q.draining && q.batch == 0 {
		q.drain()
	}
}

// Len returns the number of pending flushables.
func (q *FlushQueue) Len() int { return len(q.queued) }

// Draining returns whether the queue is draining.
func (q *FlushQueue) Draining() bool { return q.draining }

// DrainID identifies the drain in progress. It returns 0 when the queue is
// not draining.
func (q *FlushQueue) DrainID() int {
	if !q.draining {
		return 0
	}
	return q.drains
}

// Clear drops all pending flushables. When called during a drain, the
// remaining entries are skipped.
func (q *FlushQueue) Clear() {
	q.pending = nil
	clear(q.queued)
}

// Batch calls fn with draining suspended, then drains everything added in
// the meantime. Batches nest; only the outermost one drains.
func (q *FlushQueue) Batch(fn func()) {
	q.batch++
	defer func() {
		q.batch--
		if q.batch == 0 && !q.draining {
			q.drain()
		}
	}()
	fn()
}

func (q *FlushQueue) drain() {
	q.draining = true
	q.drains++
	defer func() { q.draining = false }()
	for len(q.pending) > 0 {
		f := q.pending[0]
		q.pending = q.pending[1:]
		if _, ok := q.queued[f]; !ok {
			continue
		}
		delete(q.queued, f)
		f.Flush()
	}
}
