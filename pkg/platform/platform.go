// Package platform provides the task queue that drives time-based work, such
// as dirty checking and debounced bindings.
//
// A Queue holds tasks and runs the due ones each time a frame is run. Time is
// taken from a Clock, so that tests can drive the queue deterministically
// with a ManualClock. A Loop runs frames at a fixed interval in real time.
package platform

import (
	"sync"
	"time"

	"github.com/aurelia/aurelia-sub054/pkg/logutil"
)

var logger = logutil.GetLogger("[platform] ")

// Clock is the source of time of a Queue.
type Clock interface {
	Now() time.Time
}

// RealClock is a Clock returning the current time.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only advances when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a ManualClock starting at the given time.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current time of the clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TaskQueue is the interface of Queue used by consumers.
type TaskQueue interface {
	QueueTask(fn func(), opts TaskOptions) *Task
}

// TaskOptions configures a task.
type TaskOptions struct {
	// Delay is the minimum time between queueing the task (or its previous
	// run, for persistent tasks) and running it.
	Delay time.Duration
	// Persistent tasks run repeatedly until canceled.
	Persistent bool
}

// Task is a unit of work in a Queue.
type Task struct {
	fn       func()
	opts     TaskOptions
	due      time.Time
	canceled bool
	done     bool
	runs     int
}

// Cancel cancels the task. It returns false if the task had already run to
// completion or been canceled.
func (t *Task) Cancel() bool {
	if t.canceled || t.done {
		return false
	}
	t.canceled = true
	return true
}

// Done returns whether a non-persistent task has run.
func (t *Task) Done() bool { return t.done }

// Canceled returns whether the task has been canceled.
func (t *Task) Canceled() bool { return t.canceled }

// Runs returns the number of times the task has run.
func (t *Task) Runs() int { return t.runs }

// Queue is a queue of tasks. It is not safe for concurrent use; tasks run on
// the goroutine that calls RunFrame.
type Queue struct {
	clock Clock
	tasks []*Task
}

// NewQueue creates a Queue using the given clock.
func NewQueue(clock Clock) *Queue {
	return &Queue{clock: clock}
}

// Clock returns the clock of the queue.
func (q *Queue) Clock() Clock { return q.clock }

// QueueTask adds a task to the queue.
func (q *Queue) QueueTask(fn func(), opts TaskOptions) *Task {
	t := &Task{fn: fn, opts: opts, due: q.clock.Now().Add(opts.Delay)}
	q.tasks = append(q.tasks, t)
	return t
}

// Len returns the number of pending tasks, including canceled tasks that have
// not been removed yet.
func (q *Queue) Len() int { return len(q.tasks) }

// RunFrame runs all tasks that are due, in the order they were queued. Tasks
// queued while the frame runs wait for the next frame. It returns the number
// of tasks run.
func (q *Queue) RunFrame() int {
	now := q.clock.Now()
	tasks := q.tasks
	q.tasks = nil
	ran := 0
	var keep []*Task
	for _, t := range tasks {
		if t.canceled {
			continue
		}
		if now.Before(t.due) {
			keep = append(keep, t)
			continue
		}
		t.runs++
		ran++
		t.fn()
		if t.opts.Persistent && !t.canceled {
			t.due = now.Add(t.opts.Delay)
			keep = append(keep, t)
		} else if !t.canceled {
			t.done = true
		}
	}
	q.tasks = append(keep, q.tasks...)
	return ran
}

// Advance advances a manual clock and runs one frame. It panics if the clock
// of the queue is not a *ManualClock.
func (q *Queue) Advance(d time.Duration) int {
	q.clock.(*ManualClock).Advance(d)
	return q.RunFrame()
}
