package platform

import (
	"context"
	"time"
)

// Loop runs the frames of a Queue at a fixed interval, and runs functions
// posted from other goroutines in between. Everything runs on the goroutine
// that calls Run, which makes it the only goroutine touching the state that
// tasks use.
type Loop struct {
	queue    *Queue
	interval time.Duration
	posts    chan func()
}

// NewLoop creates a loop with a real-time queue.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Loop{NewQueue(RealClock{}), interval, make(chan func(), 16)}
}

// DefaultTickInterval is the frame interval used when none is configured.
const DefaultTickInterval = 16 * time.Millisecond

// Queue returns the task queue driven by the loop.
func (l *Loop) Queue() *Queue { return l.queue }

// Post schedules fn to run on the loop goroutine. It blocks if the loop is
// not keeping up.
func (l *Loop) Post(fn func()) {
	l.posts <- fn
}

// Run runs the loop until the context is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	logger.Println("loop started with interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			logger.Println("loop stopped:", ctx.Err())
			return ctx.Err()
		case fn := <-l.posts:
			fn()
		case <-ticker.C:
			l.queue.RunFrame()
		}
	}
}
