package observation

import (
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// Observation runs reactive effects outside of any binding.
type Observation struct {
	locator *ObserverLocator
}

// NewObservation creates an Observation using the given locator.
func NewObservation(locator *ObserverLocator) *Observation {
	return &Observation{locator}
}

// Run creates an effect and runs it once. Properties read during the run,
// either through proxies from Wrap or explicitly with Effect.Observe, become
// dependencies; a change of any of them runs the effect again.
func (o *Observation) Run(fn func(e *Effect) error) (*Effect, error) {
	e := &Effect{
		fn: fn, tracker: o.locator.Tracker(), queue: o.locator.Queue(),
		MaxRunCount: DefaultMaxRunCount,
	}
	e.Connector = NewConnector(o.locator, e)
	return e, e.Run()
}

// Wrap returns the observation proxy of v. See Tracker.Wrap.
func (o *Observation) Wrap(v any) any { return o.locator.Tracker().Wrap(v) }

// DefaultMaxRunCount is the default number of consecutive reruns caused by an
// effect changing its own dependencies, after which Run fails.
const DefaultMaxRunCount = 10

// Effect is a function that reruns whenever its dependencies change.
type Effect struct {
	*Connector
	MaxRunCount int
	fn          func(e *Effect) error
	tracker     *Tracker
	queue       *FlushQueue
	queued      bool
	running     bool
	stopped     bool
	runCount    int
	drainID     int
	lastErr     error
}

// HandleChange reruns the effect.
func (e *Effect) HandleChange(any, any, Flags) {
	e.queued = true
	e.rerun()
}

// HandleCollectionChange reruns the effect.
func (e *Effect) HandleCollectionChange(vals.Collection, *IndexMap, Flags) {
	e.queued = true
	e.rerun()
}

func (e *Effect) rerun() {
	if e.stopped {
		return
	}
	if err := e.Run(); err != nil {
		e.lastErr = err
		logger.Println("effect failed:", err)
	}
}

// Err returns the error of the last run triggered by a change.
func (e *Effect) Err() error { return e.lastErr }

// Run runs the effect. A run triggered while the effect is already running
// is deferred until the current run ends.
//
// Runs caused by the effect changing its own dependencies are counted, both
// when they happen synchronously and when they happen within one drain of
// the flush queue. More than MaxRunCount of them fail with ErrEffectMaxRuns.
func (e *Effect) Run() error {
	if e.stopped {
		return ErrEffectStopped
	}
	if e.running {
		return nil
	}
	if id := e.queue.DrainID(); id != e.drainID {
		e.drainID = id
		e.runCount = 0
	}
	e.runCount++
	if e.runCount > e.MaxRunCount+1 {
		e.runCount = 0
		return ErrEffectMaxRuns
	}
	e.running = true
	e.queued = false
	e.Record.NextVersion()
	if err := e.tracker.Enter(e); err != nil {
		e.running = false
		return err
	}
	err := e.fn(e)
	e.Record.Clear(false)
	e.running = false
	if exitErr := e.tracker.Exit(e); err == nil {
		err = exitErr
	}
	if err == nil {
		err = e.Connector.Err()
	}
	if err != nil {
		e.runCount = 0
		return err
	}
	if e.queued {
		if e.runCount > e.MaxRunCount {
			e.runCount = 0
			return ErrEffectMaxRuns
		}
		return e.Run()
	}
	if !e.queue.Draining() {
		e.runCount = 0
	}
	return nil
}

// Stop drops all dependencies; the effect never runs again.
func (e *Effect) Stop() {
	e.Record.Clear(true)
	e.stopped = true
}

// Stopped returns whether Stop has been called.
func (e *Effect) Stopped() bool { return e.stopped }
