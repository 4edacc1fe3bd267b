package binding

import (
	"time"

	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/platform"
	"github.com/aurelia/aurelia-sub054/pkg/resource"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// DefaultDelay is the delay of debounce and throttle when none is given.
const DefaultDelay = 200 * time.Millisecond

// Register registers the built-in binding behaviors in r. Debounce and
// throttle schedule their work on q.
func Register(r *resource.Registry, q *platform.Queue) error {
	behaviors := []struct {
		name string
		v    any
	}{
		{"oneTime", ModeBehavior{OneTime}},
		{"toView", ModeBehavior{ToView}},
		{"fromView", ModeBehavior{FromView}},
		{"twoWay", ModeBehavior{TwoWay}},
		{"signal", NewSignalBehavior(r.Signaler())},
		{"debounce", NewDebounceBehavior(q)},
		{"throttle", NewThrottleBehavior(q)},
	}
	for _, b := range behaviors {
		if err := r.Register(resource.BindingBehavior, b.name, b.v); err != nil {
			return err
		}
	}
	return nil
}

func coreOf(b expr.Binding) (*Core, error) {
	c, ok := CoreOf(b)
	if !ok {
		return nil, ErrNotABinding
	}
	return c, nil
}

// ModeBehavior overrides the mode of a binding while it is bound.
type ModeBehavior struct{ Mode Mode }

func (m ModeBehavior) Bind(_ expr.EvalFlags, _ *scope.Scope, b expr.Binding, _ ...any) error {
	c, err := coreOf(b)
	if err != nil {
		return err
	}
	c.mode = m.Mode
	return nil
}

func (m ModeBehavior) Unbind(_ expr.EvalFlags, _ *scope.Scope, b expr.Binding) error {
	c, err := coreOf(b)
	if err != nil {
		return err
	}
	c.mode = c.originalMode
	return nil
}

// SignalBehavior refreshes a binding when one of the signals given as
// arguments is dispatched.
type SignalBehavior struct {
	signaler *observation.Signaler
	names    map[*Core][]string
}

// NewSignalBehavior creates a SignalBehavior listening on s.
func NewSignalBehavior(s *observation.Signaler) *SignalBehavior {
	return &SignalBehavior{s, make(map[*Core][]string)}
}

func (sb *SignalBehavior) Bind(_ expr.EvalFlags, _ *scope.Scope, b expr.Binding, args ...any) error {
	c, err := coreOf(b)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return ErrNoSignalName
	}
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = vals.ToString(arg)
		sb.signaler.AddSignalListener(names[i], b)
	}
	sb.names[c] = names
	return nil
}

func (sb *SignalBehavior) Unbind(_ expr.EvalFlags, _ *scope.Scope, b expr.Binding) error {
	c, err := coreOf(b)
	if err != nil {
		return err
	}
	for _, name := range sb.names[c] {
		sb.signaler.RemoveSignalListener(name, b)
	}
	delete(sb.names, c)
	return nil
}

// limiter is the interceptor installed by DebounceBehavior and
// ThrottleBehavior. It delays changes to the view, or changes to the source
// for bindings whose mode includes FromView.
type limiter struct {
	Interceptor
	core   *Core
	queue  *platform.Queue
	delay  time.Duration
	// Decides when to run fn.
	schedule func(l *limiter, fn func())
	task     *platform.Task
	last     time.Time
}

func (l *limiter) HandleChange(newValue, oldValue any, flags observation.Flags) {
	if l.limitsSource() || flags&observation.FlagSignal != 0 {
		l.Inner.HandleChange(newValue, oldValue, flags)
		return
	}
	l.schedule(l, func() { l.Inner.HandleChange(newValue, oldValue, flags) })
}

func (l *limiter) UpdateSource(v any) error {
	if !l.limitsSource() {
		return l.Inner.UpdateSource(v)
	}
	l.schedule(l, func() { l.core.setErr(l.Inner.UpdateSource(v)) })
	return nil
}

func (l *limiter) limitsSource() bool { return l.core.mode&FromView != 0 }

func (l *limiter) cancel() {
	if l.task != nil {
		l.task.Cancel()
		l.task = nil
	}
}

// Postpones fn until no new call has been made for the delay.
func debounce(l *limiter, fn func()) {
	l.cancel()
	l.task = l.queue.QueueTask(func() {
		l.task = nil
		fn()
	}, platform.TaskOptions{Delay: l.delay})
}

// Runs fn at most once per delay. A call made too early replaces any pending
// call and runs when the delay has passed.
func throttle(l *limiter, fn func()) {
	l.cancel()
	now := l.queue.Clock().Now()
	elapsed := now.Sub(l.last)
	if elapsed >= l.delay {
		l.last = now
		fn()
		return
	}
	l.task = l.queue.QueueTask(func() {
		l.task = nil
		l.last = l.queue.Clock().Now()
		fn()
	}, platform.TaskOptions{Delay: l.delay - elapsed})
}

// limitBehavior installs a limiter on the bindings it is applied to. The
// optional argument is the delay in milliseconds.
type limitBehavior struct {
	queue    *platform.Queue
	schedule func(l *limiter, fn func())
	limiters map[*Core]*limiter
}

// DebounceBehavior is the debounce binding behavior.
type DebounceBehavior struct{ limitBehavior }

// NewDebounceBehavior creates a DebounceBehavior scheduling on q.
func NewDebounceBehavior(q *platform.Queue) *DebounceBehavior {
	return &DebounceBehavior{limitBehavior{q, debounce, make(map[*Core]*limiter)}}
}

// ThrottleBehavior is the throttle binding behavior.
type ThrottleBehavior struct{ limitBehavior }

// NewThrottleBehavior creates a ThrottleBehavior scheduling on q.
func NewThrottleBehavior(q *platform.Queue) *ThrottleBehavior {
	return &ThrottleBehavior{limitBehavior{q, throttle, make(map[*Core]*limiter)}}
}

func (lb *limitBehavior) Bind(_ expr.EvalFlags, _ *scope.Scope, b expr.Binding, args ...any) error {
	c, err := coreOf(b)
	if err != nil {
		return err
	}
	delay := DefaultDelay
	if len(args) > 0 && !vals.IsNullish(args[0]) {
		delay = time.Duration(vals.ToNumber(args[0]) * float64(time.Millisecond))
	}
	l := &limiter{core: c, queue: lb.queue, delay: delay, schedule: lb.schedule}
	c.AddInterceptor(l)
	lb.limiters[c] = l
	return nil
}

func (lb *limitBehavior) Unbind(_ expr.EvalFlags, _ *scope.Scope, b expr.Binding) error {
	c, err := coreOf(b)
	if err != nil {
		return err
	}
	if l, ok := lb.limiters[c]; ok {
		l.cancel()
		c.RemoveInterceptor(l)
		delete(lb.limiters, c)
	}
	return nil
}
