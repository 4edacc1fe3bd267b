package observation

import "github.com/aurelia/aurelia-sub054/pkg/vals"

// Tracker holds the stack of connectables that are currently evaluating. It
// lets code that cannot receive a connectable as an argument, such as proxy
// property reads, register dependencies with the innermost one.
//
// Entering and exiting must be strictly nested.
type Tracker struct {
	stack  []Connectable
	paused int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Enter makes c the current connectable.
func (t *Tracker) Enter(c Connectable) error {
	if c == nil {
		return ErrNilConnectable
	}
	for _, active := range t.stack {
		if active == c {
			return ErrAlreadyActive
		}
	}
	t.stack = append(t.stack, c)
	return nil
}

// Exit removes c from the top of the stack. It fails if c is not the current
// connectable.
func (t *Tracker) Exit(c Connectable) error {
	if c == nil {
		return ErrNilConnectable
	}
	if len(t.stack) == 0 || t.stack[len(t.stack)-1] != c {
		return ErrNotCurrent
	}
	t.stack[len(t.stack)-1] = nil
	t.stack = t.stack[:len(t.stack)-1]
	return nil
}

// Pause suspends dependency recording until the matching Resume.
func (t *Tracker) Pause() { t.paused++ }

// Resume undoes one Pause.
func (t *Tracker) Resume() {
	if t.paused > 0 {
		t.paused--
	}
}

// Connecting returns whether dependencies are currently recorded.
func (t *Tracker) Connecting() bool {
	return t.paused == 0 && len(t.stack) > 0
}

// Current returns the connectable that dependencies are recorded for, or nil
// if there is none or recording is paused.
func (t *Tracker) Current() Connectable {
	if !t.Connecting() {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// Depth returns the number of entered connectables.
func (t *Tracker) Depth() int { return len(t.stack) }

// observerCache is implemented by the builtin containers.
type observerCache interface {
	Observer(key string) any
	SetObserver(key string, obs any)
}

const proxyKey = "@proxy"

// Wrap returns the observation proxy of an object, array, map or set. Other
// values, including proxies, are returned unchanged. The proxy is cached on
// the wrapped value, so wrapping the same value twice yields the same proxy.
func (t *Tracker) Wrap(v any) any {
	var cache observerCache
	switch v := v.(type) {
	case *vals.Object:
		cache = v
	case *vals.Array:
		cache = v
	case *vals.Map:
		cache = v
	case *vals.Set:
		cache = v
	default:
		return v
	}
	if p, ok := cache.Observer(proxyKey).(*Proxy); ok && p.tracker == t {
		return p
	}
	p := &Proxy{target: v, tracker: t}
	cache.SetObserver(proxyKey, p)
	return p
}
