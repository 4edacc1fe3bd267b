package observation

import "github.com/aurelia/aurelia-sub054/pkg/vals"

// Signaler dispatches named signals to listeners. Bindings whose values
// depend on something that cannot be observed, such as the current time,
// listen to a signal and are refreshed when it is dispatched.
type Signaler struct {
	signals map[string]*SubscriberRecord[Subscriber]
}

// NewSignaler creates a Signaler.
func NewSignaler() *Signaler {
	return &Signaler{signals: make(map[string]*SubscriberRecord[Subscriber])}
}

// DispatchSignal notifies the listeners of a signal, in the order they were
// added.
func (s *Signaler) DispatchSignal(name string, flags Flags) {
	listeners, ok := s.signals[name]
	if !ok {
		return
	}
	logger.Printf("dispatching signal %q to %d listeners", name, listeners.Len())
	listeners.Each(func(l Subscriber) {
		l.HandleChange(vals.Undefined, vals.Undefined, flags|FlagSignal)
	})
}

// AddSignalListener adds a listener of a signal.
func (s *Signaler) AddSignalListener(name string, l Subscriber) {
	listeners, ok := s.signals[name]
	if !ok {
		listeners = &SubscriberRecord[Subscriber]{}
		s.signals[name] = listeners
	}
	listeners.Add(l)
}

// RemoveSignalListener removes a listener of a signal.
func (s *Signaler) RemoveSignalListener(name string, l Subscriber) {
	if listeners, ok := s.signals[name]; ok {
		listeners.Remove(l)
		if listeners.Len() == 0 {
			delete(s.signals, name)
		}
	}
}
