package observation

import "github.com/aurelia/aurelia-sub054/pkg/vals"

// ComputedObserver observes an accessor property by tracking the values its
// getter reads. The getter receives an observation proxy of the object, so
// every property read through it is a dependency.
//
// The value is computed lazily: on the first subscription, and afterwards
// whenever it is read or a dependency changed while there are subscribers.
type ComputedObserver struct {
	Subscribers
	*Connector
	obj      *vals.Object
	key      string
	get      func(this any) any
	set      func(this any, v any) error
	queue    *FlushQueue
	tracker  *Tracker
	value    any
	oldValue any
	dirty    bool
	running  bool
}

// NewComputedObserver creates an observer of an accessor property.
func NewComputedObserver(obj *vals.Object, key string, accessor *vals.Accessor, locator *ObserverLocator) *ComputedObserver {
	o := &ComputedObserver{
		obj: obj, key: key, get: accessor.Get, set: accessor.Set,
		queue: locator.Queue(), tracker: locator.Tracker(), dirty: true,
	}
	o.Connector = NewConnector(locator, o)
	return o
}

// Type returns TypeObserver.
func (o *ComputedObserver) Type() AccessorType { return TypeObserver }

// GetValue returns the value of the property, recomputing it if needed.
func (o *ComputedObserver) GetValue() any {
	if o.Len() == 0 {
		return o.callGetter(o.obj)
	}
	if o.dirty {
		o.compute()
		o.dirty = false
	}
	return o.value
}

// SetValue calls the setter of the property.
func (o *ComputedObserver) SetValue(v any, flags Flags) error {
	if o.set == nil {
		return ErrReadOnly
	}
	v = vals.FromGo(v)
	if vals.SameValue(v, o.value) && !o.dirty {
		return nil
	}
	o.running = true
	err := o.set(o.obj, v)
	o.running = false
	if err != nil {
		return err
	}
	o.dirty = true
	if o.Len() > 0 {
		o.run()
	}
	return nil
}

// HandleChange marks the value as stale and recomputes it if there are
// subscribers.
func (o *ComputedObserver) HandleChange(any, any, Flags) {
	o.dirty = true
	if o.Len() > 0 {
		o.run()
	}
}

// HandleCollectionChange is like HandleChange.
func (o *ComputedObserver) HandleCollectionChange(vals.Collection, *IndexMap, Flags) {
	o.HandleChange(nil, nil, FlagNone)
}

// Subscribe adds a subscriber. The first one triggers the initial
// computation.
func (o *ComputedObserver) Subscribe(s Subscriber) {
	if o.Add(s) && o.Len() == 1 {
		o.compute()
		o.oldValue = o.value
		o.dirty = false
	}
}

// Unsubscribe removes a subscriber. Removing the last one drops all
// dependencies.
func (o *ComputedObserver) Unsubscribe(s Subscriber) {
	if o.Remove(s) && o.Len() == 0 {
		o.dirty = true
		o.Record.Clear(true)
	}
}

// Flush notifies subscribers.
func (o *ComputedObserver) Flush() {
	oldValue := o.oldValue
	o.oldValue = o.value
	o.Notify(o.value, oldValue, FlagNone)
}

func (o *ComputedObserver) run() {
	if o.running {
		return
	}
	old := o.value
	o.compute()
	o.dirty = false
	if !vals.SameValue(o.value, old) {
		o.queue.Add(o)
	}
}

func (o *ComputedObserver) compute() {
	o.running = true
	o.Record.NextVersion()
	if err := o.tracker.Enter(o); err != nil {
		logger.Println("computing", o.key, err)
		o.running = false
		return
	}
	defer func() {
		o.Record.Clear(false)
		o.running = false
		if err := o.tracker.Exit(o); err != nil {
			logger.Println("computing", o.key, err)
		}
	}()
	o.value = o.callGetter(o.tracker.Wrap(o.obj))
	if err := o.Err(); err != nil {
		logger.Println("observing dependencies of", o.key, err)
	}
}

func (o *ComputedObserver) callGetter(this any) any {
	if o.get == nil {
		return vals.Undefined
	}
	return vals.FromGo(vals.Unwrap(o.get(this)))
}
