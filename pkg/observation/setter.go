package observation

import "github.com/aurelia/aurelia-sub054/pkg/vals"

// SetterObserver observes a data property of an *vals.Object. While it has
// subscribers, it intercepts writes to the property and queues itself for
// notification on the FlushQueue.
type SetterObserver struct {
	Subscribers
	obj       *vals.Object
	key       string
	queue     *FlushQueue
	value     any
	oldValue  any
	flags     Flags
	observing bool
}

// NewSetterObserver creates an observer of obj's property key.
func NewSetterObserver(obj *vals.Object, key string, queue *FlushQueue) *SetterObserver {
	return &SetterObserver{obj: obj, key: key, queue: queue}
}

// Type returns TypeObserver.
func (o *SetterObserver) Type() AccessorType { return TypeObserver }

// GetValue returns the current value of the property.
func (o *SetterObserver) GetValue() any {
	if o.observing {
		return o.value
	}
	return o.obj.Get(o.key)
}

// SetValue writes the property. While observing, a write that changes the
// value queues a notification.
func (o *SetterObserver) SetValue(v any, flags Flags) error {
	v = vals.FromGo(v)
	if !o.observing {
		return o.obj.Set(o.key, v)
	}
	if vals.SameValue(v, o.value) {
		return nil
	}
	o.value = v
	o.obj.RawSet(o.key, v)
	o.flags = flags
	o.queue.Add(o)
	return nil
}

// Flush notifies subscribers of the change since the previous flush.
func (o *SetterObserver) Flush() {
	oldValue := o.oldValue
	o.oldValue = o.value
	if vals.SameValue(oldValue, o.value) {
		return
	}
	o.Notify(o.value, oldValue, o.flags)
}

// InterceptGet implements vals.Interceptor.
func (o *SetterObserver) InterceptGet() any { return o.value }

// InterceptSet implements vals.Interceptor.
func (o *SetterObserver) InterceptSet(v any) error { return o.SetValue(v, FlagNone) }

// Subscribe adds a subscriber, starting interception with the first one.
func (o *SetterObserver) Subscribe(s Subscriber) {
	if o.Add(s) && o.Len() == 1 {
		o.start()
	}
}

// Unsubscribe removes a subscriber, stopping interception with the last one.
func (o *SetterObserver) Unsubscribe(s Subscriber) {
	if o.Remove(s) && o.Len() == 0 {
		o.stop()
	}
}

func (o *SetterObserver) start() {
	if o.observing {
		return
	}
	o.observing = true
	o.value = o.obj.Get(o.key)
	o.oldValue = o.value
	o.obj.Intercept(o.key, o)
}

func (o *SetterObserver) stop() {
	if !o.observing {
		return
	}
	o.observing = false
	o.obj.Intercept(o.key, nil)
	o.obj.RawSet(o.key, o.value)
}

// PrimitiveObserver stands in for observers of properties that cannot change,
// such as properties of primitive values. It never notifies.
type PrimitiveObserver struct {
	obj any
	key string
}

// NewPrimitiveObserver creates a PrimitiveObserver.
func NewPrimitiveObserver(obj any, key string) *PrimitiveObserver {
	return &PrimitiveObserver{obj, key}
}

// Type returns TypeNone.
func (o *PrimitiveObserver) Type() AccessorType { return TypeNone }

// GetValue returns the value of the property.
func (o *PrimitiveObserver) GetValue() any { return vals.GetProperty(o.obj, o.key) }

// SetValue does nothing.
func (o *PrimitiveObserver) SetValue(any, Flags) error { return nil }

// Subscribe does nothing.
func (o *PrimitiveObserver) Subscribe(Subscriber) {}

// Unsubscribe does nothing.
func (o *PrimitiveObserver) Unsubscribe(Subscriber) {}
