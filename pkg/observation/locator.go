package observation

import (
	"reflect"

	"github.com/aurelia/aurelia-sub054/pkg/platform"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// NodeObserverLocator provides observers for host nodes, such as DOM
// elements. It is consulted before any other strategy.
type NodeObserverLocator interface {
	Handles(obj any, key string) bool
	GetObserver(obj any, key string, locator *ObserverLocator) (Observer, error)
}

// ObjectAdapter provides observers for host-specific property kinds. It
// returns nil for properties it does not handle.
type ObjectAdapter interface {
	GetObserver(obj any, key string, locator *ObserverLocator) Observer
}

// Config configures an ObserverLocator. Zero fields get defaults.
type Config struct {
	Queue       *FlushQueue
	Tracker     *Tracker
	Platform    platform.TaskQueue
	DirtyCheck  DirtyCheckSettings
	NodeLocator NodeObserverLocator
}

// ObserverLocator finds or creates the observer of a property, and caches it
// on the observed object.
type ObserverLocator struct {
	queue       *FlushQueue
	tracker     *Tracker
	dirty       *DirtyChecker
	nodeLocator NodeObserverLocator
	adapters    []ObjectAdapter
	// Observers of Go host values, which have no observer cache of their
	// own.
	hostObservers map[hostKey]Observer
}

type hostKey struct {
	obj any
	key string
}

// NewObserverLocator creates an ObserverLocator.
func NewObserverLocator(cfg Config) *ObserverLocator {
	if cfg.Queue == nil {
		cfg.Queue = NewFlushQueue()
	}
	if cfg.Tracker == nil {
		cfg.Tracker = NewTracker()
	}
	if cfg.DirtyCheck == (DirtyCheckSettings{}) {
		cfg.DirtyCheck = DefaultDirtyCheckSettings()
	}
	return &ObserverLocator{
		queue:         cfg.Queue,
		tracker:       cfg.Tracker,
		dirty:         NewDirtyChecker(cfg.DirtyCheck, cfg.Platform, cfg.Queue),
		nodeLocator:   cfg.NodeLocator,
		hostObservers: make(map[hostKey]Observer),
	}
}

// Queue returns the flush queue shared by the observers.
func (l *ObserverLocator) Queue() *FlushQueue { return l.queue }

// Tracker returns the connectable tracker.
func (l *ObserverLocator) Tracker() *Tracker { return l.tracker }

// DirtyChecker returns the dirty checker.
func (l *ObserverLocator) DirtyChecker() *DirtyChecker { return l.dirty }

// AddAdapter registers an adapter.
func (l *ObserverLocator) AddAdapter(a ObjectAdapter) {
	l.adapters = append(l.adapters, a)
}

// GetObserver returns the observer of obj's property key. Observers of the
// builtin containers are cached on them; observers of Go host values are
// cached in the locator.
func (l *ObserverLocator) GetObserver(obj any, key string) (Observer, error) {
	obj = vals.FromGo(vals.Unwrap(obj))
	if !vals.IsObject(obj) || vals.IsCallable(obj) {
		return NewPrimitiveObserver(obj, key), nil
	}
	if cache, ok := obj.(observerCache); ok {
		if obs, ok := cache.Observer(key).(Observer); ok {
			return obs, nil
		}
		obs, err := l.createObserver(obj, key)
		if err != nil {
			return nil, err
		}
		if obs.Type() != TypeNone {
			cache.SetObserver(key, obs)
		}
		return obs, nil
	}
	hk, comparable := hostCacheKey(obj, key)
	if comparable {
		if obs, ok := l.hostObservers[hk]; ok {
			return obs, nil
		}
	}
	obs, err := l.createObserver(obj, key)
	if err != nil {
		return nil, err
	}
	if comparable {
		l.hostObservers[hk] = obs
	}
	return obs, nil
}

func hostCacheKey(obj any, key string) (hostKey, bool) {
	if !reflect.TypeOf(obj).Comparable() {
		return hostKey{}, false
	}
	return hostKey{obj, key}, true
}

func (l *ObserverLocator) createObserver(obj any, key string) (Observer, error) {
	if l.nodeLocator != nil && l.nodeLocator.Handles(obj, key) {
		return l.nodeLocator.GetObserver(obj, key, l)
	}
	switch o := obj.(type) {
	case *vals.Array:
		if key == "length" {
			return l.GetArrayObserver(o).LengthObserver(), nil
		}
		if i, ok := vals.ArrayIndex(key); ok {
			return l.GetArrayObserver(o).IndexObserver(i), nil
		}
		return NewPrimitiveObserver(o, key), nil
	case *vals.Map:
		if key == "size" {
			return l.GetMapObserver(o).LengthObserver(), nil
		}
		return NewPrimitiveObserver(o, key), nil
	case *vals.Set:
		if key == "size" {
			return l.GetSetObserver(o).LengthObserver(), nil
		}
		return NewPrimitiveObserver(o, key), nil
	case *vals.Object:
		accessor, _, found := o.Lookup(key)
		if found && accessor != nil {
			if accessor.Observer != nil {
				if obs, ok := accessor.Observer(o).(Observer); ok {
					return obs, nil
				}
			}
			if obs := l.adapterObserver(o, key); obs != nil {
				return obs, nil
			}
			if accessor.Configurable {
				return NewComputedObserver(o, key, accessor, l), nil
			}
			return l.dirty.CreateProperty(o, key)
		}
		return NewSetterObserver(o, key, l.queue), nil
	}
	if obs := l.adapterObserver(obj, key); obs != nil {
		return obs, nil
	}
	return l.dirty.CreateProperty(obj, key)
}

func (l *ObserverLocator) adapterObserver(obj any, key string) Observer {
	for _, a := range l.adapters {
		if obs := a.GetObserver(obj, key, l); obs != nil {
			return obs
		}
	}
	return nil
}

// GetAccessor returns an observer if the property is observable, and
// otherwise a plain accessor that reads and writes it directly.
func (l *ObserverLocator) GetAccessor(obj any, key string) (Observer, error) {
	switch vals.Unwrap(obj).(type) {
	case *vals.Object, *vals.Array, *vals.Map, *vals.Set:
		return l.GetObserver(obj, key)
	}
	return &PropertyAccessor{obj, key}, nil
}

// GetCollectionObserver returns the observer of a collection.
func (l *ObserverLocator) GetCollectionObserver(c vals.Collection) CollectionObserver {
	switch c := c.(type) {
	case *vals.Array:
		return l.GetArrayObserver(c)
	case *vals.Map:
		return l.GetMapObserver(c)
	case *vals.Set:
		return l.GetSetObserver(c)
	}
	panic("unknown collection type")
}

// GetArrayObserver returns the observer of an array, installing it on first
// use.
func (l *ObserverLocator) GetArrayObserver(a *vals.Array) *ArrayObserver {
	if obs, ok := a.Observer(collectionObserverKey).(*ArrayObserver); ok {
		return obs
	}
	obs := newArrayObserver(a, l.queue)
	a.SetObserver(collectionObserverKey, obs)
	return obs
}

// GetMapObserver returns the observer of a map, installing it on first use.
func (l *ObserverLocator) GetMapObserver(m *vals.Map) *MapObserver {
	if obs, ok := m.Observer(collectionObserverKey).(*MapObserver); ok {
		return obs
	}
	obs := newMapObserver(m, l.queue)
	m.SetObserver(collectionObserverKey, obs)
	return obs
}

// GetSetObserver returns the observer of a set, installing it on first use.
func (l *ObserverLocator) GetSetObserver(s *vals.Set) *SetObserver {
	if obs, ok := s.Observer(collectionObserverKey).(*SetObserver); ok {
		return obs
	}
	obs := newSetObserver(s, l.queue)
	s.SetObserver(collectionObserverKey, obs)
	return obs
}

// PropertyAccessor reads and writes a property without observing it.
type PropertyAccessor struct {
	obj any
	key string
}

// Type returns TypeNone.
func (a *PropertyAccessor) Type() AccessorType { return TypeNone }

// GetValue reads the property.
func (a *PropertyAccessor) GetValue() any { return vals.GetProperty(a.obj, a.key) }

// SetValue writes the property.
func (a *PropertyAccessor) SetValue(v any, _ Flags) error { return vals.SetProperty(a.obj, a.key, v) }

// Subscribe does nothing.
func (a *PropertyAccessor) Subscribe(Subscriber) {}

// Unsubscribe does nothing.
func (a *PropertyAccessor) Unsubscribe(Subscriber) {}
