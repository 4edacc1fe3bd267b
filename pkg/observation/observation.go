// Package observation implements change observation of values and the
// dependency tracking protocol built on it.
//
// Observers watch a single property or a collection and notify their
// subscribers when it changes. Connectables, such as bindings, computed
// properties and effects, record the observers reached while they evaluate,
// so that they are notified exactly when one of their dependencies changes.
//
// Nothing in this package is safe for concurrent use. All observers sharing
// an ObserverLocator must be used from a single goroutine.
package observation

import (
	"errors"

	"github.com/aurelia/aurelia-sub054/pkg/logutil"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

var logger = logutil.GetLogger("[observation] ")

// Flags are passed along with change notifications and value writes.
type Flags uint32

// Flags.
const (
	FlagNone Flags = 0
	// FlagFromBind marks writes made while a binding is being bound.
	FlagFromBind Flags = 1 << (iota - 1)
	// FlagDirtyCheck marks notifications from the dirty checker.
	FlagDirtyCheck
	// FlagSignal marks notifications dispatched by a Signaler.
	FlagSignal
)

// AccessorType describes the capabilities of an observer.
type AccessorType uint8

// Accessor types.
const (
	TypeNone AccessorType = 0
	// TypeObserver marks observers that notify subscribers of changes.
	TypeObserver AccessorType = 1 << (iota - 1)
	// TypeNode marks observers of host nodes, created by a NodeObserverLocator.
	TypeNode
	// TypeLayout marks observers whose writes affect layout.
	TypeLayout
)

// Errors.
var (
	ErrNotCurrent     = errors.New("connectable is not the current connectable")
	ErrAlreadyActive  = errors.New("connectable is already active")
	ErrNilConnectable = errors.New("connectable is nil")
	ErrReadOnly       = errors.New("property is read-only")
	ErrDirtyCheck     = errors.New("dirty checking is required but not allowed")
	ErrEffectStopped  = errors.New("effect has already been stopped")
	ErrEffectMaxRuns  = errors.New("effect exceeded its maximum run count")
)

// Subscriber receives change notifications of a single value.
type Subscriber interface {
	HandleChange(newValue, oldValue any, flags Flags)
}

// CollectionSubscriber receives change notifications of a collection.
type CollectionSubscriber interface {
	HandleCollectionChange(collection vals.Collection, indexMap *IndexMap, flags Flags)
}

// Subscribable is implemented by values that notify Subscribers.
type Subscribable interface {
	Subscribe(s Subscriber)
	Unsubscribe(s Subscriber)
}

// CollectionSubscribable is implemented by values that notify
// CollectionSubscribers.
type CollectionSubscribable interface {
	SubscribeCollection(s CollectionSubscriber)
	UnsubscribeCollection(s CollectionSubscriber)
}

// Observer observes a single value, typically a property of an object.
type Observer interface {
	Subscribable
	Type() AccessorType
	GetValue() any
	SetValue(v any, flags Flags) error
}

// CollectionObserver observes the contents of a collection.
type CollectionObserver interface {
	CollectionSubscribable
	Collection() vals.Collection
	// IndexMap returns the mutations accumulated since the last
	// notification.
	IndexMap() *IndexMap
	// LengthObserver returns the observer of the length or size of the
	// collection.
	LengthObserver() Observer
}

// Connectable is implemented by entities that track the observers they read
// while evaluating.
type Connectable interface {
	// Observe registers a dependency on a property.
	Observe(obj any, key string)
	// ObserveCollection registers a dependency on the contents of a
	// collection.
	ObserveCollection(c vals.Collection)
}

// Flushable is implemented by values that can be added to a FlushQueue.
type Flushable interface {
	Flush()
}
