package observation

import (
	"strconv"

	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// Key under which collection observers are cached on their collections.
const collectionObserverKey = "@collection"

// collectionObserver is the shared part of ArrayObserver, MapObserver and
// SetObserver. It is installed as the mutation hook of the collection, so
// only observed collections pay for maintaining an IndexMap.
type collectionObserver struct {
	CollectionSubscribers
	coll     vals.Collection
	queue    *FlushQueue
	indexMap *IndexMap
	length   lengthObserver
	// Called during Flush, before the subscribers are notified.
	beforeNotify func()
}

type lengthObserver interface {
	Observer
	update()
}

func (o *collectionObserver) init(coll vals.Collection, queue *FlushQueue) {
	o.coll = coll
	o.queue = queue
	o.indexMap = NewIndexMap(coll.Len())
}

// Collection returns the observed collection.
func (o *collectionObserver) Collection() vals.Collection { return o.coll }

// IndexMap returns the changes accumulated since the last notification.
func (o *collectionObserver) IndexMap() *IndexMap { return o.indexMap }

// CollectionMutated implements vals.CollectionHook.
func (o *collectionObserver) CollectionMutated(m vals.Mutation) {
	o.indexMap.Apply(m)
	o.queue.Add(o)
}

// Flush resets the index map and notifies the length observer, index
// observers and subscribers, in that order.
func (o *collectionObserver) Flush() {
	indexMap := o.indexMap
	o.indexMap = NewIndexMap(o.coll.Len())
	if o.length != nil {
		o.length.update()
	}
	if o.beforeNotify != nil {
		o.beforeNotify()
	}
	o.NotifyCollection(o.coll, indexMap, FlagNone)
}

// ArrayObserver observes the contents of a *vals.Array.
type ArrayObserver struct {
	collectionObserver
	arr   *vals.Array
	index map[int]*ArrayIndexObserver
}

func newArrayObserver(arr *vals.Array, queue *FlushQueue) *ArrayObserver {
	o := &ArrayObserver{arr: arr, index: make(map[int]*ArrayIndexObserver)}
	o.init(arr, queue)
	o.beforeNotify = o.updateIndexObservers
	arr.SetHook(o)
	return o
}

// LengthObserver returns the observer of the length of the array.
func (o *ArrayObserver) LengthObserver() Observer {
	if o.length == nil {
		o.length = &CollectionLengthObserver{coll: o.arr, value: o.arr.Len()}
	}
	return o.length
}

// IndexObserver returns the observer of the item at index i.
func (o *ArrayObserver) IndexObserver(i int) *ArrayIndexObserver {
	if obs, ok := o.index[i]; ok {
		return obs
	}
	obs := &ArrayIndexObserver{owner: o, index: i}
	o.index[i] = obs
	return obs
}

func (o *ArrayObserver) updateIndexObservers() {
	for _, obs := range o.index {
		obs.update()
	}
}

// MapObserver observes the contents of a *vals.Map.
type MapObserver struct {
	collectionObserver
}

func newMapObserver(m *vals.Map, queue *FlushQueue) *MapObserver {
	o := &MapObserver{}
	o.init(m, queue)
	m.SetHook(o)
	return o
}

// LengthObserver returns the observer of the size of the map.
func (o *MapObserver) LengthObserver() Observer {
	if o.length == nil {
		o.length = &CollectionSizeObserver{CollectionLengthObserver{coll: o.coll, value: o.coll.Len()}}
	}
	return o.length
}

// SetObserver observes the contents of a *vals.Set.
type SetObserver struct {
	collectionObserver
}

func newSetObserver(s *vals.Set, queue *FlushQueue) *SetObserver {
	o := &SetObserver{}
	o.init(s, queue)
	s.SetHook(o)
	return o
}

// LengthObserver returns the observer of the size of the set.
func (o *SetObserver) LengthObserver() Observer {
	if o.length == nil {
		o.length = &CollectionSizeObserver{CollectionLengthObserver{coll: o.coll, value: o.coll.Len()}}
	}
	return o.length
}

// CollectionLengthObserver observes the length of an array. Writing it
// truncates or extends the array.
type CollectionLengthObserver struct {
	Subscribers
	coll  vals.Collection
	value int
}

// Type returns TypeObserver.
func (o *CollectionLengthObserver) Type() AccessorType { return TypeObserver }

// GetValue returns the length.
func (o *CollectionLengthObserver) GetValue() any { return float64(o.coll.Len()) }

// SetValue sets the length of the array.
func (o *CollectionLengthObserver) SetValue(v any, _ Flags) error {
	return vals.SetProperty(o.coll, "length", v)
}

func (o *CollectionLengthObserver) update() {
	old := o.value
	o.value = o.coll.Len()
	if o.value != old {
		o.Notify(float64(o.value), float64(old), FlagNone)
	}
}

// CollectionSizeObserver observes the size of a map or set. It is read-only.
type CollectionSizeObserver struct {
	CollectionLengthObserver
}

// SetValue fails with ErrReadOnly.
func (o *CollectionSizeObserver) SetValue(any, Flags) error { return ErrReadOnly }

// ArrayIndexObserver observes the item at one index of an array.
type ArrayIndexObserver struct {
	Subscribers
	owner *ArrayObserver
	index int
	value any
}

// Type returns TypeObserver.
func (o *ArrayIndexObserver) Type() AccessorType { return TypeObserver }

// GetValue returns the item at the index.
func (o *ArrayIndexObserver) GetValue() any { return o.owner.arr.Index(o.index) }

// SetValue replaces the item at the index.
func (o *ArrayIndexObserver) SetValue(v any, _ Flags) error {
	if vals.SameValue(vals.FromGo(v), o.GetValue()) {
		return nil
	}
	o.owner.arr.SetIndex(o.index, v)
	return nil
}

// Subscribe adds a subscriber.
func (o *ArrayIndexObserver) Subscribe(s Subscriber) {
	if o.Add(s) && o.Len() == 1 {
		o.value = o.GetValue()
	}
}

func (o *ArrayIndexObserver) update() {
	if o.Len() == 0 {
		return
	}
	old := o.value
	o.value = o.GetValue()
	if !vals.SameValue(old, o.value) {
		o.Notify(o.value, old, FlagNone)
	}
}

func (o *ArrayIndexObserver) String() string {
	return "index observer [" + strconv.Itoa(o.index) + "]"
}
