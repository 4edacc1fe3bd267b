package observation

import "github.com/aurelia/aurelia-sub054/pkg/vals"

// SubscriberRecord is a set of subscribers kept in insertion order. The first
// three subscribers are stored inline, the rest in an overflow slice.
//
// The zero value is an empty record ready to use.
type SubscriberRecord[T comparable] struct {
	inline   [3]T
	count    int
	overflow []T
}

// Len returns the number of subscribers.
func (r *SubscriberRecord[T]) Len() int { return r.count }

// Has returns whether s is in the record.
func (r *SubscriberRecord[T]) Has(s T) bool {
	return r.indexOf(s) >= 0
}

func (r *SubscriberRecord[T]) at(i int) T {
	if i < len(r.inline) {
		return r.inline[i]
	}
	return r.overflow[i-len(r.inline)]
}

func (r *SubscriberRecord[T]) indexOf(s T) int {
	for i := 0; i < r.count; i++ {
		if r.at(i) == s {
			return i
		}
	}
	return -1
}

// Add adds a subscriber. It returns false if the subscriber was already in
// the record.
func (r *SubscriberRecord[T]) Add(s T) bool {
	if r.Has(s) {
		return false
	}
	if r.count < len(r.inline) {
		r.inline[r.count] = s
	} else {
		r.overflow = append(r.overflow, s)
	}
	r.count++
	return true
}

// Remove removes a subscriber, keeping the order of the remaining ones. It
// returns false if the subscriber was not in the record.
func (r *SubscriberRecord[T]) Remove(s T) bool {
	i := r.indexOf(s)
	if i < 0 {
		return false
	}
	var zero T
	for ; i < r.count-1; i++ {
		r.set(i, r.at(i+1))
	}
	r.set(r.count-1, zero)
	if r.count > len(r.inline) {
		r.overflow = r.overflow[:len(r.overflow)-1]
	}
	r.count--
	return true
}

func (r *SubscriberRecord[T]) set(i int, s T) {
	if i < len(r.inline) {
		r.inline[i] = s
	} else {
		r.overflow[i-len(r.inline)] = s
	}
}

// Snapshot returns the subscribers in insertion order.
func (r *SubscriberRecord[T]) Snapshot() []T {
	subs := make([]T, r.count)
	for i := range subs {
		subs[i] = r.at(i)
	}
	return subs
}

// Each calls f for each subscriber in insertion order. The subscribers are
// captured before the first call, so adding or removing subscribers from f
// does not affect the iteration.
func (r *SubscriberRecord[T]) Each(f func(T)) {
	switch r.count {
	case 0:
		return
	case 1:
		f(r.inline[0])
		return
	}
	for _, s := range r.Snapshot() {
		f(s)
	}
}

// Subscribers is a SubscriberRecord of value subscribers that can notify
// them. Observers embed it.
type Subscribers struct {
	SubscriberRecord[Subscriber]
}

// Subscribe adds a subscriber.
func (s *Subscribers) Subscribe(sub Subscriber) { s.Add(sub) }

// Unsubscribe removes a subscriber.
func (s *Subscribers) Unsubscribe(sub Subscriber) { s.Remove(sub) }

// Notify notifies all subscribers of a change.
func (s *Subscribers) Notify(newValue, oldValue any, flags Flags) {
	s.Each(func(sub Subscriber) { sub.HandleChange(newValue, oldValue, flags) })
}

// CollectionSubscribers is a SubscriberRecord of collection subscribers that
// can notify them.
type CollectionSubscribers struct {
	SubscriberRecord[CollectionSubscriber]
}

// SubscribeCollection adds a subscriber.
func (s *CollectionSubscribers) SubscribeCollection(sub CollectionSubscriber) { s.Add(sub) }

// UnsubscribeCollection removes a subscriber.
func (s *CollectionSubscribers) UnsubscribeCollection(sub CollectionSubscriber) { s.Remove(sub) }

// NotifyCollection notifies all subscribers of a collection change.
func (s *CollectionSubscribers) NotifyCollection(c vals.Collection, indexMap *IndexMap, flags Flags) {
	s.Each(func(sub CollectionSubscriber) { sub.HandleCollectionChange(c, indexMap, flags) })
}
