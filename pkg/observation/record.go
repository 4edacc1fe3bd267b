package observation

import "github.com/aurelia/aurelia-sub054/pkg/vals"

// Handler receives the notifications forwarded by a BindingObserverRecord.
type Handler interface {
	Subscriber
	CollectionSubscriber
}

// BindingObserverRecord holds the observers a connectable depends on. Each
// observer is stamped with the version of the evaluation that last reached
// it, so that Clear can drop the ones the latest evaluation did not reach.
//
// The record subscribes itself to the observers and forwards their
// notifications to its owner.
type BindingObserverRecord struct {
	owner    Handler
	version  int
	inline   [3]recordSlot
	overflow []recordSlot
}

type recordSlot struct {
	observable any
	version    int
}

// NewBindingObserverRecord creates a record forwarding notifications to
// owner.
func NewBindingObserverRecord(owner Handler) *BindingObserverRecord {
	return &BindingObserverRecord{owner: owner}
}

// HandleChange forwards a notification to the owner.
func (r *BindingObserverRecord) HandleChange(newValue, oldValue any, flags Flags) {
	r.owner.HandleChange(newValue, oldValue, flags)
}

// HandleCollectionChange forwards a notification to the owner.
func (r *BindingObserverRecord) HandleCollectionChange(c vals.Collection, indexMap *IndexMap, flags Flags) {
	r.owner.HandleCollectionChange(c, indexMap, flags)
}

// Version returns the current version.
func (r *BindingObserverRecord) Version() int { return r.version }

// NextVersion starts a new evaluation pass.
func (r *BindingObserverRecord) NextVersion() { r.version++ }

// Add adds an observer, which must be Subscribable or
// CollectionSubscribable, stamping it with the current version. An observer
// already in the record only gets its stamp refreshed.
func (r *BindingObserverRecord) Add(observable any) {
	for i := range r.inline {
		if r.inline[i].observable == observable {
			r.inline[i].version = r.version
			return
		}
	}
	for i := range r.overflow {
		if r.overflow[i].observable == observable {
			r.overflow[i].version = r.version
			return
		}
	}
	r.subscribe(observable)
	slot := recordSlot{observable, r.version}
	for i := range r.inline {
		if r.inline[i].observable == nil {
			r.inline[i] = slot
			return
		}
	}
	r.overflow = append(r.overflow, slot)
}

// Clear unsubscribes from observers. If all is true, every observer is
// dropped; otherwise only the observers not stamped with the current
// version are.
func (r *BindingObserverRecord) Clear(all bool) {
	for i := range r.inline {
		if s := r.inline[i]; s.observable != nil && (all || s.version != r.version) {
			r.unsubscribe(s.observable)
			r.inline[i] = recordSlot{}
		}
	}
	kept := r.overflow[:0]
	for _, s := range r.overflow {
		if all || s.version != r.version {
			r.unsubscribe(s.observable)
		} else {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(r.overflow); i++ {
		r.overflow[i] = recordSlot{}
	}
	r.overflow = kept
}

// Len returns the number of observers in the record.
func (r *BindingObserverRecord) Len() int {
	n := len(r.overflow)
	for _, s := range r.inline {
		if s.observable != nil {
			n++
		}
	}
	return n
}

// Observers returns the observers in the record.
func (r *BindingObserverRecord) Observers() []any {
	var obs []any
	for _, s := range r.inline {
		if s.observable != nil {
			obs = append(obs, s.observable)
		}
	}
	for _, s := range r.overflow {
		obs = append(obs, s.observable)
	}
	return obs
}

func (r *BindingObserverRecord) subscribe(observable any) {
	if s, ok := observable.(Subscribable); ok {
		s.Subscribe(r)
	}
	if s, ok := observable.(CollectionSubscribable); ok {
		s.SubscribeCollection(r)
	}
}

func (r *BindingObserverRecord) unsubscribe(observable any) {
	if s, ok := observable.(Subscribable); ok {
		s.Unsubscribe(r)
	}
	if s, ok := observable.(CollectionSubscribable); ok {
		s.UnsubscribeCollection(r)
	}
}

// Connector implements Connectable on top of an ObserverLocator and a
// BindingObserverRecord. Bindings, computed observers and effects embed it.
type Connector struct {
	Locator *ObserverLocator
	Record  *BindingObserverRecord
	err     error
}

// NewConnector creates a Connector whose record forwards to owner.
func NewConnector(locator *ObserverLocator, owner Handler) *Connector {
	return &Connector{Locator: locator, Record: NewBindingObserverRecord(owner)}
}

// Observe adds the observer of obj's property to the record. If no observer
// can be created, the error is kept and returned by the next call to Err.
func (c *Connector) Observe(obj any, key string) {
	obs, err := c.Locator.GetObserver(obj, key)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return
	}
	c.Record.Add(obs)
}

// ObserveCollection adds the collection observer of coll to the record.
func (c *Connector) ObserveCollection(coll vals.Collection) {
	c.Record.Add(c.Locator.GetCollectionObserver(coll))
}

// Err returns and clears the first error met by Observe since the last call.
func (c *Connector) Err() error {
	err := c.err
	c.err = nil
	return err
}
