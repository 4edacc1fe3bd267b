package observation

import (
	"testing"

	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

type countingObservable struct {
	Subscribers
}

func TestBindingObserverRecord_Clear(t *testing.T) {
	s := &spy{}
	r := NewBindingObserverRecord(s)
	obs := make([]*countingObservable, 5)
	for i := range obs {
		obs[i] = &countingObservable{}
	}

	r.NextVersion()
	for _, o := range obs {
		r.Add(o)
	}
	r.Add(obs[0])
	if r.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", r.Len())
	}

	r.NextVersion()
	r.Add(obs[1])
	r.Add(obs[4])
	r.Clear(false)
	if r.Len() != 2 {
		t.Errorf("Len() = %d after Clear(false), want 2", r.Len())
	}
	for i, o := range obs {
		wantSubscribed := i == 1 || i == 4
		if o.Has(r) != wantSubscribed {
			t.Errorf("observable %d subscribed = %v, want %v", i, o.Has(r), wantSubscribed)
		}
	}

	obs[4].Notify(1.0, 0.0, FlagNone)
	if len(s.changes) != 1 {
		t.Errorf("notification not forwarded to owner")
	}

	r.Clear(true)
	if r.Len() != 0 || obs[1].Len() != 0 || obs[4].Len() != 0 {
		t.Errorf("Clear(true) left subscriptions")
	}
}

func TestConnector_ObserveCollection(t *testing.T) {
	l := NewObserverLocator(Config{})
	s := &spy{}
	c := NewConnector(l, s)
	set := vals.NewSet()
	c.ObserveCollection(set)
	c.ObserveCollection(set)
	if c.Record.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Record.Len())
	}
	set.Add("x")
	if len(s.collections) != 1 {
		t.Errorf("got %d collection notifications, want 1", len(s.collections))
	}
	if err := c.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}
