package observation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type named struct {
	name string
	log  *[]string
	hook func()
}

func (n *named) HandleChange(any, any, Flags) {
	*n.log = append(*n.log, n.name)
	if n.hook != nil {
		n.hook()
	}
}

func TestSubscriberRecord_OrderAndDedup(t *testing.T) {
	var log []string
	var subs Subscribers
	var all []*named
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		n := &named{name: name, log: &log}
		all = append(all, n)
		if !subs.Add(n) {
			t.Errorf("Add(%s) returned false", name)
		}
	}
	if subs.Add(all[0]) || subs.Add(all[4]) {
		t.Errorf("Add of existing subscriber returned true")
	}
	subs.Remove(all[1])
	subs.Remove(all[3])
	subs.Notify(1, 0, FlagNone)
	if diff := cmp.Diff([]string{"a", "c", "e"}, log); diff != "" {
		t.Errorf("notification order (-want +got):\n%s", diff)
	}
	if subs.Len() != 3 || subs.Has(all[1]) || !subs.Has(all[4]) {
		t.Errorf("unexpected record state after removals")
	}
}

func TestSubscriberRecord_NotifyUsesSnapshot(t *testing.T) {
	var log []string
	var subs Subscribers
	late := &named{name: "late", log: &log}
	var b *named
	a := &named{name: "a", log: &log, hook: func() {
		subs.Remove(b)
		subs.Add(late)
	}}
	b = &named{name: "b", log: &log}
	subs.Add(a)
	subs.Add(b)

	subs.Notify(nil, nil, FlagNone)
	if diff := cmp.Diff([]string{"a", "b"}, log); diff != "" {
		t.Errorf("first notification (-want +got):\n%s", diff)
	}
	log = nil
	a.hook = nil
	subs.Notify(nil, nil, FlagNone)
	if diff := cmp.Diff([]string{"a", "late"}, log); diff != "" {
		t.Errorf("second notification (-want +got):\n%s", diff)
	}
}
