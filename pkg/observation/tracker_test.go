package observation

import (
	"errors"
	"testing"

	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

type nopConnectable struct{ observed []string }

func (c *nopConnectable) Observe(_ any, key string)       { c.observed = append(c.observed, key) }
func (c *nopConnectable) ObserveCollection(vals.Collection) {}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	a, b := &nopConnectable{}, &nopConnectable{}

	if err := tr.Enter(a); err != nil {
		t.Fatal(err)
	}
	if err := tr.Enter(a); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("re-entering returned %v", err)
	}
	if err := tr.Enter(b); err != nil {
		t.Fatal(err)
	}
	if tr.Current() != b {
		t.Errorf("current is not the innermost connectable")
	}
	if err := tr.Exit(a); !errors.Is(err, ErrNotCurrent) {
		t.Errorf("exiting a non-current connectable returned %v", err)
	}

	tr.Pause()
	if tr.Current() != nil || tr.Connecting() {
		t.Errorf("paused tracker still connecting")
	}
	tr.Resume()
	if tr.Current() != b {
		t.Errorf("resume did not restore the current connectable")
	}

	if err := tr.Exit(b); err != nil {
		t.Fatal(err)
	}
	if err := tr.Exit(a); err != nil {
		t.Fatal(err)
	}
	if tr.Current() != nil || tr.Depth() != 0 {
		t.Errorf("stack not empty")
	}
	if err := tr.Enter(nil); !errors.Is(err, ErrNilConnectable) {
		t.Errorf("entering nil returned %v", err)
	}
}
