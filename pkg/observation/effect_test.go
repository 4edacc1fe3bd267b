package observation

import (
	"errors"
	"testing"

	"github.com/aurelia/aurelia-sub054/pkg/vals"
	"github.com/google/go-cmp/cmp"
)

func TestEffect_RerunsOnChange(t *testing.T) {
	o := NewObservation(NewObserverLocator(Config{}))
	obj := vals.MakeObject("count", 0.0)
	p := o.Wrap(obj)
	var seen []any
	e, err := o.Run(func(*Effect) error {
		seen = append(seen, vals.GetProperty(p, "count"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	obj.Set("count", 1.0)
	obj.Set("count", 2.0)
	if diff := cmp.Diff([]any{0.0, 1.0, 2.0}, seen); diff != "" {
		t.Errorf("runs (-want +got):\n%s", diff)
	}

	e.Stop()
	obj.Set("count", 3.0)
	if len(seen) != 3 {
		t.Errorf("stopped effect ran")
	}
	if err := e.Run(); !errors.Is(err, ErrEffectStopped) {
		t.Errorf("running a stopped effect returned %v", err)
	}
}

func TestEffect_ExplicitObserve(t *testing.T) {
	o := NewObservation(NewObserverLocator(Config{}))
	obj := vals.MakeObject("a", 1.0)
	runs := 0
	_, err := o.Run(func(e *Effect) error {
		runs++
		e.Observe(obj, "a")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	obj.Set("a", 2.0)
	if runs != 2 {
		t.Errorf("effect ran %d times, want 2", runs)
	}
}

func TestEffect_SelfTriggeringRunsAreLimited(t *testing.T) {
	o := NewObservation(NewObserverLocator(Config{}))
	obj := vals.MakeObject("count", 0.0)
	p := o.Wrap(obj)
	runs := 0
	_, err := o.Run(func(*Effect) error {
		runs++
		n := vals.ToNumber(vals.GetProperty(p, "count"))
		return vals.SetProperty(p, "count", n+1)
	})
	if !errors.Is(err, ErrEffectMaxRuns) {
		t.Errorf("got error %v, want ErrEffectMaxRuns", err)
	}
	if runs != DefaultMaxRunCount+1 {
		t.Errorf("effect ran %d times, want %d", runs, DefaultMaxRunCount+1)
	}
}

func TestEffect_SelfTriggeringRunsAreLimitedWithinDrain(t *testing.T) {
	o := NewObservation(NewObserverLocator(Config{}))
	obj := vals.MakeObject("count", 0.0)
	p := o.Wrap(obj)
	runs := 0
	e, err := o.Run(func(*Effect) error {
		runs++
		n := vals.ToNumber(vals.GetProperty(p, "count"))
		if n == 0 {
			return nil
		}
		return vals.SetProperty(p, "count", n+1)
	})
	if err != nil {
		t.Fatal(err)
	}
	runs = 0
	obj.Set("count", 1.0)
	if !errors.Is(e.Err(), ErrEffectMaxRuns) {
		t.Errorf("got error %v, want ErrEffectMaxRuns", e.Err())
	}
	if runs != DefaultMaxRunCount+1 {
		t.Errorf("effect ran %d times, want %d", runs, DefaultMaxRunCount+1)
	}
}

func TestEffect_ReturnsError(t *testing.T) {
	o := NewObservation(NewObserverLocator(Config{}))
	errBoom := errors.New("boom")
	_, err := o.Run(func(*Effect) error { return errBoom })
	if !errors.Is(err, errBoom) {
		t.Errorf("got error %v, want %v", err, errBoom)
	}
}

func TestEffect_SurfacesObserveErrors(t *testing.T) {
	l := NewObserverLocator(Config{DirtyCheck: DirtyCheckSettings{Throw: true}})
	o := NewObservation(l)
	_, err := o.Run(func(e *Effect) error {
		e.Observe(&point{}, "X")
		return nil
	})
	if !errors.Is(err, ErrDirtyCheck) {
		t.Errorf("got error %v, want ErrDirtyCheck", err)
	}
}

func TestProxy_ObservesCollectionMethods(t *testing.T) {
	o := NewObservation(NewObserverLocator(Config{}))
	arr := vals.NewArray(1.0, 2.0)
	double := vals.Func(func(_ any, args []any) (any, error) {
		return vals.ToNumber(args[0]) * 2, nil
	})
	var results [][]any
	_, err := o.Run(func(*Effect) error {
		p := o.Wrap(arr)
		r, err := vals.Call(vals.GetProperty(p, "map"), p, []any{double})
		if err != nil {
			return err
		}
		results = append(results, vals.Unwrap(r).(*vals.Array).Items())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	arr.Push(3.0)
	want := [][]any{{2.0, 4.0}, {2.0, 4.0, 6.0}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}
}

func TestProxy_NestedObjects(t *testing.T) {
	o := NewObservation(NewObserverLocator(Config{}))
	inner := vals.MakeObject("name", "x")
	obj := vals.MakeObject("inner", inner)
	var names []any
	_, err := o.Run(func(*Effect) error {
		p := o.Wrap(obj)
		names = append(names, vals.GetProperty(vals.GetProperty(p, "inner"), "name"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	inner.Set("name", "y")
	obj.Set("inner", vals.MakeObject("name", "z"))
	if diff := cmp.Diff([]any{"x", "y", "z"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestProxy_OutsideConnectable(t *testing.T) {
	l := NewObserverLocator(Config{})
	obj := vals.MakeObject("a", 1.0)
	p := l.Tracker().Wrap(obj)
	if l.Tracker().Wrap(obj) != p {
		t.Errorf("proxy not cached")
	}
	if l.Tracker().Wrap(p) != p {
		t.Errorf("wrapping a proxy created a new proxy")
	}
	if got := vals.GetProperty(p, "a"); got != 1.0 {
		t.Errorf("read %v through proxy, want 1", got)
	}
	if err := vals.SetProperty(p, "b", p); err != nil {
		t.Fatal(err)
	}
	if obj.Get("b") != obj {
		t.Errorf("proxy was written instead of its target")
	}
	if obj.Observer("a") != nil {
		t.Errorf("read outside a connectable created an observer")
	}
}
