package expr

import (
	"math"
	"testing"

	"github.com/aurelia/aurelia-sub054/pkg/scope"
	. "github.com/aurelia/aurelia-sub054/pkg/tt"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

var forOf = &ForOf{Declaration: &BindingIdentifier{"item"}, Iterable: id("items")}

func TestForOf_Count(t *testing.T) {
	Test(t, Fn("Count", forOf.Count), Table{
		Args(vals.NewArray(1, 2, 3)).Rets(3, nil),
		Args(vals.MakeMap("a", 1)).Rets(1, nil),
		Args(vals.NewSet(1, 2)).Rets(2, nil),
		Args(4).Rets(4, nil),
		Args(nil).Rets(0, nil),
		Args(vals.Undefined).Rets(0, nil),
		Args(-1).Rets(0, ErrorIs(ErrNotIterable)),
		Args(1.5).Rets(0, ErrorIs(ErrNotIterable)),
		Args(math.NaN()).Rets(0, ErrorIs(ErrNotIterable)),
		Args(math.Inf(1)).Rets(0, ErrorIs(ErrNotIterable)),
		Args(1e20).Rets(0, ErrorIs(ErrNotIterable)),
		Args(MaxIterationCount).Rets(MaxIterationCount, nil),
		Args(MaxIterationCount+1).Rets(0, ErrorIs(ErrNotIterable)),
		Args("abc").Rets(0, ErrorIs(ErrNotIterable)),
		Args(vals.NewObject()).Rets(0, ErrorIs(ErrNotIterable)),
	})
}

func collect(iterable any) ([]any, error) {
	var out []any
	err := forOf.Iterate(iterable, func(_ []any, _ int, item any) error {
		out = append(out, item)
		return nil
	})
	return out, err
}

func TestForOf_Iterate(t *testing.T) {
	Test(t, Fn("collect", collect), Table{
		Args(vals.NewArray("a", "b")).Rets([]any{"a", "b"}, nil),
		Args(vals.MakeMap("a", 1, "b", 2)).Rets([]any{vals.NewArray("a", 1.0), vals.NewArray("b", 2.0)}, nil),
		Args(vals.NewSet("x", "y", "x")).Rets([]any{"x", "y"}, nil),
		Args(3).Rets([]any{0.0, 1.0, 2.0}, nil),
		Args(nil).Rets([]any(nil), nil),
		Args(true).Rets([]any(nil), ErrorIs(ErrNotIterable)),
		Args(1e20).Rets([]any(nil), ErrorIs(ErrNotIterable)),
	})
}

func TestForOf_IterateSnapshot(t *testing.T) {
	arr := vals.NewArray(1, 2)
	n := 0
	err := forOf.Iterate(arr, func(items []any, i int, _ any) error {
		arr.Push(i)
		if len(items) != 2 {
			t.Errorf("items changed during iteration: %v", items)
		}
		n++
		return nil
	})
	if err != nil || n != 2 {
		t.Errorf("got %d iterations and error %v, want 2 and nil", n, err)
	}
}

func TestForOf_Declare(t *testing.T) {
	parent := scope.New(newContext())
	err := forOf.Iterate(vals.NewArray("a", "b"), func(_ []any, i int, item any) error {
		s := scope.FromParent(parent, vals.NewObject())
		if err := forOf.Declare(0, s, nil, item); err != nil {
			return err
		}
		v, err := id("item").Evaluate(0, s, nil, nil)
		if err != nil {
			return err
		}
		if v != item {
			t.Errorf("item %d evaluated to %v, want %v", i, v, item)
		}
		return nil
	})
	if err != nil {
		t.Error(err)
	}
}
