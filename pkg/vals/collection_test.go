package vals

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type mutationLog struct{ mutations []Mutation }

func (l *mutationLog) CollectionMutated(m Mutation) { l.mutations = append(l.mutations, m) }

func TestArray_Mutations(t *testing.T) {
	a := NewArray(3, 1, 2)
	log := &mutationLog{}
	a.SetHook(log)

	a.Push(4)
	a.Splice(1, 1, "x", "y")
	a.Shift()
	a.SetIndex(0, "z")
	a.SetLength(2)
	a.Reverse()

	wantItems := []any{"y", "z"}
	if diff := cmp.Diff(wantItems, a.Items()); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	wantMutations := []Mutation{
		{Start: 3, Inserted: 1},
		{Start: 1, Deleted: []any{1.0}, Inserted: 2},
		{Start: 0, Deleted: []any{3.0}},
		{Start: 0, Deleted: []any{"x"}, Inserted: 1},
		{Start: 2, Deleted: []any{2.0, 4.0}},
		{Perm: []int{1, 0}},
	}
	if diff := cmp.Diff(wantMutations, log.mutations); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}
}

func TestArray_SpliceClamps(t *testing.T) {
	a := NewArray(1, 2, 3)
	if got := a.Splice(-1, 5); !cmp.Equal(got, []any{3.0}) {
		t.Errorf("Splice(-1, 5) returned %v", got)
	}
	if got := a.Splice(10, 1, "x"); len(got) != 0 {
		t.Errorf("Splice(10, 1) returned %v", got)
	}
	if diff := cmp.Diff([]any{1.0, 2.0, "x"}, a.Items()); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestArray_Sort(t *testing.T) {
	a := NewArray(10, Undefined, 9, 1)
	log := &mutationLog{}
	a.SetHook(log)
	if err := a.Sort(nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{1.0, 10.0, 9.0, Undefined}, a.Items()); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Mutation{{Perm: []int{3, 0, 2, 1}}}, log.mutations); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}

	errCompare := errors.New("compare failed")
	err := a.Sort(func(x, y any) (float64, error) { return 0, errCompare })
	if !errors.Is(err, errCompare) {
		t.Errorf("Sort returned %v, want %v", err, errCompare)
	}
}

func TestMap_Mutations(t *testing.T) {
	m := MakeMap("a", 1, "b", 2)
	log := &mutationLog{}
	m.SetHook(log)

	m.Set("a", 1)
	m.Set("a", 10)
	m.Set("c", 3)
	m.Delete("b")
	m.Delete("missing")
	m.Clear()

	wantMutations := []Mutation{
		{Start: 0, Deleted: []any{MapEntry{"a", 1.0}}, Inserted: 1},
		{Start: 2, Inserted: 1},
		{Start: 1, Deleted: []any{MapEntry{"b", 2.0}}},
		{Start: 0, Deleted: []any{MapEntry{"a", 10.0}, MapEntry{"c", 3.0}}},
	}
	if diff := cmp.Diff(wantMutations, log.mutations); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}
}

func TestMap_NaNAndZeroKeys(t *testing.T) {
	m := NewMap()
	m.Set(0.0/zero(), "nan")
	m.Set(-zero(), "zero")
	if v, _ := m.Get(0.0 / zero()); v != "nan" {
		t.Errorf("Get(NaN) = %v", v)
	}
	if v, _ := m.Get(0); v != "zero" {
		t.Errorf("Get(0) = %v", v)
	}
	if err := m.Set([]int{1}, 1); !errors.Is(err, ErrBadArgument) {
		t.Errorf("Set with slice key returned %v", err)
	}
}

func zero() float64 { return 0 }

func TestSet_Mutations(t *testing.T) {
	s := NewSet("a")
	log := &mutationLog{}
	s.SetHook(log)

	s.Add("a")
	s.Add("b")
	s.Delete("a")
	s.Clear()

	wantMutations := []Mutation{
		{Start: 1, Inserted: 1},
		{Start: 0, Deleted: []any{"a"}},
		{Start: 0, Deleted: []any{"b"}},
	}
	if diff := cmp.Diff(wantMutations, log.mutations); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}
}
