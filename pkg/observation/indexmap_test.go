package observation

import (
	"slices"
	"testing"

	. "github.com/aurelia/aurelia-sub054/pkg/tt"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// record applies ops to an array holding items, and returns the IndexMap
// accumulated by its observer.
func record(items []any, ops ...func(*vals.Array)) *IndexMap {
	arr := vals.NewArray(items...)
	l := NewObserverLocator(Config{})
	obs := l.GetArrayObserver(arr)
	var m *IndexMap
	l.Queue().Batch(func() {
		for _, op := range ops {
			op(arr)
		}
		m = obs.IndexMap().Clone()
	})
	return m
}

func push(items ...any) func(*vals.Array) {
	return func(a *vals.Array) { a.Push(items...) }
}

func splice(start, n int, items ...any) func(*vals.Array) {
	return func(a *vals.Array) { a.Splice(start, n, items...) }
}

func shift(a *vals.Array)   { a.Shift() }
func reverse(a *vals.Array) { a.Reverse() }

var abcd = []any{"a", "b", "c", "d"}

func TestIndexMap_Apply(t *testing.T) {
	Test(t, Fn("record", record), Table{
		Args(abcd).Rets(&IndexMap{Indices: []int{0, 1, 2, 3}}),
		Args(abcd, push("e")).Rets(
			&IndexMap{Indices: []int{0, 1, 2, 3, NewItem}}),
		Args(abcd, splice(1, 2, "x")).Rets(
			&IndexMap{Indices: []int{0, NewItem, 3},
				Deleted: []int{1, 2}, DeletedItems: []any{"b", "c"}}),
		Args(abcd, push("e"), splice(1, 1), shift, reverse).Rets(
			&IndexMap{Indices: []int{NewItem, 3, 2},
				Deleted: []int{1, 0}, DeletedItems: []any{"b", "a"}}),
		// Deleting an inserted item leaves no trace.
		Args(abcd, push("e"), splice(4, 1)).Rets(
			&IndexMap{Indices: []int{0, 1, 2, 3}}),
	})
}

func TestIndexMap_Invariant(t *testing.T) {
	mutations := []struct {
		name string
		f    func(*vals.Array)
	}{
		{"push", func(a *vals.Array) { a.Push("g") }},
		{"splice", func(a *vals.Array) { a.Splice(2, 2, "x", "y", "z") }},
		{"shift", func(a *vals.Array) { a.Shift() }},
		{"unshift", func(a *vals.Array) { a.Unshift("w") }},
		{"sort", func(a *vals.Array) { a.Sort(nil) }},
		{"pop", func(a *vals.Array) { a.Pop() }},
		{"reverse", func(a *vals.Array) { a.Reverse() }},
	}

	t.Run("each mutation", func(t *testing.T) {
		arr := vals.NewArray("a", "b", "c", "d", "e", "f")
		l := NewObserverLocator(Config{})
		s := &spy{}
		l.GetArrayObserver(arr).SubscribeCollection(s)
		for i, m := range mutations {
			old := arr.Items()
			m.f(arr)
			if len(s.collections) != i+1 {
				t.Fatalf("after %s: got %d notifications, want %d", m.name, len(s.collections), i+1)
			}
			checkIndexMap(t, m.name, s.collections[i], old, arr.Items())
		}
	})

	t.Run("batch", func(t *testing.T) {
		arr := vals.NewArray("a", "b", "c", "d", "e", "f")
		l := NewObserverLocator(Config{})
		s := &spy{}
		l.GetArrayObserver(arr).SubscribeCollection(s)
		old := arr.Items()
		l.Queue().Batch(func() {
			for _, m := range mutations {
				m.f(arr)
			}
		})
		if len(s.collections) != 1 {
			t.Fatalf("got %d notifications, want 1", len(s.collections))
		}
		checkIndexMap(t, "batch", s.collections[0], old, arr.Items())
	})
}

// Checks that m maps every slot of items to its index in old, or to NewItem,
// and accounts for every item of old.
func checkIndexMap(t *testing.T, name string, m *IndexMap, old, items []any) {
	t.Helper()
	if m.Len() != len(items) {
		t.Fatalf("%s: index map has %d slots for %d items", name, m.Len(), len(items))
	}
	seen := map[int]bool{}
	for i, from := range m.Indices {
		if from == NewItem {
			if slices.Contains(old, items[i]) {
				t.Errorf("%s: slot %d holds old item %v, but is marked new", name, i, items[i])
			}
			continue
		}
		seen[from] = true
		if items[i] != old[from] {
			t.Errorf("%s: slot %d maps to %v, but holds %v", name, i, old[from], items[i])
		}
	}
	for i, from := range m.Deleted {
		seen[from] = true
		if m.DeletedItems[i] != old[from] {
			t.Errorf("%s: deleted %d is %v, want %v", name, from, m.DeletedItems[i], old[from])
		}
	}
	if len(seen) != len(old) {
		t.Errorf("%s: index map accounts for %d of %d old items", name, len(seen), len(old))
	}
}

func TestComposeIndexMaps(t *testing.T) {
	first := record(abcd, push("e"), splice(0, 1))
	// [b c d e] -> [e b b]
	second := record([]any{"b", "c", "d", "e"}, splice(1, 2, "x"), reverse, splice(0, 1), push("b"), splice(0, 1, "e"))
	Test(t, Fn("ComposeIndexMaps", ComposeIndexMaps), Table{
		Args().Rets(&IndexMap{Indices: []int{}}),
		Args(first).Rets(first),
		Args(first, second).Rets(
			record(abcd, push("e"), splice(0, 1), splice(1, 2, "x"), reverse, splice(0, 1), push("b"), splice(0, 1, "e"))),
	})
}

func TestSynchronizeIndices(t *testing.T) {
	m := record(abcd, splice(1, 1), push("e"), reverse)
	Test(t, Fn("SynchronizeIndices", SynchronizeIndices[string]), Table{
		Args([]string{"A", "B", "C", "D"}, m).Rets([]string{"", "D", "C", "A"}),
	})
}

func TestApplyMutationsToIndices(t *testing.T) {
	m := record(abcd, splice(1, 1), push("e"), reverse)
	Test(t, Fn("ApplyMutationsToIndices", ApplyMutationsToIndices), Table{
		Args(m).Rets(&IndexMap{
			Indices: []int{NewItem, 2, 1, 0},
			Deleted: []int{1}, DeletedItems: []any{"b"}}),
	})
}
