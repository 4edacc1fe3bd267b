package vals

import (
	"sort"
)

// Array is a mutable list of values. Every mutation is reported to the hook
// of the array, if there is one.
type Array struct {
	observerCache
	items []any
}

// NewArray creates an Array holding the given items, converted with FromGo.
func NewArray(items ...any) *Array {
	a := &Array{items: make([]any, len(items))}
	for i, item := range items {
		a.items[i] = FromGo(item)
	}
	return a
}

// Len returns the number of items.
func (a *Array) Len() int { return len(a.items) }

// Items returns a copy of the items.
func (a *Array) Items() []any { return append([]any(nil), a.items...) }

// Index returns the item at i, or Undefined if i is out of range.
func (a *Array) Index(i int) any {
	if i < 0 || i >= len(a.items) {
		return Undefined
	}
	return a.items[i]
}

// SetIndex sets the item at i. Setting beyond the end extends the array,
// filling the gap with Undefined.
func (a *Array) SetIndex(i int, v any) {
	if i < 0 {
		return
	}
	v = FromGo(v)
	if i >= len(a.items) {
		oldLen := len(a.items)
		for len(a.items) < i {
			a.items = append(a.items, Undefined)
		}
		a.items = append(a.items, v)
		a.mutated(Mutation{Start: oldLen, Inserted: len(a.items) - oldLen})
		return
	}
	old := a.items[i]
	a.items[i] = v
	a.mutated(Mutation{Start: i, Deleted: []any{old}, Inserted: 1})
}

// SetLength truncates or extends the array.
func (a *Array) SetLength(n int) {
	if n < 0 || n == len(a.items) {
		return
	}
	if n < len(a.items) {
		a.Splice(n, len(a.items)-n)
		return
	}
	fill := make([]any, n-len(a.items))
	for i := range fill {
		fill[i] = Undefined
	}
	a.Push(fill...)
}

// Push appends items and returns the new length.
func (a *Array) Push(items ...any) int {
	if len(items) == 0 {
		return len(a.items)
	}
	a.Splice(len(a.items), 0, items...)
	return len(a.items)
}

// Pop removes and returns the last item, or Undefined if the array is empty.
func (a *Array) Pop() any {
	if len(a.items) == 0 {
		return Undefined
	}
	return a.Splice(len(a.items)-1, 1)[0]
}

// Shift removes and returns the first item, or Undefined if the array is
// empty.
func (a *Array) Shift() any {
	if len(a.items) == 0 {
		return Undefined
	}
	return a.Splice(0, 1)[0]
}

// Unshift prepends items and returns the new length.
func (a *Array) Unshift(items ...any) int {
	if len(items) == 0 {
		return len(a.items)
	}
	a.Splice(0, 0, items...)
	return len(a.items)
}

// Splice removes deleteCount items at start, inserts items in their place and
// returns the removed items. A negative start counts from the end. Both start
// and deleteCount are clamped to the bounds of the array.
func (a *Array) Splice(start, deleteCount int, items ...any) []any {
	n := len(a.items)
	start = clampIndex(start, n)
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > n-start {
		deleteCount = n - start
	}
	if deleteCount == 0 && len(items) == 0 {
		return []any{}
	}
	deleted := append([]any(nil), a.items[start:start+deleteCount]...)
	inserted := make([]any, len(items))
	for i, item := range items {
		inserted[i] = FromGo(item)
	}
	tail := append([]any(nil), a.items[start+deleteCount:]...)
	a.items = append(append(a.items[:start], inserted...), tail...)
	a.mutated(Mutation{Start: start, Deleted: deleted, Inserted: len(inserted)})
	if deleted == nil {
		deleted = []any{}
	}
	return deleted
}

// Reverse reverses the array in place.
func (a *Array) Reverse() {
	n := len(a.items)
	if n < 2 {
		return
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = n - 1 - i
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		a.items[i], a.items[j] = a.items[j], a.items[i]
	}
	a.mutated(Mutation{Perm: perm})
}

// Sort sorts the array in place with a stable sort. The compare function
// returns a negative number when a sorts before b. Undefined items are always
// sorted last and never passed to compare. If compare is nil, items are
// compared by their string conversion.
//
// If compare returns an error, sorting stops and the array is left
// unchanged.
func (a *Array) Sort(compare func(a, b any) (float64, error)) error {
	n := len(a.items)
	if n < 2 {
		return nil
	}
	if compare == nil {
		compare = func(x, y any) (float64, error) {
			sx, sy := ToString(x), ToString(y)
			switch {
			case sx < sy:
				return -1, nil
			case sx > sy:
				return 1, nil
			}
			return 0, nil
		}
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var err error
	sort.SliceStable(perm, func(i, j int) bool {
		if err != nil {
			return false
		}
		x, y := a.items[perm[i]], a.items[perm[j]]
		if y == Undefined {
			return x != Undefined
		}
		if x == Undefined {
			return false
		}
		var r float64
		r, err = compare(x, y)
		return r < 0
	})
	if err != nil {
		return err
	}
	sorted := make([]any, n)
	changed := false
	for i, p := range perm {
		sorted[i] = a.items[p]
		if p != i {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	a.items = sorted
	a.mutated(Mutation{Perm: perm})
	return nil
}

// Equal reports whether other is an Array with deeply equal items.
func (a *Array) Equal(other any) bool {
	return DeepEqual(a, other)
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			i = 0
		}
	}
	if i > n {
		i = n
	}
	return i
}
