package observation

import (
	"sort"

	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// NewItem marks a slot of an IndexMap holding an item that was not in the
// collection before.
const NewItem = -2

// IndexMap describes how a collection changed since a reference state. It
// has one slot per item currently in the collection, holding the index of
// the item in the reference state, or NewItem.
type IndexMap struct {
	Indices []int
	// Deleted holds the reference indices of removed items, and DeletedItems
	// the items themselves, in removal order.
	Deleted      []int
	DeletedItems []any
}

// NewIndexMap creates an identity IndexMap for a collection of length n.
func NewIndexMap(n int) *IndexMap {
	m := &IndexMap{Indices: make([]int, n)}
	for i := range m.Indices {
		m.Indices[i] = i
	}
	return m
}

// Len returns the number of slots.
func (m *IndexMap) Len() int { return len(m.Indices) }

// IsIdentity returns whether the map describes no change.
func (m *IndexMap) IsIdentity() bool {
	if len(m.Deleted) > 0 {
		return false
	}
	for i, j := range m.Indices {
		if i != j {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the map.
func (m *IndexMap) Clone() *IndexMap {
	return &IndexMap{
		Indices:      append([]int(nil), m.Indices...),
		Deleted:      append([]int(nil), m.Deleted...),
		DeletedItems: append([]any(nil), m.DeletedItems...),
	}
}

// Apply records a mutation.
func (m *IndexMap) Apply(mut vals.Mutation) {
	if mut.Perm != nil {
		indices := make([]int, len(mut.Perm))
		for i, from := range mut.Perm {
			indices[i] = m.Indices[from]
		}
		m.Indices = indices
		return
	}
	end := mut.Start + len(mut.Deleted)
	for i, from := range m.Indices[mut.Start:end] {
		if from != NewItem {
			m.Deleted = append(m.Deleted, from)
			m.DeletedItems = append(m.DeletedItems, mut.Deleted[i])
		}
	}
	inserted := make([]int, mut.Inserted)
	for i := range inserted {
		inserted[i] = NewItem
	}
	tail := append([]int(nil), m.Indices[end:]...)
	m.Indices = append(append(m.Indices[:mut.Start], inserted...), tail...)
}

// ComposeIndexMaps composes index maps of successive changes into one map
// describing all of them, relative to the reference state of the first map.
func ComposeIndexMaps(maps ...*IndexMap) *IndexMap {
	if len(maps) == 0 {
		return NewIndexMap(0)
	}
	result := maps[0].Clone()
	for _, next := range maps[1:] {
		composed := &IndexMap{
			Indices:      make([]int, len(next.Indices)),
			Deleted:      result.Deleted,
			DeletedItems: result.DeletedItems,
		}
		for i, from := range next.Indices {
			if from == NewItem {
				composed.Indices[i] = NewItem
			} else {
				composed.Indices[i] = result.Indices[from]
			}
		}
		for i, from := range next.Deleted {
			// Items inserted by an earlier change and deleted by a later one
			// were never in the reference state.
			if orig := result.Indices[from]; orig != NewItem {
				composed.Deleted = append(composed.Deleted, orig)
				composed.DeletedItems = append(composed.DeletedItems, next.DeletedItems[i])
			}
		}
		result = composed
	}
	return result
}

// SynchronizeIndices reorders items, which correspond one-to-one with the
// reference state of m, to correspond with the current state. Slots of new
// items get the zero value.
func SynchronizeIndices[T any](items []T, m *IndexMap) []T {
	synced := make([]T, len(m.Indices))
	for i, from := range m.Indices {
		if from != NewItem && from < len(items) {
			synced[i] = items[from]
		}
	}
	return synced
}

// ApplyMutationsToIndices returns a copy of m whose reference indices are
// shifted to account for deleted items, so that they index the reference
// state with the deleted items already removed.
func ApplyMutationsToIndices(m *IndexMap) *IndexMap {
	deleted := append([]int(nil), m.Deleted...)
	sort.Ints(deleted)
	result := m.Clone()
	for i, from := range result.Indices {
		if from != NewItem {
			result.Indices[i] = from - sort.SearchInts(deleted, from)
		}
	}
	return result
}
