package vals

import (
	"math"
	"reflect"
)

// nanKey stands in for NaN in the key index, since NaN never equals itself.
type nanKey struct{}

// normalizeKey maps a key to a value usable as a Go map key, following the
// SameValueZero equality: NaN equals NaN and -0 equals +0.
func normalizeKey(k any) (any, bool) {
	if f, ok := k.(float64); ok {
		if math.IsNaN(f) {
			return nanKey{}, true
		}
		if f == 0 {
			return 0.0, true
		}
	}
	if k != nil && !reflect.TypeOf(k).Comparable() {
		return nil, false
	}
	return k, true
}

// Map is an insertion-ordered map from values to values. Keys must be
// comparable Go values; NaN is a valid key.
type Map struct {
	observerCache
	keys   []any
	values map[any]any
}

// NewMap creates a new empty Map.
func NewMap() *Map {
	return &Map{values: make(map[any]any)}
}

// MakeMap creates a Map from alternating keys and values.
func MakeMap(kvs ...any) *Map {
	m := NewMap()
	for i := 0; i+1 < len(kvs); i += 2 {
		m.Set(kvs[i], kvs[i+1])
	}
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []any { return append([]any(nil), m.keys...) }

// Entries returns a copy of the entries in insertion order.
func (m *Map) Entries() []MapEntry {
	entries := make([]MapEntry, len(m.keys))
	for i, k := range m.keys {
		nk, _ := normalizeKey(k)
		entries[i] = MapEntry{k, m.values[nk]}
	}
	return entries
}

// Get returns the value for the key, and whether the key exists.
func (m *Map) Get(k any) (any, bool) {
	nk, ok := normalizeKey(FromGo(k))
	if !ok {
		return Undefined, false
	}
	v, ok := m.values[nk]
	if !ok {
		return Undefined, false
	}
	return v, true
}

// Has returns whether the key exists.
func (m *Map) Has(k any) bool {
	_, ok := m.Get(k)
	return ok
}

// Set sets the value for a key. Setting an existing key to an identical value
// is not a mutation.
func (m *Map) Set(k, v any) error {
	k, v = FromGo(k), FromGo(v)
	nk, ok := normalizeKey(k)
	if !ok {
		return ErrBadArgument
	}
	if old, exists := m.values[nk]; exists {
		if SameValue(old, v) {
			return nil
		}
		m.values[nk] = v
		i := m.indexOf(nk)
		m.mutated(Mutation{Start: i, Deleted: []any{MapEntry{m.keys[i], old}}, Inserted: 1})
		return nil
	}
	if _, isNaN := nk.(nanKey); !isNaN && nk != nil {
		k = nk
	}
	m.keys = append(m.keys, k)
	m.values[nk] = v
	m.mutated(Mutation{Start: len(m.keys) - 1, Inserted: 1})
	return nil
}

// Delete removes a key. It returns whether the key existed.
func (m *Map) Delete(k any) bool {
	nk, ok := normalizeKey(FromGo(k))
	if !ok {
		return false
	}
	old, exists := m.values[nk]
	if !exists {
		return false
	}
	i := m.indexOf(nk)
	key := m.keys[i]
	delete(m.values, nk)
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.mutated(Mutation{Start: i, Deleted: []any{MapEntry{key, old}}})
	return true
}

// Clear removes all entries.
func (m *Map) Clear() {
	if len(m.keys) == 0 {
		return
	}
	deleted := make([]any, len(m.keys))
	for i, e := range m.Entries() {
		deleted[i] = e
	}
	m.keys = nil
	m.values = make(map[any]any)
	m.mutated(Mutation{Start: 0, Deleted: deleted})
}

func (m *Map) indexOf(nk any) int {
	for i, k := range m.keys {
		if k2, _ := normalizeKey(k); k2 == nk {
			return i
		}
	}
	return -1
}

// Equal reports whether other is a Map with deeply equal entries.
func (m *Map) Equal(other any) bool {
	return DeepEqual(m, other)
}

// Set is an insertion-ordered set of values. Values must be comparable Go
// values; NaN is a valid member.
type Set struct {
	observerCache
	items []any
	index map[any]struct{}
}

// NewSet creates a Set holding the given items.
func NewSet(items ...any) *Set {
	s := &Set{index: make(map[any]struct{})}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.items) }

// Values returns a copy of the members in insertion order.
func (s *Set) Values() []any { return append([]any(nil), s.items...) }

// Has returns whether v is a member.
func (s *Set) Has(v any) bool {
	nk, ok := normalizeKey(FromGo(v))
	if !ok {
		return false
	}
	_, has := s.index[nk]
	return has
}

// Add adds a member. Adding an existing member is not a mutation.
func (s *Set) Add(v any) error {
	v = FromGo(v)
	nk, ok := normalizeKey(v)
	if !ok {
		return ErrBadArgument
	}
	if _, has := s.index[nk]; has {
		return nil
	}
	s.index[nk] = struct{}{}
	s.items = append(s.items, v)
	s.mutated(Mutation{Start: len(s.items) - 1, Inserted: 1})
	return nil
}

// Delete removes a member. It returns whether it was a member.
func (s *Set) Delete(v any) bool {
	nk, ok := normalizeKey(FromGo(v))
	if !ok {
		return false
	}
	if _, has := s.index[nk]; !has {
		return false
	}
	delete(s.index, nk)
	for i, item := range s.items {
		if k, _ := normalizeKey(item); k == nk {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.mutated(Mutation{Start: i, Deleted: []any{item}})
			break
		}
	}
	return true
}

// Clear removes all members.
func (s *Set) Clear() {
	if len(s.items) == 0 {
		return
	}
	deleted := s.items
	s.items = nil
	s.index = make(map[any]struct{})
	s.mutated(Mutation{Start: 0, Deleted: deleted})
}

// Equal reports whether other is a Set with the same members.
func (s *Set) Equal(other any) bool {
	return DeepEqual(s, other)
}
