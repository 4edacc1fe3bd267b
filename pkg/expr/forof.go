package expr

import (
	"math"

	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// MaxIterationCount is the largest number a ForOf iterates over.
const MaxIterationCount = 1 << 24

// Count returns the number of items Iterate visits for an iterable.
func (e *ForOf) Count(iterable any) (int, error) {
	switch it := vals.Unwrap(vals.FromGo(iterable)).(type) {
	case nil, vals.UndefinedType:
		return 0, nil
	case vals.Collection:
		return it.Len(), nil
	case float64:
		if it < 0 || it > MaxIterationCount || it != math.Trunc(it) {
			return 0, newError(ErrNotIterable, "cannot iterate %v times", vals.FormatNumber(it))
		}
		return int(it), nil
	}
	return 0, newError(ErrNotIterable, "cannot iterate over %s", vals.Kind(iterable))
}

// Iterate calls fn with each item of an iterable: the items of an array, the
// [key, value] entries of a map, the values of a set, or the numbers 0 to
// n-1 for a number n. Null and undefined have no items.
//
// fn also receives all items, captured before the first call, so that the
// iteration is not affected by changes made by fn.
func (e *ForOf) Iterate(iterable any, fn func(items []any, i int, item any) error) error {
	var items []any
	switch it := vals.Unwrap(vals.FromGo(iterable)).(type) {
	case nil, vals.UndefinedType:
		return nil
	case *vals.Array:
		items = it.Items()
	case *vals.Map:
		for _, entry := range it.Entries() {
			items = append(items, vals.NewArray(entry.Key, entry.Value))
		}
	case *vals.Set:
		items = it.Values()
	case float64:
		n, err := e.Count(it)
		if err != nil {
			return err
		}
		items = make([]any, n)
		for i := range items {
			items[i] = float64(i)
		}
	default:
		return newError(ErrNotIterable, "cannot iterate over %s", vals.Kind(iterable))
	}
	for i, item := range items {
		if err := fn(items, i, item); err != nil {
			return err
		}
	}
	return nil
}

// Declare assigns an item to the declaration in s, typically a scope created
// for the item.
func (e *ForOf) Declare(f EvalFlags, s *scope.Scope, l ServiceLocator, item any) error {
	return e.Declaration.Assign(f, s, l, item)
}
