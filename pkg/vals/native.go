package vals

import "sort"

// FromNative converts a tree of generic Go values, as produced by decoders
// such as encoding/json or yaml.v3, to the value model. Maps with string keys
// become *Object (with sorted keys, since Go maps are unordered), and slices
// become *Array.
func FromNative(v any) any {
	switch v := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			o.RawSet(k, FromNative(v[k]))
		}
		return o
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = FromNative(item)
		}
		return NewArray(items...)
	}
	return FromGo(v)
}

// ToNative converts a value to a tree of generic Go values suitable for
// encoders such as encoding/json. Objects become map[string]any, arrays and
// sets become []any, and maps become []any of [key, value] pairs. Undefined
// becomes nil; cycles are cut with nil.
func ToNative(v any) any {
	return toNative(v, map[any]bool{})
}

func toNative(v any, seen map[any]bool) any {
	v = FromGo(Unwrap(v))
	switch v := v.(type) {
	case UndefinedType:
		return nil
	case *Object:
		if seen[v] {
			return nil
		}
		seen[v] = true
		defer delete(seen, v)
		m := make(map[string]any, v.Len())
		for _, k := range v.keys {
			m[k] = toNative(v.Get(k), seen)
		}
		return m
	case *Array:
		if seen[v] {
			return nil
		}
		seen[v] = true
		defer delete(seen, v)
		items := make([]any, len(v.items))
		for i, item := range v.items {
			items[i] = toNative(item, seen)
		}
		return items
	case *Set:
		items := make([]any, 0, v.Len())
		for _, item := range v.items {
			items = append(items, toNative(item, seen))
		}
		return items
	case *Map:
		if seen[v] {
			return nil
		}
		seen[v] = true
		defer delete(seen, v)
		items := make([]any, 0, v.Len())
		for _, e := range v.Entries() {
			items = append(items, []any{toNative(e.Key, seen), toNative(e.Value, seen)})
		}
		return items
	}
	if IsCallable(v) {
		return nil
	}
	return v
}
