package vals

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// PropertyGetter is implemented by values that handle their own property
// reads.
type PropertyGetter interface {
	GetProperty(key any) any
}

// PropertySetter is implemented by values that handle their own property
// writes.
type PropertySetter interface {
	SetProperty(key, v any) error
}

// PropertyChecker is implemented by values that handle the in operator
// themselves.
type PropertyChecker interface {
	HasProperty(key any) bool
}

// PropertyKey converts a value to a property name.
func PropertyKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return ToString(k)
}

// ArrayIndex converts a property key to an array index. Numbers must be
// non-negative integers; strings must be their canonical decimal form.
func ArrayIndex(k any) (int, bool) {
	switch k := FromGo(k).(type) {
	case float64:
		if k >= 0 && k == math.Trunc(k) && k < math.MaxInt32 {
			return int(k), true
		}
	case string:
		i, err := strconv.Atoi(k)
		if err == nil && i >= 0 && strconv.Itoa(i) == k {
			return i, true
		}
	}
	return 0, false
}

// GetProperty reads a property of a value. Reading a missing property, or a
// property of null or undefined, yields Undefined.
func GetProperty(obj, key any) any {
	switch o := FromGo(obj).(type) {
	case nil, UndefinedType, bool:
		return Undefined
	case PropertyGetter:
		return o.GetProperty(key)
	case *Object:
		name := PropertyKey(key)
		if o.Has(name) {
			return o.Get(name)
		}
		if m, ok := objectMethods[name]; ok {
			return m
		}
		return Undefined
	case *Array:
		if i, ok := ArrayIndex(key); ok {
			return o.Index(i)
		}
		name := PropertyKey(key)
		if name == "length" {
			return float64(o.Len())
		}
		return methodOrUndefined(arrayMethods, name)
	case *Map:
		name := PropertyKey(key)
		if name == "size" {
			return float64(o.Len())
		}
		return methodOrUndefined(mapMethods, name)
	case *Set:
		name := PropertyKey(key)
		if name == "size" {
			return float64(o.Len())
		}
		return methodOrUndefined(setMethods, name)
	case string:
		if i, ok := ArrayIndex(key); ok {
			return charAt(o, i, Undefined)
		}
		name := PropertyKey(key)
		if name == "length" {
			return float64(utf8.RuneCountInString(o))
		}
		return methodOrUndefined(stringMethods, name)
	case float64:
		return methodOrUndefined(numberMethods, PropertyKey(key))
	case Callable:
		return Undefined
	default:
		v, _ := hostGet(o, PropertyKey(key))
		return v
	}
}

func methodOrUndefined(methods map[string]*Method, name string) any {
	if m, ok := methods[name]; ok {
		return m
	}
	return Undefined
}

func charAt(s string, i int, missing any) any {
	for j, r := range []rune(s) {
		if j == i {
			return string(r)
		}
	}
	return missing
}

// SetProperty writes a property of a value.
func SetProperty(obj, key, v any) error {
	switch o := FromGo(obj).(type) {
	case nil, UndefinedType, bool, float64, string:
		return ErrNotObject
	case PropertySetter:
		return o.SetProperty(key, v)
	case *Object:
		return o.Set(PropertyKey(key), v)
	case *Array:
		if i, ok := ArrayIndex(key); ok {
			o.SetIndex(i, v)
			return nil
		}
		if PropertyKey(key) == "length" {
			n := ToNumber(v)
			if n < 0 || n != math.Trunc(n) {
				return ErrBadArgument
			}
			o.SetLength(int(n))
			return nil
		}
		return ErrNotSettable
	case *Map, *Set, Callable:
		return ErrNotSettable
	default:
		return hostSet(o, PropertyKey(key), v)
	}
}

// HasProperty reports whether a value has a property.
func HasProperty(obj, key any) bool {
	switch o := FromGo(obj).(type) {
	case nil, UndefinedType:
		return false
	case PropertyChecker:
		return o.HasProperty(key)
	case *Object:
		name := PropertyKey(key)
		_, isMethod := objectMethods[name]
		return o.Has(name) || isMethod
	case *Array:
		if i, ok := ArrayIndex(key); ok {
			return i < o.Len()
		}
	case *Map, *Set, string, float64, bool, Callable:
	default:
		_, ok := hostGet(o, PropertyKey(key))
		return ok
	}
	return GetProperty(obj, key) != Undefined
}

// Keys returns the enumerable property names of an object-like value.
func Keys(obj any) []string {
	switch o := Unwrap(obj).(type) {
	case *Object:
		return o.Keys()
	case *Array:
		keys := make([]string, o.Len())
		for i := range keys {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	case nil, UndefinedType, bool, float64, string, *Map, *Set:
		return nil
	default:
		return hostKeys(o)
	}
}
