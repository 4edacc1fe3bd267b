// Package vals contains the runtime value model used by expressions and
// observers, and basic operations on values.
//
// Values follow JavaScript semantics closely, since expressions are written
// in a JavaScript-like language:
//
//   - nil is null, and Undefined is undefined.
//   - Numbers are float64. Go integer and float32 values are accepted and
//     converted with FromGo whenever they enter the value model.
//   - Strings are string, booleans are bool.
//   - *Object, *Array, *Map and *Set are the builtin mutable containers. They
//     can be instrumented for observation without changing their behavior
//     for code that never observes them.
//   - Callable values can be called from expressions.
//
// Arbitrary Go values (structs, pointers to structs, maps with string keys and
// slices) can also be used; they are accessed with reflection.
package vals

import (
	"errors"
	"reflect"
	"time"
)

// UndefinedType is the type of Undefined.
type UndefinedType struct{}

// Undefined is the value of missing properties and of expressions that
// produce nothing, as distinct from null (nil).
var Undefined = UndefinedType{}

func (UndefinedType) String() string { return "undefined" }

// IsNullish returns whether v is null or undefined.
func IsNullish(v any) bool {
	return v == nil || v == Undefined
}

// Errors.
var (
	ErrNotObject   = errors.New("cannot set property of a primitive value")
	ErrNoSetter    = errors.New("property has a getter but no setter")
	ErrNotSettable = errors.New("property cannot be set")
	ErrBadArgument = errors.New("bad argument")
)

// FromGo converts a Go value to a value of the value model. Integer and
// float32 values are converted to float64; other values are returned
// unchanged.
func FromGo(a any) any {
	switch a := a.(type) {
	case int:
		return float64(a)
	case int8:
		return float64(a)
	case int16:
		return float64(a)
	case int32:
		return float64(a)
	case int64:
		return float64(a)
	case uint:
		return float64(a)
	case uint8:
		return float64(a)
	case uint16:
		return float64(a)
	case uint32:
		return float64(a)
	case uint64:
		return float64(a)
	case float32:
		return float64(a)
	default:
		return a
	}
}

// TypeOf returns the result of the typeof operator on v.
func TypeOf(v any) string {
	switch v := v.(type) {
	case nil:
		return "object"
	case UndefinedType:
		return "undefined"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64:
		return "number"
	case Callable:
		return "function"
	case *Object, *Array, *Map, *Set, time.Time:
		return "object"
	default:
		v = FromGo(v)
		if _, ok := v.(float64); ok {
			return "number"
		}
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Func {
			return "function"
		}
		return "object"
	}
}

// Kind returns a short description of the dynamic type of a value, used in
// error messages.
func Kind(v any) string {
	switch v := Unwrap(v).(type) {
	case nil:
		return "null"
	case UndefinedType:
		return "undefined"
	case *Object:
		return "object"
	case *Array:
		return "array"
	case *Map:
		return "map"
	case *Set:
		return "set"
	case time.Time:
		return "date"
	default:
		if t := TypeOf(v); t != "object" {
			return t
		}
		return reflect.TypeOf(v).String()
	}
}

// IsObject returns whether v is an object-like value rather than a primitive.
func IsObject(v any) bool {
	switch v.(type) {
	case nil, UndefinedType, bool, string, float64:
		return false
	}
	_, isNum := FromGo(v).(float64)
	return !isNum
}
