package vals

import (
	"math"
	"reflect"
	"time"
)

// identical compares two values by identity without panicking on values of
// incomparable types. Functions and reference types compare by pointer.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return va.Pointer() == vb.Pointer() && (va.Kind() != reflect.Slice || va.Len() == vb.Len())
	}
	return false
}

// SameValue implements Object.is: like StrictEqual, except that NaN equals NaN
// and +0 does not equal -0.
func SameValue(a, b any) bool {
	a, b = FromGo(a), FromGo(b)
	if fa, ok := a.(float64); ok {
		fb, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb && math.Signbit(fa) == math.Signbit(fb)
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return identical(a, b)
}

// StrictEqual implements the === operator.
func StrictEqual(a, b any) bool {
	a, b = FromGo(a), FromGo(b)
	if fa, ok := a.(float64); ok {
		fb, ok := b.(float64)
		return ok && fa == fb
	}
	return SameValue(a, b)
}

// LooseEqual implements the == operator.
func LooseEqual(a, b any) bool {
	a, b = FromGo(a), FromGo(b)
	if IsNullish(a) || IsNullish(b) {
		return IsNullish(a) && IsNullish(b)
	}
	if reflect.TypeOf(a) == reflect.TypeOf(b) {
		return StrictEqual(a, b)
	}
	if _, ok := a.(bool); ok {
		return LooseEqual(ToNumber(a), b)
	}
	if _, ok := b.(bool); ok {
		return LooseEqual(a, ToNumber(b))
	}
	_, aNum := a.(float64)
	_, bNum := b.(float64)
	_, aStr := a.(string)
	_, bStr := b.(string)
	switch {
	case aNum && bStr, aStr && bNum:
		return ToNumber(a) == ToNumber(b)
	case IsObject(a) && !IsObject(b):
		return LooseEqual(ToPrimitive(a, "default"), b)
	case IsObject(b) && !IsObject(a):
		return LooseEqual(a, ToPrimitive(b, "default"))
	}
	return identical(Unwrap(a), Unwrap(b))
}

// Add implements the native + operator.
func Add(a, b any) any {
	pa, pb := ToPrimitive(a, "default"), ToPrimitive(b, "default")
	_, aStr := pa.(string)
	_, bStr := pb.(string)
	if aStr || bStr {
		return ToString(pa) + ToString(pb)
	}
	return ToNumber(pa) + ToNumber(pb)
}

// Arith implements the numeric binary operators -, *, / and %.
func Arith(op string, a, b any) float64 {
	x, y := ToNumber(a), ToNumber(b)
	switch op {
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		return x / y
	case "%":
		return math.Mod(x, y)
	}
	panic("unknown arithmetic operator " + op)
}

// less implements the abstract relational comparison. The second return
// value is false when the result is undefined, i.e. when NaN is involved.
func less(a, b any) (bool, bool) {
	pa, pb := ToPrimitive(a, "number"), ToPrimitive(b, "number")
	sa, aStr := pa.(string)
	sb, bStr := pb.(string)
	if aStr && bStr {
		return sa < sb, true
	}
	x, y := ToNumber(pa), ToNumber(pb)
	if math.IsNaN(x) || math.IsNaN(y) {
		return false, false
	}
	return x < y, true
}

// Compare implements the relational operators <, >, <= and >=.
func Compare(op string, a, b any) bool {
	switch op {
	case "<":
		r, ok := less(a, b)
		return ok && r
	case ">":
		r, ok := less(b, a)
		return ok && r
	case "<=":
		r, ok := less(b, a)
		return ok && !r
	case ">=":
		r, ok := less(a, b)
		return ok && !r
	}
	panic("unknown relational operator " + op)
}

// Less reports whether a < b.
func Less(a, b any) bool { return Compare("<", a, b) }

// InstanceChecker is implemented by values that can be used as the right
// operand of instanceof.
type InstanceChecker interface {
	IsInstance(v any) bool
}

// InstanceOf implements the instanceof operator. The constructor may be an
// InstanceChecker, a reflect.Type, or an *Object whose "prototype" property
// is an *Object on the prototype chain of v. Anything else yields false.
func InstanceOf(v, ctor any) bool {
	v = Unwrap(v)
	switch ctor := Unwrap(ctor).(type) {
	case InstanceChecker:
		return ctor.IsInstance(v)
	case reflect.Type:
		if v == nil {
			return false
		}
		t := reflect.TypeOf(v)
		if ctor.Kind() == reflect.Interface {
			return t.Implements(ctor)
		}
		return t == ctor
	case *Object:
		proto, ok := ctor.Get("prototype").(*Object)
		obj, isObj := v.(*Object)
		if !ok || !isObj {
			return false
		}
		for p := obj.Proto(); p != nil; p = p.Proto() {
			if p == proto {
				return true
			}
		}
	}
	return false
}

// In implements the in operator. It returns false when obj is not an object.
func In(key, obj any) bool {
	if !IsObject(Unwrap(obj)) {
		return false
	}
	return HasProperty(obj, key)
}

// DeepEqual reports whether two values are deeply equal: primitives compare
// with SameValue, and containers compare their contents recursively. Cycles
// are handled by assuming that containers already being compared are equal.
func DeepEqual(a, b any) bool {
	return deepEqual(a, b, make(map[[2]any]bool))
}

func deepEqual(a, b any, seen map[[2]any]bool) bool {
	a, b = FromGo(a), FromGo(b)
	switch a := a.(type) {
	case *Object:
		b, ok := b.(*Object)
		if !ok {
			return false
		}
		if a == b || seen[[2]any{a, b}] {
			return true
		}
		seen[[2]any{a, b}] = true
		if len(a.keys) != len(b.keys) || a.proto != b.proto {
			return false
		}
		for _, k := range a.keys {
			if !b.HasOwn(k) {
				return false
			}
			pa, pb := a.props[k], b.props[k]
			if pa.accessor != nil || pb.accessor != nil {
				if pa.accessor != pb.accessor {
					return false
				}
				continue
			}
			if !deepEqual(pa.value, pb.value, seen) {
				return false
			}
		}
		return true
	case *Array:
		b, ok := b.(*Array)
		if !ok {
			return false
		}
		if a == b || seen[[2]any{a, b}] {
			return true
		}
		seen[[2]any{a, b}] = true
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !deepEqual(a.items[i], b.items[i], seen) {
				return false
			}
		}
		return true
	case *Map:
		b, ok := b.(*Map)
		if !ok {
			return false
		}
		if a == b || seen[[2]any{a, b}] {
			return true
		}
		seen[[2]any{a, b}] = true
		if a.Len() != b.Len() {
			return false
		}
		ea, eb := a.Entries(), b.Entries()
		for i := range ea {
			if !SameValue(ea[i].Key, eb[i].Key) || !deepEqual(ea[i].Value, eb[i].Value, seen) {
				return false
			}
		}
		return true
	case *Set:
		b, ok := b.(*Set)
		if !ok {
			return false
		}
		if a.Len() != b.Len() {
			return false
		}
		for _, item := range a.items {
			if !b.Has(item) {
				return false
			}
		}
		return true
	}
	if fa, ok := a.(float64); ok {
		fb, ok := b.(float64)
		return ok && (fa == fb || math.IsNaN(fa) && math.IsNaN(fb))
	}
	return SameValue(a, b)
}
