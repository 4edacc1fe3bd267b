package vals

import (
	"errors"
	"fmt"
	"reflect"
)

// Callable wraps the Call method.
type Callable interface {
	// Call calls the receiver with a this value and arguments.
	Call(this any, args []any) (any, error)
}

// Func adapts an ordinary function to a Callable.
//
// Func values are not comparable with ==; use SameValue to compare values
// that may hold them.
type Func func(this any, args []any) (any, error)

// Call calls f.
func (f Func) Call(this any, args []any) (any, error) { return f(this, args) }

// Method is a named built-in method. Unlike Func, *Method values can be
// compared with ==, so reading the same method twice yields identical values.
type Method struct {
	Name string
	fn   func(this any, args []any) (any, error)
}

// NewMethod creates a new built-in method.
func NewMethod(name string, fn func(this any, args []any) (any, error)) *Method {
	return &Method{name, fn}
}

// Call calls the method.
func (m *Method) Call(this any, args []any) (any, error) { return m.fn(this, args) }

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ErrArgCount is returned when a Go function is called with the wrong number
// of arguments.
var ErrArgCount = errors.New("wrong number of arguments")

// ToCallable returns a Callable for v, which may be a Callable or a Go
// function value. Go functions are called with their arguments converted
// with ScanToGo; a trailing error return value is propagated.
func ToCallable(v any) (Callable, bool) {
	switch v := v.(type) {
	case Callable:
		return v, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func {
		return nil, false
	}
	return goFunc{rv}, true
}

// IsCallable returns whether v can be called.
func IsCallable(v any) bool {
	_, ok := ToCallable(v)
	return ok
}

// Call calls v, which must be callable.
func Call(v any, this any, args []any) (any, error) {
	c, ok := ToCallable(v)
	if !ok {
		return nil, fmt.Errorf("%s is not a function", Kind(v))
	}
	return c.Call(this, args)
}

type goFunc struct{ fn reflect.Value }

func (f goFunc) Call(_ any, args []any) (any, error) {
	return callReflect(f.fn, args)
}

// callReflect calls a Go function value. Missing arguments are filled with
// zero values; extra arguments are ignored, unless the function is variadic.
func callReflect(fn reflect.Value, args []any) (any, error) {
	t := fn.Type()
	nfixed := t.NumIn()
	if t.IsVariadic() {
		nfixed--
	}
	in := make([]reflect.Value, 0, len(args))
	for i := 0; i < nfixed; i++ {
		var arg any = Undefined
		if i < len(args) {
			arg = args[i]
		}
		v, err := convertArg(arg, t.In(i))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, v)
	}
	if t.IsVariadic() {
		elem := t.In(nfixed).Elem()
		for i := nfixed; i < len(args); i++ {
			v, err := convertArg(args[i], elem)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in = append(in, v)
		}
	}
	outs := fn.Call(in)
	if n := len(outs); n > 0 && t.Out(n-1) == errorType {
		if err := outs[n-1].Interface(); err != nil {
			return nil, err.(error)
		}
		outs = outs[:n-1]
	}
	switch len(outs) {
	case 0:
		return Undefined, nil
	case 1:
		return FromGo(outs[0].Interface()), nil
	default:
		results := make([]any, len(outs))
		for i, out := range outs {
			results[i] = out.Interface()
		}
		return NewArray(results...), nil
	}
}

// convertArg converts a value to a reflect.Value of type t, applying the
// numeric conversions expected from a dynamically typed caller.
func convertArg(v any, t reflect.Type) (reflect.Value, error) {
	if IsNullish(v) {
		if v != nil && t.Kind() == reflect.Interface && reflect.TypeOf(v).Implements(t) {
			return reflect.ValueOf(v).Convert(t), nil
		}
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		if t.Kind() == reflect.Interface {
			return rv.Convert(t), nil
		}
		return rv, nil
	}
	if f, ok := v.(float64); ok {
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if f != float64(int64(f)) {
				return reflect.Value{}, fmt.Errorf("%w: %v is not an integer", ErrBadArgument, f)
			}
			return reflect.ValueOf(int64(f)).Convert(t), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			if f < 0 || f != float64(uint64(f)) {
				return reflect.Value{}, fmt.Errorf("%w: %v is not a non-negative integer", ErrBadArgument, f)
			}
			return reflect.ValueOf(uint64(f)).Convert(t), nil
		case reflect.Float32, reflect.Float64:
			return reflect.ValueOf(f).Convert(t), nil
		}
	}
	if t.Kind() == reflect.String {
		return reflect.ValueOf(ToString(v)).Convert(t), nil
	}
	if t.Kind() == reflect.Bool {
		return reflect.ValueOf(Truthy(v)), nil
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: need %s, got %s", ErrBadArgument, t, Kind(v))
}
