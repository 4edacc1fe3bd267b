package observation

import "github.com/aurelia/aurelia-sub054/pkg/vals"

// Proxy wraps an object, array, map or set so that reads through it are
// recorded as dependencies of the current connectable of a Tracker. Values
// read through a proxy are themselves wrapped, so observation extends to the
// whole object graph reached through it. Writes go to the wrapped value, with
// proxies in written values unwrapped.
//
// Proxies are created with Tracker.Wrap.
type Proxy struct {
	target  any
	tracker *Tracker
}

// Unwrap returns the wrapped value.
func (p *Proxy) Unwrap() any { return p.target }

// Equal reports whether other wraps the same value.
func (p *Proxy) Equal(other any) bool {
	return vals.Unwrap(other) == p.target
}

// Array methods that read the whole array. Calling them through a proxy
// observes the array's contents and wraps the results.
var observedArrayMethods = map[string]bool{
	"map": true, "filter": true, "find": true, "findIndex": true,
	"indexOf": true, "lastIndexOf": true, "includes": true, "join": true,
	"slice": true, "some": true, "every": true, "forEach": true,
	"reduce": true, "concat": true,
}

// Map and set methods that read the whole collection.
var observedMapSetMethods = map[string]bool{
	"get": true, "has": true, "keys": true, "values": true, "entries": true,
	"forEach": true,
}

// GetProperty implements vals.PropertyGetter.
func (p *Proxy) GetProperty(key any) any {
	c := p.tracker.Current()
	switch t := p.target.(type) {
	case *vals.Object:
		name := vals.PropertyKey(key)
		var v any
		if t.Has(name) {
			v = t.GetWithReceiver(name, p)
		} else {
			v = vals.GetProperty(t, name)
		}
		if c == nil {
			return v
		}
		c.Observe(t, name)
		return p.tracker.Wrap(v)
	case *vals.Array:
		if _, isIndex := vals.ArrayIndex(key); !isIndex {
			name := vals.PropertyKey(key)
			if name == "length" {
				if c != nil {
					c.Observe(t, name)
				}
				return float64(t.Len())
			}
			if m, ok := vals.GetProperty(t, name).(*vals.Method); ok {
				return p.method(m, observedArrayMethods[name])
			}
			return vals.Undefined
		}
		v := vals.GetProperty(t, key)
		if c == nil {
			return v
		}
		c.Observe(t, vals.PropertyKey(key))
		return p.tracker.Wrap(v)
	case *vals.Map, *vals.Set:
		name := vals.PropertyKey(key)
		if name == "size" {
			if c != nil {
				c.ObserveCollection(t.(vals.Collection))
			}
		}
		v := vals.GetProperty(t, name)
		if m, ok := v.(*vals.Method); ok {
			return p.method(m, observedMapSetMethods[name])
		}
		return v
	}
	return vals.GetProperty(p.target, key)
}

// method returns a method to be called on the proxy. Callbacks receive
// wrapped items, and arguments are unwrapped before they reach the target.
// If observed is true, the call observes the target's contents and wraps the
// result.
func (p *Proxy) method(m *vals.Method, observed bool) *vals.Method {
	return vals.NewMethod(m.Name, func(this any, args []any) (any, error) {
		raw := vals.Unwrap(this)
		callArgs := make([]any, len(args))
		for i, arg := range args {
			if cb, ok := vals.ToCallable(arg); ok && observed {
				callArgs[i] = p.wrapCallback(cb, this)
			} else {
				callArgs[i] = vals.Unwrap(arg)
			}
		}
		result, err := m.Call(raw, callArgs)
		if err != nil || !observed {
			return result, err
		}
		if c := p.tracker.Current(); c != nil {
			if coll, ok := raw.(vals.Collection); ok {
				c.ObserveCollection(coll)
			}
			return p.tracker.Wrap(result), nil
		}
		return result, nil
	})
}

// wrapCallback adapts a callback so that it receives wrapped items and the
// proxy in place of the collection, and returns unwrapped results.
func (p *Proxy) wrapCallback(cb vals.Callable, proxy any) vals.Callable {
	return vals.Func(func(this any, args []any) (any, error) {
		wrapped := make([]any, len(args))
		for i, arg := range args {
			if vals.Unwrap(arg) == p.target {
				wrapped[i] = proxy
			} else {
				wrapped[i] = p.tracker.Wrap(arg)
			}
		}
		r, err := cb.Call(this, wrapped)
		return vals.Unwrap(r), err
	})
}

// SetProperty implements vals.PropertySetter.
func (p *Proxy) SetProperty(key, v any) error {
	v = vals.Unwrap(v)
	if o, ok := p.target.(*vals.Object); ok {
		return o.SetWithReceiver(vals.PropertyKey(key), v, p)
	}
	return vals.SetProperty(p.target, key, v)
}

// HasProperty implements vals.PropertyChecker.
func (p *Proxy) HasProperty(key any) bool {
	if c := p.tracker.Current(); c != nil {
		if _, ok := p.target.(*vals.Object); ok {
			c.Observe(p.target, vals.PropertyKey(key))
		}
	}
	return vals.HasProperty(p.target, key)
}
