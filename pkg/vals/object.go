package vals

// Object is a mutable, ordered collection of named properties with an
// optional prototype. It is the value model's equivalent of a plain
// JavaScript object.
//
// Properties are either data properties, holding a value, or accessor
// properties, defined by an Accessor. A property can additionally carry an
// Interceptor, which takes over reads and writes; this is how observers
// attach to a property without replacing it.
//
// Objects are not safe for concurrent use.
type Object struct {
	proto     *Object
	keys      []string
	props     map[string]*property
	observers map[string]any
}

type property struct {
	value       any
	accessor    *Accessor
	interceptor Interceptor
}

// Accessor defines an accessor property.
type Accessor struct {
	// Get computes the value of the property. The receiver is the value the
	// property was read through, which may be a proxy of the object.
	Get func(this any) any
	// Set is called when the property is written. If Set is nil, the property
	// is read-only.
	Set func(this any, v any) error
	// Configurable marks an accessor that may be replaced by an observer that
	// caches its value.
	Configurable bool
	// Observer, if not nil, provides a custom observer for the property. It
	// is the hook used by the computed property protocol; the returned value
	// must be an observer understood by the observer locator.
	Observer func(obj *Object) any
}

// Interceptor takes over the reads and writes of a property.
type Interceptor interface {
	InterceptGet() any
	InterceptSet(v any) error
}

// NewObject creates a new empty Object.
func NewObject() *Object {
	return &Object{props: make(map[string]*property)}
}

// NewObjectWithProto creates a new empty Object with the given prototype.
func NewObjectWithProto(proto *Object) *Object {
	o := NewObject()
	o.proto = proto
	return o
}

// MakeObject creates a new Object from alternating keys and values. Values are
// converted with FromGo. It panics if a key is not a string.
func MakeObject(kvs ...any) *Object {
	if len(kvs)%2 != 0 {
		panic("odd number of arguments to MakeObject")
	}
	o := NewObject()
	for i := 0; i < len(kvs); i += 2 {
		o.define(kvs[i].(string), &property{value: FromGo(kvs[i+1])})
	}
	return o
}

// Proto returns the prototype of the object, or nil.
func (o *Object) Proto() *Object { return o.proto }

// SetProto sets the prototype of the object.
func (o *Object) SetProto(proto *Object) { o.proto = proto }

func (o *Object) define(key string, p *property) {
	if _, ok := o.props[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.props[key] = p
}

// Keys returns the names of the own properties in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of own properties.
func (o *Object) Len() int { return len(o.keys) }

// HasOwn returns whether the object has an own property with the given name.
func (o *Object) HasOwn(key string) bool {
	_, ok := o.props[key]
	return ok
}

// Has returns whether the object or one of its prototypes has a property with
// the given name.
func (o *Object) Has(key string) bool {
	for p := o; p != nil; p = p.proto {
		if p.HasOwn(key) {
			return true
		}
	}
	return false
}

// Lookup finds the property with the given name on the object or its
// prototype chain. It returns the accessor of the property (nil for a data
// property), the object that owns the property, and whether it was found.
func (o *Object) Lookup(key string) (accessor *Accessor, owner *Object, ok bool) {
	for p := o; p != nil; p = p.proto {
		if prop, found := p.props[key]; found {
			return prop.accessor, p, true
		}
	}
	return nil, nil, false
}

// Get returns the value of a property, or Undefined if it does not exist.
func (o *Object) Get(key string) any {
	return o.GetWithReceiver(key, o)
}

// GetWithReceiver is like Get, but calls accessor getters with the given
// receiver.
func (o *Object) GetWithReceiver(key string, receiver any) any {
	for p := o; p != nil; p = p.proto {
		prop, ok := p.props[key]
		if !ok {
			continue
		}
		if prop.interceptor != nil && p == o {
			return prop.interceptor.InterceptGet()
		}
		if prop.accessor != nil {
			if prop.accessor.Get == nil {
				return Undefined
			}
			return prop.accessor.Get(receiver)
		}
		return prop.value
	}
	return Undefined
}

// Set writes a property. Writes to an intercepted property are handed to the
// interceptor. Writes to an accessor property, on the object itself or on
// its prototype chain, call the setter. Other writes create or update an own
// data property.
func (o *Object) Set(key string, v any) error {
	return o.SetWithReceiver(key, v, o)
}

// SetWithReceiver is like Set, but calls accessor setters with the given
// receiver.
func (o *Object) SetWithReceiver(key string, v any, receiver any) error {
	v = FromGo(v)
	if prop, ok := o.props[key]; ok && prop.interceptor != nil {
		return prop.interceptor.InterceptSet(v)
	}
	if accessor, _, ok := o.Lookup(key); ok && accessor != nil {
		if accessor.Set == nil {
			return ErrNoSetter
		}
		return accessor.Set(receiver, v)
	}
	o.RawSet(key, v)
	return nil
}

// RawGet returns the value of an own data property, bypassing interceptors.
// It returns Undefined for missing and accessor properties.
func (o *Object) RawGet(key string) any {
	if prop, ok := o.props[key]; ok && prop.accessor == nil {
		return prop.value
	}
	return Undefined
}

// RawSet sets the value of an own data property, bypassing interceptors. An
// accessor property with the same name is replaced by a data property.
func (o *Object) RawSet(key string, v any) {
	if prop, ok := o.props[key]; ok {
		prop.value = v
		prop.accessor = nil
		return
	}
	o.define(key, &property{value: v})
}

// Define defines an accessor property, replacing any existing own property
// with the same name.
func (o *Object) Define(key string, a Accessor) {
	var interceptor Interceptor
	if prop, ok := o.props[key]; ok {
		interceptor = prop.interceptor
	}
	o.define(key, &property{accessor: &a, interceptor: interceptor})
}

// Delete removes an own property. It returns whether the property existed.
func (o *Object) Delete(key string) bool {
	if _, ok := o.props[key]; !ok {
		return false
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Intercept installs an interceptor on a property. If the object has no own
// property with the name, an own data property is created, initialized with
// the value inherited from the prototype chain (or Undefined). Passing nil
// removes the interceptor.
func (o *Object) Intercept(key string, i Interceptor) {
	prop, ok := o.props[key]
	if !ok {
		if i == nil {
			return
		}
		prop = &property{value: o.Get(key)}
		o.define(key, prop)
	}
	prop.interceptor = i
}

// Observer returns the observer cached for the given property, or nil.
func (o *Object) Observer(key string) any {
	return o.observers[key]
}

// SetObserver caches an observer for the given property.
func (o *Object) SetObserver(key string, obs any) {
	if o.observers == nil {
		o.observers = make(map[string]any)
	}
	o.observers[key] = obs
}

// Equal reports whether other is an Object with deeply equal own data
// properties. It lets go-cmp compare objects without walking observers.
func (o *Object) Equal(other any) bool {
	return DeepEqual(o, other)
}
