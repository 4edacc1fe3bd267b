package expr

import (
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

func writeProperty(obj any, key string, v any) error {
	if !vals.IsObject(obj) {
		return newError(ErrInvalidPropertyWrite,
			"cannot write property %q of %s", key, vals.TypeOf(obj))
	}
	if err := vals.SetProperty(obj, key, v); err != nil {
		return newError(ErrInvalidPropertyWrite, "cannot write property %q: %v", key, err)
	}
	return nil
}

func (e *AccessScope) Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	if e.Name == "$host" {
		return newError(ErrHostAssignment, "$host is read-only")
	}
	obj, err := contextOf(s, e.Name, e.Ancestor)
	if err != nil {
		return err
	}
	return writeProperty(obj, e.Name, v)
}

// Assign writes the member. If the object is missing, a new object holding
// the member is assigned to the object expression instead.
func (e *AccessMember) Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	obj, err := e.Object.Evaluate(f|Strict, s, l, nil)
	if err != nil {
		return err
	}
	if vals.IsNullish(obj) {
		return Assign(e.Object, f, s, l, vals.MakeObject(e.Name, v))
	}
	return writeProperty(obj, e.Name, v)
}

func (e *AccessKeyed) Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	obj, err := e.Object.Evaluate(f|Strict, s, l, nil)
	if err != nil {
		return err
	}
	key, err := e.Key.Evaluate(f, s, l, nil)
	if err != nil {
		return err
	}
	return writeProperty(obj, vals.PropertyKey(key), v)
}

// Assign writes v through the value, then through the target.
func (e *Assignment) Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	if err := Assign(e.Value, f, s, l, v); err != nil {
		return err
	}
	return e.Target.Assign(f, s, l, v)
}

// Assign converts v with the converter's FromView, if any, then writes it
// through the converted expression.
func (e *ValueConverter) Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	conv, err := lookup(l, resourceConverter, e.Name)
	if err != nil {
		return err
	}
	if fv, ok := conv.(FromViewConverter); ok {
		args, err := evaluateAll(e.Args, f, s, l, nil)
		if err != nil {
			return err
		}
		if v, err = fv.FromView(v, args...); err != nil {
			return err
		}
	}
	return Assign(e.Expr, f, s, l, v)
}

func (e *BindingBehavior) Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	return Assign(e.Expr, f, s, l, v)
}

// Assign declares the name in the view-local names of s.
func (e *BindingIdentifier) Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	if s == nil {
		return newError(ErrNilScope, "cannot declare %s without a scope", e.Name)
	}
	if s.OverrideContext.Locals == nil {
		s.OverrideContext.Locals = vals.NewObject()
	}
	s.OverrideContext.Locals.RawSet(e.Name, v)
	return nil
}

func (e *ArrayBindingPattern) Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	for i, el := range e.Elements {
		if err := el.Assign(f, s, l, vals.GetProperty(v, float64(i))); err != nil {
			return err
		}
	}
	return nil
}

func (e *ObjectBindingPattern) Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	for i, key := range e.Keys {
		if err := e.Values[i].Assign(f, s, l, vals.GetProperty(v, key)); err != nil {
			return err
		}
	}
	return nil
}
