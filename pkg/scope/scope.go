// Package scope implements the layered name resolution used when evaluating
// expressions.
//
// A Scope pairs a binding context, the object whose properties expressions
// read by default, with an override context holding view-local names such as
// loop variables. Scopes form a chain through their parents; identifier
// lookup walks the chain upward until the name is found or a boundary scope
// is reached.
package scope

import (
	"errors"

	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// ErrNilScope is returned when a lookup is attempted without a scope.
var ErrNilScope = errors.New("scope is nil")

// OverrideContext holds the view-local names of a scope.
type OverrideContext struct {
	// Locals holds the view-local names. It is never nil for override
	// contexts created by this package.
	Locals *vals.Object
	// BindingContext is the binding context of the owning scope.
	BindingContext any
}

// NewOverrideContext creates an override context with the given binding
// context and no locals.
func NewOverrideContext(bindingContext any) *OverrideContext {
	return &OverrideContext{vals.NewObject(), bindingContext}
}

// Scope is a node in the chain of binding contexts.
type Scope struct {
	Parent          *Scope
	BindingContext  any
	OverrideContext *OverrideContext
	// IsBoundary stops identifier lookup from continuing to the parent.
	IsBoundary bool
}

// New creates a root scope for a binding context.
func New(bindingContext any) *Scope {
	return &Scope{nil, bindingContext, NewOverrideContext(bindingContext), false}
}

// NewBoundary creates a root-like scope with a parent that lookups do not
// walk into. The parent is still reachable with $parent.
func NewBoundary(parent *Scope, bindingContext any) *Scope {
	s := FromParent(parent, bindingContext)
	s.IsBoundary = true
	return s
}

// FromParent creates a child scope.
func FromParent(parent *Scope, bindingContext any) *Scope {
	return &Scope{parent, bindingContext, NewOverrideContext(bindingContext), false}
}

// WithLocals creates a child scope sharing the binding context of parent,
// with the given view-local names. Keys and values alternate as in
// vals.MakeObject.
func WithLocals(parent *Scope, kvs ...any) *Scope {
	s := FromParent(parent, parent.BindingContext)
	s.OverrideContext.Locals = vals.MakeObject(kvs...)
	return s
}

// Root returns the topmost scope of the chain.
func (s *Scope) Root() *Scope {
	for s.Parent != nil {
		s = s.Parent
	}
	return s
}

// Context resolves the object that holds name: the locals of an override
// context, or a binding context.
//
// If ancestor is positive, exactly that many levels are skipped upward and
// the name is resolved at that level only; the result is nil if the chain is
// not deep enough. Otherwise the chain is walked from s until a scope holds
// the name, stopping at a boundary scope. If no scope holds the name, the
// binding context of s is returned, so that writes to an unknown name create
// it where the lookup started.
func Context(s *Scope, name string, ancestor int) (any, error) {
	if s == nil {
		return nil, ErrNilScope
	}
	if ancestor > 0 {
		cur := s
		for ; ancestor > 0; ancestor-- {
			cur = cur.Parent
			if cur == nil || cur.OverrideContext == nil {
				return nil, nil
			}
		}
		return pick(cur.OverrideContext, name), nil
	}
	for cur := s; cur != nil; cur = cur.Parent {
		oc := cur.OverrideContext
		if oc == nil {
			break
		}
		if cur.IsBoundary || holds(oc, name) {
			return pick(oc, name), nil
		}
	}
	return s.BindingContext, nil
}

func holds(oc *OverrideContext, name string) bool {
	if oc.Locals != nil && oc.Locals.Has(name) {
		return true
	}
	return vals.IsObject(oc.BindingContext) && vals.HasProperty(oc.BindingContext, name)
}

func pick(oc *OverrideContext, name string) any {
	if oc.Locals != nil && oc.Locals.Has(name) {
		return oc.Locals
	}
	return oc.BindingContext
}

// This returns the binding context ancestor levels above s, or nil if the
// chain is not that deep.
func This(s *Scope, ancestor int) (any, error) {
	if s == nil {
		return nil, ErrNilScope
	}
	for ; ancestor > 0; ancestor-- {
		s = s.Parent
		if s == nil {
			return nil, nil
		}
	}
	return s.BindingContext, nil
}
