package binding

import (
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// Interceptor wraps a binding and forwards every method to it. Interceptors
// embed it and override the methods they intercept.
type Interceptor struct {
	Inner Binding
}

func (i *Interceptor) HandleChange(newValue, oldValue any, flags observation.Flags) {
	i.Inner.HandleChange(newValue, oldValue, flags)
}

func (i *Interceptor) HandleCollectionChange(c vals.Collection, m *observation.IndexMap, flags observation.Flags) {
	i.Inner.HandleCollectionChange(c, m, flags)
}

func (i *Interceptor) Bind(s *scope.Scope) error { return i.Inner.Bind(s) }

func (i *Interceptor) Unbind() error { return i.Inner.Unbind() }

func (i *Interceptor) UpdateTarget(v any) error { return i.Inner.UpdateTarget(v) }

func (i *Interceptor) UpdateSource(v any) error { return i.Inner.UpdateSource(v) }

func (i *Interceptor) inner() Binding { return i.Inner }

func (i *Interceptor) setInner(b Binding) { i.Inner = b }

// Implemented by everything embedding *Interceptor or Interceptor.
type wrapper interface {
	Binding
	inner() Binding
	setInner(b Binding)
}
