// Package binding implements connectable bindings between expressions and
// targets.
//
// A binding evaluates an expression against a scope while recording its
// dependencies, writes the result to a target, and re-evaluates when one of
// the dependencies changes. Bindings with the FromView mode also write
// changes of the target back through the expression.
//
// Binding behaviors may wrap a binding with interceptors. Notifications
// from observers, signals and the target always enter a binding through its
// outermost interceptor.
package binding

import (
	"errors"

	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/logutil"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
)

var logger = logutil.GetLogger("[binding] ")

// Errors.
var (
	ErrNotBound     = errors.New("binding is not bound")
	ErrNoSource     = errors.New("binding cannot update its source")
	ErrNoSignalName = errors.New("signal binding behavior requires at least one signal name")
	ErrNotABinding  = errors.New("binding behavior applied to a value that is not a binding")
)

// Bindable is implemented by everything that can be bound to a scope,
// including InterpolationBinding, which receives no notifications itself.
type Bindable interface {
	// Bind binds to a scope. Binding an already bound binding to another
	// scope unbinds it first.
	Bind(s *scope.Scope) error
	// Unbind undoes Bind.
	Unbind() error
}

// Binding is the interface shared by bindings and the interceptors wrapping
// them.
type Binding interface {
	Bindable
	observation.Subscriber
	observation.CollectionSubscriber
	// UpdateTarget writes a value to the target.
	UpdateTarget(v any) error
	// UpdateSource writes a value back through the expression.
	UpdateSource(v any) error
}

// Mode is the direction of the data flow of a PropertyBinding.
type Mode uint8

// Modes.
const (
	// Default is replaced with ToView when a binding is created.
	Default Mode = 0
	// OneTime writes the target once when bound.
	OneTime Mode = 1 << (iota - 1)
	// ToView writes the target whenever the expression changes.
	ToView
	// FromView writes the source whenever the target changes.
	FromView
	// TwoWay combines ToView and FromView.
	TwoWay = ToView | FromView
)

func (m Mode) String() string {
	switch m {
	case Default:
		return "default"
	case OneTime:
		return "oneTime"
	case ToView:
		return "toView"
	case FromView:
		return "fromView"
	case TwoWay:
		return "twoWay"
	}
	return "!(bad mode)"
}

// Options are shared by the constructors of bindings.
type Options struct {
	// Locator provides the observers of dependencies. Required.
	Locator *observation.ObserverLocator
	// Resources resolves value converters and binding behaviors.
	Resources expr.ServiceLocator
	// Flags are used for every evaluation.
	Flags expr.EvalFlags
}
