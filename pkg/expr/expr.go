// Package expr implements the AST of binding expressions and its evaluation.
//
// Expressions are evaluated against a scope.Scope. Evaluation optionally
// takes an observation.Connectable; every property and collection read made
// while evaluating is then reported to it, which is how bindings learn their
// dependencies.
//
// AST nodes are immutable after parsing and may be shared between bindings.
// The parser lives in the parse subpackage.
package expr

import (
	"github.com/aurelia/aurelia-sub054/pkg/logutil"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/resource"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
)

var logger = logutil.GetLogger("[expr] ")

// Expr is a node of the expression AST.
type Expr interface {
	Kind() Kind
	// Evaluate evaluates the expression. If c is not nil, the properties and
	// collections read are reported to it.
	Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error)
	Accept(v Visitor) error
}

// Assignable is implemented by expressions that can be written through.
type Assignable interface {
	Expr
	Assign(f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error
}

// Binder is implemented by expressions that take part in the lifecycle of
// the binding holding them.
type Binder interface {
	Expr
	Bind(f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error
	Unbind(f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error
}

// EvalFlags control evaluation.
type EvalFlags uint8

// Evaluation flags.
const (
	// MustEvaluate makes calls of missing functions an error, and keeps
	// missing scope values undefined instead of turning them into "".
	MustEvaluate EvalFlags = 1 << iota
	// Strict disables the conveniences for templates: missing values stay
	// undefined and + follows the native operator exactly.
	Strict
)

func (f EvalFlags) lenient() bool { return f&(MustEvaluate|Strict) == 0 }

// ServiceLocator provides the resources named in expressions.
type ServiceLocator interface {
	Get(kind resource.Kind, name string) (any, bool)
	// Signaler returns the Signaler for value converters with signals. It
	// may return nil.
	Signaler() *observation.Signaler
}

type suggester interface {
	Suggest(kind resource.Kind, name string) string
}

// Binding is what expressions need to know of the binding they are bound
// to.
type Binding interface {
	observation.Subscriber
	// MarkBehavior records that the named binding behavior is applied to the
	// binding. It returns false if it already is.
	MarkBehavior(name string) bool
	// UnmarkBehavior undoes MarkBehavior.
	UnmarkBehavior(name string)
}

// ToViewConverter is implemented by value converters that transform values
// read from the model.
type ToViewConverter interface {
	ToView(v any, args ...any) (any, error)
}

// FromViewConverter is implemented by value converters that transform values
// written back to the model.
type FromViewConverter interface {
	FromView(v any, args ...any) (any, error)
}

// SignalingConverter is implemented by value converters whose output depends
// on something that cannot be observed. Bindings using them are refreshed
// when one of the signals is dispatched.
type SignalingConverter interface {
	Signals() []string
}

// Behavior is implemented by binding behaviors that are shared between
// bindings. Behaviors that need per-binding state are instead applied when
// the binding is created, and need not implement it.
type Behavior interface {
	Bind(f EvalFlags, s *scope.Scope, b Binding, args ...any) error
	Unbind(f EvalFlags, s *scope.Scope, b Binding) error
}

// Assign writes v through e, failing if e is not assignable.
func Assign(e Expr, f EvalFlags, s *scope.Scope, l ServiceLocator, v any) error {
	a, ok := e.(Assignable)
	if !ok {
		return newError(ErrNotAssignableKind, "%s is not assignable", e.Kind())
	}
	return a.Assign(f, s, l, v)
}

// Bind binds e if it is a Binder, and does nothing otherwise.
func Bind(e Expr, f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error {
	if binder, ok := e.(Binder); ok {
		return binder.Bind(f, s, l, b)
	}
	return nil
}

// Unbind unbinds e if it is a Binder, and does nothing otherwise.
func Unbind(e Expr, f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error {
	if binder, ok := e.(Binder); ok {
		return binder.Unbind(f, s, l, b)
	}
	return nil
}
