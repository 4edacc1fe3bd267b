package expr

import (
	"github.com/aurelia/aurelia-sub054/pkg/resource"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
)

const (
	resourceConverter = resource.ValueConverter
	resourceBehavior  = resource.BindingBehavior
)

func lookup(l ServiceLocator, kind resource.Kind, name string) (any, error) {
	if l != nil {
		if v, ok := l.Get(kind, name); ok {
			return v, nil
		}
	}
	code := ErrConverterNotFound
	if kind == resourceBehavior {
		code = ErrBehaviorNotFound
	}
	if sg, ok := l.(suggester); ok {
		if suggestion := sg.Suggest(kind, name); suggestion != "" {
			return nil, newError(code, "%s %q not found, did you mean %q?", kind, name, suggestion)
		}
	}
	return nil, newError(code, "%s %q not found", kind, name)
}

// Bind applies the behavior to b, then binds the inner expression. A
// behavior can only be applied once to a binding.
func (e *BindingBehavior) Bind(f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error {
	behavior, err := lookup(l, resourceBehavior, e.Name)
	if err != nil {
		return err
	}
	if !b.MarkBehavior(e.Name) {
		return newError(ErrBehaviorAlreadyApplied,
			"binding behavior %q is applied more than once to the same binding", e.Name)
	}
	if bb, ok := behavior.(Behavior); ok {
		args, err := evaluateAll(e.Args, f, s, l, nil)
		if err != nil {
			return err
		}
		logger.Printf("binding behavior %q with %d arguments", e.Name, len(args))
		if err := bb.Bind(f, s, b, args...); err != nil {
			return err
		}
	}
	return Bind(e.Expr, f, s, l, b)
}

func (e *BindingBehavior) Unbind(f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error {
	behavior, err := lookup(l, resourceBehavior, e.Name)
	if err != nil {
		return err
	}
	if bb, ok := behavior.(Behavior); ok {
		if err := bb.Unbind(f, s, b); err != nil {
			return err
		}
	}
	b.UnmarkBehavior(e.Name)
	return Unbind(e.Expr, f, s, l, b)
}

// Bind subscribes b to the signals of the converter, then binds the inner
// expression.
func (e *ValueConverter) Bind(f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error {
	conv, err := lookup(l, resourceConverter, e.Name)
	if err != nil {
		return err
	}
	if sc, ok := conv.(SignalingConverter); ok {
		if signaler := l.Signaler(); signaler != nil {
			for _, name := range sc.Signals() {
				signaler.AddSignalListener(name, b)
			}
		}
	}
	return Bind(e.Expr, f, s, l, b)
}

func (e *ValueConverter) Unbind(f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error {
	conv, err := lookup(l, resourceConverter, e.Name)
	if err != nil {
		return err
	}
	if sc, ok := conv.(SignalingConverter); ok {
		if signaler := l.Signaler(); signaler != nil {
			for _, name := range sc.Signals() {
				signaler.RemoveSignalListener(name, b)
			}
		}
	}
	return Unbind(e.Expr, f, s, l, b)
}

func (e *ForOf) Bind(f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error {
	return Bind(e.Iterable, f, s, l, b)
}

func (e *ForOf) Unbind(f EvalFlags, s *scope.Scope, l ServiceLocator, b Binding) error {
	return Unbind(e.Iterable, f, s, l, b)
}
