package binding

import (
	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// PropertyBinding binds an expression to a target observer.
type PropertyBinding struct {
	Core
	Target observation.Observer
}

// NewPropertyBinding creates a PropertyBinding. The target is typically
// found with ObserverLocator.GetAccessor or GetObserver; FromView and TwoWay
// bindings need a target that notifies its subscribers.
func NewPropertyBinding(e expr.Expr, target observation.Observer, mode Mode, opts Options) *PropertyBinding {
	b := &PropertyBinding{Target: target}
	b.init(b, e, mode, opts)
	return b
}

// Bind binds the expression to s, then updates the target, the source, or
// both, depending on the mode.
func (b *PropertyBinding) Bind(s *scope.Scope) error {
	if b.bound {
		if b.scope == s {
			return nil
		}
		if err := b.Unbind(); err != nil {
			return err
		}
	}
	if err := b.bindExpr(s); err != nil {
		return err
	}
	logger.Printf("binding %s (%s)", expr.Unparse(b.Expr), b.mode)

	if b.mode&(OneTime|ToView) != 0 {
		v, err := b.evaluate(b.mode&ToView != 0)
		if err == nil {
			err = b.Target.SetValue(v, observation.FlagFromBind)
		}
		if err != nil {
			b.unbindExpr()
			return err
		}
	}
	if b.mode&FromView != 0 {
		b.Target.Subscribe(sourceHandle{&b.Core})
		if b.mode&ToView == 0 {
			if err := b.UpdateSource(b.Target.GetValue()); err != nil {
				b.Target.Unsubscribe(sourceHandle{&b.Core})
				b.unbindExpr()
				return err
			}
		}
	}
	return nil
}

// Unbind unbinds the expression, drops all dependencies and stops
// listening to the target.
func (b *PropertyBinding) Unbind() error {
	if !b.bound {
		return nil
	}
	if b.mode&FromView != 0 {
		b.Target.Unsubscribe(sourceHandle{&b.Core})
	}
	logger.Printf("unbinding %s", expr.Unparse(b.Expr))
	return b.unbindExpr()
}

// HandleChange re-evaluates the expression and updates the target. It is
// called when a dependency changes.
func (b *PropertyBinding) HandleChange(_, _ any, _ observation.Flags) {
	if !b.bound || b.mode&ToView == 0 {
		return
	}
	v, err := b.evaluate(true)
	if err == nil {
		err = b.UpdateTarget(v)
	}
	b.setErr(err)
}

// HandleCollectionChange is like HandleChange.
func (b *PropertyBinding) HandleCollectionChange(vals.Collection, *observation.IndexMap, observation.Flags) {
	b.HandleChange(nil, nil, observation.FlagNone)
}

// UpdateTarget writes v to the target.
func (b *PropertyBinding) UpdateTarget(v any) error {
	return b.Target.SetValue(v, observation.FlagNone)
}

// UpdateSource assigns v through the expression. Value converters in the
// expression convert v with FromView.
func (b *PropertyBinding) UpdateSource(v any) error {
	if !b.bound {
		return ErrNotBound
	}
	return expr.Assign(b.Expr, b.options.Flags, b.scope, b.options.Resources, v)
}
