package binding

import (
	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// Core holds the state shared by all kinds of bindings: the expression, the
// scope, the recorded dependencies and the interceptor chain.
type Core struct {
	Expr expr.Expr

	options   Options
	self      Binding
	connector *observation.Connector
	scope     *scope.Scope
	bound     bool
	behaviors map[string]bool
	mode      Mode
	// Mode given to the constructor. Mode behaviors override mode while
	// bound.
	originalMode Mode
	// Outermost interceptor, or self.
	interceptor Binding
	err         error
}

func (c *Core) init(self Binding, e expr.Expr, mode Mode, opts Options) {
	if mode == Default {
		mode = ToView
	}
	c.Expr = e
	c.mode = mode
	c.originalMode = mode
	c.options = opts
	c.self = self
	c.interceptor = self
	c.connector = observation.NewConnector(opts.Locator, handle{c})
}

// Mode returns the current mode.
func (c *Core) Mode() Mode { return c.mode }

// Scope returns the scope the binding is bound to, or nil.
func (c *Core) Scope() *scope.Scope { return c.scope }

// IsBound returns whether the binding is bound.
func (c *Core) IsBound() bool { return c.bound }

// Record returns the record of the dependencies found by the last
// evaluation.
func (c *Core) Record() *observation.BindingObserverRecord { return c.connector.Record }

// Err returns the last error met while handling a change. Such errors have
// no caller to be returned to.
func (c *Core) Err() error { return c.err }

// Interceptor returns the outermost interceptor of the binding, or the
// binding itself if it has none.
func (c *Core) Interceptor() Binding { return c.interceptor }

// AddInterceptor wraps the outermost interceptor with w.
func (c *Core) AddInterceptor(w wrapper) {
	w.setInner(c.interceptor)
	c.interceptor = w
}

// RemoveInterceptor removes w from the interceptor chain, wherever it is.
func (c *Core) RemoveInterceptor(w wrapper) {
	if c.interceptor == Binding(w) {
		c.interceptor = w.inner()
		return
	}
	for b := c.interceptor; b != c.self; {
		outer, ok := b.(wrapper)
		if !ok {
			return
		}
		if outer.inner() == Binding(w) {
			outer.setInner(w.inner())
			return
		}
		b = outer.inner()
	}
}

func (c *Core) markBehavior(name string) bool {
	if c.behaviors[name] {
		return false
	}
	if c.behaviors == nil {
		c.behaviors = make(map[string]bool)
	}
	c.behaviors[name] = true
	return true
}

func (c *Core) unmarkBehavior(name string) { delete(c.behaviors, name) }

// bindExpr starts binding to s, binding the behaviors and converters of the
// expression.
func (c *Core) bindExpr(s *scope.Scope) error {
	c.scope = s
	if err := expr.Bind(c.Expr, c.options.Flags, s, c.options.Resources, handle{c}); err != nil {
		c.scope = nil
		return err
	}
	c.bound = true
	return nil
}

func (c *Core) unbindExpr() error {
	err := expr.Unbind(c.Expr, c.options.Flags, c.scope, c.options.Resources, handle{c})
	c.connector.Record.Clear(true)
	c.scope = nil
	c.bound = false
	return err
}

// evaluate evaluates the expression. If connect is true, the dependencies
// are recorded and the ones no longer reached are dropped.
func (c *Core) evaluate(connect bool) (any, error) {
	if !connect {
		return c.Expr.Evaluate(c.options.Flags, c.scope, c.options.Resources, nil)
	}
	c.connector.Record.NextVersion()
	v, err := c.Expr.Evaluate(c.options.Flags, c.scope, c.options.Resources, c.connector)
	c.connector.Record.Clear(false)
	if observeErr := c.connector.Err(); err == nil {
		err = observeErr
	}
	return v, err
}

func (c *Core) setErr(err error) {
	if err != nil {
		logger.Printf("%s: %v", expr.Unparse(c.Expr), err)
	}
	c.err = err
}

// handle is the face of a binding seen by expressions, behaviors, observers
// and signals. Notifications it receives go through the interceptors.
type handle struct{ c *Core }

func (h handle) HandleChange(newValue, oldValue any, flags observation.Flags) {
	h.c.interceptor.HandleChange(newValue, oldValue, flags)
}

func (h handle) HandleCollectionChange(coll vals.Collection, m *observation.IndexMap, flags observation.Flags) {
	h.c.interceptor.HandleCollectionChange(coll, m, flags)
}

func (h handle) MarkBehavior(name string) bool { return h.c.markBehavior(name) }

func (h handle) UnmarkBehavior(name string) { h.c.unmarkBehavior(name) }

// CoreOf returns the Core of the binding behind b, which is what binding
// behaviors receive.
func CoreOf(b expr.Binding) (*Core, bool) {
	h, ok := b.(handle)
	if !ok {
		return nil, false
	}
	return h.c, true
}

// sourceHandle subscribes to the target of a binding and writes its changes
// back through the interceptors.
type sourceHandle struct{ c *Core }

func (h sourceHandle) HandleChange(newValue, _ any, _ observation.Flags) {
	h.c.setErr(h.c.interceptor.UpdateSource(newValue))
}
