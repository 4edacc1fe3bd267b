package shell

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aurelia/aurelia-sub054/pkg/binding"
	"github.com/aurelia/aurelia-sub054/pkg/config"
	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/expr/parse"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/platform"
	"github.com/aurelia/aurelia-sub054/pkg/resource"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
	"gopkg.in/yaml.v3"
)

// Runtime keeps what expressions are parsed, bound and evaluated with.
type Runtime struct {
	Parser   *parse.ExpressionParser
	Registry *resource.Registry
	Locator  *observation.ObserverLocator
	Flags    expr.EvalFlags
	// Context is the root binding context.
	Context *vals.Object
}

// NewRuntime creates a Runtime whose timed behaviors and dirty checking run
// on the given queue. It registers the built-in binding behaviors and value
// converters.
func NewRuntime(cfg config.Config, q *platform.Queue, strict bool) (*Runtime, error) {
	reg := resource.New()
	if err := binding.Register(reg, q); err != nil {
		return nil, err
	}
	if err := registerConverters(reg); err != nil {
		return nil, err
	}
	var flags expr.EvalFlags
	if strict || cfg.Evaluation.Strict {
		flags |= expr.Strict
	}
	locator := observation.NewObserverLocator(observation.Config{
		Platform:   q,
		DirtyCheck: cfg.DirtyCheckSettings(),
	})
	return &Runtime{
		Parser:   parse.NewExpressionParser(),
		Registry: reg,
		Locator:  locator,
		Flags:    flags,
		Context:  vals.NewObject(),
	}, nil
}

func (rt *Runtime) options() binding.Options {
	return binding.Options{Locator: rt.Locator, Resources: rt.Registry, Flags: rt.Flags}
}

// Scope returns a scope for the root binding context.
func (rt *Runtime) Scope() *scope.Scope { return scope.New(rt.Context) }

// NewBinding creates a binding of src, parsed as an expression or an
// interpolation, to the "value" property of a new view object. The binding
// is not bound yet.
func (rt *Runtime) NewBinding(src string, interp bool) (binding.Bindable, *vals.Object, observation.Observer, error) {
	view := vals.MakeObject("value", vals.Undefined)
	target, err := rt.Locator.GetAccessor(view, "value")
	if err != nil {
		return nil, nil, nil, err
	}
	if interp {
		in, err := rt.Parser.ParseInterpolation(src)
		if err != nil {
			return nil, nil, nil, err
		}
		if in == nil {
			in = &expr.Interpolation{Parts: []string{src}}
		}
		return binding.NewInterpolationBinding(in, target, rt.options()), view, target, nil
	}
	e, err := rt.Parser.Parse(src, parse.IsProperty)
	if err != nil {
		return nil, nil, nil, err
	}
	return binding.NewPropertyBinding(e, target, binding.ToView, rt.options()), view, target, nil
}

// Evaluate evaluates src once against the root binding context. Binding
// behaviors in src are applied for the duration of the evaluation.
func (rt *Runtime) Evaluate(src string, interp bool) (any, error) {
	b, view, _, err := rt.NewBinding(src, interp)
	if err != nil {
		return nil, err
	}
	if err := b.Bind(rt.Scope()); err != nil {
		return nil, err
	}
	v := view.Get("value")
	return v, b.Unbind()
}

// ReadContext reads a YAML or JSON file holding a mapping, and converts it
// to an object. An empty file yields an empty object.
func ReadContext(path string) (*vals.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseContext(data)
}

func parseContext(data []byte) (*vals.Object, error) {
	var native any
	if err := yaml.Unmarshal(data, &native); err != nil {
		return nil, err
	}
	if native == nil {
		return vals.NewObject(), nil
	}
	obj, ok := vals.FromNative(native).(*vals.Object)
	if !ok {
		return nil, fmt.Errorf("binding context must be a mapping, got %s", vals.Kind(vals.FromNative(native)))
	}
	return obj, nil
}

// Merge updates dst in place to have the properties of src. Nested objects
// are merged recursively, so that observers of their properties stay in
// place. Properties missing from src become undefined.
func Merge(dst, src *vals.Object) error {
	for _, k := range dst.Keys() {
		if !src.HasOwn(k) {
			if err := dst.Set(k, vals.Undefined); err != nil {
				return err
			}
		}
	}
	for _, k := range src.Keys() {
		sv := src.Get(k)
		if dobj, ok := dst.Get(k).(*vals.Object); ok {
			if sobj, ok := sv.(*vals.Object); ok {
				if err := Merge(dobj, sobj); err != nil {
					return err
				}
				continue
			}
		}
		if err := dst.Set(k, sv); err != nil {
			return err
		}
	}
	return nil
}

// Formats a value for output.
func format(v any, asJSON bool) string {
	if asJSON {
		b, err := json.Marshal(vals.ToNative(v))
		if err != nil {
			return fmt.Sprintf("%q", err.Error())
		}
		return string(b)
	}
	if s, ok := v.(string); ok {
		return s
	}
	return vals.Repr(v)
}
