package expr

import (
	"fmt"
	"strings"

	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/resource"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

func id(name string) *AccessScope { return &AccessScope{Name: name} }

func num(f float64) *PrimitiveLiteral { return &PrimitiveLiteral{f} }

func str(s string) *PrimitiveLiteral { return &PrimitiveLiteral{s} }

func bin(op string, l, r Expr) *Binary { return &Binary{op, l, r} }

func member(obj Expr, name string) *AccessMember {
	return &AccessMember{Object: obj, Name: name}
}

func keyed(obj, key Expr) *AccessKeyed { return &AccessKeyed{Object: obj, Key: key} }

func call(obj Expr, name string, args ...Expr) *CallMember {
	return &CallMember{Object: obj, Name: name, Args: args}
}

type upper struct{}

func (upper) ToView(v any, _ ...any) (any, error) { return strings.ToUpper(vals.ToString(v)), nil }

type suffix struct{}

func (suffix) ToView(v any, args ...any) (any, error) {
	return vals.ToString(v) + vals.ToString(args[0]), nil
}

type double struct{}

func (double) ToView(v any, _ ...any) (any, error) { return vals.ToNumber(v) * 2, nil }

func (double) FromView(v any, _ ...any) (any, error) { return vals.ToNumber(v) / 2, nil }

type clock struct{}

func (clock) ToView(v any, _ ...any) (any, error) { return v, nil }

func (clock) Signals() []string { return []string{"tick"} }

type tagBehavior struct {
	bound   [][]any
	unbound int
}

func (b *tagBehavior) Bind(_ EvalFlags, _ *scope.Scope, _ Binding, args ...any) error {
	b.bound = append(b.bound, args)
	return nil
}

func (b *tagBehavior) Unbind(EvalFlags, *scope.Scope, Binding) error {
	b.unbound++
	return nil
}

func newRegistry() *resource.Registry {
	r := resource.New()
	r.Register(resource.ValueConverter, "upper", upper{})
	r.Register(resource.ValueConverter, "suffix", suffix{})
	r.Register(resource.ValueConverter, "double", double{})
	r.Register(resource.ValueConverter, "clock", clock{})
	r.Register(resource.BindingBehavior, "tag", &tagBehavior{})
	r.Register(resource.BindingBehavior, "plain", "plain")
	return r
}

// Returns a binding context shared by most tests. Every call returns fresh
// values.
func newContext() *vals.Object {
	return vals.MakeObject(
		"name", "world",
		"n", 2,
		"zero", 0,
		"obj", vals.MakeObject("a", 1),
		"items", vals.NewArray(1.0, 2.0, 3.0),
		"missing", nil,
		"greet", vals.Func(func(this any, args []any) (any, error) {
			return "hello " + vals.ToString(args[0]), nil
		}),
		"tag", vals.Func(func(_ any, args []any) (any, error) {
			return fmt.Sprint(args[0].(*vals.Array).Len(), len(args)-1), nil
		}),
	)
}

type testBinding struct {
	marks   map[string]bool
	changes int
}

func newTestBinding() *testBinding { return &testBinding{marks: make(map[string]bool)} }

func (b *testBinding) HandleChange(any, any, observation.Flags) { b.changes++ }

func (b *testBinding) MarkBehavior(name string) bool {
	if b.marks[name] {
		return false
	}
	b.marks[name] = true
	return true
}

func (b *testBinding) UnmarkBehavior(name string) { delete(b.marks, name) }

// Records the keys observed, and collections as "collection(len)".
type recorder struct{ deps []string }

func (r *recorder) Observe(_ any, key string) { r.deps = append(r.deps, key) }

func (r *recorder) ObserveCollection(c vals.Collection) {
	r.deps = append(r.deps, fmt.Sprintf("collection(%d)", c.Len()))
}
