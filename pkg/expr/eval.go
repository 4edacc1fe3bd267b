package expr

import (
	"errors"
	"time"

	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// Methods that read a whole collection. Calling them on an array, map or set
// makes the collection a dependency.
var (
	observedArrayMethods = map[string]bool{
		"map": true, "filter": true, "find": true, "findIndex": true,
		"indexOf": true, "lastIndexOf": true, "includes": true, "join": true,
		"slice": true, "some": true, "every": true, "forEach": true,
		"reduce": true, "concat": true, "sort": true,
	}
	observedMapSetMethods = map[string]bool{
		"get": true, "has": true, "keys": true, "values": true,
		"entries": true, "forEach": true,
	}
)

func observe(c observation.Connectable, obj any, key string) {
	if c != nil && vals.IsObject(obj) && !vals.IsCallable(obj) {
		c.Observe(obj, key)
	}
}

func observeCollection(c observation.Connectable, obj any, method string) {
	if c == nil {
		return
	}
	switch coll := vals.Unwrap(obj).(type) {
	case *vals.Array:
		if observedArrayMethods[method] {
			c.ObserveCollection(coll)
		}
	case *vals.Map, *vals.Set:
		if observedMapSetMethods[method] {
			c.ObserveCollection(coll.(vals.Collection))
		}
	}
}

func evaluateAll(exprs []Expr, f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) ([]any, error) {
	values := make([]any, len(exprs))
	for i, e := range exprs {
		v, err := e.Evaluate(f, s, l, c)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func contextOf(s *scope.Scope, name string, ancestor int) (any, error) {
	obj, err := scope.Context(s, name, ancestor)
	if errors.Is(err, scope.ErrNilScope) {
		return nil, newError(ErrNilScope, "cannot resolve %s without a scope", name)
	}
	return obj, err
}

func (e *AccessThis) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	obj, err := scope.This(s, e.Ancestor)
	if err != nil {
		return nil, newError(ErrNilScope, "cannot resolve $this without a scope")
	}
	return obj, nil
}

func (e *AccessScope) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	obj, err := contextOf(s, e.Name, e.Ancestor)
	if err != nil {
		return nil, err
	}
	observe(c, obj, e.Name)
	v := vals.GetProperty(obj, e.Name)
	if vals.IsNullish(v) {
		if e.Name == "$host" {
			return nil, newError(ErrHostNotFound,
				"$host is not available here; it is only set inside projected content")
		}
		if f.lenient() {
			return "", nil
		}
	}
	return v, nil
}

func (e *AccessGlobal) Evaluate(EvalFlags, *scope.Scope, ServiceLocator, observation.Connectable) (any, error) {
	if v, ok := globals[e.Name]; ok {
		return v, nil
	}
	return vals.Undefined, nil
}

func (e *AccessMember) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	obj, err := e.Object.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	if vals.IsNullish(obj) {
		if f.lenient() && !e.Optional {
			return "", nil
		}
		return vals.Undefined, nil
	}
	observe(c, obj, e.Name)
	return vals.GetProperty(obj, e.Name), nil
}

func (e *AccessKeyed) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	obj, err := e.Object.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	if vals.IsNullish(obj) {
		return vals.Undefined, nil
	}
	key, err := e.Key.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	observe(c, obj, vals.PropertyKey(key))
	return vals.GetProperty(obj, key), nil
}

// callable returns fn as a Callable. A missing function yields nil without
// an error, unless the flags require evaluation.
func callable(f EvalFlags, fn any, name string, optional bool) (vals.Callable, error) {
	if cb, ok := vals.ToCallable(fn); ok {
		return cb, nil
	}
	if vals.IsNullish(fn) && (optional || f&MustEvaluate == 0) {
		return nil, nil
	}
	return nil, newError(ErrNotAFunction, "%s is not a function", name)
}

func (e *CallScope) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	args, err := evaluateAll(e.Args, f, s, l, c)
	if err != nil {
		return nil, err
	}
	obj, err := contextOf(s, e.Name, e.Ancestor)
	if err != nil {
		return nil, err
	}
	fn, err := callable(f, vals.GetProperty(obj, e.Name), e.Name, e.Optional)
	if fn == nil {
		return vals.Undefined, err
	}
	return fn.Call(obj, args)
}

func (e *CallMember) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	obj, err := e.Object.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	args, err := evaluateAll(e.Args, f, s, l, c)
	if err != nil {
		return nil, err
	}
	if vals.IsNullish(obj) && e.OptionalMember {
		return vals.Undefined, nil
	}
	fn, err := callable(f, vals.GetProperty(obj, e.Name), e.Name, e.OptionalCall)
	if fn == nil {
		return vals.Undefined, err
	}
	ret, err := fn.Call(obj, args)
	if err != nil {
		return nil, err
	}
	observeCollection(c, obj, e.Name)
	return ret, nil
}

func (e *CallFunction) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	v, err := e.Func.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	args, err := evaluateAll(e.Args, f, s, l, c)
	if err != nil {
		return nil, err
	}
	fn, err := callable(f, v, "expression", e.Optional)
	if fn == nil {
		return vals.Undefined, err
	}
	return fn.Call(vals.Undefined, args)
}

func (e *Binary) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	left, err := e.Left.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "&&":
		if !vals.Truthy(left) {
			return left, nil
		}
		return e.Right.Evaluate(f, s, l, c)
	case "||":
		if vals.Truthy(left) {
			return left, nil
		}
		return e.Right.Evaluate(f, s, l, c)
	case "??":
		if !vals.IsNullish(left) {
			return left, nil
		}
		return e.Right.Evaluate(f, s, l, c)
	}
	right, err := e.Right.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	return binaryOp(f, e.Op, left, right), nil
}

func binaryOp(f EvalFlags, op string, left, right any) any {
	switch op {
	case "==":
		return vals.LooseEqual(left, right)
	case "!=":
		return !vals.LooseEqual(left, right)
	case "===":
		return vals.StrictEqual(left, right)
	case "!==":
		return !vals.StrictEqual(left, right)
	case "instanceof":
		return vals.InstanceOf(left, right)
	case "in":
		return vals.IsObject(right) && vals.In(left, right)
	case "+":
		return add(f, left, right)
	case "-", "*", "/", "%":
		return vals.Arith(op, left, right)
	case "<", ">", "<=", ">=":
		return vals.Compare(op, left, right)
	}
	logger.Println("unknown binary operator", op)
	return vals.Undefined
}

// add implements +. Unless evaluation is strict, a missing operand is
// treated as 0 when the other operand is a number, and as "" when it is a
// string or a date.
func add(f EvalFlags, left, right any) any {
	if f&Strict == 0 && (!vals.Truthy(left) || !vals.Truthy(right)) {
		if isNumber(left) || isNumber(right) {
			return vals.Add(or(left, 0.0), or(right, 0.0))
		}
		if isStringOrDate(left) || isStringOrDate(right) {
			return vals.Add(or(left, ""), or(right, ""))
		}
	}
	return vals.Add(left, right)
}

func isNumber(v any) bool {
	_, ok := vals.FromGo(v).(float64)
	return ok
}

func isStringOrDate(v any) bool {
	switch v.(type) {
	case string, time.Time, *time.Time:
		return true
	}
	return false
}

// or returns v if it is truthy and fallback otherwise, like v || fallback.
func or(v, fallback any) any {
	if vals.Truthy(v) {
		return v
	}
	return fallback
}

func (e *Unary) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	v, err := e.Operand.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "void":
		return vals.Undefined, nil
	case "typeof":
		return vals.TypeOf(v), nil
	case "!":
		return !vals.Truthy(v), nil
	case "-":
		return -vals.ToNumber(v), nil
	case "+":
		return vals.ToNumber(v), nil
	}
	logger.Println("unknown unary operator", e.Op)
	return vals.Undefined, nil
}

func (e *Conditional) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	cond, err := e.Cond.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	if vals.Truthy(cond) {
		return e.Yes.Evaluate(f, s, l, c)
	}
	return e.No.Evaluate(f, s, l, c)
}

func (e *Assignment) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	v, err := e.Value.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	if e.Op != "" && e.Op != "=" {
		cur, err := e.Target.Evaluate(f, s, l, c)
		if err != nil {
			return nil, err
		}
		v = binaryOp(f, e.Op[:len(e.Op)-1], cur, v)
	}
	if err := e.Target.Assign(f, s, l, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (e *ArrowFunction) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	return vals.Func(func(_ any, args []any) (any, error) {
		bc := vals.NewObject()
		for i, p := range e.Params {
			switch {
			case e.Rest && i == len(e.Params)-1:
				var rest []any
				if i < len(args) {
					rest = args[i:]
				}
				bc.Set(p.Name, vals.NewArray(rest...))
			case i < len(args):
				bc.Set(p.Name, args[i])
			default:
				bc.Set(p.Name, vals.Undefined)
			}
		}
		return e.Body.Evaluate(f, scope.FromParent(s, bc), l, c)
	}), nil
}

func (e *PrimitiveLiteral) Evaluate(EvalFlags, *scope.Scope, ServiceLocator, observation.Connectable) (any, error) {
	return e.Value, nil
}

func (e *ArrayLiteral) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	items, err := evaluateAll(e.Elements, f, s, l, c)
	if err != nil {
		return nil, err
	}
	return vals.NewArray(items...), nil
}

func (e *ObjectLiteral) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	values, err := evaluateAll(e.Values, f, s, l, c)
	if err != nil {
		return nil, err
	}
	obj := vals.NewObject()
	for i, key := range e.Keys {
		obj.RawSet(key, values[i])
	}
	return obj, nil
}

func (e *Template) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	values, err := evaluateAll(e.Exprs, f, s, l, c)
	if err != nil {
		return nil, err
	}
	return concat(e.Cooked, values, vals.ToString), nil
}

func concat(parts []string, values []any, str func(any) string) string {
	n := len(parts[0])
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = str(v)
		n += len(strs[i]) + len(parts[i+1])
	}
	buf := make([]byte, 0, n)
	buf = append(buf, parts[0]...)
	for i, str := range strs {
		buf = append(buf, str...)
		buf = append(buf, parts[i+1]...)
	}
	return string(buf)
}

func (e *TaggedTemplate) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	values, err := evaluateAll(e.Exprs, f, s, l, c)
	if err != nil {
		return nil, err
	}
	v, err := e.Func.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	fn, ok := vals.ToCallable(v)
	if !ok {
		return nil, newError(ErrTagNotAFunction, "tag of template is %s", vals.TypeOf(v))
	}
	cooked := make([]any, len(e.Cooked))
	for i, str := range e.Cooked {
		cooked[i] = str
	}
	return fn.Call(vals.Undefined, append([]any{vals.NewArray(cooked...)}, values...))
}

func (e *ValueConverter) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	conv, err := lookup(l, resourceConverter, e.Name)
	if err != nil {
		return nil, err
	}
	v, err := e.Expr.Evaluate(f, s, l, c)
	if err != nil {
		return nil, err
	}
	tv, ok := conv.(ToViewConverter)
	if !ok {
		return v, nil
	}
	args, err := evaluateAll(e.Args, f, s, l, c)
	if err != nil {
		return nil, err
	}
	return tv.ToView(v, args...)
}

func (e *BindingBehavior) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	return e.Expr.Evaluate(f, s, l, c)
}

// Evaluate evaluates the iterable.
func (e *ForOf) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	return e.Iterable.Evaluate(f, s, l, c)
}

func (e *Interpolation) Evaluate(f EvalFlags, s *scope.Scope, l ServiceLocator, c observation.Connectable) (any, error) {
	values, err := evaluateAll(e.Exprs, f, s, l, c)
	if err != nil {
		return nil, err
	}
	return concat(e.Parts, values, safeString), nil
}

func safeString(v any) string {
	if vals.IsNullish(v) {
		return ""
	}
	return vals.ToString(v)
}

// Evaluate returns the declared name.
func (e *BindingIdentifier) Evaluate(EvalFlags, *scope.Scope, ServiceLocator, observation.Connectable) (any, error) {
	return e.Name, nil
}

func (e *ArrayBindingPattern) Evaluate(EvalFlags, *scope.Scope, ServiceLocator, observation.Connectable) (any, error) {
	return vals.Undefined, nil
}

func (e *ObjectBindingPattern) Evaluate(EvalFlags, *scope.Scope, ServiceLocator, observation.Connectable) (any, error) {
	return vals.Undefined, nil
}

func (e *Custom) Evaluate(EvalFlags, *scope.Scope, ServiceLocator, observation.Connectable) (any, error) {
	return e.Value, nil
}
