package expr

import "github.com/aurelia/aurelia-sub054/pkg/vals"

// AccessThis is $this, or $parent repeated Ancestor times.
type AccessThis struct {
	Ancestor int
}

// AccessScope is a name looked up in the scope chain, possibly prefixed with
// $parent Ancestor times.
type AccessScope struct {
	Name     string
	Ancestor int
}

// AccessGlobal is a name of the global environment, such as Math or JSON.
type AccessGlobal struct {
	Name string
}

// AccessMember is obj.name or obj?.name.
type AccessMember struct {
	Object   Expr
	Name     string
	Optional bool
}

// AccessKeyed is obj[key] or obj?.[key].
type AccessKeyed struct {
	Object   Expr
	Key      Expr
	Optional bool
}

// CallScope is a call of a function found in the scope chain.
type CallScope struct {
	Name     string
	Args     []Expr
	Ancestor int
	Optional bool
}

// CallMember is obj.name(args). OptionalMember is set for obj?.name(args)
// and OptionalCall for obj.name?.(args).
type CallMember struct {
	Object         Expr
	Name           string
	Args           []Expr
	OptionalMember bool
	OptionalCall   bool
}

// CallFunction is a call of the value of an arbitrary expression.
type CallFunction struct {
	Func     Expr
	Args     []Expr
	Optional bool
}

// Binary is a binary operation.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

// Unary is a unary operation: !, -, +, typeof or void.
type Unary struct {
	Op      string
	Operand Expr
}

// Conditional is cond ? yes : no.
type Conditional struct {
	Cond Expr
	Yes  Expr
	No   Expr
}

// Assignment is target = value, or a compound assignment such as
// target += value.
type Assignment struct {
	Target Assignable
	Value  Expr
	Op     string
}

// ArrowFunction is (params) => body.
type ArrowFunction struct {
	Params []*BindingIdentifier
	Body   Expr

	// Rest is set if the last parameter collects the remaining arguments.
	Rest bool
}

// PrimitiveLiteral is a literal of a primitive value: a string, a number, a
// boolean, null (nil) or undefined.
type PrimitiveLiteral struct {
	Value any
}

// Shared literals.
var (
	EmptyString = &PrimitiveLiteral{""}
	Undefined   = &PrimitiveLiteral{vals.Undefined}
	Null        = &PrimitiveLiteral{nil}
	True        = &PrimitiveLiteral{true}
	False       = &PrimitiveLiteral{false}
)

// ArrayLiteral is [elements...].
type ArrayLiteral struct {
	Elements []Expr
}

// ObjectLiteral is {key: value, ...}.
type ObjectLiteral struct {
	Keys   []string
	Values []Expr
}

// Template is a template literal. Cooked has one more element than Exprs.
type Template struct {
	Cooked []string
	Exprs  []Expr
}

// TaggedTemplate is a template literal preceded by a function to call.
type TaggedTemplate struct {
	Cooked []string
	Raw    []string
	Func   Expr
	Exprs  []Expr
}

// ValueConverter is expr | name : args.
type ValueConverter struct {
	Expr Expr
	Name string
	Args []Expr
}

// BindingBehavior is expr & name : args.
type BindingBehavior struct {
	Expr Expr
	Name string
	Args []Expr
}

// ForOf is the declaration of an iteration: declaration of iterable.
type ForOf struct {
	Declaration Assignable
	Iterable    Expr
}

// Interpolation is text with embedded ${expressions}. Parts has one more
// element than Exprs.
type Interpolation struct {
	Parts []string
	Exprs []Expr
}

// BindingIdentifier is a name declared by a for-of statement or an arrow
// function.
type BindingIdentifier struct {
	Name string
}

// ArrayBindingPattern is a destructuring declaration [a, b].
type ArrayBindingPattern struct {
	Elements []Assignable
}

// ObjectBindingPattern is a destructuring declaration {a, b: c}.
type ObjectBindingPattern struct {
	Keys   []string
	Values []Assignable
}

// Custom wraps a value provided by Go code rather than parsed.
type Custom struct {
	Value any
}

func (*AccessThis) Kind() Kind           { return KindAccessThis }
func (*AccessScope) Kind() Kind          { return KindAccessScope }
func (*AccessGlobal) Kind() Kind         { return KindAccessGlobal }
func (*AccessMember) Kind() Kind         { return KindAccessMember }
func (*AccessKeyed) Kind() Kind          { return KindAccessKeyed }
func (*CallScope) Kind() Kind            { return KindCallScope }
func (*CallMember) Kind() Kind           { return KindCallMember }
func (*CallFunction) Kind() Kind         { return KindCallFunction }
func (*Binary) Kind() Kind               { return KindBinary }
func (*Unary) Kind() Kind                { return KindUnary }
func (*Conditional) Kind() Kind          { return KindConditional }
func (*Assignment) Kind() Kind           { return KindAssign }
func (*ArrowFunction) Kind() Kind        { return KindArrowFunction }
func (*PrimitiveLiteral) Kind() Kind     { return KindPrimitiveLiteral }
func (*ArrayLiteral) Kind() Kind         { return KindArrayLiteral }
func (*ObjectLiteral) Kind() Kind        { return KindObjectLiteral }
func (*Template) Kind() Kind             { return KindTemplate }
func (*TaggedTemplate) Kind() Kind       { return KindTaggedTemplate }
func (*ValueConverter) Kind() Kind       { return KindValueConverter }
func (*BindingBehavior) Kind() Kind      { return KindBindingBehavior }
func (*ForOf) Kind() Kind                { return KindForOf }
func (*Interpolation) Kind() Kind        { return KindInterpolation }
func (*BindingIdentifier) Kind() Kind    { return KindBindingIdentifier }
func (*ArrayBindingPattern) Kind() Kind  { return KindArrayBindingPattern }
func (*ObjectBindingPattern) Kind() Kind { return KindObjectBindingPattern }
func (*Custom) Kind() Kind               { return KindCustom }
