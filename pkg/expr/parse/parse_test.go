package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/aurelia/aurelia-sub054/pkg/diag"
	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/resource"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	. "github.com/aurelia/aurelia-sub054/pkg/tt"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Parses src as a plain expression and unparses the result, which shows the
// structure of the AST.
func unparse(src string) (string, error) {
	e, err := Parse(src, Plain)
	if err != nil {
		return "", err
	}
	return expr.Unparse(e), nil
}

func TestParse(t *testing.T) {
	Test(t, Fn("unparse", unparse), Table{
		// Precedence and associativity
		Args("1 + 2 * 3").Rets("(1 + (2 * 3))", nil),
		Args("(1 + 2) * 3").Rets("((1 + 2) * 3)", nil),
		Args("a - b - c").Rets("((a - b) - c)", nil),
		Args("a || b && c").Rets("(a || (b && c))", nil),
		Args("a ?? b || c").Rets("(a ?? (b || c))", nil),
		Args("a < b == c > d").Rets("((a < b) == (c > d))", nil),
		Args("a in b").Rets("(a in b)", nil),
		Args("a instanceof b").Rets("(a instanceof b)", nil),
		Args("a % b / c").Rets("((a % b) / c)", nil),
		Args("!a.b").Rets("(!a.b)", nil),
		Args("-x * 2").Rets("((-x) * 2)", nil),
		Args("!!x").Rets("(!(!x))", nil),
		Args("typeof x === 'string'").Rets("((typeof x) === 'string')", nil),
		Args("void 0").Rets("(void 0)", nil),
		Args("a ? b : c ? d : e").Rets("(a ? b : (c ? d : e))", nil),
		Args("a || b ? 1 : 2").Rets("((a || b) ? 1 : 2)", nil),

		// Assignment
		Args("a = b = c").Rets("a = (b = c)", nil),
		Args("a.b += 1").Rets("a.b += 1", nil),
		Args("a[0] *= 2").Rets("a[0] *= 2", nil),
		Args("a = b ? 1 : 2").Rets("a = (b ? 1 : 2)", nil),

		// Arrow functions
		Args("x => x * 2").Rets("(x) => (x * 2)", nil),
		Args("(a, ...rest) => rest").Rets("(a, ...rest) => rest", nil),
		Args("() => 1").Rets("() => 1", nil),
		Args("f(x => x.a)").Rets("f(((x) => x.a))", nil),
		Args("(a)").Rets("a", nil),
		Args("(a, b)").Rets("", AnyError),

		// Member access and calls
		Args("a.b.c").Rets("a.b.c", nil),
		Args("a.typeof").Rets("a.typeof", nil),
		Args("a?.b").Rets("a?.b", nil),
		Args("a?.[0]").Rets("a?.[0]", nil),
		Args("a[b]['c']").Rets("a[b]['c']", nil),
		Args("f(1, 'x')").Rets("f(1, 'x')", nil),
		Args("a.b(c)").Rets("a.b(c)", nil),
		Args("a?.b?.()").Rets("a?.b?.()", nil),
		Args("f?.()").Rets("f?.()", nil),
		Args("a[0](1)").Rets("a[0](1)", nil),
		Args("a?.5:1").Rets("(a ? 0.5 : 1)", nil),
		Args("Math.max(1, 2)").Rets("Math.max(1, 2)", nil),

		// Scope access
		Args("$this").Rets("$this", nil),
		Args("$this.x").Rets("$this.x", nil),
		Args("$parent").Rets("$parent", nil),
		Args("$parent.$parent").Rets("$parent.$parent", nil),
		Args("$parent.$parent.x").Rets("$parent.$parent.x", nil),
		Args("$parent.f()").Rets("$parent.f()", nil),
		Args("$parent.x.y").Rets("$parent.x.y", nil),
		Args("$parent || a").Rets("($parent || a)", nil),

		// Literals
		Args("[1, , 2]").Rets("[1, undefined, 2]", nil),
		Args("[1,]").Rets("[1]", nil),
		Args("[]").Rets("[]", nil),
		Args("{a, 'b-c': 1, 2: x}").Rets("{a: a, 'b-c': 1, 2: x}", nil),
		Args("{}").Rets("{}", nil),
		Args(`'it\'s'`).Rets(`'it\'s'`, nil),
		Args(`"a\nb"`).Rets(`'a\nb'`, nil),
		Args(`'A\x'`).Rets(`'Ax'`, nil),
		Args(".5 + 1e3").Rets("(0.5 + 1000)", nil),
		Args("2.5E-1").Rets("0.25", nil),
		Args("true && null").Rets("(true && null)", nil),
		Args("undefined").Rets("undefined", nil),
		Args("é + 1").Rets("(é + 1)", nil),

		// Templates
		Args("`a${b}c`").Rets("`a${b}c`", nil),
		Args("`a${`b${c}`}`").Rets("`a${`b${c}`}`", nil),
		Args("tag`x${1}`").Rets("tag`x${1}`", nil),
		Args("`a\\`b`").Rets("`a\\`b`", nil),

		// Value converters and binding behaviors
		Args("x | upper | truncate:5").Rets("x|upper|truncate:5", nil),
		Args("x | c:a ? 1 : 2").Rets("x|c:(a ? 1 : 2)", nil),
		Args("x & debounce:100").Rets("x&debounce:100", nil),
		Args("a = b | c & d").Rets("(a = b)|c&d", nil),
	})
}

func TestParse_Errors(t *testing.T) {
	Test(t, Fn("Parse", Parse), Table{
		Args("", Plain).Rets(nil, ErrorIs(ErrEmptyExpression)),
		Args("  ", Plain).Rets(nil, ErrorIs(ErrEmptyExpression)),
		Args(")", Plain).Rets(nil, ErrorIs(ErrInvalidStart)),
		Args("x => {}", Plain).Rets(nil, ErrorIs(ErrInvalidStart)),
		Args("a b", Plain).Rets(nil, ErrorIs(ErrUnconsumedToken)),
		Args("a & b | c", Plain).Rets(nil, ErrorIs(ErrUnconsumedToken)),
		Args("a..b", Plain).Rets(nil, ErrorIs(ErrDoubleDot)),
		Args("$parent..x", Plain).Rets(nil, ErrorIs(ErrDoubleDot)),
		Args("$parent(", Plain).Rets(nil, ErrorIs(ErrInvalidMemberAccess)),
		Args("a +", Plain).Rets(nil, ErrorIs(ErrUnexpectedEnd)),
		Args("a.(", Plain).Rets(nil, ErrorIs(ErrExpectedIdentifier)),
		Args("$parent.1", Plain).Rets(nil, ErrorIs(ErrInvalidMemberAccess)),
		Args("{[a]: 1}", Plain).Rets(nil, ErrorIs(ErrInvalidObjectProperty)),
		Args("{'a'}", Plain).Rets(nil, ErrorIs(ErrInvalidObjectProperty)),
		Args("'abc", Plain).Rets(nil, ErrorIs(ErrUnterminatedQuote)),
		Args("`abc", Plain).Rets(nil, ErrorIs(ErrUnterminatedTemplate)),
		Args("`a${b c}`", Plain).Rets(nil, ErrorIs(ErrUnterminatedTemplate)),
		Args("f(a", Plain).Rets(nil, ErrorIs(ErrMissingToken)),
		Args("a[1", Plain).Rets(nil, ErrorIs(ErrMissingToken)),
		Args("{a: 1 b: 2}", Plain).Rets(nil, ErrorIs(ErrMissingToken)),
		Args("[1 2]", Plain).Rets(nil, ErrorIs(ErrMissingToken)),
		Args("a ? b", Plain).Rets(nil, ErrorIs(ErrMissingToken)),
		Args("a # b", Plain).Rets(nil, ErrorIs(ErrUnexpectedCharacter)),
		Args("1e+", Plain).Rets(nil, ErrorIs(ErrUnexpectedCharacter)),
		Args("a ∑ b", Plain).Rets(nil, ErrorIs(ErrUnexpectedCharacter)),
		Args("1 = 2", Plain).Rets(nil, ErrorIs(ErrNotAssignable)),
		Args("a?.b = 1", Plain).Rets(nil, ErrorIs(ErrNotAssignable)),
		Args("f() = 1", Plain).Rets(nil, ErrorIs(ErrNotAssignable)),
		Args("a of b", Plain).Rets(nil, ErrorIs(ErrUnexpectedOf)),
		Args("of", Plain).Rets(nil, ErrorIs(ErrUnexpectedOf)),
		Args("x | 1", Plain).Rets(nil, ErrorIs(ErrExpectedConverterName)),
		Args("x & 'a'", Plain).Rets(nil, ErrorIs(ErrExpectedBehaviorName)),

		Args("1 of items", IsIterator).Rets(nil, ErrorIs(ErrInvalidForDeclaration)),
		Args("{1: a} of items", IsIterator).Rets(nil, ErrorIs(ErrInvalidForDeclaration)),
		Args("item in items", IsIterator).Rets(nil, ErrorIs(ErrMissingToken)),
		Args("", IsIterator).Rets(nil, ErrorIs(ErrUnexpectedEnd)),

		Args("a ${b", Interpolation).Rets(nil, ErrorIs(ErrUnterminatedInterpolation)),
		Args("${a b}", Interpolation).Rets(nil, ErrorIs(ErrUnconsumedToken)),
		Args("${}", Interpolation).Rets(nil, ErrorIs(ErrInvalidStart)),
	})
}

func TestParse_ErrorContext(t *testing.T) {
	_, err := Parse("a + #", Plain)
	var e *diag.Error
	if !errors.As(err, &e) {
		t.Fatalf("got error %v, want *diag.Error", err)
	}
	if r := e.Range(); r.From != 4 || r.To != 5 {
		t.Errorf("got range %v, want 4-5", r)
	}
	if e.Type != errorType || e.Context.Name != sourceName {
		t.Errorf("got type %q and name %q", e.Type, e.Context.Name)
	}
	if !strings.Contains(err.Error(), "AUR0162") {
		t.Errorf("error %q does not mention the code", err.Error())
	}
}

func TestParse_EmptySource(t *testing.T) {
	for _, typ := range []ExpressionType{IsFunction, IsProperty, IsFunction | IsProperty} {
		e, err := Parse("", typ)
		if e != expr.EmptyString || err != nil {
			t.Errorf("Parse with type %v returned %v, %v", typ, e, err)
		}
	}
}

func TestParse_Custom(t *testing.T) {
	e, err := Parse("anything ) goes", IsCustom)
	if c, ok := e.(*expr.Custom); !ok || c.Value != "anything ) goes" || err != nil {
		t.Errorf("got %#v, %v", e, err)
	}
}

func TestParse_ForOf(t *testing.T) {
	parseForOf := func(src string) (string, error) {
		e, err := Parse(src, IsIterator)
		if err != nil {
			return "", err
		}
		if _, ok := e.(*expr.ForOf); !ok {
			t.Errorf("Parse(%q) returned %T", src, e)
		}
		return expr.Unparse(e), nil
	}
	Test(t, Fn("parseForOf", parseForOf), Table{
		Args("item of items").Rets("item of items", nil),
		Args("item of items | sort & signal:'x'").Rets("item of items|sort&signal:'x'", nil),
		Args("[k, v] of map").Rets("[k, v] of map", nil),
		Args("{a, b: [c, d]} of list").Rets("{a: a, b: [c, d]} of list", nil),
		Args("i of 10").Rets("i of 10", nil),
		Args("item of").Rets("", ErrorIs(ErrUnexpectedEnd)),
		Args("item of items extra").Rets("", ErrorIs(ErrUnconsumedToken)),
	})
}

func TestParse_Interpolation(t *testing.T) {
	parts := func(src string) ([]string, string, error) {
		e, err := Parse(src, Interpolation)
		if e == nil {
			return nil, "", err
		}
		in := e.(*expr.Interpolation)
		return in.Parts, expr.Unparse(e), err
	}
	Test(t, Fn("parts", parts), Table{
		Args("Hello ${name}!").Rets([]string{"Hello ", "!"}, "Hello ${name}!", nil),
		Args("${a}${b}").Rets([]string{"", "", ""}, "${a}${b}", nil),
		Args("${ {a: 1}.a }").Rets([]string{"", ""}, "${{a: 1}.a}", nil),
		Args("${ `t${x}` } x").Rets([]string{"", " x"}, "${`t${x}`} x", nil),
		Args(`tab\t${x}`).Rets([]string{"tab\t", ""}, "tab\t${x}", nil),
		Args("${x | upper}").Rets([]string{"", ""}, "${x|upper}", nil),
		Args("no expressions").Rets([]string(nil), "", nil),
		Args(`\${x}`).Rets([]string(nil), "", nil),
		Args("").Rets([]string(nil), "", nil),
	})
}

type upper struct{}

func (upper) ToView(v any, _ ...any) (any, error) { return strings.ToUpper(vals.ToString(v)), nil }

type truncate struct{}

func (truncate) ToView(v any, args ...any) (any, error) {
	s := vals.ToString(v)
	if n := int(vals.ToNumber(args[0])); n < len(s) {
		return s[:n], nil
	}
	return s, nil
}

type noopBehavior struct{}

func (noopBehavior) Bind(expr.EvalFlags, *scope.Scope, expr.Binding, ...any) error { return nil }

func (noopBehavior) Unbind(expr.EvalFlags, *scope.Scope, expr.Binding) error { return nil }

type binding struct{ marks map[string]bool }

func (b *binding) HandleChange(any, any, observation.Flags) {}

func (b *binding) MarkBehavior(name string) bool {
	if b.marks[name] {
		return false
	}
	b.marks[name] = true
	return true
}

func (b *binding) UnmarkBehavior(name string) { delete(b.marks, name) }

func newRegistry() *resource.Registry {
	r := resource.New()
	r.Register(resource.ValueConverter, "upper", upper{})
	r.Register(resource.ValueConverter, "truncate", truncate{})
	r.Register(resource.BindingBehavior, "debounce", noopBehavior{})
	return r
}

func TestParse_Evaluate(t *testing.T) {
	reg := newRegistry()
	s := scope.New(vals.MakeObject("x", "hello world", "name", "world", "n", nil))
	evaluate := func(src string, typ ExpressionType) (any, error) {
		e, err := Parse(src, typ)
		if err != nil {
			return nil, err
		}
		return e.Evaluate(0, s, reg, nil)
	}
	Test(t, Fn("evaluate", evaluate), Table{
		Args("1 + 2 * 3", Plain).Rets(7.0, nil),
		Args("(1 + 2) * 3", Plain).Rets(9.0, nil),
		Args("x | upper | truncate:5", Plain).Rets("HELLO", nil),
		Args("Hello ${name}!", Interpolation).Rets("Hello world!", nil),
		Args("n + 5", Plain).Rets(5.0, nil),
		Args("'a' + n", Plain).Rets("a", nil),
		Args("[1, 2, 3].length", Plain).Rets(3.0, nil),
		Args("((a, ...r) => r.length)(1, 2, 3)", Plain).Rets(2.0, nil),
	})
}

func TestParse_BehaviorAppliedTwice(t *testing.T) {
	e, err := Parse("x & debounce & debounce", Plain)
	if err != nil {
		t.Fatal(err)
	}
	s := scope.New(vals.MakeObject("x", 1))
	err = expr.Bind(e, 0, s, newRegistry(), &binding{make(map[string]bool)})
	if !errors.Is(err, expr.ErrBehaviorAlreadyApplied) {
		t.Errorf("got error %v, want %v", err, expr.ErrBehaviorAlreadyApplied)
	}
}

func TestExpressionParser(t *testing.T) {
	ep := NewExpressionParser()

	e1, err1 := ep.Parse("a + b", Plain)
	e2, err2 := ep.Parse("a + b", IsProperty)
	if err1 != nil || err2 != nil || e1 != e2 {
		t.Errorf("expressions not shared: %p %p, errors %v %v", e1, e2, err1, err2)
	}

	f1, _ := ep.ParseForOf("item of items")
	f2, _ := ep.Parse("item of items", IsIterator)
	if f1 == nil || expr.Expr(f1) != f2 {
		t.Errorf("for-of not shared: %p %p", f1, f2)
	}

	i1, _ := ep.ParseInterpolation("a${b}")
	i2, _ := ep.Parse("a${b}", Interpolation)
	if i1 == nil || expr.Expr(i1) != i2 {
		t.Errorf("interpolations not shared: %p %p", i1, i2)
	}
	if e, err := ep.Parse("plain text", Interpolation); e != nil || err != nil {
		t.Errorf("text without expressions parsed to %v, %v", e, err)
	}

	for i := 0; i < 2; i++ {
		if _, err := ep.Parse("a +", Plain); !errors.Is(err, ErrUnexpectedEnd) {
			t.Errorf("attempt %d: got error %v", i, err)
		}
	}
	if _, ok := ep.expressions["a +"]; ok {
		t.Errorf("failed parse was cached")
	}
}

var roundTripSources = []string{
	"1 + 2 * 3", "(1 + 2) * 3", "a - b - c", "a || b && c", "a ?? b || c",
	"a < b == c > d", "a in b", "a instanceof b", "!a.b", "-x * 2",
	"typeof a === 'string'", "void 0", "a ? b : c ? d : e", "a = b = c", "a += 1",
	"1.5", "1e21", "0.000001", "'it\\'s'", "\"a\\nb\"", "true", "null", "undefined",
	"[1, 'a', [b]]", "{a: 1, 'b-c': 2, 3: c}", "`a${b}c`", "tag`a${b}`",
	"$this", "$parent.x", "$parent.$parent.f(1)", "a.b[c].d()", "a?.b?.[c]?.()",
	"f(1)(2)", "Math.max(a, b)", "(x, ...r) => x + r.length", "a => a * 2",
	"1 .toFixed(2)", "-1 .toFixed(2)", "(1).x", "1.5.toFixed(1)", "1e21.toString()",
	"x | upper | truncate:5", "x & debounce:100", "x | json & signal:'a':'b'",
}

func TestParse_RoundTrip(t *testing.T) {
	for _, src := range roundTripSources {
		e, err := Parse(src, Plain)
		if err != nil {
			t.Errorf("Parse(%q) -> error %v", src, err)
			continue
		}
		text := expr.Unparse(e)
		again, err := Parse(text, Plain)
		if err != nil {
			t.Errorf("Parse(%q) -> error %v, unparsed from %q", text, err, src)
			continue
		}
		if diff := cmp.Diff(e, again, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Parse(%q) differs from Parse(%q) (-want +got):\n%s", text, src, diff)
		}
	}
}
