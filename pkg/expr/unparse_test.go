package expr

import (
	"testing"

	. "github.com/aurelia/aurelia-sub054/pkg/tt"
)

func TestUnparse(t *testing.T) {
	Test(t, Fn("Unparse", Unparse), Table{
		Args(bin("+", num(1), bin("*", num(2), id("x")))).Rets("(1 + (2 * x))"),
		Args(&Unary{"typeof", id("x")}).Rets("(typeof x)"),
		Args(&Unary{"!", id("x")}).Rets("(!x)"),
		Args(&Conditional{id("a"), num(1), num(2)}).Rets("(a ? 1 : 2)"),

		Args(&AccessThis{}).Rets("$this"),
		Args(&AccessThis{Ancestor: 1}).Rets("$parent"),
		Args(&AccessThis{Ancestor: 2}).Rets("$parent.$parent"),
		Args(&AccessScope{Name: "x", Ancestor: 2}).Rets("$parent.$parent.x"),
		Args(&AccessGlobal{Name: "Math"}).Rets("Math"),
		Args(member(keyed(id("a"), str("b")), "c")).Rets("a['b'].c"),
		Args(&AccessKeyed{Object: id("a"), Key: num(0), Optional: true}).Rets("a?.[0]"),
		Args(&CallScope{Name: "f", Args: []Expr{num(1), id("y")}, Ancestor: 1}).Rets("$parent.f(1, y)"),
		Args(&CallMember{Object: id("a"), Name: "b", OptionalMember: true, OptionalCall: true}).
			Rets("a?.b?.()"),
		Args(&CallFunction{Func: member(id("a"), "b"), Args: []Expr{}}).Rets("a.b()"),
		Args(member(num(1), "x")).Rets("(1).x"),
		Args(&Unary{"-", &CallMember{Object: num(1), Name: "toFixed", Args: []Expr{num(2)}}}).
			Rets("(-(1).toFixed(2))"),
		Args(member(num(1.5), "x")).Rets("1.5.x"),
		Args(member(num(1e21), "x")).Rets("1e+21.x"),

		Args(&Assignment{Target: id("a"), Value: &Assignment{Target: id("b"), Value: num(1), Op: "="}, Op: "="}).
			Rets("a = (b = 1)"),
		Args(&Assignment{Target: id("a"), Value: num(1), Op: "+="}).Rets("a += 1"),
		Args(&ArrowFunction{Params: []*BindingIdentifier{{"x"}, {"r"}}, Body: id("x"), Rest: true}).
			Rets("(x, ...r) => x"),
		Args(&CallFunction{Func: &ArrowFunction{Body: num(1)}}).Rets("(() => 1)()"),

		Args(str("it's")).Rets(`'it\'s'`),
		Args(str("a\nb")).Rets(`'a\nb'`),
		Args(num(1.5)).Rets("1.5"),
		Args(True).Rets("true"),
		Args(Null).Rets("null"),
		Args(Undefined).Rets("undefined"),
		Args(&ArrayLiteral{[]Expr{num(1), str("a")}}).Rets("[1, 'a']"),
		Args(&ObjectLiteral{[]string{"a", "b-c", "1"}, []Expr{num(1), num(2), num(3)}}).
			Rets("{a: 1, 'b-c': 2, 1: 3}"),
		Args(&Template{[]string{"a`", ""}, []Expr{id("x")}}).Rets("`a\\`${x}`"),
		Args(&TaggedTemplate{Cooked: []string{"a"}, Func: id("tag")}).Rets("tag`a`"),
		Args(&Interpolation{[]string{"a", "b"}, []Expr{id("x")}}).Rets("a${x}b"),

		Args(&BindingBehavior{
			Expr: &ValueConverter{Expr: id("x"), Name: "upper", Args: []Expr{num(1)}},
			Name: "debounce", Args: []Expr{num(100)},
		}).Rets("x|upper:1&debounce:100"),
		Args(&ForOf{Declaration: &BindingIdentifier{"item"}, Iterable: id("items")}).Rets("item of items"),
		Args(&ForOf{
			Declaration: &ArrayBindingPattern{[]Assignable{&BindingIdentifier{"k"}, &BindingIdentifier{"v"}}},
			Iterable:    id("m"),
		}).Rets("[k, v] of m"),
		Args(&ObjectBindingPattern{[]string{"a"}, []Assignable{&BindingIdentifier{"b"}}}).Rets("{a: b}"),
	})
}
