package vals

import (
	"errors"
	"testing"

	. "github.com/aurelia/aurelia-sub054/pkg/tt"
)

type person struct {
	Name  string
	Age   int
	Email string `json:"mail"`
	tags  []string
}

func (p *person) Greet(greeting string) string { return greeting + ", " + p.Name }

func (p *person) Fail() error { return errors.New("failed") }

func TestGetProperty(t *testing.T) {
	proto := MakeObject("inherited", "yes")
	obj := NewObjectWithProto(proto)
	obj.RawSet("own", 1.0)
	p := &person{Name: "Ada", Age: 36, Email: "ada@example.com"}

	Test(t, Fn("GetProperty", GetProperty), Table{
		Args(obj, "own").Rets(1.0),
		Args(obj, "inherited").Rets("yes"),
		Args(obj, "missing").Rets(Undefined),
		Args(NewArray("a", "b"), 1).Rets("b"),
		Args(NewArray("a", "b"), "1").Rets("b"),
		Args(NewArray("a", "b"), 2).Rets(Undefined),
		Args(NewArray("a", "b"), "length").Rets(2.0),
		Args(MakeMap("k", 1), "size").Rets(1.0),
		Args(NewSet(1, 2), "size").Rets(2.0),
		Args("héllo", "length").Rets(5.0),
		Args("héllo", 1).Rets("é"),
		Args(nil, "x").Rets(Undefined),
		Args(Undefined, "x").Rets(Undefined),
		Args(p, "name").Rets("Ada"),
		Args(p, "Age").Rets(36.0),
		Args(p, "mail").Rets("ada@example.com"),
		Args(p, "tags").Rets(Undefined),
		Args(map[string]int{"x": 1}, "x").Rets(1.0),
		Args([]string{"a"}, "length").Rets(1.0),
	})
}

func TestSetProperty(t *testing.T) {
	p := &person{}
	arr := NewArray(1)
	obj := NewObject()
	obj.Define("ro", Accessor{Get: func(any) any { return 1.0 }})

	Test(t, Fn("SetProperty", SetProperty), Table{
		Args(p, "name", "Bob").Rets(nil),
		Args(p, "age", 3).Rets(nil),
		Args(p, "age", "x").Rets(ErrorIs(ErrBadArgument)),
		Args(person{}, "name", "Bob").Rets(ErrorIs(ErrNotSettable)),
		Args(arr, 2, "x").Rets(nil),
		Args(arr, "length", 1).Rets(nil),
		Args(arr, "foo", 1).Rets(ErrorIs(ErrNotSettable)),
		Args(obj, "ro", 2).Rets(ErrorIs(ErrNoSetter)),
		Args(NewMap(), "size", 2).Rets(ErrorIs(ErrNotSettable)),
		Args("str", "x", 1).Rets(ErrorIs(ErrNotObject)),
		Args(nil, "x", 1).Rets(ErrorIs(ErrNotObject)),
	})
	if p.Name != "Bob" || p.Age != 3 {
		t.Errorf("person after writes: %+v", *p)
	}
	if arr.Len() != 1 {
		t.Errorf("array length after truncation: %d", arr.Len())
	}
}

func TestObject_Accessors(t *testing.T) {
	obj := MakeObject("first", "Ada", "last", "Lovelace")
	obj.Define("full", Accessor{
		Get: func(this any) any {
			return ToString(GetProperty(this, "first")) + " " + ToString(GetProperty(this, "last"))
		},
		Set: func(this any, v any) error {
			return SetProperty(this, "first", v)
		},
	})
	child := NewObjectWithProto(obj)
	child.RawSet("first", "Augusta")

	Test(t, Fn("GetProperty", GetProperty), Table{
		Args(obj, "full").Rets("Ada Lovelace"),
		Args(child, "full").Rets("Augusta Lovelace"),
	})
	if err := child.Set("full", "Byron"); err != nil {
		t.Fatal(err)
	}
	if got := child.RawGet("first"); got != "Byron" {
		t.Errorf("setter wrote %v through the child receiver", got)
	}
	if got := obj.RawGet("first"); got != "Ada" {
		t.Errorf("setter changed the prototype: %v", got)
	}
}

type recordingInterceptor struct {
	value any
	sets  []any
}

func (r *recordingInterceptor) InterceptGet() any { return r.value }

func (r *recordingInterceptor) InterceptSet(v any) error {
	r.sets = append(r.sets, v)
	r.value = v
	return nil
}

func TestObject_Intercept(t *testing.T) {
	obj := MakeObject("x", 1)
	ri := &recordingInterceptor{value: obj.RawGet("x")}
	obj.Intercept("x", ri)

	obj.Set("x", 2)
	obj.RawSet("x", 5)
	if got := obj.Get("x"); got != 2.0 {
		t.Errorf("Get through interceptor = %v, want 2", got)
	}
	if len(ri.sets) != 1 {
		t.Errorf("interceptor saw %d sets, want 1", len(ri.sets))
	}
	obj.Intercept("x", nil)
	if got := obj.Get("x"); got != 5.0 {
		t.Errorf("Get after removing interceptor = %v, want 5", got)
	}
}

func TestCallMethods(t *testing.T) {
	call := func(recv any, name string, args ...any) (any, error) {
		return Call(GetProperty(recv, name), recv, args)
	}
	double := Func(func(_ any, args []any) (any, error) { return ToNumber(args[0]) * 2, nil })
	even := Func(func(_ any, args []any) (any, error) { return int(ToNumber(args[0]))%2 == 0, nil })
	sum := Func(func(_ any, args []any) (any, error) { return Add(args[0], args[1]), nil })
	p := &person{Name: "Ada"}

	Test(t, Fn("call", call), Table{
		Args(NewArray(1, 2, 3), "map", double).Rets(NewArray(2, 4, 6), nil),
		Args(NewArray(1, 2, 3), "filter", even).Rets(NewArray(2), nil),
		Args(NewArray(1, 2, 3), "find", even).Rets(2.0, nil),
		Args(NewArray(1, 3), "find", even).Rets(Undefined, nil),
		Args(NewArray(1, 2, 3), "findIndex", even).Rets(1.0, nil),
		Args(NewArray(1, 2, 3), "some", even).Rets(true, nil),
		Args(NewArray(1, 2, 3), "every", even).Rets(false, nil),
		Args(NewArray(1, 2, 3), "reduce", sum).Rets(6.0, nil),
		Args(NewArray(), "reduce", sum, "").Rets("", nil),
		Args(NewArray(), "reduce", sum).Rets(nil, ErrorIs(ErrBadArgument)),
		Args(NewArray(1, 2, 3), "join", "-").Rets("1-2-3", nil),
		Args(NewArray(1, 2, 3), "slice", -2).Rets(NewArray(2, 3), nil),
		Args(NewArray(1, 2, 3), "indexOf", 3).Rets(2.0, nil),
		Args(NewArray(1, 2), "concat", NewArray(3), 4).Rets(NewArray(1, 2, 3, 4), nil),
		Args(MakeMap("a", 1), "get", "a").Rets(1.0, nil),
		Args(MakeMap("a", 1), "entries").Rets(NewArray(NewArray("a", 1)), nil),
		Args(NewSet("a"), "has", "a").Rets(true, nil),
		Args("Hello", "toUpperCase").Rets("HELLO", nil),
		Args("a,b,c", "split", ",").Rets(NewArray("a", "b", "c"), nil),
		Args("hello world", "slice", 0, 5).Rets("hello", nil),
		Args("hello", "substring", 4, 1).Rets("ell", nil),
		Args("5", "padStart", 3, "0").Rets("005", nil),
		Args("a-a", "replace", "a", "b").Rets("b-a", nil),
		Args(3.14159, "toFixed", 2).Rets("3.14", nil),
		Args(255, "toString", 16).Rets("ff", nil),
		Args(p, "greet", "Hi").Rets("Hi, Ada", nil),
		Args(p, "fail").Rets(nil, AnyError),
		Args(MakeObject("a", 1), "hasOwnProperty", "a").Rets(true, nil),
	})
}

func TestRepr(t *testing.T) {
	cyclic := NewArray(1)
	cyclic.Push(cyclic)
	Test(t, Fn("Repr", Repr), Table{
		Args("a\"b").Rets(`"a\"b"`),
		Args(NewArray(1, "x", nil, Undefined)).Rets(`[1, "x", null, undefined]`),
		Args(MakeObject("a", 1, "b-c", true)).Rets(`{ a: 1, "b-c": true }`),
		Args(NewObject()).Rets("{}"),
		Args(MakeMap("k", NewSet(1))).Rets(`Map{"k" => Set{1}}`),
		Args(cyclic).Rets("[1, [Circular]]"),
		Args(GetProperty(NewArray(), "push")).Rets("[Function: push]"),
	})
}
