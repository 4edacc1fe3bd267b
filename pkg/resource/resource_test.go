package resource

import (
	"errors"
	"testing"

	. "github.com/aurelia/aurelia-sub054/pkg/tt"
)

func newTestRegistry() *Registry {
	r := New()
	for _, name := range []string{"upper", "lower", "truncate", "json"} {
		r.Register(ValueConverter, name, name)
	}
	r.Register(BindingBehavior, "debounce", "debounce")
	return r
}

func TestRegistry_Get(t *testing.T) {
	r := newTestRegistry()
	child := r.NewChild()
	child.Register(ValueConverter, "upper", "shadowed")
	child.Register(ValueConverter, "title", "title")

	Test(t, Fn("Get", child.Get), Table{
		Args(ValueConverter, "upper").Rets("shadowed", true),
		Args(ValueConverter, "lower").Rets("lower", true),
		Args(ValueConverter, "title").Rets("title", true),
		Args(BindingBehavior, "debounce").Rets("debounce", true),
		Args(BindingBehavior, "upper").Rets(nil, false),
	})
	Test(t, Fn("Get", r.Get), Table{
		Args(ValueConverter, "upper").Rets("upper", true),
		Args(ValueConverter, "title").Rets(nil, false),
	})
	if child.Signaler() != r.Signaler() {
		t.Errorf("child registry has its own signaler")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := newTestRegistry()
	if err := r.Register(ValueConverter, "upper", 1); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate registration returned %v", err)
	}
	if err := r.Register(ValueConverter, "", 1); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name returned %v", err)
	}
	if err := r.Register(ValueConverter, "x", nil); !errors.Is(err, ErrNilValue) {
		t.Errorf("nil value returned %v", err)
	}
}

func TestRegistry_Names(t *testing.T) {
	r := newTestRegistry()
	child := r.NewChild()
	child.Register(ValueConverter, "upper", "shadowed")
	Test(t, Fn("Names", child.Names), Table{
		Args(ValueConverter).Rets([]string{"json", "lower", "truncate", "upper"}),
		Args(Kind(9)).Rets([]string(nil)),
	})
}

func TestRegistry_Suggest(t *testing.T) {
	r := newTestRegistry()
	Test(t, Fn("Suggest", r.Suggest), Table{
		Args(ValueConverter, "uper").Rets("upper"),
		Args(ValueConverter, "trunc").Rets("truncate"),
		Args(ValueConverter, "lowr").Rets("lower"),
		Args(ValueConverter, "jsno").Rets("json"),
		Args(ValueConverter, "xyzzy").Rets(""),
		Args(BindingBehavior, "debunce").Rets("debounce"),
	})
}

func TestKind_String(t *testing.T) {
	Test(t, Fn("String", Kind.String), Table{
		Args(ValueConverter).Rets("value converter"),
		Args(BindingBehavior).Rets("binding behavior"),
		Args(Kind(7)).Rets("!(bad resource kind 7)"),
	})
}
