package diag

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/aurelia/aurelia-sub054/pkg/tt"
)

func TestContext_Show(t *testing.T) {
	show := func(src string, from, to int) string {
		return NewContext("[expr]", src, Ranging{from, to}).Show(false)
	}
	Test(t, Fn("Show", show), Table{
		Args("a + b", 2, 3).Rets("[expr], line 1 col 3: a <+> b"),
		Args("a +", 3, 3).Rets("[expr], line 1 col 4: a +<^>"),
		Args("x\ny.z", 3, 4).Rets("[expr], line 2 col 2: y<.>z"),
		Args("abc", 5, 6).Rets("[expr], invalid position 5-6"),
		Args("abc", -1, -1).Rets("[expr], unknown position"),
	})
}

func TestContext_Position(t *testing.T) {
	c := NewContext("x", "a\n你好 b", Ranging{9, 10})
	line, col := c.Position()
	if line != 2 || col != 4 {
		t.Errorf("Position() = (%d, %d), want (2, 4)", line, col)
	}
}

var errTestCode = NewCode(42, "test failure")

func TestError(t *testing.T) {
	err := &Error{
		Type:    "parse error",
		Code:    errTestCode,
		Message: "bad thing",
		Context: *NewContext("[expr]", "a b", Ranging{2, 3}),
	}
	if got, want := err.Error(), "parse error: AUR0042: 2-3 in [expr]: bad thing"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, errTestCode) {
		t.Errorf("errors.Is(err, code) = false, want true")
	}
	var buf bytes.Buffer
	ShowError(&buf, err, false)
	want := "parse error AUR0042: bad thing\n  [expr], line 1 col 3: a <b>\n"
	if buf.String() != want {
		t.Errorf("ShowError wrote %q, want %q", buf.String(), want)
	}
}
