package tt

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// Records the messages passed to Errorf.
type recorder []string

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

func concat(a, b string) string { return a + b }

func splitKey(key string) (string, string) {
	obj, prop, _ := strings.Cut(key, ".")
	return obj, prop
}

var errNegative = errors.New("negative")

func index(i int) (int, error) {
	if i < 0 {
		return -1, fmt.Errorf("index %d: %w", i, errNegative)
	}
	return i, nil
}

func kind(v any) string { return fmt.Sprintf("%T", v) }

func TestTest_Pass(t *testing.T) {
	var r recorder
	Test(&r, Fn("splitKey", splitKey), Table{
		Args("user.name").Rets("user", "name"),
		Args("user").Rets("user", ""),
	})
	Test(&r, Fn("index", index), Table{
		Args(3).Rets(3, nil),
		Args(-1).Rets(Any, ErrorIs(errNegative)),
		Args(-2).Rets(-1, AnyError),
	})
	// A nil argument becomes the zero value of the parameter type.
	Test(&r, Fn("kind", kind), Table{
		Args(nil).Rets("<nil>"),
	})
	if len(r) > 0 {
		t.Errorf("Test reported errors for passing cases: %v", r)
	}
}

func TestTest_Fail(t *testing.T) {
	tests := []struct {
		name       string
		fn         *FnToTest
		c          *Case
		wantPrefix string
	}{
		{"one return value", Fn("concat", concat),
			Args("a", "b").Rets("ba"),
			`concat(a, b) returns (-Wanted +Actual):` + "\n"},
		{"multiple return values", Fn("splitKey", splitKey),
			Args("a.b").Rets("a", "c"),
			`splitKey(a.b) returns (-Wanted +Actual):` + "\n"},
		{"custom formats", Fn("splitKey", splitKey).ArgsFmt("key = %q").RetsFmt("(%q, %q)"),
			Args("a.b").Rets("a", "c"),
			`splitKey(key = "a.b") returns (-Wanted +Actual):` + "\n"},
		{"error matcher", Fn("index", index),
			Args(1).Rets(1, AnyError),
			`index(1) returns (-Wanted +Actual):` + "\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var r recorder
			Test(&r, test.fn, Table{test.c})
			switch len(r) {
			case 0:
				t.Errorf("Test reported no error for a failing case")
			case 1:
				if !strings.HasPrefix(r[0], test.wantPrefix) {
					t.Errorf("got message %q, want prefix %q", r[0], test.wantPrefix)
				}
			default:
				t.Errorf("Test reported %d errors, want 1: %v", len(r), r)
			}
		})
	}
}
