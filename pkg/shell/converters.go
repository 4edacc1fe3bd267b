package shell

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/aurelia/aurelia-sub054/pkg/resource"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

func registerConverters(r *resource.Registry) error {
	for name, c := range map[string]any{
		"upper":    caseConverter{strings.ToUpper},
		"lower":    caseConverter{strings.ToLower},
		"truncate": truncateConverter{},
		"json":     jsonConverter{},
	} {
		if err := r.Register(resource.ValueConverter, name, c); err != nil {
			return err
		}
	}
	return nil
}

// Converts strings with a case mapping. Nullish values pass through.
type caseConverter struct{ f func(string) string }

func (c caseConverter) ToView(v any, _ ...any) (any, error) {
	if vals.IsNullish(v) {
		return v, nil
	}
	return c.f(vals.ToString(v)), nil
}

// Cuts strings longer than the first argument, 10 by default, and marks the
// cut with an ellipsis.
type truncateConverter struct{}

const defaultTruncateLength = 10

func (truncateConverter) ToView(v any, args ...any) (any, error) {
	if vals.IsNullish(v) {
		return v, nil
	}
	n := defaultTruncateLength
	if len(args) > 0 {
		n = int(vals.ToNumber(args[0]))
	}
	s := vals.ToString(v)
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s, nil
	}
	return string([]rune(s)[:n]) + "…", nil
}

// Converts values to JSON text, and JSON text back to values.
type jsonConverter struct{}

func (jsonConverter) ToView(v any, _ ...any) (any, error) {
	b, err := json.Marshal(vals.ToNative(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (jsonConverter) FromView(v any, _ ...any) (any, error) {
	var native any
	if err := json.Unmarshal([]byte(vals.ToString(v)), &native); err != nil {
		return nil, err
	}
	return vals.FromNative(native), nil
}
