package expr

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// IsGlobal reports whether name refers to the global environment in
// expressions.
func IsGlobal(name string) bool {
	_, ok := globals[name]
	return ok
}

var globals map[string]any

func init() {
	globals = map[string]any{
		"Infinity":   math.Inf(1),
		"NaN":        math.NaN(),
		"isNaN":      global("isNaN", func(v any) any { return math.IsNaN(vals.ToNumber(v)) }),
		"isFinite":   global("isFinite", isFinite),
		"parseFloat": global("parseFloat", parseFloat),
		"parseInt":   vals.NewMethod("parseInt", parseInt),
		"Number":     global("Number", func(v any) any { return vals.ToNumber(v) }),
		"String":     global("String", func(v any) any { return vals.ToString(v) }),
		"Boolean":    global("Boolean", func(v any) any { return vals.Truthy(v) }),
		"Math":       mathObject(),
		"JSON":       jsonObject(),
	}
}

func global(name string, f func(any) any) *vals.Method {
	return vals.NewMethod(name, func(_ any, args []any) (any, error) {
		return f(arg(args, 0)), nil
	})
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return vals.Undefined
}

func isFinite(v any) any {
	f := vals.ToNumber(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parseFloat(v any) any {
	s := strings.TrimSpace(vals.ToString(v))
	end := 0
	for end < len(s) && strings.IndexByte("0123456789+-.eE", s[end]) >= 0 {
		end++
	}
	for ; end > 0; end-- {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f
		}
	}
	if strings.HasPrefix(s, "Infinity") || strings.HasPrefix(s, "+Infinity") {
		return math.Inf(1)
	}
	if strings.HasPrefix(s, "-Infinity") {
		return math.Inf(-1)
	}
	return math.NaN()
}

func parseInt(_ any, args []any) (any, error) {
	s := strings.TrimSpace(vals.ToString(arg(args, 0)))
	base := 0
	if r := arg(args, 1); !vals.IsNullish(r) {
		base = vals.ToInt(r)
	}
	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	if (base == 16 || base == 0) && len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s, base = s[2:], 16
	}
	if base == 0 {
		base = 10
	}
	if base < 2 || base > 36 {
		return math.NaN(), nil
	}
	result, digits := 0.0, 0
scan:
	for _, r := range strings.ToLower(s) {
		var d int
		switch {
		case '0' <= r && r <= '9':
			d = int(r - '0')
		case 'a' <= r && r <= 'z':
			d = int(r-'a') + 10
		default:
			d = base
		}
		if d >= base {
			break scan
		}
		result = result*float64(base) + float64(d)
		digits++
	}
	if digits == 0 {
		return math.NaN(), nil
	}
	return sign * result, nil
}

func mathObject() *vals.Object {
	unary := func(name string, f func(float64) float64) (string, *vals.Method) {
		return name, global(name, func(v any) any { return f(vals.ToNumber(v)) })
	}
	fold := func(name string, init float64, f func(a, b float64) float64) *vals.Method {
		return vals.NewMethod(name, func(_ any, args []any) (any, error) {
			acc := init
			for _, a := range args {
				n := vals.ToNumber(a)
				if math.IsNaN(n) {
					return math.NaN(), nil
				}
				acc = f(acc, n)
			}
			return acc, nil
		})
	}
	m := vals.MakeObject(
		"PI", math.Pi,
		"E", math.E,
		"max", fold("max", math.Inf(-1), math.Max),
		"min", fold("min", math.Inf(1), math.Min),
		"pow", vals.NewMethod("pow", func(_ any, args []any) (any, error) {
			return math.Pow(vals.ToNumber(arg(args, 0)), vals.ToNumber(arg(args, 1))), nil
		}),
	)
	for _, def := range []struct {
		name string
		f    func(float64) float64
	}{
		{"abs", math.Abs}, {"ceil", math.Ceil}, {"floor", math.Floor},
		{"round", func(x float64) float64 { return math.Floor(x + 0.5) }},
		{"sign", sign}, {"sqrt", math.Sqrt}, {"trunc", math.Trunc},
	} {
		name, method := unary(def.name, def.f)
		m.RawSet(name, method)
	}
	return m
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x
}

func jsonObject() *vals.Object {
	return vals.MakeObject(
		"stringify", vals.NewMethod("stringify", func(_ any, args []any) (any, error) {
			v := arg(args, 0)
			if vals.IsCallable(v) || v == vals.Undefined {
				return vals.Undefined, nil
			}
			indent := ""
			if space := arg(args, 2); !vals.IsNullish(space) {
				if n, ok := space.(float64); ok {
					indent = strings.Repeat(" ", int(n))
				} else {
					indent = vals.ToString(space)
				}
			}
			var data []byte
			var err error
			if indent == "" {
				data, err = json.Marshal(vals.ToNative(v))
			} else {
				data, err = json.MarshalIndent(vals.ToNative(v), "", indent)
			}
			if err != nil {
				return nil, err
			}
			return string(data), nil
		}),
		"parse", vals.NewMethod("parse", func(_ any, args []any) (any, error) {
			var v any
			if err := json.Unmarshal([]byte(vals.ToString(arg(args, 0))), &v); err != nil {
				return nil, err
			}
			return vals.FromNative(v), nil
		}),
	)
}
