package vals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Unwrapper is implemented by values that wrap another value, such as
// observation proxies. Built-in operations act on the wrapped value.
type Unwrapper interface {
	Unwrap() any
}

// Unwrap returns the value wrapped by v, or v itself.
func Unwrap(v any) any {
	for {
		u, ok := v.(Unwrapper)
		if !ok {
			return v
		}
		v = u.Unwrap()
	}
}

// Truthy converts a value to a boolean.
func Truthy(v any) bool {
	switch v := FromGo(v).(type) {
	case nil, UndefinedType:
		return false
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	}
	return true
}

// ToNumber converts a value to a number.
func ToNumber(v any) float64 {
	switch v := FromGo(Unwrap(v)).(type) {
	case nil:
		return 0
	case UndefinedType:
		return math.NaN()
	case bool:
		if v {
			return 1
		}
		return 0
	case float64:
		return v
	case string:
		return parseNumber(v)
	case time.Time:
		return float64(v.UnixMilli())
	}
	p := ToPrimitive(v, "number")
	if IsObject(p) {
		return math.NaN()
	}
	return ToNumber(p)
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if strings.ContainsRune(s, '_') {
				return math.NaN()
			}
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r == '.' || r == 'e' || r == 'E' || r == '+' || r == '-') {
			return math.NaN()
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToInt converts a value to an integer, truncating toward zero. NaN converts
// to 0.
func ToInt(v any) int {
	f := ToNumber(v)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

// FormatNumber formats a number the way JavaScript does.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + exp
}

// ToString converts a value to a string.
func ToString(v any) string {
	switch v := FromGo(Unwrap(v)).(type) {
	case nil:
		return "null"
	case UndefinedType:
		return "undefined"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return FormatNumber(v)
	case string:
		return v
	case *Array:
		return joinItems(v.items, ",")
	case *Map:
		return "[object Map]"
	case *Set:
		return "[object Set]"
	case time.Time:
		return v.Format("Mon Jan 02 2006 15:04:05 GMT-0700")
	case *Object:
		return ToString(ToPrimitive(v, "string"))
	case Callable:
		return "function () { [native code] }"
	case fmt.Stringer:
		return v.String()
	}
	if IsCallable(v) {
		return "function () { [native code] }"
	}
	return fmt.Sprint(v)
}

func joinItems(items []any, sep string) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString(sep)
		}
		if !IsNullish(item) {
			sb.WriteString(ToString(item))
		}
	}
	return sb.String()
}

// ToPrimitive converts an object to a primitive value. The hint is "number",
// "string" or "default". Objects are converted by calling their valueOf and
// toString methods, in an order depending on the hint; if neither produces a
// primitive, the result is "[object Object]". Values that are not objects are
// returned unchanged.
func ToPrimitive(v any, hint string) any {
	v = FromGo(Unwrap(v))
	switch v := v.(type) {
	case *Array:
		return ToString(v)
	case time.Time:
		if hint == "number" {
			return float64(v.UnixMilli())
		}
		return ToString(v)
	case *Object:
		order := []string{"valueOf", "toString"}
		if hint == "string" {
			order = []string{"toString", "valueOf"}
		}
		for _, name := range order {
			fn := v.Get(name)
			if !IsCallable(fn) {
				continue
			}
			r, err := Call(fn, v, nil)
			if err == nil && !IsObject(r) {
				return r
			}
		}
		return "[object Object]"
	}
	return v
}

// isDateLike reports whether a value is a date.
func isDateLike(v any) bool {
	_, ok := Unwrap(v).(time.Time)
	return ok
}
