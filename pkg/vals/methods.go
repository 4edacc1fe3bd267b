package vals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Built-in methods of the builtin types, looked up by GetProperty.
var (
	objectMethods map[string]*Method
	arrayMethods  map[string]*Method
	mapMethods    map[string]*Method
	setMethods    map[string]*Method
	stringMethods map[string]*Method
	numberMethods map[string]*Method
)

func init() {
	objectMethods = methodTable(map[string]func(any, []any) (any, error){
		"hasOwnProperty": func(this any, args []any) (any, error) {
			o, ok := Unwrap(this).(*Object)
			return ok && o.HasOwn(PropertyKey(arg(args, 0))), nil
		},
	})
	arrayMethods = methodTable(map[string]func(any, []any) (any, error){
		"push":        arrayPush,
		"pop":         arrayPop,
		"shift":       arrayShift,
		"unshift":     arrayUnshift,
		"splice":      arraySplice,
		"reverse":     arrayReverse,
		"sort":        arraySort,
		"map":         arrayMap,
		"filter":      arrayFilter,
		"find":        arrayFind,
		"findIndex":   arrayFindIndex,
		"indexOf":     arrayIndexOf,
		"lastIndexOf": arrayLastIndexOf,
		"includes":    arrayIncludes,
		"join":        arrayJoin,
		"slice":       arraySlice,
		"some":        arraySome,
		"every":       arrayEvery,
		"forEach":     arrayForEach,
		"reduce":      arrayReduce,
		"concat":      arrayConcat,
	})
	mapMethods = methodTable(map[string]func(any, []any) (any, error){
		"get":     mapGet,
		"set":     mapSet,
		"has":     mapHas,
		"delete":  mapDelete,
		"clear":   mapClear,
		"keys":    mapKeys,
		"values":  mapValues,
		"entries": mapEntries,
		"forEach": mapForEach,
	})
	setMethods = methodTable(map[string]func(any, []any) (any, error){
		"add":     setAdd,
		"has":     setHas,
		"delete":  setDelete,
		"clear":   setClear,
		"values":  setValues,
		"forEach": setForEach,
	})
	stringMethods = methodTable(map[string]func(any, []any) (any, error){
		"toUpperCase": stringFunc(func(s string, _ []any) (any, error) { return strings.ToUpper(s), nil }),
		"toLowerCase": stringFunc(func(s string, _ []any) (any, error) { return strings.ToLower(s), nil }),
		"trim":        stringFunc(func(s string, _ []any) (any, error) { return strings.TrimSpace(s), nil }),
		"slice":       stringFunc(stringSlice),
		"substring":   stringFunc(stringSubstring),
		"split":       stringFunc(stringSplit),
		"indexOf":     stringFunc(stringIndexOf),
		"includes": stringFunc(func(s string, args []any) (any, error) {
			return strings.Contains(s, ToString(arg(args, 0))), nil
		}),
		"startsWith": stringFunc(func(s string, args []any) (any, error) {
			return strings.HasPrefix(s, ToString(arg(args, 0))), nil
		}),
		"endsWith": stringFunc(func(s string, args []any) (any, error) {
			return strings.HasSuffix(s, ToString(arg(args, 0))), nil
		}),
		"charAt": stringFunc(func(s string, args []any) (any, error) {
			return charAt(s, ToInt(arg(args, 0)), ""), nil
		}),
		"replace": stringFunc(func(s string, args []any) (any, error) {
			return strings.Replace(s, ToString(arg(args, 0)), ToString(arg(args, 1)), 1), nil
		}),
		"padStart": stringFunc(stringPadStart),
	})
	numberMethods = methodTable(map[string]func(any, []any) (any, error){
		"toFixed":  numberToFixed,
		"toString": numberToString,
	})
}

func methodTable(fns map[string]func(any, []any) (any, error)) map[string]*Method {
	methods := make(map[string]*Method, len(fns))
	for name, fn := range fns {
		methods[name] = NewMethod(name, fn)
	}
	return methods
}

// arg returns the i-th argument, or Undefined.
func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return Undefined
}

func thisArray(this any) (*Array, error) {
	a, ok := Unwrap(this).(*Array)
	if !ok {
		return nil, fmt.Errorf("%w: receiver is %s, not array", ErrBadArgument, Kind(this))
	}
	return a, nil
}

func arrayPush(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	return float64(a.Push(args...)), nil
}

func arrayPop(this any, _ []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	return a.Pop(), nil
}

func arrayShift(this any, _ []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	return a.Shift(), nil
}

func arrayUnshift(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	return float64(a.Unshift(args...)), nil
}

func arraySplice(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return NewArray(), nil
	}
	start := ToInt(args[0])
	deleteCount := a.Len()
	if len(args) > 1 {
		deleteCount = ToInt(args[1])
	}
	var items []any
	if len(args) > 2 {
		items = args[2:]
	}
	return NewArray(a.Splice(start, deleteCount, items...)...), nil
}

func arrayReverse(this any, _ []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	a.Reverse()
	return this, nil
}

func arraySort(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	var compare func(x, y any) (float64, error)
	if fn := arg(args, 0); !IsNullish(fn) {
		c, ok := ToCallable(fn)
		if !ok {
			return nil, fmt.Errorf("%w: comparator must be a function", ErrBadArgument)
		}
		compare = func(x, y any) (float64, error) {
			r, err := c.Call(Undefined, []any{x, y})
			if err != nil {
				return 0, err
			}
			return ToNumber(r), nil
		}
	}
	if err := a.Sort(compare); err != nil {
		return nil, err
	}
	return this, nil
}

// iterate calls the callback in args[0] for each item of the receiver with
// (item, index, array), stopping when stop returns true.
func iterate(this any, args []any, stop func(i int, item, result any) bool) error {
	a, err := thisArray(this)
	if err != nil {
		return err
	}
	cb, ok := ToCallable(arg(args, 0))
	if !ok {
		return fmt.Errorf("%w: %s is not a function", ErrBadArgument, Kind(arg(args, 0)))
	}
	for i, item := range a.Items() {
		r, err := cb.Call(arg(args, 1), []any{item, float64(i), this})
		if err != nil {
			return err
		}
		if stop(i, item, r) {
			break
		}
	}
	return nil
}

func arrayMap(this any, args []any) (any, error) {
	var out []any
	err := iterate(this, args, func(_ int, _, r any) bool {
		out = append(out, r)
		return false
	})
	if err != nil {
		return nil, err
	}
	return NewArray(out...), nil
}

func arrayFilter(this any, args []any) (any, error) {
	var out []any
	err := iterate(this, args, func(_ int, item, r any) bool {
		if Truthy(r) {
			out = append(out, item)
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return NewArray(out...), nil
}

func arrayFind(this any, args []any) (any, error) {
	var found any = Undefined
	err := iterate(this, args, func(_ int, item, r any) bool {
		if Truthy(r) {
			found = item
			return true
		}
		return false
	})
	return found, err
}

func arrayFindIndex(this any, args []any) (any, error) {
	found := -1.0
	err := iterate(this, args, func(i int, _, r any) bool {
		if Truthy(r) {
			found = float64(i)
			return true
		}
		return false
	})
	return found, err
}

func arraySome(this any, args []any) (any, error) {
	result := false
	err := iterate(this, args, func(_ int, _, r any) bool {
		result = Truthy(r)
		return result
	})
	return result, err
}

func arrayEvery(this any, args []any) (any, error) {
	result := true
	err := iterate(this, args, func(_ int, _, r any) bool {
		result = Truthy(r)
		return !result
	})
	return result, err
}

func arrayForEach(this any, args []any) (any, error) {
	err := iterate(this, args, func(int, any, any) bool { return false })
	return Undefined, err
}

func arrayReduce(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	cb, ok := ToCallable(arg(args, 0))
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a function", ErrBadArgument, Kind(arg(args, 0)))
	}
	items := a.Items()
	start := 0
	var acc any
	if len(args) > 1 {
		acc = args[1]
	} else {
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: reduce of empty array with no initial value", ErrBadArgument)
		}
		acc = items[0]
		start = 1
	}
	for i := start; i < len(items); i++ {
		acc, err = cb.Call(Undefined, []any{acc, items[i], float64(i), this})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func arrayIndexOf(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	for i, item := range a.items {
		if StrictEqual(item, arg(args, 0)) {
			return float64(i), nil
		}
	}
	return -1.0, nil
}

func arrayLastIndexOf(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	for i := len(a.items) - 1; i >= 0; i-- {
		if StrictEqual(a.items[i], arg(args, 0)) {
			return float64(i), nil
		}
	}
	return -1.0, nil
}

func arrayIncludes(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	target := arg(args, 0)
	for _, item := range a.items {
		if StrictEqual(item, target) || SameValue(item, target) {
			return true, nil
		}
	}
	return false, nil
}

func arrayJoin(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	sep := ","
	if s := arg(args, 0); s != Undefined {
		sep = ToString(s)
	}
	return joinItems(a.items, sep), nil
}

// relativeRange resolves the start and end arguments of slice-like methods.
func relativeRange(args []any, n int) (int, int) {
	start, end := 0, n
	if s := arg(args, 0); s != Undefined {
		start = clampIndex(ToInt(s), n)
	}
	if e := arg(args, 1); e != Undefined {
		end = clampIndex(ToInt(e), n)
	}
	if end < start {
		end = start
	}
	return start, end
}

func arraySlice(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	start, end := relativeRange(args, len(a.items))
	return NewArray(a.items[start:end]...), nil
}

func arrayConcat(this any, args []any) (any, error) {
	a, err := thisArray(this)
	if err != nil {
		return nil, err
	}
	items := a.Items()
	for _, x := range args {
		if other, ok := Unwrap(x).(*Array); ok {
			items = append(items, other.items...)
		} else {
			items = append(items, x)
		}
	}
	return NewArray(items...), nil
}

func thisMap(this any) (*Map, error) {
	m, ok := Unwrap(this).(*Map)
	if !ok {
		return nil, fmt.Errorf("%w: receiver is %s, not map", ErrBadArgument, Kind(this))
	}
	return m, nil
}

func mapGet(this any, args []any) (any, error) {
	m, err := thisMap(this)
	if err != nil {
		return nil, err
	}
	v, _ := m.Get(arg(args, 0))
	return v, nil
}

func mapSet(this any, args []any) (any, error) {
	m, err := thisMap(this)
	if err != nil {
		return nil, err
	}
	return this, m.Set(arg(args, 0), arg(args, 1))
}

func mapHas(this any, args []any) (any, error) {
	m, err := thisMap(this)
	if err != nil {
		return nil, err
	}
	return m.Has(arg(args, 0)), nil
}

func mapDelete(this any, args []any) (any, error) {
	m, err := thisMap(this)
	if err != nil {
		return nil, err
	}
	return m.Delete(arg(args, 0)), nil
}

func mapClear(this any, _ []any) (any, error) {
	m, err := thisMap(this)
	if err != nil {
		return nil, err
	}
	m.Clear()
	return Undefined, nil
}

func mapKeys(this any, _ []any) (any, error) {
	m, err := thisMap(this)
	if err != nil {
		return nil, err
	}
	return NewArray(m.Keys()...), nil
}

func mapValues(this any, _ []any) (any, error) {
	m, err := thisMap(this)
	if err != nil {
		return nil, err
	}
	var values []any
	for _, e := range m.Entries() {
		values = append(values, e.Value)
	}
	return NewArray(values...), nil
}

func mapEntries(this any, _ []any) (any, error) {
	m, err := thisMap(this)
	if err != nil {
		return nil, err
	}
	var entries []any
	for _, e := range m.Entries() {
		entries = append(entries, NewArray(e.Key, e.Value))
	}
	return NewArray(entries...), nil
}

func mapForEach(this any, args []any) (any, error) {
	m, err := thisMap(this)
	if err != nil {
		return nil, err
	}
	cb, ok := ToCallable(arg(args, 0))
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a function", ErrBadArgument, Kind(arg(args, 0)))
	}
	for _, e := range m.Entries() {
		if _, err := cb.Call(arg(args, 1), []any{e.Value, e.Key, this}); err != nil {
			return nil, err
		}
	}
	return Undefined, nil
}

func thisSet(this any) (*Set, error) {
	s, ok := Unwrap(this).(*Set)
	if !ok {
		return nil, fmt.Errorf("%w: receiver is %s, not set", ErrBadArgument, Kind(this))
	}
	return s, nil
}

func setAdd(this any, args []any) (any, error) {
	s, err := thisSet(this)
	if err != nil {
		return nil, err
	}
	return this, s.Add(arg(args, 0))
}

func setHas(this any, args []any) (any, error) {
	s, err := thisSet(this)
	if err != nil {
		return nil, err
	}
	return s.Has(arg(args, 0)), nil
}

func setDelete(this any, args []any) (any, error) {
	s, err := thisSet(this)
	if err != nil {
		return nil, err
	}
	return s.Delete(arg(args, 0)), nil
}

func setClear(this any, _ []any) (any, error) {
	s, err := thisSet(this)
	if err != nil {
		return nil, err
	}
	s.Clear()
	return Undefined, nil
}

func setValues(this any, _ []any) (any, error) {
	s, err := thisSet(this)
	if err != nil {
		return nil, err
	}
	return NewArray(s.Values()...), nil
}

func setForEach(this any, args []any) (any, error) {
	s, err := thisSet(this)
	if err != nil {
		return nil, err
	}
	cb, ok := ToCallable(arg(args, 0))
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a function", ErrBadArgument, Kind(arg(args, 0)))
	}
	for _, v := range s.Values() {
		if _, err := cb.Call(arg(args, 1), []any{v, v, this}); err != nil {
			return nil, err
		}
	}
	return Undefined, nil
}

// stringFunc adapts a function taking the receiver as a string.
func stringFunc(f func(s string, args []any) (any, error)) func(any, []any) (any, error) {
	return func(this any, args []any) (any, error) {
		s, ok := Unwrap(this).(string)
		if !ok {
			s = ToString(this)
		}
		return f(s, args)
	}
}

func stringSlice(s string, args []any) (any, error) {
	rs := []rune(s)
	start, end := relativeRange(args, len(rs))
	return string(rs[start:end]), nil
}

func stringSubstring(s string, args []any) (any, error) {
	rs := []rune(s)
	clamp := func(v any, def int) int {
		if v == Undefined {
			return def
		}
		i := ToInt(v)
		if i < 0 {
			return 0
		}
		if i > len(rs) {
			return len(rs)
		}
		return i
	}
	start, end := clamp(arg(args, 0), 0), clamp(arg(args, 1), len(rs))
	if start > end {
		start, end = end, start
	}
	return string(rs[start:end]), nil
}

func stringSplit(s string, args []any) (any, error) {
	limit := -1
	if l := arg(args, 1); l != Undefined {
		limit = ToInt(l)
	}
	var parts []string
	switch sep := arg(args, 0); sep {
	case Undefined:
		parts = []string{s}
	default:
		sepStr := ToString(sep)
		if sepStr == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			parts = strings.Split(s, sepStr)
		}
	}
	if limit >= 0 && limit < len(parts) {
		parts = parts[:limit]
	}
	items := make([]any, len(parts))
	for i, p := range parts {
		items[i] = p
	}
	return NewArray(items...), nil
}

func stringIndexOf(s string, args []any) (any, error) {
	i := strings.Index(s, ToString(arg(args, 0)))
	if i < 0 {
		return -1.0, nil
	}
	return float64(utf8.RuneCountInString(s[:i])), nil
}

func stringPadStart(s string, args []any) (any, error) {
	target := ToInt(arg(args, 0))
	pad := " "
	if p := arg(args, 1); p != Undefined {
		pad = ToString(p)
	}
	n := utf8.RuneCountInString(s)
	if target <= n || pad == "" {
		return s, nil
	}
	var sb strings.Builder
	for need := target - n; need > 0; {
		for _, r := range pad {
			if need == 0 {
				break
			}
			sb.WriteRune(r)
			need--
		}
	}
	return sb.String() + s, nil
}

func numberToFixed(this any, args []any) (any, error) {
	f := ToNumber(this)
	digits := ToInt(arg(args, 0))
	if digits < 0 || digits > 100 {
		return nil, fmt.Errorf("%w: toFixed() digits must be between 0 and 100", ErrBadArgument)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= 1e21 {
		return FormatNumber(f), nil
	}
	return strconv.FormatFloat(f, 'f', digits, 64), nil
}

func numberToString(this any, args []any) (any, error) {
	f := ToNumber(this)
	radix := 10
	if r := arg(args, 0); r != Undefined {
		radix = ToInt(r)
	}
	if radix < 2 || radix > 36 {
		return nil, fmt.Errorf("%w: radix must be between 2 and 36", ErrBadArgument)
	}
	if radix == 10 || f != math.Trunc(f) || math.IsInf(f, 0) {
		return FormatNumber(f), nil
	}
	return strconv.FormatInt(int64(f), radix), nil
}
