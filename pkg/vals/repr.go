package vals

import (
	"sort"
	"strconv"
	"strings"
)

// Repr returns a representation of a value that resembles the source code
// that would produce it. Cycles are shown as "[Circular]".
func Repr(v any) string {
	var sb strings.Builder
	writeRepr(&sb, v, nil)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v any, path []any) {
	v = FromGo(Unwrap(v))
	for _, p := range path {
		if IsObject(v) && identical(p, v) {
			sb.WriteString("[Circular]")
			return
		}
	}
	switch v := v.(type) {
	case string:
		sb.WriteString(strconv.Quote(v))
	case *Array:
		path = append(path, v)
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, item, path)
		}
		sb.WriteByte(']')
	case *Object:
		path = append(path, v)
		if v.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{")
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(" ")
			sb.WriteString(reprKey(k))
			sb.WriteString(": ")
			if v.props[k].accessor != nil {
				sb.WriteString("[Getter]")
				continue
			}
			writeRepr(sb, v.props[k].value, path)
		}
		sb.WriteString(" }")
	case *Map:
		path = append(path, v)
		sb.WriteString("Map{")
		for i, e := range v.Entries() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, e.Key, path)
			sb.WriteString(" => ")
			writeRepr(sb, e.Value, path)
		}
		sb.WriteString("}")
	case *Set:
		path = append(path, v)
		sb.WriteString("Set{")
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, item, path)
		}
		sb.WriteString("}")
	case *Method:
		sb.WriteString("[Function: " + v.Name + "]")
	default:
		if IsCallable(v) {
			sb.WriteString("[Function]")
			return
		}
		if keys := hostKeys(v); keys != nil {
			sort.Strings(keys)
			sb.WriteString("{")
			for i, k := range keys {
				if i > 0 {
					sb.WriteString(",")
				}
				sb.WriteString(" " + reprKey(k) + ": ")
				item, _ := hostGet(v, k)
				writeRepr(sb, item, append(path, v))
			}
			sb.WriteString(" }")
			return
		}
		sb.WriteString(ToString(v))
	}
}

func reprKey(k string) string {
	if k == "" {
		return `""`
	}
	for i, r := range k {
		if !(r == '_' || r == '$' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || i > 0 && r >= '0' && r <= '9') {
			return strconv.Quote(k)
		}
	}
	return k
}
