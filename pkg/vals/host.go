package vals

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Access to Go host values through reflection. A property named "name" maps
// to the exported field or method "Name", to a field tagged json:"name", or
// to the map key "name".

func exportedName(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}

func fieldByKey(t reflect.Type, key string) (reflect.StructField, bool) {
	exported := exportedName(key)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if f.Name == key || f.Name == exported {
			return f, true
		}
		if tag, ok := f.Tag.Lookup("json"); ok {
			if name, _, _ := strings.Cut(tag, ","); name == key {
				return f, true
			}
		}
	}
	return reflect.StructField{}, false
}

func hostGet(v any, key string) (any, bool) {
	rv := reflect.ValueOf(v)
	if m := rv.MethodByName(exportedName(key)); m.IsValid() {
		return goFunc{m}, true
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Undefined, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		if f, ok := fieldByKey(rv.Type(), key); ok {
			return FromGo(rv.FieldByIndex(f.Index).Interface()), true
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Undefined, false
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if mv.IsValid() {
			return FromGo(mv.Interface()), true
		}
	case reflect.Slice, reflect.Array:
		if key == "length" {
			return float64(rv.Len()), true
		}
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < rv.Len() {
			return FromGo(rv.Index(i).Interface()), true
		}
	}
	return Undefined, false
}

func hostSet(v any, key string, val any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ErrNotObject
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		f, ok := fieldByKey(rv.Type(), key)
		if !ok {
			return ErrNotSettable
		}
		fv := rv.FieldByIndex(f.Index)
		if !fv.CanSet() {
			return ErrNotSettable
		}
		cv, err := convertArg(val, fv.Type())
		if err != nil {
			return err
		}
		fv.Set(cv)
		return nil
	case reflect.Map:
		t := rv.Type()
		if t.Key().Kind() != reflect.String || rv.IsNil() {
			return ErrNotSettable
		}
		cv, err := convertArg(val, t.Elem())
		if err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), cv)
		return nil
	case reflect.Slice:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return ErrNotSettable
		}
		cv, err := convertArg(val, rv.Type().Elem())
		if err != nil {
			return err
		}
		rv.Index(i).Set(cv)
		return nil
	}
	return ErrNotSettable
}

func hostKeys(v any) []string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		var keys []string
		for _, f := range reflect.VisibleFields(rv.Type()) {
			if f.IsExported() && !f.Anonymous {
				keys = append(keys, f.Name)
			}
		}
		return keys
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		var keys []string
		iter := rv.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		sort.Strings(keys)
		return keys
	}
	return nil
}
