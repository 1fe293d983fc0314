package record

import (
	"encoding"
	"fmt"
	"reflect"
	"time"

	"github.com/compose-network/recordstore/internal/errs"
)

var (
	timeType          = reflect.TypeOf(time.Time{})
	durationType      = reflect.TypeOf(time.Duration(0))
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// isOpaque reports struct types that are stored as a single scalar.
func isOpaque(t reflect.Type) bool {
	return t == timeType || t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType)
}

// ToTree converts a record into a format-native tree of maps, slices and
// scalars keyed by field key.
func ToTree(v any) (map[string]any, error) {
	if err := CheckValue(v); err != nil {
		return nil, err
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	return structToTree(rv)
}

func structToTree(rv reflect.Value) (map[string]any, error) {
	fields, err := Fields(rv.Type())
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			// nil embedded pointer; nothing to encode
			continue
		}
		if f.OmitEmpty && fv.IsZero() {
			continue
		}
		value, err := valueToTree(fv)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		out[f.Key] = value
	}
	return out, nil
}

func valueToTree(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	switch v.Type() {
	case timeType:
		return v.Interface().(time.Time).Format(time.RFC3339Nano), nil
	case durationType:
		return time.Duration(v.Int()).String(), nil
	}
	if k := v.Kind(); k != reflect.Pointer && k != reflect.Interface && v.Type().Implements(textMarshalerType) {
		return marshalText(v)
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		if v.Kind() == reflect.Pointer && v.Type().Implements(textMarshalerType) {
			return marshalText(v)
		}
		return valueToTree(v.Elem())
	case reflect.Struct:
		if isOpaque(v.Type()) {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			return marshalText(ptr)
		}
		return structToTree(v)
	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			value, err := valueToTree(iter.Value())
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(iter.Key().Interface())] = value
		}
		return out, nil
	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			value, err := valueToTree(v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return out, nil
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	default:
		return nil, errs.New(errs.Serialization, "encode", fmt.Sprintf("unsupported value of kind %s", v.Kind()))
	}
}

func marshalText(v reflect.Value) (any, error) {
	text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// Merge overlays a record tree on a copy of base. Only nested records, as
// described by fields, merge key by key; every other overlay value,
// including maps and slices, replaces the base value wholesale.
func Merge(fields []Field, base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	children := make(map[string][]Field)
	for _, f := range fields {
		if f.Nested() {
			children[f.Key] = f.Children
		}
	}
	for k, v := range overlay {
		nested, isRecord := children[k]
		next, isMap := v.(map[string]any)
		current, hasCurrent := out[k].(map[string]any)
		if isRecord && isMap && hasCurrent {
			out[k] = Merge(nested, current, next)
			continue
		}
		out[k] = v
	}
	return out
}

// Normalize turns maps with non-string keys, as produced by YAML documents,
// into map[string]any recursively.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = Normalize(inner)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = Normalize(inner)
		}
		return out
	case []any:
		for i, inner := range t {
			t[i] = Normalize(inner)
		}
		return t
	default:
		return v
	}
}
