package record

import (
	"fmt"
	"reflect"

	"github.com/compose-network/recordstore/internal/errs"
	"github.com/go-viper/mapstructure/v2"
)

// DefaultTree returns the declared defaults of record type t as a tree.
// Pointer-to-struct fields default to nil.
func DefaultTree(t reflect.Type) (map[string]any, error) {
	st, ok := StructType(t)
	if !ok {
		return nil, CheckType(t)
	}
	ptr, err := newWithDefaults(st)
	if err != nil {
		return nil, err
	}
	return structToTree(ptr.Elem())
}

func newWithDefaults(st reflect.Type) (reflect.Value, error) {
	fields, err := Fields(st)
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := reflect.New(st)
	if tags := tagDefaults(fields); len(tags) > 0 {
		if err := decode(tags, ptr.Interface(), true); err != nil {
			return reflect.Value{}, errs.Wrap(errs.InvalidRecord, "defaults", fmt.Errorf("apply default tags of %v: %w", st, err))
		}
	}
	runDefaulters(ptr.Elem(), fields)
	return ptr, nil
}

func tagDefaults(fields []Field) map[string]any {
	out := map[string]any{}
	for _, f := range fields {
		switch {
		case f.Nested():
			if f.Type.Kind() == reflect.Pointer {
				continue
			}
			if nested := tagDefaults(f.Children); len(nested) > 0 {
				out[f.Key] = nested
			}
		case f.HasTag:
			out[f.Key] = f.Default
		}
	}
	return out
}

// runDefaulters calls SetDefaults on nested value records first, then on v.
func runDefaulters(v reflect.Value, fields []Field) {
	for _, f := range fields {
		if !f.Nested() || f.Type.Kind() == reflect.Pointer {
			continue
		}
		runDefaulters(v.FieldByIndex(f.Index), f.Children)
	}
	if d, ok := v.Addr().Interface().(Defaulter); ok {
		d.SetDefaults()
	}
}

// Populate resets target, a non-nil pointer to a struct, to its declared
// defaults and overlays tree on top. Nested records keep the defaults of
// fields tree leaves out; maps and slices in tree replace their defaults.
// Keys without a matching field are ignored.
func Populate(tree map[string]any, target any) error {
	if err := CheckTarget(target); err != nil {
		return err
	}
	rv := reflect.ValueOf(target)
	st := rv.Type().Elem()

	fields, err := Fields(st)
	if err != nil {
		return err
	}
	defaults, err := DefaultTree(st)
	if err != nil {
		return err
	}
	rv.Elem().Set(reflect.Zero(st))
	if err := decode(Merge(fields, defaults, tree), target, false); err != nil {
		return errs.Wrap(errs.Serialization, "populate", fmt.Errorf("decode into %v: %w", st, err))
	}
	return nil
}

func decode(input any, target any, weak bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: weak,
		Squash:           true,
		TagName:          tagName,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
