package record

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/compose-network/recordstore/internal/errs"
)

const (
	tagName    = "mapstructure"
	defaultTag = "default"
	envTag     = "env"
)

// Defaulter is implemented by records that compute their own defaults.
// SetDefaults runs after `default` struct tags have been applied.
type Defaulter interface {
	SetDefaults()
}

// Field describes one declared field of a structured record.
type Field struct {
	// Key is the name the field is stored under in a file.
	Key       string
	GoName    string
	Index     []int
	Type      reflect.Type
	Default   string
	HasTag    bool
	Env       string
	OmitEmpty bool
	// Children is set when the field is a struct or a pointer to a struct.
	Children []Field
}

// Nested reports whether the field holds a nested record.
func (f Field) Nested() bool {
	return f.Children != nil
}

// StructType returns the struct type behind t, dereferencing one pointer.
func StructType(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || isOpaque(t) {
		return nil, false
	}
	return t, true
}

// CheckType fails with errs.InvalidRecord unless t is a struct or a pointer
// to a struct.
func CheckType(t reflect.Type) error {
	if _, ok := StructType(t); !ok {
		return errs.New(errs.InvalidRecord, "check type", fmt.Sprintf("target type must be a struct or pointer to struct, got %v", t))
	}
	return nil
}

// CheckValue fails with errs.InvalidRecord unless v is a struct value or a
// non-nil pointer to one.
func CheckValue(v any) error {
	if _, isType := v.(reflect.Type); isType {
		return errs.New(errs.InvalidRecord, "check value", fmt.Sprintf("value must be a record instance, got type %v", v))
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return errs.New(errs.InvalidRecord, "check value", "value must be a record instance, got nil")
	}
	if _, ok := StructType(rv.Type()); !ok {
		return errs.New(errs.InvalidRecord, "check value", fmt.Sprintf("value must be a struct or pointer to struct, got %T", v))
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return errs.New(errs.InvalidRecord, "check value", fmt.Sprintf("value must be a record instance, got nil %T", v))
	}
	return nil
}

// CheckTarget fails with errs.InvalidRecord unless target is a non-nil
// pointer to a struct.
func CheckTarget(target any) error {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errs.New(errs.InvalidRecord, "check target", fmt.Sprintf("target must be a non-nil pointer to struct, got %T", target))
	}
	return CheckType(rv.Type())
}

// Fields returns the field descriptors of the record type t.
func Fields(t reflect.Type) ([]Field, error) {
	st, ok := StructType(t)
	if !ok {
		return nil, CheckType(t)
	}
	return structFields(st, nil, map[reflect.Type]bool{})
}

func structFields(st reflect.Type, index []int, visiting map[reflect.Type]bool) ([]Field, error) {
	if visiting[st] {
		return nil, errs.New(errs.InvalidRecord, "fields", fmt.Sprintf("recursive record type %v", st))
	}
	visiting[st] = true
	defer delete(visiting, st)

	out := []Field{}
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		key, opts := parseTag(sf)
		if key == "-" {
			continue
		}
		fieldIndex := append(append([]int{}, index...), i)

		if sf.Anonymous && opts.name == "" {
			if inner, ok := StructType(sf.Type); ok && sf.Type.Kind() == reflect.Struct {
				embedded, err := structFields(inner, fieldIndex, visiting)
				if err != nil {
					return nil, err
				}
				out = append(out, embedded...)
				continue
			}
		}

		def, hasDef := sf.Tag.Lookup(defaultTag)
		f := Field{
			Key:       key,
			GoName:    sf.Name,
			Index:     fieldIndex,
			Type:      sf.Type,
			Default:   def,
			HasTag:    hasDef,
			Env:       sf.Tag.Get(envTag),
			OmitEmpty: opts.omitEmpty,
		}
		if inner, ok := StructType(sf.Type); ok {
			children, err := structFields(inner, nil, visiting)
			if err != nil {
				return nil, err
			}
			f.Children = children
		}
		out = append(out, f)
	}
	return out, nil
}

type tagOptions struct {
	name      string
	omitEmpty bool
}

func parseTag(sf reflect.StructField) (string, tagOptions) {
	tag := sf.Tag.Get(tagName)
	parts := strings.Split(tag, ",")
	opts := tagOptions{name: parts[0]}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			opts.omitEmpty = true
		}
	}
	if opts.name == "" {
		return sf.Name, opts
	}
	return opts.name, opts
}
