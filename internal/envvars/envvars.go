// Package envvars maps structured record fields to environment variables
// and builds override trees from them.
//
// Variable names are the upper-cased field key path joined with "_" and
// prefixed with the application prefix, so field database.host of app
// "my-app" reads MY_APP_DATABASE_HOST. An `env:"NAME"` tag replaces the
// computed name (the prefix still applies).
package envvars

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/compose-network/recordstore/internal/codec"
	"github.com/compose-network/recordstore/internal/errs"
	"github.com/compose-network/recordstore/internal/record"
	"github.com/spf13/cast"
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	nameReplacer        = strings.NewReplacer("-", "_", " ", "_", ".", "_")
)

// Lookup has the signature of os.LookupEnv.
type Lookup func(key string) (string, bool)

// Binding ties an environment variable name to a leaf field.
type Binding struct {
	// Path is the chain of field keys from the record root.
	Path []string
	Type reflect.Type
}

// Prefix derives the variable prefix for an application name.
func Prefix(appName string) string {
	return strings.ToUpper(nameReplacer.Replace(appName)) + "_"
}

// Flatten returns the variable name (without prefix) of every leaf field of
// record type t. Two fields mapping to the same name is an error.
func Flatten(t reflect.Type) (map[string]Binding, error) {
	fields, err := record.Fields(t)
	if err != nil {
		return nil, err
	}
	out := map[string]Binding{}
	if err := flatten(fields, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(fields []record.Field, names, keys []string, out map[string]Binding) error {
	for _, f := range fields {
		name := f.Env
		if name == "" {
			name = strings.Join(append(slices.Clone(names), strings.ToUpper(nameReplacer.Replace(f.Key))), "_")
		}
		path := append(slices.Clone(keys), f.Key)

		if f.Nested() {
			if err := flatten(f.Children, []string{name}, path, out); err != nil {
				return err
			}
			continue
		}

		if existing, ok := out[name]; ok {
			return errs.New(errs.EnvVar, "flatten", fmt.Sprintf("env var name collision: %s is used by %s and %s",
				name, strings.Join(existing.Path, "."), strings.Join(path, ".")))
		}
		out[name] = Binding{Path: path, Type: f.Type}
	}
	return nil
}

// Load reads every bound variable that is set and returns them as a tree
// shaped like the record. Conversion failures name the offending variable
// and are joined.
func Load(t reflect.Type, prefix string, lookup Lookup) (map[string]any, error) {
	bindings, err := Flatten(t)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	slices.Sort(names)

	tree := map[string]any{}
	var failures []error
	for _, name := range names {
		raw, ok := lookup(prefix + name)
		if !ok {
			continue
		}
		b := bindings[name]
		value, err := ParseValue(raw, b.Type)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", prefix+name, err))
			continue
		}
		setPath(tree, b.Path, value)
	}
	if len(failures) > 0 {
		return nil, errs.Wrap(errs.EnvVar, "load env", errors.Join(failures...))
	}
	return tree, nil
}

func setPath(tree map[string]any, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		next, ok := tree[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			tree[key] = next
		}
		tree = next
	}
	tree[path[len(path)-1]] = value
}

// Overlay merges env over base for record type t. A nested record that base
// leaves empty, such as a nil pointer, starts from its declared defaults.
func Overlay(t reflect.Type, base, env map[string]any) (map[string]any, error) {
	fields, err := record.Fields(t)
	if err != nil {
		return nil, err
	}
	return overlay(fields, base, env)
}

func overlay(fields []record.Field, base, env map[string]any) (map[string]any, error) {
	out := record.Merge(fields, base, nil)
	for _, f := range fields {
		value, ok := env[f.Key]
		if !ok {
			continue
		}
		nestedEnv, isMap := value.(map[string]any)
		if !f.Nested() || !isMap {
			out[f.Key] = value
			continue
		}
		current, _ := out[f.Key].(map[string]any)
		if current == nil {
			defaults, err := record.DefaultTree(f.Type)
			if err != nil {
				return nil, err
			}
			current = defaults
		}
		merged, err := overlay(f.Children, current, nestedEnv)
		if err != nil {
			return nil, err
		}
		out[f.Key] = merged
	}
	return out, nil
}

// ParseBool accepts true/false, yes/no, on/off and 1/0 in any case.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q, use true/false, yes/no, on/off or 1/0", raw)
	}
}

// ParseValue converts a raw variable value to the tree value for a field of
// type t. Lists, maps and records are read as JSON.
func ParseValue(raw string, t reflect.Type) (any, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == durationType {
		d, err := cast.ToDurationE(raw)
		if err != nil {
			return nil, convertErr(raw, t, err)
		}
		return d.String(), nil
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return raw, nil
	}

	switch t.Kind() {
	case reflect.String:
		return raw, nil
	case reflect.Bool:
		return ParseBool(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := cast.ToInt64E(strings.TrimSpace(raw))
		if err != nil {
			return nil, convertErr(raw, t, err)
		}
		return v, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := cast.ToUint64E(strings.TrimSpace(raw))
		if err != nil {
			return nil, convertErr(raw, t, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := cast.ToFloat64E(strings.TrimSpace(raw))
		if err != nil {
			return nil, convertErr(raw, t, err)
		}
		return v, nil
	case reflect.Slice, reflect.Array:
		v, err := parseJSON(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := v.([]any); !ok {
			return nil, fmt.Errorf("expected a JSON list, got %T", v)
		}
		return v, nil
	case reflect.Map, reflect.Struct:
		v, err := parseJSON(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := v.(map[string]any); !ok {
			return nil, fmt.Errorf("expected a JSON object, got %T", v)
		}
		return v, nil
	case reflect.Interface:
		if v, err := parseJSON(raw); err == nil {
			return v, nil
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported field type %s", t)
	}
}

func parseJSON(raw string) (any, error) {
	c, err := codec.Lookup(codec.JSON)
	if err != nil {
		return nil, err
	}
	v, err := c.Unmarshal([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON value %q: %w", raw, err)
	}
	return v, nil
}

func convertErr(raw string, t reflect.Type, err error) error {
	return fmt.Errorf("failed to convert %q to %s: %w", raw, t, err)
}
