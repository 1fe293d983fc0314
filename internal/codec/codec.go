package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"

	"github.com/compose-network/recordstore/internal/errs"
	"github.com/compose-network/recordstore/internal/record"
	"gopkg.in/yaml.v3"
)

// Codec converts between format-native trees and bytes.
type Codec interface {
	// Marshal serializes a tree into bytes.
	Marshal(tree map[string]any) ([]byte, error)
	// Unmarshal parses bytes into a tree. An empty document may yield nil.
	Unmarshal(data []byte) (any, error)
	// Name returns the format name used in errors and logs.
	Name() string
}

var codecs = map[Format]Codec{
	YAML: yamlCodec{},
	JSON: jsonCodec{},
}

// Lookup returns the codec registered for f.
func Lookup(f Format) (Codec, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, errs.New(errs.UnsupportedFormat, "lookup codec", fmt.Sprintf("unsupported format %s", f)).WithFormat(f.String())
	}
	return c, nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (c yamlCodec) Marshal(tree map[string]any) ([]byte, error) {
	return c.encode(tree)
}

// MarshalFields writes keys in declared field order instead of sorted order.
func (c yamlCodec) MarshalFields(tree map[string]any, fields []record.Field) ([]byte, error) {
	node, err := mappingNode(tree, fields)
	if err != nil {
		return nil, err
	}
	return c.encode(node)
}

func (yamlCodec) encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// mappingNode builds a mapping node for tree with keys in the order of fields.
// Nested records recurse; keys no field declares follow, sorted.
func mappingNode(tree map[string]any, fields []record.Field) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, value any, children []record.Field, nested bool) error {
		var valueNode *yaml.Node
		if m, ok := value.(map[string]any); ok && nested {
			n, err := mappingNode(m, children)
			if err != nil {
				return err
			}
			valueNode = n
		} else {
			valueNode = &yaml.Node{}
			if err := valueNode.Encode(value); err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, valueNode)
		return nil
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		value, ok := tree[f.Key]
		if !ok || seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		if err := add(f.Key, value, f.Children, f.Nested()); err != nil {
			return nil, err
		}
	}

	rest := make([]string, 0, len(tree)-len(seen))
	for key := range tree {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	for _, key := range rest {
		if err := add(key, tree[key], nil, false); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (yamlCodec) Unmarshal(data []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return record.Normalize(out), nil
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(tree map[string]any) ([]byte, error) {
	content, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(content, '\n'), nil
}

func (jsonCodec) Unmarshal(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}
	return numbers(out), nil
}

// numbers replaces json.Number values with int64 when integral, uint64 when
// integral and above the int64 range, float64 otherwise.
func numbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return u
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, inner := range t {
			t[k] = numbers(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = numbers(inner)
		}
		return t
	default:
		return v
	}
}

// fieldMarshaler is implemented by codecs that can keep declared field order.
type fieldMarshaler interface {
	MarshalFields(tree map[string]any, fields []record.Field) ([]byte, error)
}

// Encode serializes the record v in format f. Encoding happens entirely in
// memory. YAML keeps the record's declared field order.
func Encode(v any, f Format) ([]byte, error) {
	if err := record.CheckValue(v); err != nil {
		return nil, err
	}
	tree, err := record.ToTree(v)
	if err != nil {
		return nil, withFormat(err, f)
	}
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	fm, ok := c.(fieldMarshaler)
	if !ok {
		return EncodeTree(tree, f)
	}
	fields, err := record.Fields(reflect.TypeOf(v))
	if err != nil {
		return nil, withFormat(err, f)
	}
	data, err := fm.MarshalFields(tree, fields)
	if err != nil {
		return nil, errs.Wrap(errs.Serialization, "encode", err).WithFormat(c.Name())
	}
	return data, nil
}

// EncodeTree serializes a format-native tree in format f.
func EncodeTree(tree map[string]any, f Format) ([]byte, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	data, err := c.Marshal(tree)
	if err != nil {
		return nil, errs.Wrap(errs.Serialization, "encode", err).WithFormat(c.Name())
	}
	return data, nil
}

// ParseTree parses data in format f. The top-level value must be a mapping;
// an empty document parses as an empty mapping.
func ParseTree(data []byte, f Format) (map[string]any, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	raw, err := c.Unmarshal(data)
	if err != nil {
		return nil, errs.Wrap(errs.Serialization, "parse", err).WithFormat(c.Name())
	}
	switch t := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return t, nil
	default:
		return nil, errs.New(errs.Serialization, "parse", fmt.Sprintf("top-level value must be a mapping, got %T", raw)).WithFormat(c.Name())
	}
}

// DecodeInto parses data and populates target, a non-nil pointer to a
// struct. The target type is checked before parsing.
func DecodeInto(data []byte, target any, f Format) error {
	if err := record.CheckTarget(target); err != nil {
		return err
	}
	tree, err := ParseTree(data, f)
	if err != nil {
		return err
	}
	return withFormat(record.Populate(tree, target), f)
}

// Decode parses data into a new T. T must be a struct or a pointer to one.
func Decode[T any](data []byte, f Format) (T, error) {
	var zero T
	target, result, err := NewTarget[T]()
	if err != nil {
		return zero, err
	}
	if err := DecodeInto(data, target, f); err != nil {
		return zero, err
	}
	return result(), nil
}

// NewTarget allocates storage for a T and returns the pointer to decode into
// together with a function that yields the decoded T.
func NewTarget[T any]() (any, func() T, error) {
	t := reflect.TypeFor[T]()
	if err := record.CheckType(t); err != nil {
		return nil, nil, err
	}
	if t.Kind() == reflect.Pointer {
		ptr := reflect.New(t.Elem())
		return ptr.Interface(), func() T { return ptr.Interface().(T) }, nil
	}
	ptr := new(T)
	return ptr, func() T { return *ptr }, nil
}

func withFormat(err error, f Format) error {
	var e *errs.Error
	if errors.As(err, &e) && e.Format == "" {
		e.Format = f.String()
	}
	return err
}
