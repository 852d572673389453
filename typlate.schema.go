package typlate

import (
	"fmt"
)

// Field binds a placeholder name to a function rendering that field of T.
type Field[T any] struct {
	Name  string
	Value func(T) string
}

// Schema is the field registry of a params type T: the set of names a template
// may reference and how each one is rendered. A Schema is immutable once built
// and safe for concurrent use.
type Schema[T any] struct {
	names  []string
	index  map[string]int
	values []func(T) string
}

// NewSchema builds a schema from an explicit field table. Names must be
// non-empty and unique; declaration order is preserved by Names.
func NewSchema[T any](fields ...Field[T]) (*Schema[T], error) {
	s := &Schema[T]{
		names:  make([]string, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
		values: make([]func(T) string, 0, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, NewEmptyFieldNameError()
		}
		if f.Value == nil {
			return nil, NewNilAccessorError(f.Name)
		}
		if _, exists := s.index[f.Name]; exists {
			return nil, NewDuplicateFieldError(f.Name)
		}
		s.index[f.Name] = len(s.names)
		s.names = append(s.names, f.Name)
		s.values = append(s.values, f.Value)
	}
	return s, nil
}

// MustNewSchema is like NewSchema but panics on error.
func MustNewSchema[T any](fields ...Field[T]) *Schema[T] {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns the declared field names in declaration order.
func (s *Schema[T]) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Has reports whether name is a declared field.
func (s *Schema[T]) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of declared fields.
func (s *Schema[T]) Len() int {
	return len(s.names)
}

// Value renders the named field of v.
func (s *Schema[T]) Value(v T, name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.values[i](v), true
}

// MapSchema builds a schema over map values, for data whose shape is only known
// at runtime. Missing keys and nil values render as the empty string.
func MapSchema(names ...string) (*Schema[map[string]any], error) {
	fields := make([]Field[map[string]any], len(names))
	for i, name := range names {
		key := name
		fields[i] = Field[map[string]any]{
			Name: key,
			Value: func(m map[string]any) string {
				v, ok := m[key]
				if !ok || v == nil {
					return ""
				}
				return fmt.Sprint(v)
			},
		}
	}
	return NewSchema(fields...)
}
