package typlate

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"
)

// Params is implemented by types that enumerate their own template fields,
// as an alternative to struct reflection. TemplateFields must not depend on the
// receiver's state: it is called once, on a zero value, to build the schema.
type Params interface {
	TemplateFields() []string
	TemplateField(name string) string
}

var (
	paramsType   = reflect.TypeOf((*Params)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()

	// reflect.Type -> *Schema[T]
	schemaCache sync.Map
)

// FieldsOf returns the default schema of T, derived once and cached.
//
// If T implements Params its own field list is used. Otherwise T must be a
// struct or pointer to struct: every exported field becomes a template field,
// named after the Go field or its `typlate:"name"` tag. `typlate:"-"` skips a
// field and embedded structs are flattened, with an outer field shadowing a
// deeper one of the same name. Values render like fmt.Sprint, with nil
// pointers rendering as the empty string.
func FieldsOf[T any]() (*Schema[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*Schema[T]), nil
	}

	var (
		s   *Schema[T]
		err error
	)
	switch {
	case t.Kind() == reflect.Interface:
		return nil, NewUnsupportedTypeError(t.String())
	case t.Implements(paramsType):
		s, err = paramsSchema[T](t)
	default:
		s, err = structSchema[T](t)
	}
	if err != nil {
		return nil, err
	}

	actual, _ := schemaCache.LoadOrStore(t, s)
	return actual.(*Schema[T]), nil
}

// MustFieldsOf is like FieldsOf but panics on error.
func MustFieldsOf[T any]() *Schema[T] {
	s, err := FieldsOf[T]()
	if err != nil {
		panic(err)
	}
	return s
}

func paramsSchema[T any](t reflect.Type) (*Schema[T], error) {
	var probe Params
	if t.Kind() == reflect.Pointer {
		probe = reflect.New(t.Elem()).Interface().(Params)
	} else {
		var zero T
		probe = any(zero).(Params)
	}

	isPtr := t.Kind() == reflect.Pointer
	names := probe.TemplateFields()
	fields := make([]Field[T], len(names))
	for i, name := range names {
		key := name
		fields[i] = Field[T]{
			Name: key,
			Value: func(v T) string {
				// a nil *T renders empty, as in struct schemas
				if isPtr && reflect.ValueOf(v).IsNil() {
					return ""
				}
				return any(v).(Params).TemplateField(key)
			},
		}
	}
	return NewSchema(fields...)
}

type structField struct {
	name   string
	index  []int
	tagged bool
}

func structSchema[T any](t reflect.Type) (*Schema[T], error) {
	isPtr := t.Kind() == reflect.Pointer
	st := t
	if isPtr {
		st = t.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, NewUnsupportedTypeError(t.String())
	}

	collected := dominantFields(collectStructFields(st, nil))
	fields := make([]Field[T], len(collected))
	for i, sf := range collected {
		index := sf.index
		fields[i] = Field[T]{
			Name: sf.name,
			Value: func(v T) string {
				rv := reflect.ValueOf(v)
				if isPtr {
					if rv.IsNil() {
						return ""
					}
					rv = rv.Elem()
				}
				return formatValue(rv.FieldByIndex(index))
			},
		}
	}
	return NewSchema(fields...)
}

func collectStructFields(t reflect.Type, prefix []int) []structField {
	var out []structField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, tagged := f.Tag.Lookup(StructTagName)
		if tag == StructTagIgnore {
			continue
		}

		index := make([]int, len(prefix)+1)
		copy(index, prefix)
		index[len(prefix)] = i

		if f.Anonymous && !tagged && f.Type.Kind() == reflect.Struct {
			out = append(out, collectStructFields(f.Type, index)...)
			continue
		}
		if !f.IsExported() {
			continue
		}

		name := f.Name
		if tag != "" {
			name = tag
		}
		out = append(out, structField{name: name, index: index, tagged: tag != ""})
	}
	return out
}

// dominantFields resolves name collisions the way encoding/json does: the
// shallowest field wins, and fields tied at that depth are all dropped unless
// exactly one of them is tagged. Survivors are ordered by field index.
func dominantFields(fields []structField) []structField {
	byName := make(map[string][]structField, len(fields))
	var names []string
	for _, f := range fields {
		if _, seen := byName[f.name]; !seen {
			names = append(names, f.name)
		}
		byName[f.name] = append(byName[f.name], f)
	}

	out := make([]structField, 0, len(names))
	for _, name := range names {
		if f, ok := dominantField(byName[name]); ok {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return slices.Compare(out[i].index, out[j].index) < 0
	})
	return out
}

func dominantField(candidates []structField) (structField, bool) {
	depth := len(candidates[0].index)
	for _, f := range candidates[1:] {
		depth = min(depth, len(f.index))
	}

	var shallow []structField
	for _, f := range candidates {
		if len(f.index) == depth {
			shallow = append(shallow, f)
		}
	}
	if len(shallow) == 1 {
		return shallow[0], true
	}

	var winner structField
	taggedCount := 0
	for _, f := range shallow {
		if f.tagged {
			winner = f
			taggedCount++
		}
	}
	return winner, taggedCount == 1
}

func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return ""
		}
		if !v.Type().Implements(stringerType) && !v.Type().Implements(errorType) {
			return formatValue(v.Elem())
		}
	case reflect.Interface:
		if v.IsNil() {
			return ""
		}
	}
	return fmt.Sprint(v.Interface())
}
