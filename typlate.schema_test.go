package typlate

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

func (l level) String() string {
	return "L" + strconv.Itoa(int(l))
}

type base struct {
	ID int `typlate:"id"`
}

type account struct {
	base
	Email    string  `typlate:"email"`
	Nick     *string `typlate:"nick"`
	Level    level   `typlate:"level"`
	MaxLevel *level  `typlate:"max_level"`
	Internal string  `typlate:"-"`
	Plain    bool
	secret   string
}

type point struct {
	x, y int
}

func (point) TemplateFields() []string {
	return []string{"x", "y"}
}

func (p point) TemplateField(name string) string {
	switch name {
	case "x":
		return strconv.Itoa(p.x)
	case "y":
		return strconv.Itoa(p.y)
	}
	return ""
}

type clash struct {
	A string `typlate:"same"`
	B string `typlate:"same"`
}

type nameBase struct {
	Name string
	Note string
}

type shadowed struct {
	nameBase
	Name string
}

type labelA struct {
	Label string `typlate:"Label"`
}

type labelB struct {
	Label string
}

type labelC struct {
	Label string
}

type taggedTie struct {
	labelA
	labelB
}

type untaggedTie struct {
	labelB
	labelC
	Other string
}

func TestNewSchema(t *testing.T) {
	t.Run("explicit table", func(t *testing.T) {
		s, err := NewSchema(
			Field[person]{Name: "name", Value: func(p person) string { return p.Name }},
			Field[person]{Name: "shout", Value: func(p person) string { return p.Name + "!" }},
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"name", "shout"}, s.Names())
		assert.Equal(t, 2, s.Len())
		assert.True(t, s.Has("shout"))
		assert.False(t, s.Has("age"))

		v, ok := s.Value(person{Name: "Al"}, "shout")
		assert.True(t, ok)
		assert.Equal(t, "Al!", v)

		_, ok = s.Value(person{}, "age")
		assert.False(t, ok)
	})

	t.Run("empty schema", func(t *testing.T) {
		s, err := NewSchema[person]()
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Names())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewSchema(Field[person]{Name: "", Value: func(person) string { return "" }})
		require.Error(t, err)
		assert.Equal(t, ReasonEmptyFieldName, reasonOf(err))
	})

	t.Run("nil accessor", func(t *testing.T) {
		_, err := NewSchema(Field[person]{Name: "name"})
		require.Error(t, err)
		assert.Equal(t, ReasonNilAccessor, reasonOf(err))
	})

	t.Run("duplicate", func(t *testing.T) {
		f := Field[person]{Name: "name", Value: func(p person) string { return p.Name }}
		_, err := NewSchema(f, f)
		require.Error(t, err)
		assert.Equal(t, ReasonDuplicateField, reasonOf(err))
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewSchema(Field[person]{Name: ""}) })
	})

	t.Run("names are copies", func(t *testing.T) {
		s := MustNewSchema(Field[person]{Name: "name", Value: func(p person) string { return p.Name }})
		names := s.Names()
		names[0] = "other"
		assert.True(t, s.Has("name"))
		assert.Equal(t, []string{"name"}, s.Names())
	})
}

func TestFieldsOf_Struct(t *testing.T) {
	s, err := FieldsOf[account]()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email", "nick", "level", "max_level", "Plain"}, s.Names())

	nick := "ace"
	maxLevel := level(9)
	a := account{base: base{ID: 7}, Email: "a@b.c", Nick: &nick, Level: 3, MaxLevel: &maxLevel, Plain: true}

	values := map[string]string{}
	for _, name := range s.Names() {
		v, ok := s.Value(a, name)
		require.True(t, ok)
		values[name] = v
	}
	assert.Equal(t, map[string]string{
		"id":        "7",
		"email":     "a@b.c",
		"nick":      "ace",
		"level":     "L3",
		"max_level": "L9",
		"Plain":     "true",
	}, values)

	v, _ := s.Value(account{}, "nick")
	assert.Equal(t, "", v, "nil pointer renders empty")

	t.Run("outer field shadows embedded", func(t *testing.T) {
		s, err := FieldsOf[shadowed]()
		require.NoError(t, err)
		assert.Equal(t, []string{"Note", "Name"}, s.Names())

		tmpl, err := Parse[shadowed]("{Name}/{Note}")
		require.NoError(t, err)
		assert.Equal(t, "outer/n", tmpl.Format(shadowed{nameBase: nameBase{Name: "inner", Note: "n"}, Name: "outer"}))
	})

	t.Run("tagged field wins a tie", func(t *testing.T) {
		s, err := FieldsOf[taggedTie]()
		require.NoError(t, err)
		assert.Equal(t, []string{"Label"}, s.Names())

		v, ok := s.Value(taggedTie{labelA: labelA{Label: "a"}, labelB: labelB{Label: "b"}}, "Label")
		require.True(t, ok)
		assert.Equal(t, "a", v)
	})

	t.Run("untagged tie cancels", func(t *testing.T) {
		s, err := FieldsOf[untaggedTie]()
		require.NoError(t, err)
		assert.Equal(t, []string{"Other"}, s.Names())
		assert.False(t, s.Has("Label"))
	})
}

func TestFieldsOf_PointerToStruct(t *testing.T) {
	tmpl := MustParse[*person]("{name} ({age})")
	assert.Equal(t, "Ann (41)", tmpl.Format(&person{Name: "Ann", Age: 41}))
	assert.Equal(t, " ()", tmpl.Format(nil))
}

func TestFieldsOf_Params(t *testing.T) {
	s, err := FieldsOf[point]()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, s.Names())

	tmpl := MustParse[point]("Point: ({x}, {y})")
	assert.Equal(t, "Point: (10, 20)", tmpl.Format(point{x: 10, y: 20}))

	ptr := MustParse[*point]("{x},{y}")
	assert.Equal(t, "3,0", ptr.Format(&point{x: 3}))
	assert.NotPanics(t, func() {
		assert.Equal(t, ",", ptr.Format(nil), "nil pointer renders empty")
	})
}

func TestFieldsOf_Unsupported(t *testing.T) {
	_, err := FieldsOf[int]()
	require.Error(t, err)
	assert.Equal(t, ReasonUnsupportedType, reasonOf(err))

	_, err = FieldsOf[Params]()
	require.Error(t, err)
	assert.Equal(t, ReasonUnsupportedType, reasonOf(err))

	s, err := FieldsOf[clash]()
	require.NoError(t, err, "same-depth tags cancel out instead of failing")
	assert.False(t, s.Has("same"))
	assert.Equal(t, 0, s.Len())

	_, err = Parse[int]("{x}")
	require.Error(t, err)

	assert.Panics(t, func() { MustFieldsOf[[]string]() })
}

func TestFieldsOf_Cached(t *testing.T) {
	first, err := FieldsOf[foo]()
	require.NoError(t, err)
	second, err := FieldsOf[foo]()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestMapSchema(t *testing.T) {
	s, err := MapSchema("name", "count", "missing")
	require.NoError(t, err)

	data := map[string]any{"name": "Bob", "count": 3, "missing": nil}
	tmpl := MustNewCompiler(s).MustParse("{name} has {count}{missing}")
	assert.Equal(t, "Bob has 3", tmpl.Format(data))
	assert.Equal(t, " has ", tmpl.Format(map[string]any{}))

	_, err = MapSchema("a", "a")
	assert.Error(t, err)
}
