package typlate

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewCompiler(t *testing.T) {
	t.Run("default schema", func(t *testing.T) {
		c, err := NewCompiler[person](nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "age"}, c.Schema().Names())
	})

	t.Run("explicit schema", func(t *testing.T) {
		s := MustNewSchema(Field[person]{Name: "who", Value: func(p person) string { return p.Name }})
		c, err := NewCompiler(s)
		require.NoError(t, err)

		tmpl, err := c.Parse("hi {who}")
		require.NoError(t, err)
		assert.Equal(t, "hi Zed", tmpl.Format(person{Name: "Zed"}))

		_, err = c.Parse("hi {name}")
		assert.True(t, IsUnknownField(err))
	})

	t.Run("unsupported default schema", func(t *testing.T) {
		_, err := NewCompiler[string](nil)
		require.Error(t, err)
		assert.Panics(t, func() { MustNewCompiler[string](nil) })
	})
}

func TestCompiler_Suggestions(t *testing.T) {
	t.Run("default suggestions", func(t *testing.T) {
		c := MustNewCompiler[person](nil)
		_, err := c.Parse("Hello {nmae}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Did you mean 'name'?")

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		suggestions, ok := customErr.GetMetadata(MetaKeySuggestions)
		assert.True(t, ok)
		assert.Equal(t, "name", suggestions)
	})

	t.Run("disabled", func(t *testing.T) {
		c := MustNewCompiler[person](nil, WithMaxSuggestions(0))
		_, err := c.Parse("Hello {nmae}")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "Did you mean")
	})

	t.Run("negative is ignored", func(t *testing.T) {
		c := MustNewCompiler[person](nil, WithMaxSuggestions(-1))
		assert.Equal(t, DefaultMaxSuggestions, c.config.maxSuggestions)
	})
}

func TestCompiler_MustParse(t *testing.T) {
	c := MustNewCompiler[person](nil)
	assert.NotPanics(t, func() { c.MustParse("{name}") })
	assert.Panics(t, func() { c.MustParse("{name") })
	assert.Panics(t, func() { MustParse[person]("{email}") })
}

func TestCompiler_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := MustNewCompiler[person](nil, WithLogger(zap.New(core)))

	assert.Equal(t, 1, logs.FilterMessage(LogMsgCompilerCreated).Len())

	_, err := c.Parse("Hello {name}")
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage(LogMsgTemplateParsed).Len())

	_, err = c.Parse("Hello {email}")
	require.Error(t, err)
	entries := logs.FilterMessage(LogMsgUnknownField).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "email", entries[0].ContextMap()[LogFieldField])

	_, err = c.Parse("Hello {")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage(LogMsgParseFailed).Len())
}

func TestCompiler_Check(t *testing.T) {
	c := MustNewCompiler[person](nil)

	t.Run("valid", func(t *testing.T) {
		result := c.Check("Hello {name}, {age}")
		assert.True(t, result.IsValid())
		assert.Empty(t, result.Issues())
		assert.NoError(t, result.Err())
	})

	t.Run("collects every unknown field", func(t *testing.T) {
		result := c.Check("{nmae} and {agee} and {name}")
		require.False(t, result.IsValid())

		issues := result.Issues()
		require.Len(t, issues, 2)

		assert.Equal(t, ReasonUnknownField, issues[0].Reason)
		assert.Equal(t, "nmae", issues[0].Field)
		assert.Equal(t, []string{"name"}, issues[0].Suggestions)
		assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, issues[0].Position)

		assert.Equal(t, "agee", issues[1].Field)
		assert.Equal(t, []string{"age"}, issues[1].Suggestions)
		assert.Equal(t, 11, issues[1].Position.Offset)

		err := result.Err()
		name, ok := UnknownFieldName(err)
		require.True(t, ok)
		assert.Equal(t, "nmae", name)
	})

	t.Run("syntax error stops the scan", func(t *testing.T) {
		result := c.Check("{email} }")
		issues := result.Issues()
		require.Len(t, issues, 1)
		assert.Equal(t, ReasonUnmatchedCloseBrace, issues[0].Reason)
		assert.Equal(t, 8, issues[0].Position.Offset)
		assert.True(t, IsUnmatchedCloseBrace(result.Err()))
	})

	t.Run("unclosed placeholder", func(t *testing.T) {
		result := c.Check("x {name")
		issues := result.Issues()
		require.Len(t, issues, 1)
		assert.Equal(t, ReasonUnmatchedOpenBrace, issues[0].Reason)
		assert.Equal(t, ErrMsgUnmatchedOpenBrace, issues[0].Message)
		assert.True(t, IsUnmatchedOpenBrace(result.Err()))
	})
}
