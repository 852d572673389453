package typlate

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnmatchedBraceErrors(t *testing.T) {
	pos := Position{Offset: 50, Line: 5, Column: 10}

	tests := []struct {
		name   string
		err    error
		msg    string
		reason string
	}{
		{name: "open", err: NewUnmatchedOpenBraceError(pos), msg: ErrMsgUnmatchedOpenBrace, reason: ReasonUnmatchedOpenBrace},
		{name: "close", err: NewUnmatchedCloseBraceError(pos), msg: ErrMsgUnmatchedCloseBrace, reason: ReasonUnmatchedCloseBrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Contains(t, tt.err.Error(), tt.msg)

			var customErr *cuserr.CustomError
			require.True(t, errors.As(tt.err, &customErr))

			line, ok := customErr.GetMetadata(MetaKeyLine)
			assert.True(t, ok)
			assert.Equal(t, "5", line)

			column, ok := customErr.GetMetadata(MetaKeyColumn)
			assert.True(t, ok)
			assert.Equal(t, "10", column)

			offset, ok := customErr.GetMetadata(MetaKeyOffset)
			assert.True(t, ok)
			assert.Equal(t, "50", offset)

			reason, ok := customErr.GetMetadata(MetaKeyReason)
			assert.True(t, ok)
			assert.Equal(t, tt.reason, reason)

			got, ok := ErrorPosition(tt.err)
			require.True(t, ok)
			assert.Equal(t, pos, got)
		})
	}
}

func TestNewUnknownFieldError(t *testing.T) {
	t.Run("with suggestions", func(t *testing.T) {
		err := NewUnknownFieldError("nmae", Position{Offset: 3, Line: 1, Column: 4}, []string{"name", "names"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgUnknownField)
		assert.Contains(t, err.Error(), "Did you mean 'name' or 'names'?")

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))

		field, ok := customErr.GetMetadata(MetaKeyField)
		assert.True(t, ok)
		assert.Equal(t, "nmae", field)

		suggestions, ok := customErr.GetMetadata(MetaKeySuggestions)
		assert.True(t, ok)
		assert.Equal(t, "name,names", suggestions)
	})

	t.Run("without suggestions", func(t *testing.T) {
		err := NewUnknownFieldError("email", Position{Line: 1, Column: 1}, nil)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))

		_, ok := customErr.GetMetadata(MetaKeySuggestions)
		assert.False(t, ok)
		assert.True(t, IsUnknownField(err))
	})
}

func TestSchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		msg    string
		reason string
	}{
		{name: "empty name", err: NewEmptyFieldNameError(), msg: ErrMsgEmptyFieldName, reason: ReasonEmptyFieldName},
		{name: "duplicate", err: NewDuplicateFieldError("x"), msg: ErrMsgDuplicateField, reason: ReasonDuplicateField},
		{name: "nil accessor", err: NewNilAccessorError("x"), msg: ErrMsgNilAccessor, reason: ReasonNilAccessor},
		{name: "unsupported", err: NewUnsupportedTypeError("int"), msg: ErrMsgUnsupportedType, reason: ReasonUnsupportedType},
		{name: "entry exists", err: NewEntryExistsError("greeting"), msg: ErrMsgEntryExists, reason: ReasonEntryExists},
		{name: "entry not found", err: NewEntryNotFoundError("greeting"), msg: ErrMsgEntryNotFound, reason: ReasonEntryNotFound},
		{name: "empty entry", err: NewEmptyEntryNameError(), msg: ErrMsgEmptyEntryName, reason: ReasonEmptyEntryName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Contains(t, tt.err.Error(), tt.msg)
			assert.Equal(t, tt.reason, reasonOf(tt.err))

			_, ok := ErrorPosition(tt.err)
			assert.False(t, ok)
		})
	}
}

func TestNewDecodeError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("bad input")
		err := NewDecodeError(FormatJSON, cause)

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgDecodeFailed)
		assert.True(t, errors.Is(err, cause))

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		format, ok := customErr.GetMetadata(MetaKeyFormat)
		assert.True(t, ok)
		assert.Equal(t, FormatJSON, format)
	})

	t.Run("not a string", func(t *testing.T) {
		err := NewDecodeError(FormatYAML, nil)
		assert.Contains(t, err.Error(), ErrMsgNotString)
		assert.Equal(t, ReasonNotString, reasonOf(err))
	})
}

func TestErrorPredicates_ForeignErrors(t *testing.T) {
	plain := errors.New("plain")
	assert.False(t, IsUnknownField(plain))
	assert.False(t, IsUnmatchedOpenBrace(plain))
	assert.False(t, IsUnmatchedCloseBrace(plain))
	assert.False(t, IsUnknownField(nil))

	_, ok := UnknownFieldName(plain)
	assert.False(t, ok)
	_, ok = ErrorPosition(plain)
	assert.False(t, ok)
}

func TestWithEntry(t *testing.T) {
	err := withEntry(NewUnmatchedOpenBraceError(Position{Line: 1, Column: 1}), "greeting")

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	entry, ok := customErr.GetMetadata(MetaKeyEntry)
	assert.True(t, ok)
	assert.Equal(t, "greeting", entry)
	assert.True(t, IsUnmatchedOpenBrace(err))
}
