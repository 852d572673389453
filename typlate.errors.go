package typlate

import (
	"errors"
	"strconv"
	"strings"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-typlate/internal"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Parse errors
	ErrMsgUnmatchedOpenBrace  = "unmatched opening brace"
	ErrMsgUnmatchedCloseBrace = "unmatched closing brace"
	ErrMsgParseFailed         = "template parsing failed"

	// Validation errors
	ErrMsgUnknownField = "unknown field name"

	// Schema errors
	ErrMsgEmptyFieldName  = "field name cannot be empty"
	ErrMsgDuplicateField  = "duplicate field name"
	ErrMsgNilAccessor     = "field accessor cannot be nil"
	ErrMsgUnsupportedType = "type cannot provide template fields"

	// Decode errors
	ErrMsgDecodeFailed = "template decoding failed"
	ErrMsgNotString    = "template must be encoded as a string"

	// Catalog errors
	ErrMsgEntryExists    = "catalog entry already exists"
	ErrMsgEntryNotFound  = "catalog entry not found"
	ErrMsgEmptyEntryName = "catalog entry name cannot be empty"

	// Store errors
	ErrMsgInvalidEntryName    = "invalid catalog entry name"
	ErrMsgStoreClosed         = "template store is closed"
	ErrMsgStoreFailed         = "template store operation failed"
	ErrMsgNilStoreDriver      = "template store driver is nil"
	ErrMsgStoreDriverExists   = "template store driver already registered"
	ErrMsgStoreDriverNotFound = "template store driver not found"
	ErrMsgEmptyStoreRoot      = "template store root cannot be empty"
	ErrMsgEmptyConnString     = "database connection string cannot be empty"
	ErrMsgWatchFailed         = "watching template store failed"
)

// Error code constants for categorization
const (
	ErrCodeParse      = "TYPLATE_PARSE"
	ErrCodeValidation = "TYPLATE_VALIDATION"
	ErrCodeSchema     = "TYPLATE_SCHEMA"
	ErrCodeDecode     = "TYPLATE_DECODE"
	ErrCodeCatalog    = "TYPLATE_CATALOG"
	ErrCodeStore      = "TYPLATE_STORE"
)

// Position represents a location in the template source
type Position = internal.Position

func withPosition(err *cuserr.CustomError, pos Position) *cuserr.CustomError {
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewUnmatchedOpenBraceError creates an error for a "{" that is never closed
func NewUnmatchedOpenBraceError(pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, ErrMsgUnmatchedOpenBrace), pos).
		WithMetadata(MetaKeyReason, ReasonUnmatchedOpenBrace)
}

// NewUnmatchedCloseBraceError creates an error for a stray "}"
func NewUnmatchedCloseBraceError(pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, ErrMsgUnmatchedCloseBrace), pos).
		WithMetadata(MetaKeyReason, ReasonUnmatchedCloseBrace)
}

// NewUnknownFieldError creates an error for a placeholder that names no schema field.
// Suggestions, if any, are appended to the message.
func NewUnknownFieldError(name string, pos Position, suggestions []string) error {
	msg := ErrMsgUnknownField + internal.FormatSuggestions(suggestions)
	err := withPosition(cuserr.NewValidationError(ErrCodeValidation, msg), pos).
		WithMetadata(MetaKeyReason, ReasonUnknownField).
		WithMetadata(MetaKeyField, name)
	if len(suggestions) > 0 {
		err = err.WithMetadata(MetaKeySuggestions, strings.Join(suggestions, ","))
	}
	return err
}

// NewEmptyFieldNameError creates a schema error for an unnamed field
func NewEmptyFieldNameError() error {
	return cuserr.NewValidationError(ErrCodeSchema, ErrMsgEmptyFieldName).
		WithMetadata(MetaKeyReason, ReasonEmptyFieldName)
}

// NewDuplicateFieldError creates a schema error for a field declared twice
func NewDuplicateFieldError(name string) error {
	return cuserr.NewValidationError(ErrCodeSchema, ErrMsgDuplicateField).
		WithMetadata(MetaKeyReason, ReasonDuplicateField).
		WithMetadata(MetaKeyField, name)
}

// NewNilAccessorError creates a schema error for a field without a value function
func NewNilAccessorError(name string) error {
	return cuserr.NewValidationError(ErrCodeSchema, ErrMsgNilAccessor).
		WithMetadata(MetaKeyReason, ReasonNilAccessor).
		WithMetadata(MetaKeyField, name)
}

// NewUnsupportedTypeError creates an error for a type that cannot be turned into a schema
func NewUnsupportedTypeError(typeName string) error {
	return cuserr.NewValidationError(ErrCodeSchema, ErrMsgUnsupportedType).
		WithMetadata(MetaKeyReason, ReasonUnsupportedType).
		WithMetadata(MetaKeyType, typeName)
}

// NewDecodeError wraps a failure to read template text out of an external format
func NewDecodeError(format string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeDecode, ErrMsgNotString).
			WithMetadata(MetaKeyReason, ReasonNotString).
			WithMetadata(MetaKeyFormat, format)
	}
	return cuserr.WrapStdError(cause, ErrCodeDecode, ErrMsgDecodeFailed).
		WithMetadata(MetaKeyFormat, format)
}

// NewEntryExistsError creates a catalog collision error
func NewEntryExistsError(name string) error {
	return cuserr.NewValidationError(ErrCodeCatalog, ErrMsgEntryExists).
		WithMetadata(MetaKeyReason, ReasonEntryExists).
		WithMetadata(MetaKeyEntry, name)
}

// NewEntryNotFoundError creates a catalog lookup error
func NewEntryNotFoundError(name string) error {
	return cuserr.NewValidationError(ErrCodeCatalog, ErrMsgEntryNotFound).
		WithMetadata(MetaKeyReason, ReasonEntryNotFound).
		WithMetadata(MetaKeyEntry, name)
}

// NewEmptyEntryNameError creates an error for an unnamed catalog entry
func NewEmptyEntryNameError() error {
	return cuserr.NewValidationError(ErrCodeCatalog, ErrMsgEmptyEntryName).
		WithMetadata(MetaKeyReason, ReasonEmptyEntryName)
}

// NewInvalidEntryNameError creates an error for a name a store cannot hold
func NewInvalidEntryNameError(name string) error {
	return cuserr.NewValidationError(ErrCodeStore, ErrMsgInvalidEntryName).
		WithMetadata(MetaKeyReason, ReasonInvalidEntryName).
		WithMetadata(MetaKeyEntry, name)
}

// NewStoreClosedError creates an error for use of a closed store
func NewStoreClosedError() error {
	return cuserr.NewValidationError(ErrCodeStore, ErrMsgStoreClosed).
		WithMetadata(MetaKeyReason, ReasonStoreClosed)
}

// NewStoreError wraps a failure of the backing storage
func NewStoreError(msg string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeStore, msg)
	}
	return cuserr.WrapStdError(cause, ErrCodeStore, msg)
}

// NewStoreDriverNotFoundError creates an error for an unregistered driver name
func NewStoreDriverNotFoundError(driver string) error {
	return cuserr.NewNotFoundError(MetaKeyDriver, ErrMsgStoreDriverNotFound).
		WithMetadata(MetaKeyDriver, driver)
}

// fromInternalParseError converts a parser failure into the public error kinds
func fromInternalParseError(err error) error {
	var parseErr *internal.ParseError
	if !errors.As(err, &parseErr) {
		return cuserr.WrapStdError(err, ErrCodeParse, ErrMsgParseFailed)
	}
	switch parseErr.Kind {
	case internal.ErrKindUnmatchedOpenBrace:
		return NewUnmatchedOpenBraceError(parseErr.Position)
	case internal.ErrKindUnmatchedCloseBrace:
		return NewUnmatchedCloseBraceError(parseErr.Position)
	default:
		return cuserr.WrapStdError(err, ErrCodeParse, ErrMsgParseFailed)
	}
}

// withEntry tags err with the catalog entry it came from
func withEntry(err error, name string) error {
	var customErr *cuserr.CustomError
	if errors.As(err, &customErr) {
		customErr.WithMetadata(MetaKeyEntry, name)
	}
	return err
}

// withPath tags err with the filesystem path involved
func withPath(err error, path string) error {
	var customErr *cuserr.CustomError
	if errors.As(err, &customErr) {
		customErr.WithMetadata(MetaKeyPath, path)
	}
	return err
}

// Error inspection helpers

func reasonOf(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	reason, _ := customErr.GetMetadata(MetaKeyReason)
	return reason
}

// IsUnmatchedOpenBrace reports whether err is an UnmatchedOpenBrace parse error
func IsUnmatchedOpenBrace(err error) bool {
	return reasonOf(err) == ReasonUnmatchedOpenBrace
}

// IsUnmatchedCloseBrace reports whether err is an UnmatchedCloseBrace parse error
func IsUnmatchedCloseBrace(err error) bool {
	return reasonOf(err) == ReasonUnmatchedCloseBrace
}

// IsUnknownField reports whether err is an UnknownField validation error
func IsUnknownField(err error) bool {
	return reasonOf(err) == ReasonUnknownField
}

// IsEntryNotFound reports whether err is a missing catalog or store entry
func IsEntryNotFound(err error) bool {
	return reasonOf(err) == ReasonEntryNotFound
}

// IsStoreClosed reports whether err came from a closed store
func IsStoreClosed(err error) bool {
	return reasonOf(err) == ReasonStoreClosed
}

// UnknownFieldName returns the offending placeholder name of an UnknownField error
func UnknownFieldName(err error) (string, bool) {
	if !IsUnknownField(err) {
		return "", false
	}
	var customErr *cuserr.CustomError
	errors.As(err, &customErr)
	return customErr.GetMetadata(MetaKeyField)
}

// ErrorPosition extracts the source position carried by a parse or validation error
func ErrorPosition(err error) (Position, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return Position{}, false
	}
	var pos Position
	for key, dst := range map[string]*int{
		MetaKeyLine:   &pos.Line,
		MetaKeyColumn: &pos.Column,
		MetaKeyOffset: &pos.Offset,
	} {
		raw, ok := customErr.GetMetadata(key)
		if !ok {
			return Position{}, false
		}
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return Position{}, false
		}
		*dst = n
	}
	return pos, true
}
