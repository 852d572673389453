package internal

// Character constants
const (
	CharOpenBrace  = '{'
	CharCloseBrace = '}'
	CharNewline    = '\n'
)

// String constants for brace escapes
const (
	StrEscapedOpen  = "{{"
	StrEscapedClose = "}}"
)

// ErrorKind classifies parse failures
type ErrorKind string

// Parse error kinds
const (
	ErrKindUnmatchedOpenBrace  ErrorKind = "unmatched_open_brace"
	ErrKindUnmatchedCloseBrace ErrorKind = "unmatched_close_brace"
)

// Error message constants
const (
	ErrMsgUnmatchedOpenBrace  = "unmatched opening brace"
	ErrMsgUnmatchedCloseBrace = "unmatched closing brace"
)

// Log message constants
const (
	LogMsgParserCreated = "parser created"
	LogMsgParserStart   = "starting parse"
	LogMsgParserEnd     = "parse complete"
	LogMsgParserFailed  = "parse failed"
)

// Log field names
const (
	LogFieldSource   = "source_length"
	LogFieldSegments = "segment_count"
	LogFieldLine     = "line"
	LogFieldColumn   = "column"
	LogFieldKind     = "kind"
)

// Display limits for segment String output
const (
	MaxStringDisplayLength = 50
	TruncatedStringLength  = 47
	TruncationSuffix       = "..."
)

// MinSuggestionDistance is the smallest edit distance accepted for a suggestion
const MinSuggestionDistance = 2
