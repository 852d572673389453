package typlate

import "time"

// Struct tag used by reflective schema derivation
const (
	StructTagName   = "typlate"
	StructTagIgnore = "-"
)

// Defaults
const (
	DefaultMaxSuggestions = 3
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyLine        = "line"
	MetaKeyColumn      = "column"
	MetaKeyOffset      = "offset"
	MetaKeyField       = "field"
	MetaKeyReason      = "reason"
	MetaKeySuggestions = "suggestions"
	MetaKeyType        = "type"
	MetaKeyEntry       = "entry"
	MetaKeyFormat      = "format"
	MetaKeyDriver      = "driver"
	MetaKeyPath        = "path"
)

// Reason values stored under MetaKeyReason; they identify the error kind
const (
	ReasonUnmatchedOpenBrace  = "unmatched_open_brace"
	ReasonUnmatchedCloseBrace = "unmatched_close_brace"
	ReasonUnknownField        = "unknown_field"
	ReasonEmptyFieldName      = "empty_field_name"
	ReasonDuplicateField      = "duplicate_field"
	ReasonNilAccessor         = "nil_accessor"
	ReasonUnsupportedType     = "unsupported_type"
	ReasonNotString           = "not_string"
	ReasonEntryExists         = "entry_exists"
	ReasonEntryNotFound       = "entry_not_found"
	ReasonEmptyEntryName      = "empty_entry_name"
	ReasonInvalidEntryName    = "invalid_entry_name"
	ReasonStoreClosed         = "store_closed"
)

// Serialization format names used in decode errors
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Log message constants
const (
	LogMsgCompilerCreated = "compiler created"
	LogMsgTemplateParsed  = "template parsed"
	LogMsgUnknownField    = "template references unknown field"
	LogMsgParseFailed     = "template parse failed"
	LogMsgCatalogLoaded   = "catalog entries loaded"
	LogMsgCatalogAdded    = "catalog entry added"
	LogMsgCatalogReloaded = "catalog reloaded"
	LogMsgCatalogSaved    = "catalog saved to store"
	LogMsgStoreChanged    = "template store changed"
	LogMsgReloadFailed    = "catalog reload failed"
	LogMsgWatchError      = "template store watch error"
)

// Log field names
const (
	LogFieldFields       = "field_count"
	LogFieldSegments     = "segment_count"
	LogFieldField        = "field"
	LogFieldLine         = "line"
	LogFieldColumn       = "column"
	LogFieldType         = "type"
	LogFieldEntry        = "entry"
	LogFieldEntries      = "entry_count"
	LogFieldSourceLength = "source_length"
	LogFieldPath         = "path"
	LogFieldEvent        = "event"
	LogFieldError        = "error"
)

// Store driver names
const (
	StoreDriverMemory     = "memory"
	StoreDriverFilesystem = "filesystem"
	StoreDriverPostgres   = "postgres"
	StoreDriverSQLite     = "sqlite3"
)

// Filesystem store layout
const (
	FilesystemEntrySuffix     = ".typlate"
	FilesystemDirPermissions  = 0755
	FilesystemFilePermissions = 0644
	FilesystemInvalidChars    = "/\\:*?\"<>|"
	FilesystemPathTraversal   = ".."
)

// SQL store defaults
const (
	SQLTablePrefix            = "typlate_"
	SQLDefaultMaxOpenConns    = 10
	SQLDefaultMaxIdleConns    = 2
	SQLDefaultConnMaxLifetime = 5 * time.Minute
	SQLDefaultQueryTimeout    = 30 * time.Second
)

// Metric names
const (
	MetricsNamespace        = "typlate"
	MetricParseTotal        = "parse_total"
	MetricCheckIssuesTotal  = "check_issues_total"
	MetricCatalogReloads    = "catalog_reloads_total"
	MetricLabelResult       = "result"
	MetricLabelReason       = "reason"
	MetricResultOK          = "ok"
	MetricResultError       = "error"
	MetricHelpParseTotal    = "Templates parsed, by result"
	MetricHelpCheckIssues   = "Issues reported by Check, by reason"
	MetricHelpCatalogReload = "Catalog reloads from a store, by result"
)
