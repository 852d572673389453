package main

// Command names
const (
	CmdNameCheck   = "check"
	CmdNameRender  = "render"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagFields   = "fields"
	FlagSchema   = "schema"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagOutput   = "output"
	FlagFormat   = "format"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagSchemaShort   = "s"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
	FieldSeparator   = ","
)

// Data file extensions read as YAML; anything else is JSON
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand      = "unknown command"
	ErrMsgMissingTemplate     = "template source required"
	ErrMsgInvalidFormat       = "invalid output format"
	ErrMsgInvalidData         = "invalid template data"
	ErrMsgInvalidSchema       = "invalid schema"
	ErrMsgReadFileFailed      = "failed to read file"
	ErrMsgWriteOutputFailed   = "failed to write output"
	ErrMsgParseTemplateFailed = "template parsing failed"
	ErrMsgJSONMarshalFailed   = "failed to marshal JSON"
)

// Help text
const (
	HelpMainUsage = `typlate - type-checked string templates

Usage:
    typlate <command> [options]

Commands:
    check       Check a template against a set of field names
    render      Render a template with data
    version     Show version information
    help        Show help for a command

Use "typlate help <command>" for more information about a command.`

	HelpCheckUsage = `Check a template against a set of field names

Usage:
    typlate check [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    --fields <a,b,c>        Comma-separated field names
    -s, --schema <file>     YAML file with a "fields" list
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    typlate check -t greeting.txt --fields name,age
    typlate check -t greeting.txt -s schema.yaml -F json
    echo 'Hi {name}' | typlate check -t - --fields name`

	HelpRenderUsage = `Render a template with data

Usage:
    typlate render [options]

Every top-level key of the data is a field of the template.

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -d, --data <json>       JSON data string
    -f, --data-file <file>  JSON or YAML (.yaml, .yml) data file
    -o, --output <file>     Output file (default: stdout)

Examples:
    typlate render -t greeting.txt -d '{"name": "Alice"}'
    typlate render -t greeting.txt -f data.yaml -o greeting.out`

	HelpVersionUsage = `Show version information

Usage:
    typlate version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    typlate help [command]`
)

// Version output
const (
	VersionTextTemplate = "go-typlate version %s\nCommit: %s\nGo: %s"
	VersionUnknown      = "unknown"
	VersionsFileName    = "versions.yaml"
)

// Check output
const (
	CheckTextSuccess     = "Template is valid"
	CheckTextIssueHeader = "Template issues:"
	CheckTextIssueFormat = "  %s at line %d, column %d"
	CheckTextSummary     = "%d issue(s)"
)

// CLI metadata
const (
	CLIName = "typlate"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
