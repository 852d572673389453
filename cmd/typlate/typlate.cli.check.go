package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-typlate"
)

// checkConfig holds parsed check command configuration
type checkConfig struct {
	templatePath string
	fields       string
	schemaPath   string
	format       string
}

// checkOutput represents JSON output for check
type checkOutput struct {
	Valid  bool               `json:"valid"`
	Issues []checkIssueOutput `json:"issues,omitempty"`
}

type checkIssueOutput struct {
	Reason      string   `json:"reason"`
	Message     string   `json:"message"`
	Field       string   `json:"field,omitempty"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func runCheck(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseCheckFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	names, err := loadFieldNames(cfg.fields, cfg.schemaPath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidSchema, err)
		return ExitCodeInputError
	}
	schema, err := typlate.MapSchema(names...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidSchema, err)
		return ExitCodeInputError
	}

	result := typlate.MustNewCompiler(schema).Check(string(source))

	if cfg.format == OutputFormatJSON {
		return outputCheckJSON(result, stdout, stderr)
	}
	return outputCheckText(result, stdout)
}

func parseCheckFlags(args []string) (*checkConfig, error) {
	fs := flag.NewFlagSet(CmdNameCheck, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &checkConfig{}
	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.fields, FlagFields, "", "")
	fs.StringVar(&cfg.schemaPath, FlagSchema, "", "")
	fs.StringVar(&cfg.schemaPath, FlagSchemaShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}
	return cfg, nil
}

func outputCheckText(result *typlate.CheckResult, stdout io.Writer) int {
	issues := result.Issues()
	if len(issues) == 0 {
		fmt.Fprintln(stdout, CheckTextSuccess)
		return ExitCodeSuccess
	}

	fmt.Fprintln(stdout, CheckTextIssueHeader)
	for _, issue := range issues {
		fmt.Fprintf(stdout, CheckTextIssueFormat+FmtNewline,
			describeIssue(issue), issue.Position.Line, issue.Position.Column)
	}
	fmt.Fprintf(stdout, CheckTextSummary+FmtNewline, len(issues))
	return ExitCodeValidationError
}

func describeIssue(issue typlate.Issue) string {
	if issue.Reason == typlate.ReasonUnknownField {
		return fmt.Sprintf("%q: %s", issue.Field, issue.Message)
	}
	return issue.Message
}

func outputCheckJSON(result *typlate.CheckResult, stdout, stderr io.Writer) int {
	issues := result.Issues()
	output := checkOutput{
		Valid:  result.IsValid(),
		Issues: make([]checkIssueOutput, 0, len(issues)),
	}
	for _, issue := range issues {
		output.Issues = append(output.Issues, checkIssueOutput{
			Reason:      issue.Reason,
			Message:     issue.Message,
			Field:       issue.Field,
			Line:        issue.Position.Line,
			Column:      issue.Position.Column,
			Suggestions: issue.Suggestions,
		})
	}

	if err := writeJSON(stdout, output); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
		return ExitCodeError
	}

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}
