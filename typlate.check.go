package typlate

import (
	"errors"

	"github.com/itsatony/go-typlate/internal"
)

// Issue is one problem found by Check.
type Issue struct {
	Reason      string   // One of the Reason* constants
	Message     string   // Human-readable description
	Field       string   // Offending placeholder name, for unknown fields
	Position    Position // Where the problem starts
	Suggestions []string // Similar schema fields, for unknown fields
}

// CheckResult contains every issue found in a template source.
type CheckResult struct {
	issues []Issue
}

// Issues returns all issues found, in source order.
func (r *CheckResult) Issues() []Issue {
	return r.issues
}

// IsValid returns true if no issues were found.
func (r *CheckResult) IsValid() bool {
	return len(r.issues) == 0
}

// Err returns the error Parse would return for the same source, or nil.
func (r *CheckResult) Err() error {
	if r.IsValid() {
		return nil
	}
	first := r.issues[0]
	switch first.Reason {
	case ReasonUnmatchedOpenBrace:
		return NewUnmatchedOpenBraceError(first.Position)
	case ReasonUnmatchedCloseBrace:
		return NewUnmatchedCloseBraceError(first.Position)
	default:
		return NewUnknownFieldError(first.Field, first.Position, first.Suggestions)
	}
}

// Check reports every problem in source instead of stopping at the first one.
// A syntax error ends the scan, so at most one syntax issue is reported;
// otherwise each unknown placeholder yields an issue.
func (c *Compiler[T]) Check(source string) *CheckResult {
	result := c.check(source)
	c.metrics.checked(result.issues)
	return result
}

func (c *Compiler[T]) check(source string) *CheckResult {
	result := &CheckResult{
		issues: make([]Issue, 0),
	}

	segments, err := internal.Parse(source, c.logger)
	if err != nil {
		issue := Issue{Reason: ReasonUnmatchedOpenBrace, Message: ErrMsgUnmatchedOpenBrace}
		var parseErr *internal.ParseError
		if errors.As(err, &parseErr) {
			issue.Position = parseErr.Position
			if parseErr.Kind == internal.ErrKindUnmatchedCloseBrace {
				issue.Reason = ReasonUnmatchedCloseBrace
				issue.Message = ErrMsgUnmatchedCloseBrace
			}
		}
		result.issues = append(result.issues, issue)
		return result
	}

	for _, unknown := range internal.ValidateAll(segments, c.schema.Has) {
		unknown.WithSuggestions(c.schema.names, c.config.maxSuggestions)
		result.issues = append(result.issues, Issue{
			Reason:      ReasonUnknownField,
			Message:     ErrMsgUnknownField + internal.FormatSuggestions(unknown.Suggestions),
			Field:       unknown.Name,
			Position:    unknown.Position,
			Suggestions: unknown.Suggestions,
		})
	}
	return result
}
