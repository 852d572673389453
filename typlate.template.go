package typlate

import (
	"io"

	"github.com/itsatony/go-typlate/internal"
)

// Segment is one parsed unit of a template: literal text or a placeholder.
type Segment = internal.Segment

// SegmentKind distinguishes literal and placeholder segments.
type SegmentKind = internal.SegmentKind

// Segment kinds
const (
	SegmentLiteral     = internal.SegmentLiteral
	SegmentPlaceholder = internal.SegmentPlaceholder
)

// Template is a parsed template whose placeholders are known to exist in the
// schema of T. It is a read-only value: copies share state safely and Format
// may be called concurrently. The zero Template is the empty template.
type Template[T any] struct {
	source   string
	segments []Segment
	schema   *Schema[T]
}

// Format renders the template with the fields of params.
func (t Template[T]) Format(params T) string {
	return internal.Render(t.segments, t.lookup(params))
}

// FormatTo writes the rendered template to w.
func (t Template[T]) FormatTo(w io.Writer, params T) error {
	return internal.RenderTo(w, t.segments, t.lookup(params))
}

func (t Template[T]) lookup(params T) internal.Lookup {
	return func(name string) string {
		v, _ := t.schema.Value(params, name)
		return v
	}
}

// Text regenerates the template source from its segments, re-escaping literal
// braces. Parsing the result yields an equivalent template.
func (t Template[T]) Text() string {
	return internal.Encode(t.segments)
}

// String returns Text.
func (t Template[T]) String() string {
	return t.Text()
}

// Source returns the text the template was parsed from.
func (t Template[T]) Source() string {
	return t.source
}

// Segments returns a copy of the parsed segments.
func (t Template[T]) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Placeholders returns the referenced field names in source order, duplicates included.
func (t Template[T]) Placeholders() []string {
	return internal.Placeholders(t.segments)
}

// IsZero reports whether the template has no segments.
func (t Template[T]) IsZero() bool {
	return len(t.segments) == 0
}

// Equal reports whether both templates have equivalent segments.
func (t Template[T]) Equal(other Template[T]) bool {
	return internal.Equal(t.segments, other.segments)
}

// Validate checks the template against schema, or against its own schema when
// schema is nil. It has no side effects and returns the same result every time.
func (t Template[T]) Validate(schema *Schema[T]) error {
	if schema == nil {
		schema = t.schema
	}
	if schema == nil {
		// only the zero template has no schema, and it has no placeholders
		return nil
	}
	if unknown := internal.Validate(t.segments, schema.Has); unknown != nil {
		return NewUnknownFieldError(unknown.Name, unknown.Position, nil)
	}
	return nil
}
