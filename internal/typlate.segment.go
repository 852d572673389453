package internal

import (
	"fmt"
	"strings"
)

// Position represents a location in the template source
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// SegmentKind identifies the two segment variants
type SegmentKind int

// Segment kind constants
const (
	SegmentLiteral SegmentKind = iota
	SegmentPlaceholder
)

// Segment kind string names for debugging
const (
	SegmentKindNameLiteral     = "LITERAL"
	SegmentKindNamePlaceholder = "PLACEHOLDER"
)

// String returns the string representation of the segment kind
func (k SegmentKind) String() string {
	switch k {
	case SegmentPlaceholder:
		return SegmentKindNamePlaceholder
	default:
		return SegmentKindNameLiteral
	}
}

// Segment is one parsed unit of a template: a literal run or a placeholder reference.
// For literals Text is the unescaped text to emit; for placeholders it is the field name.
type Segment struct {
	Kind     SegmentKind
	Text     string
	Position Position
}

// NewLiteralSegment creates a literal segment
func NewLiteralSegment(text string, pos Position) Segment {
	return Segment{Kind: SegmentLiteral, Text: text, Position: pos}
}

// NewPlaceholderSegment creates a placeholder segment
func NewPlaceholderSegment(name string, pos Position) Segment {
	return Segment{Kind: SegmentPlaceholder, Text: name, Position: pos}
}

// IsLiteral returns true for literal segments
func (s Segment) IsLiteral() bool {
	return s.Kind == SegmentLiteral
}

// IsPlaceholder returns true for placeholder segments
func (s Segment) IsPlaceholder() bool {
	return s.Kind == SegmentPlaceholder
}

// String returns a human-readable representation of the segment
func (s Segment) String() string {
	text := s.Text
	if len(text) > MaxStringDisplayLength {
		text = text[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("%s{%q @ %s}", s.Kind, text, s.Position)
}

// Encode regenerates template source from segments. Braces inside literals are
// doubled so that parsing the result yields equivalent segments.
func Encode(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.IsPlaceholder() {
			sb.WriteByte(CharOpenBrace)
			sb.WriteString(seg.Text)
			sb.WriteByte(CharCloseBrace)
			continue
		}
		for i := 0; i < len(seg.Text); i++ {
			ch := seg.Text[i]
			switch ch {
			case CharOpenBrace:
				sb.WriteString(StrEscapedOpen)
			case CharCloseBrace:
				sb.WriteString(StrEscapedClose)
			default:
				sb.WriteByte(ch)
			}
		}
	}
	return sb.String()
}

// Equal reports whether two segment sequences are equivalent. Positions are ignored.
func Equal(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}

// Placeholders returns placeholder names in source order, duplicates included
func Placeholders(segments []Segment) []string {
	var names []string
	for _, seg := range segments {
		if seg.IsPlaceholder() {
			names = append(names, seg.Text)
		}
	}
	return names
}
