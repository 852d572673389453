package internal

import (
	"io"
	"strings"
)

// Lookup returns the display string of a named field
type Lookup func(name string) string

// Render writes segments in order, resolving placeholders through lookup
func Render(segments []Segment, lookup Lookup) string {
	var sb strings.Builder
	sb.Grow(literalLen(segments))
	for _, seg := range segments {
		if seg.IsPlaceholder() {
			sb.WriteString(lookup(seg.Text))
		} else {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// RenderTo streams the rendered output to w
func RenderTo(w io.Writer, segments []Segment, lookup Lookup) error {
	for _, seg := range segments {
		text := seg.Text
		if seg.IsPlaceholder() {
			text = lookup(seg.Text)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

func literalLen(segments []Segment) int {
	n := 0
	for _, seg := range segments {
		if seg.IsLiteral() {
			n += len(seg.Text)
		}
	}
	return n
}
