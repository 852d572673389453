package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Parser turns template source into a segment sequence.
//
// Escapes are "{{" and "}}". A single "{" opens a placeholder that runs to the
// next "}"; everything in between is taken verbatim as the field name, so a "{"
// inside a name is just another name character.
type Parser struct {
	source string
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// NewParser creates a parser for source
func NewParser(source string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldSource, len(source)))
	return &Parser{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Parse is a convenience wrapper around NewParser(source, logger).Parse()
func Parse(source string, logger *zap.Logger) ([]Segment, error) {
	return NewParser(source, logger).Parse()
}

// Parse scans the whole source and returns its segments. Adjacent literal text,
// escaped braces included, is merged into a single literal segment.
func (p *Parser) Parse() ([]Segment, error) {
	p.logger.Debug(LogMsgParserStart)

	var segments []Segment
	var text strings.Builder
	textPos := p.currentPosition()

	flush := func() {
		if text.Len() > 0 {
			segments = append(segments, NewLiteralSegment(text.String(), textPos))
			text.Reset()
		}
	}
	markText := func() {
		if text.Len() == 0 {
			textPos = p.currentPosition()
		}
	}

	for !p.isAtEnd() {
		switch {
		case p.matchStr(StrEscapedOpen):
			markText()
			p.advanceN(len(StrEscapedOpen))
			text.WriteByte(CharOpenBrace)

		case p.matchStr(StrEscapedClose):
			markText()
			p.advanceN(len(StrEscapedClose))
			text.WriteByte(CharCloseBrace)

		case p.peek() == CharOpenBrace:
			flush()
			seg, err := p.scanPlaceholder()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)

		case p.peek() == CharCloseBrace:
			return nil, p.newError(ErrKindUnmatchedCloseBrace, ErrMsgUnmatchedCloseBrace, p.currentPosition())

		default:
			markText()
			text.WriteByte(p.advance())
		}
	}
	flush()

	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldSegments, len(segments)))
	return segments, nil
}

// scanPlaceholder consumes "{name}" starting at the opening brace
func (p *Parser) scanPlaceholder() (Segment, error) {
	start := p.currentPosition()
	p.advance() // consume "{"

	nameStart := p.pos
	for !p.isAtEnd() {
		if p.peek() == CharCloseBrace {
			name := p.source[nameStart:p.pos]
			p.advance() // consume "}"
			return NewPlaceholderSegment(name, start), nil
		}
		p.advance()
	}

	return Segment{}, p.newError(ErrKindUnmatchedOpenBrace, ErrMsgUnmatchedOpenBrace, start)
}

// Helper methods

func (p *Parser) currentPosition() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.column,
	}
}

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.source)
}

func (p *Parser) peek() byte {
	if p.isAtEnd() {
		return 0
	}
	return p.source[p.pos]
}

func (p *Parser) advance() byte {
	if p.isAtEnd() {
		return 0
	}
	ch := p.source[p.pos]
	p.pos++
	if ch == CharNewline {
		p.line++
		p.column = 1
	} else {
		p.column++
	}
	return ch
}

func (p *Parser) advanceN(n int) {
	for i := 0; i < n && !p.isAtEnd(); i++ {
		p.advance()
	}
}

func (p *Parser) matchStr(s string) bool {
	return strings.HasPrefix(p.source[p.pos:], s)
}

func (p *Parser) newError(kind ErrorKind, msg string, pos Position) error {
	p.logger.Debug(LogMsgParserFailed,
		zap.String(LogFieldKind, string(kind)),
		zap.Int(LogFieldLine, pos.Line),
		zap.Int(LogFieldColumn, pos.Column))
	return &ParseError{
		Kind:     kind,
		Message:  msg,
		Position: pos,
	}
}

// ParseError represents a syntax error with position
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Position Position
}

func (e *ParseError) Error() string {
	return e.Message + " at " + e.Position.String()
}
