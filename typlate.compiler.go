package typlate

import (
	"reflect"

	"github.com/itsatony/go-typlate/internal"
	"go.uber.org/zap"
)

// Compiler parses template text and validates it against one schema.
// It is immutable after construction and safe for concurrent use.
type Compiler[T any] struct {
	schema  *Schema[T]
	config  *compilerConfig
	logger  *zap.Logger
	metrics *metrics
}

// NewCompiler creates a compiler bound to schema. A nil schema selects the
// default schema of T (see FieldsOf).
func NewCompiler[T any](schema *Schema[T], opts ...Option) (*Compiler[T], error) {
	config := defaultCompilerConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if schema == nil {
		derived, err := FieldsOf[T]()
		if err != nil {
			return nil, err
		}
		schema = derived
	}

	var m *metrics
	if config.registerer != nil {
		var err error
		if m, err = newMetrics(config.registerer); err != nil {
			return nil, err
		}
	}

	logger.Debug(LogMsgCompilerCreated,
		zap.String(LogFieldType, reflect.TypeOf((*T)(nil)).Elem().String()),
		zap.Int(LogFieldFields, schema.Len()))

	return &Compiler[T]{
		schema:  schema,
		config:  config,
		logger:  logger,
		metrics: m,
	}, nil
}

// MustNewCompiler creates a new Compiler and panics if there's an error.
func MustNewCompiler[T any](schema *Schema[T], opts ...Option) *Compiler[T] {
	c, err := NewCompiler(schema, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Schema returns the schema templates are validated against.
func (c *Compiler[T]) Schema() *Schema[T] {
	return c.schema
}

// Parse parses source and validates every placeholder against the schema.
// Syntax errors are reported before unknown fields; validation stops at the
// first unknown placeholder in source order.
func (c *Compiler[T]) Parse(source string) (Template[T], error) {
	t, err := c.parse(source)
	c.metrics.parsed(err)
	return t, err
}

func (c *Compiler[T]) parse(source string) (Template[T], error) {
	segments, err := internal.Parse(source, c.logger)
	if err != nil {
		c.logger.Debug(LogMsgParseFailed, zap.Error(err))
		return Template[T]{}, fromInternalParseError(err)
	}

	if unknown := internal.Validate(segments, c.schema.Has); unknown != nil {
		return Template[T]{}, c.unknownFieldError(unknown)
	}

	c.logger.Debug(LogMsgTemplateParsed,
		zap.Int(LogFieldSourceLength, len(source)),
		zap.Int(LogFieldSegments, len(segments)))

	return Template[T]{
		source:   source,
		segments: segments,
		schema:   c.schema,
	}, nil
}

// MustParse is like Parse but panics on error.
func (c *Compiler[T]) MustParse(source string) Template[T] {
	t, err := c.Parse(source)
	if err != nil {
		panic(err)
	}
	return t
}

func (c *Compiler[T]) unknownFieldError(unknown *internal.UnknownField) error {
	unknown.WithSuggestions(c.schema.names, c.config.maxSuggestions)
	c.logger.Debug(LogMsgUnknownField,
		zap.String(LogFieldField, unknown.Name),
		zap.Int(LogFieldLine, unknown.Position.Line),
		zap.Int(LogFieldColumn, unknown.Position.Column))
	return NewUnknownFieldError(unknown.Name, unknown.Position, unknown.Suggestions)
}

// Parse parses source against the default schema of T.
func Parse[T any](source string, opts ...Option) (Template[T], error) {
	c, err := NewCompiler[T](nil, opts...)
	if err != nil {
		return Template[T]{}, err
	}
	return c.Parse(source)
}

// MustParse is like Parse but panics on error.
func MustParse[T any](source string, opts ...Option) Template[T] {
	t, err := Parse[T](source, opts...)
	if err != nil {
		panic(err)
	}
	return t
}
