package typlate

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Compiler.
type Option func(*compilerConfig)

// compilerConfig holds the internal configuration for a Compiler.
type compilerConfig struct {
	maxSuggestions int
	logger         *zap.Logger
	registerer     prometheus.Registerer
}

// defaultCompilerConfig returns the default compiler configuration.
func defaultCompilerConfig() *compilerConfig {
	return &compilerConfig{
		maxSuggestions: DefaultMaxSuggestions,
		logger:         nil,
	}
}

// WithMaxSuggestions caps the "did you mean" candidates attached to unknown
// field errors. Use 0 to disable suggestions.
// Default: 3
func WithMaxSuggestions(n int) Option {
	return func(c *compilerConfig) {
		if n >= 0 {
			c.maxSuggestions = n
		}
	}
}

// WithLogger sets the logger for the compiler.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *compilerConfig) {
		c.logger = logger
	}
}

// WithMetrics registers parse, check and catalog reload counters with reg.
// Compilers sharing a registry share the counters.
// Default: nil (no metrics)
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *compilerConfig) {
		c.registerer = reg
	}
}
