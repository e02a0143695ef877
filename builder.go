package validkit

import (
	"go.uber.org/zap"

	"github.com/gobeaver/validkit/sanitize"
)

// Builder provides a fluent API for constructing a Validate
type Builder struct {
	prefix string
	opts   []Option
}

// NewBuilder creates a builder with the default settings
func NewBuilder() *Builder {
	return &Builder{}
}

// WithPrefix creates a new Builder that reads its config from environment
// variables with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// AllowedChars sets the default allow-list for `nospecialchars`
func (b *Builder) AllowedChars(chars string) *Builder {
	b.opts = append(b.opts, WithAllowedChars(chars))
	return b
}

// ImageExtensions replaces the default image extensions
func (b *Builder) ImageExtensions(exts ...string) *Builder {
	b.opts = append(b.opts, WithImageExtensions(exts...))
	return b
}

// ImageContentTypes replaces the default image content types
func (b *Builder) ImageContentTypes(types ...string) *Builder {
	b.opts = append(b.opts, WithImageContentTypes(types...))
	return b
}

// MaxDepth limits how deep nested values are scanned
func (b *Builder) MaxDepth(depth int) *Builder {
	b.opts = append(b.opts, WithMaxDepth(depth))
	return b
}

// Logger sets the logger
func (b *Builder) Logger(logger *zap.Logger) *Builder {
	b.opts = append(b.opts, WithLogger(logger))
	return b
}

// FieldCache shares a field cache
func (b *Builder) FieldCache(cache *sanitize.FieldCache) *Builder {
	b.opts = append(b.opts, WithFieldCache(cache))
	return b
}

// Build creates a Validate from the builder's settings alone
func (b *Builder) Build() (*Validate, error) {
	return New(nil, b.opts...)
}

// New creates a Validate from the environment, using the builder's prefix.
// Builder settings take precedence over the environment.
func (b *Builder) New() (*Validate, error) {
	cfg, err := loadConfig(b.prefix)
	if err != nil {
		return nil, err
	}
	return New(cfg, b.opts...)
}

// Init initializes the global instance like New
func (b *Builder) Init() error {
	cfg, err := loadConfig(b.prefix)
	if err != nil {
		return err
	}
	return initDefault(cfg, b.opts)
}
