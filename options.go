package validkit

import (
	"slices"

	"go.uber.org/zap"

	"github.com/gobeaver/validkit/sanitize"
)

// Option represents a configuration option
type Option func(*Options)

// Options contains everything the rules need at registration time
type Options struct {
	// AllowedChars is the allow-list used by `nospecialchars` when the tag has no parameter
	AllowedChars string

	// ImageExtensions replaces the default list used by `imageext` without parameter
	ImageExtensions []string

	// ImageContentTypes replaces the default list used by `imagecontenttype` and `imagecontent`
	ImageContentTypes []string

	// MaxDepth bounds recursion of the field scanner
	MaxDepth int

	// Logger receives rule diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	// FieldCache holds reflected struct fields. Defaults to sanitize.DefaultFieldCache().
	FieldCache *sanitize.FieldCache
}

func defaultOptions() Options {
	return Options{
		ImageExtensions:   slices.Clone(DefaultImageExtensions),
		ImageContentTypes: slices.Clone(DefaultImageContentTypes),
		MaxDepth:          sanitize.DefaultMaxDepth,
		Logger:            zap.NewNop(),
		FieldCache:        sanitize.DefaultFieldCache(),
	}
}

func buildOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// scannerOptions translates to sanitize options
func (o Options) scannerOptions() []sanitize.Option {
	return []sanitize.Option{
		sanitize.WithMaxDepth(o.MaxDepth),
		sanitize.WithFieldCache(o.FieldCache),
		sanitize.WithLogger(o.Logger),
	}
}

// ruleOptions carries the scanner settings over to rules built later,
// e.g. from a tag parameter.
func (o Options) ruleOptions() []Option {
	return []Option{WithMaxDepth(o.MaxDepth), WithLogger(o.Logger), WithFieldCache(o.FieldCache)}
}

// WithAllowedChars sets the default allow-list for `nospecialchars`
func WithAllowedChars(chars string) Option {
	return func(o *Options) {
		o.AllowedChars = chars
	}
}

// WithImageExtensions replaces the default image extensions
func WithImageExtensions(exts ...string) Option {
	return func(o *Options) {
		o.ImageExtensions = exts
	}
}

// WithImageContentTypes replaces the default image content types
func WithImageContentTypes(types ...string) Option {
	return func(o *Options) {
		o.ImageContentTypes = types
	}
}

// WithMaxDepth sets how deep the scanner follows nested values
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithFieldCache shares a field cache between validators
func WithFieldCache(cache *sanitize.FieldCache) Option {
	return func(o *Options) {
		if cache != nil {
			o.FieldCache = cache
		}
	}
}
