package validkit

import (
	"strings"

	"github.com/gobeaver/beaver-kit/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// Characters accepted by `nospecialchars` when the tag has no parameter
	AllowedChars string `env:"VALIDKIT_ALLOWED_CHARS"`

	// Image rule defaults, comma-separated. Empty keeps the built-in lists.
	ImageExtensions   string `env:"VALIDKIT_IMAGE_EXTENSIONS"`
	ImageContentTypes string `env:"VALIDKIT_IMAGE_CONTENT_TYPES"`

	// Nesting limit of the field scanner
	MaxDepth int `env:"VALIDKIT_MAX_DEPTH,default:32"`

	// Logging level (debug, info, warn, error). Empty or "off" disables logging.
	LogLevel string `env:"VALIDKIT_LOG_LEVEL,default:warn"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfig reads the environment with a custom prefix; "" uses the default.
func loadConfig(prefix string) (*Config, error) {
	if prefix == "" {
		return GetConfig()
	}
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: prefix}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options converts the config to options. Unset fields are left out so the
// defaults apply.
func (c *Config) Options() ([]Option, error) {
	var opts []Option

	if c.AllowedChars != "" {
		opts = append(opts, WithAllowedChars(c.AllowedChars))
	}
	if exts := splitList(c.ImageExtensions); len(exts) > 0 {
		opts = append(opts, WithImageExtensions(exts...))
	}
	if types := splitList(c.ImageContentTypes); len(types) > 0 {
		opts = append(opts, WithImageContentTypes(types...))
	}
	if c.MaxDepth > 0 {
		opts = append(opts, WithMaxDepth(c.MaxDepth))
	}

	logger, err := newLogger(c.LogLevel)
	if err != nil {
		return nil, &ConfigError{Rule: "log level", Err: err}
	}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}

	return opts, nil
}

// newLogger builds a production logger at level. It returns nil when logging
// is disabled.
func newLogger(level string) (*zap.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" || level == "off" {
		return nil, nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
