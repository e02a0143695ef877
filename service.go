package validkit

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Global instance
var (
	defaultValidate *Validate
	defaultOnce     sync.Once
	defaultErr      error
)

// Init initializes the global instance. Without a config the environment
// is read.
func Init(configs ...*Config) error {
	var cfg *Config
	if len(configs) > 0 {
		cfg = configs[0]
	}
	return initDefault(cfg, nil)
}

func initDefault(cfg *Config, opts []Option) error {
	defaultOnce.Do(func() {
		if cfg == nil {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}
		defaultValidate, defaultErr = New(cfg, opts...)
	})
	return defaultErr
}

// New creates a Validate on a fresh engine. Options override the config;
// a nil config means all defaults.
func New(cfg *Config, opts ...Option) (*Validate, error) {
	var all []Option
	if cfg != nil {
		cfgOpts, err := cfg.Options()
		if err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		all = append(all, cfgOpts...)
	}
	all = append(all, opts...)

	return Wrap(validator.New(validator.WithRequiredStructEnabled()), all...)
}

// Default returns the global instance, initializing if needed with error handling
func Default() (*Validate, error) {
	if defaultValidate == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	return defaultValidate, nil
}

// NewFromEnv creates instance from environment variables (convenience constructor)
func NewFromEnv(opts ...Option) (*Validate, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultValidate = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}

// Struct validates s with the global instance.
func Struct(s any) error {
	v, err := Default()
	if err != nil {
		return err
	}
	return v.Struct(s)
}

// Var validates field against tag with the global instance.
func Var(field any, tag string) error {
	v, err := Default()
	if err != nil {
		return err
	}
	return v.Var(field, tag)
}
