package validkit

import (
	"errors"
	"testing"
)

func TestGetConfig(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    Config
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			want: Config{
				MaxDepth: 32,
				LogLevel: "warn",
			},
		},
		{
			name: "character rules",
			envVars: map[string]string{
				"BEAVER_VALIDKIT_ALLOWED_CHARS": "-_.",
				"BEAVER_VALIDKIT_MAX_DEPTH":     "8",
			},
			want: Config{
				AllowedChars: "-_.",
				MaxDepth:     8,
				LogLevel:     "warn",
			},
		},
		{
			name: "image rules",
			envVars: map[string]string{
				"BEAVER_VALIDKIT_IMAGE_EXTENSIONS":    "png,jpg",
				"BEAVER_VALIDKIT_IMAGE_CONTENT_TYPES": "image/png,image/jpeg",
				"BEAVER_VALIDKIT_LOG_LEVEL":           "debug",
			},
			want: Config{
				ImageExtensions:   "png,jpg",
				ImageContentTypes: "image/png,image/jpeg",
				MaxDepth:          32,
				LogLevel:          "debug",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := GetConfig()
			if err != nil {
				t.Fatalf("GetConfig() error = %v", err)
			}

			if cfg.AllowedChars != tt.want.AllowedChars {
				t.Errorf("AllowedChars = %v, want %v", cfg.AllowedChars, tt.want.AllowedChars)
			}
			if cfg.ImageExtensions != tt.want.ImageExtensions {
				t.Errorf("ImageExtensions = %v, want %v", cfg.ImageExtensions, tt.want.ImageExtensions)
			}
			if cfg.ImageContentTypes != tt.want.ImageContentTypes {
				t.Errorf("ImageContentTypes = %v, want %v", cfg.ImageContentTypes, tt.want.ImageContentTypes)
			}
			if cfg.MaxDepth != tt.want.MaxDepth {
				t.Errorf("MaxDepth = %v, want %v", cfg.MaxDepth, tt.want.MaxDepth)
			}
			if cfg.LogLevel != tt.want.LogLevel {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.want.LogLevel)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := &Config{
		AllowedChars:    "-",
		ImageExtensions: " png , , gif ",
		MaxDepth:        4,
		LogLevel:        "off",
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}

	o := buildOptions(opts)
	if o.AllowedChars != "-" {
		t.Errorf("AllowedChars = %q, want %q", o.AllowedChars, "-")
	}
	if len(o.ImageExtensions) != 2 || o.ImageExtensions[0] != "png" || o.ImageExtensions[1] != "gif" {
		t.Errorf("ImageExtensions = %v, want [png gif]", o.ImageExtensions)
	}
	if len(o.ImageContentTypes) != len(DefaultImageContentTypes) {
		t.Errorf("ImageContentTypes = %v, want defaults", o.ImageContentTypes)
	}
	if o.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, want 4", o.MaxDepth)
	}
}

func TestConfig_InvalidLogLevel(t *testing.T) {
	_, err := (&Config{LogLevel: "loud"}).Options()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Options() error = %v, want *ConfigError", err)
	}

	if _, err := New(&Config{LogLevel: "loud"}); err == nil {
		t.Error("New() error = nil, want error")
	}
}

func TestNew_FromConfig(t *testing.T) {
	v, err := New(&Config{AllowedChars: "-", ImageExtensions: "png", LogLevel: "error"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := v.Var("a-b", "nospecialchars"); err != nil {
		t.Errorf("Var(a-b) error = %v", err)
	}
	if err := v.Var("a.jpg", "imageext"); err == nil {
		t.Error("Var(a.jpg) error = nil, want error")
	}
}
