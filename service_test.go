package validkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Default(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	require.NoError(t, Init(&Config{AllowedChars: "_"}))

	v, err := Default()
	require.NoError(t, err)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, v, again)

	// Later configs are ignored once initialized.
	require.NoError(t, Init(&Config{AllowedChars: "."}))
	assert.NoError(t, Var("snake_case", "nospecialchars"))
	assert.Error(t, Var("dot.case", "nospecialchars"))
}

func TestDefault_FromEnv(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("BEAVER_VALIDKIT_ALLOWED_CHARS", "#")
	t.Setenv("BEAVER_VALIDKIT_LOG_LEVEL", "off")

	type tagged struct {
		Channel string `validate:"nospecialchars"`
	}
	assert.NoError(t, Struct(tagged{Channel: "#general"}))
	assert.Error(t, Struct(tagged{Channel: "@general"}))
}

func TestInit_Error(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	err := Init(&Config{ImageContentTypes: " , "})
	require.NoError(t, err)

	Reset()
	err = Init(&Config{LogLevel: "loud"})
	require.Error(t, err)

	_, err = Default()
	assert.Error(t, err)
	assert.Error(t, Struct(struct{}{}))
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("BEAVER_VALIDKIT_IMAGE_EXTENSIONS", "gif")
	t.Setenv("BEAVER_VALIDKIT_LOG_LEVEL", "off")

	v, err := NewFromEnv()
	require.NoError(t, err)
	assert.NoError(t, v.Var("a.gif", "imageext"))
	assert.Error(t, v.Var("a.png", "imageext"))
}
