package validkit

import (
	"errors"
	"io/fs"
	"mime/multipart"
	"net/textproto"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileExtensionRule(t *testing.T) {
	r, err := NewFileExtensionRule("PNG", " .jpg ", ".png", "tar.gz", "", ".")
	require.NoError(t, err)
	assert.Equal(t, []string{".jpg", ".png", ".tar.gz"}, r.Extensions())
	assert.Equal(t, "Allowed file extensions: .jpg, .png, .tar.gz", r.Message())

	_, err = NewFileExtensionRule()
	assert.ErrorIs(t, err, ErrEmptyAllowList)

	_, err = NewFileExtensionRule(" ", ".")
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, TagFileExt, cfgErr.Rule)
}

func TestFileExtensionRule_IsValidName(t *testing.T) {
	r, err := NewFileExtensionRule(".jpg", ".png", ".tar.gz")
	require.NoError(t, err)

	tests := []struct {
		name  string
		valid bool
	}{
		{"photo.jpg", true},
		{"PHOTO.JPG", true},
		{"dir/sub/photo.png", true},
		{"backup.tar.gz", true},
		{"backup.gz", false},
		{"photo.gif", false},
		{"photo", false},
		{"photojpg", false},
		{".png", true},
		{".PNG", true},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, r.IsValidName(tt.name))
		})
	}
}

func TestFileExtensionRule_IsValidFileInfo(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": &fstest.MapFile{Data: []byte("x")},
		"a.txt": &fstest.MapFile{Data: []byte("x")},
	}
	r, err := NewFileExtensionRule("png")
	require.NoError(t, err)

	png, err := fs.Stat(fsys, "a.png")
	require.NoError(t, err)
	txt, err := fs.Stat(fsys, "a.txt")
	require.NoError(t, err)

	assert.True(t, r.IsValidFileInfo(png))
	assert.False(t, r.IsValidFileInfo(txt))
	assert.False(t, r.IsValidFileInfo(nil))
}

type upload struct {
	Name   string                `validate:"fileext=.pdf .docx"`
	Info   fs.FileInfo           `validate:"fileext=png"`
	Header *multipart.FileHeader `validate:"imageext"`
}

func TestFileExtensionRule_Engine(t *testing.T) {
	v, err := New(nil)
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"scan.png": &fstest.MapFile{},
		"scan.bmp": &fstest.MapFile{},
	}
	png, _ := fs.Stat(fsys, "scan.png")
	bmp, _ := fs.Stat(fsys, "scan.bmp")

	ok := upload{
		Name: "Report.PDF",
		Info: png,
		Header: &multipart.FileHeader{
			Filename: "avatar.webp",
			Header:   textproto.MIMEHeader{"Content-Type": {"image/webp"}},
		},
	}
	assert.NoError(t, v.Struct(ok))

	bad := upload{
		Name:   "report.txt",
		Info:   bmp,
		Header: &multipart.FileHeader{Filename: "avatar.exe"},
	}
	err = v.Struct(bad)
	require.Error(t, err)

	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 3)
	assert.Equal(t, "Name", errs[0].Field)
	assert.Equal(t, "Allowed file extensions: .docx, .pdf", errs[0].Message)
	assert.Equal(t, ErrorTypeExtension, errs[0].Type)
	assert.Equal(t, "Info", errs[1].Field)
	assert.Equal(t, "Allowed file extensions: .png", errs[1].Message)
	assert.Equal(t, "Header", errs[2].Field)
	assert.Equal(t, "Invalid File Extension", errs[2].Message)
}

func TestFileExtensionRule_NilFails(t *testing.T) {
	v, err := New(nil)
	require.NoError(t, err)

	type optional struct {
		Name *string `validate:"fileext=.pdf"`
	}
	assert.Error(t, v.Struct(optional{}))

	name := "a.pdf"
	assert.NoError(t, v.Struct(optional{Name: &name}))

	type omitted struct {
		Name *string `validate:"omitempty,fileext=.pdf"`
	}
	assert.NoError(t, v.Struct(omitted{}))
}

func TestFileExtensionRule_MissingParamPanics(t *testing.T) {
	v, err := New(nil)
	require.NoError(t, err)

	assert.Panics(t, func() { _ = v.Var("a.pdf", "fileext") })
	assert.Panics(t, func() { _ = v.Var("a.pdf", "fileext=.") })
}
