package validkit

import (
	"io/fs"
	"mime/multipart"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FileExtensionRule accepts file names ending in one of a fixed set of
// extensions. Matching ignores case and supports multi-part extensions such
// as ".tar.gz".
type FileExtensionRule struct {
	extensions []string
}

// NewFileExtensionRule creates the rule. Extensions may be given with or
// without the leading dot.
func NewFileExtensionRule(extensions ...string) (*FileExtensionRule, error) {
	exts := normalizeExtensions(extensions)
	if len(exts) == 0 {
		return nil, &ConfigError{Rule: TagFileExt, Err: ErrEmptyAllowList}
	}
	return &FileExtensionRule{extensions: exts}, nil
}

// normalizeExtensions trims, lower-cases, dots, sorts and de-duplicates.
func normalizeExtensions(extensions []string) []string {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return slices.Compact(exts)
}

// Extensions returns the normalized extensions.
func (r *FileExtensionRule) Extensions() []string {
	return slices.Clone(r.extensions)
}

// IsValidName reports whether name ends in an allowed extension. A bare
// extension such as ".png" is a valid dot-file name.
func (r *FileExtensionRule) IsValidName(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, ext := range r.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IsValidFileInfo checks the base name of info.
func (r *FileExtensionRule) IsValidFileInfo(info fs.FileInfo) bool {
	if info == nil {
		return false
	}
	return r.IsValidName(info.Name())
}

// IsValid implements Rule
func (r *FileExtensionRule) IsValid(fl validator.FieldLevel) bool {
	name, ok := fileName(fl.Field())
	return ok && r.IsValidName(name)
}

// Message implements Rule
func (r *FileExtensionRule) Message() string {
	return renderMessage(MessageFor(TagFileExt), "", r.extensions...)
}

var (
	fileInfoType   = reflect.TypeOf((*fs.FileInfo)(nil)).Elem()
	fileHeaderType = reflect.TypeOf(multipart.FileHeader{})
)

// fileName extracts a file name from a string, an fs.FileInfo or a
// multipart.FileHeader. The host engine hands over dereferenced values, so
// pointer receivers are reached through Addr.
func fileName(v reflect.Value) (string, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		if v.Type().Implements(fileInfoType) {
			break
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return "", false
	}

	switch {
	case v.Kind() == reflect.String:
		return v.String(), true
	case v.Type() == fileHeaderType:
		return v.FieldByName("Filename").String(), true
	case v.Type().Implements(fileInfoType) && v.CanInterface():
		return v.Interface().(fs.FileInfo).Name(), true
	case v.CanAddr() && v.Addr().Type().Implements(fileInfoType) && v.Addr().CanInterface():
		return v.Addr().Interface().(fs.FileInfo).Name(), true
	}
	return "", false
}
