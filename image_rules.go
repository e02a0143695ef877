package validkit

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultImageExtensions are accepted by `imageext` when no list is configured.
var DefaultImageExtensions = []string{
	"bmp", "cod", "gif", "ief", "jpe", "jpeg", "jpg", "jfif", "svg", "tif", "tiff",
	"ras", "cmx", "ico", "pnm", "pbm", "pgm", "png", "ppm", "rgb", "webp", "xbm",
	"xpm", "xwd",
}

// DefaultImageContentTypes are accepted by `imagecontenttype` and
// `imagecontent` when no list is configured.
var DefaultImageContentTypes = []string{
	"image/bmp",
	"image/cis-cod",
	"image/gif",
	"image/ief",
	"image/jpeg",
	"image/pipeg",
	"image/png",
	"image/svg+xml",
	"image/tiff",
	"image/webp",
	"image/x-cmu-raster",
	"image/x-cmx",
	"image/x-icon",
	"image/x-portable-anymap",
	"image/x-portable-bitmap",
	"image/x-portable-graymap",
	"image/x-portable-pixmap",
	"image/x-rgb",
	"image/x-xbitmap",
	"image/x-xpixmap",
	"image/x-xwindowdump",
}

// ImageExtensionRule accepts names whose text after the last dot is a known
// image extension, ignoring case.
type ImageExtensionRule struct {
	extensions []string
}

// NewImageExtensionRule creates the rule. Dots are stripped from the given
// extensions.
func NewImageExtensionRule(extensions ...string) (*ImageExtensionRule, error) {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(ext, ".", "")))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	slices.Sort(exts)
	exts = slices.Compact(exts)
	if len(exts) == 0 {
		return nil, &ConfigError{Rule: TagImageExt, Err: ErrEmptyAllowList}
	}
	return &ImageExtensionRule{extensions: exts}, nil
}

// DefaultImageExtensionRule uses DefaultImageExtensions.
func DefaultImageExtensionRule() *ImageExtensionRule {
	r, _ := NewImageExtensionRule(DefaultImageExtensions...)
	return r
}

// Extensions returns the accepted extensions, without dots.
func (r *ImageExtensionRule) Extensions() []string {
	return slices.Clone(r.extensions)
}

// IsValidName reports whether name has an accepted image extension.
func (r *ImageExtensionRule) IsValidName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return false
	}
	_, found := slices.BinarySearch(r.extensions, strings.ToLower(name[idx+1:]))
	return found
}

// IsValid implements Rule
func (r *ImageExtensionRule) IsValid(fl validator.FieldLevel) bool {
	name, ok := fileName(fl.Field())
	return ok && r.IsValidName(name)
}

// Message implements Rule
func (r *ImageExtensionRule) Message() string {
	return MessageFor(TagImageExt)
}

// ImageContentTypeRule accepts image media types. Parameters such as
// "; charset=utf-8" are ignored.
type ImageContentTypeRule struct {
	types []string
}

// NewImageContentTypeRule creates the rule.
func NewImageContentTypeRule(types ...string) (*ImageContentTypeRule, error) {
	list := make([]string, 0, len(types))
	for _, t := range types {
		if t = mediaType(t); t != "" {
			list = append(list, t)
		}
	}
	slices.Sort(list)
	list = slices.Compact(list)
	if len(list) == 0 {
		return nil, &ConfigError{Rule: TagImageContentType, Err: ErrEmptyAllowList}
	}
	return &ImageContentTypeRule{types: list}, nil
}

// DefaultImageContentTypeRule uses DefaultImageContentTypes.
func DefaultImageContentTypeRule() *ImageContentTypeRule {
	r, _ := NewImageContentTypeRule(DefaultImageContentTypes...)
	return r
}

// ContentTypes returns the accepted media types.
func (r *ImageContentTypeRule) ContentTypes() []string {
	return slices.Clone(r.types)
}

// IsValidContentType reports whether contentType is accepted.
func (r *ImageContentTypeRule) IsValidContentType(contentType string) bool {
	mt := mediaType(contentType)
	if mt == "" {
		return false
	}
	_, found := slices.BinarySearch(r.types, mt)
	return found
}

// IsValid implements Rule. The field may be a string or a
// multipart.FileHeader, whose Content-Type header is checked.
func (r *ImageContentTypeRule) IsValid(fl validator.FieldLevel) bool {
	v := fl.Field()
	switch {
	case !v.IsValid():
		return false
	case v.Kind() == reflect.String:
		return r.IsValidContentType(v.String())
	case v.Type() == fileHeaderType && v.CanInterface():
		fh := v.Interface().(multipart.FileHeader)
		return r.IsValidContentType(fh.Header.Get("Content-Type"))
	}
	return false
}

// Message implements Rule
func (r *ImageContentTypeRule) Message() string {
	return MessageFor(TagImageContentType)
}

// ImageContentRule sniffs a []byte field and accepts it when the detected
// media type is accepted by the wrapped content-type rule.
type ImageContentRule struct {
	types *ImageContentTypeRule
}

// NewImageContentRule creates the rule on top of a content-type rule.
func NewImageContentRule(types *ImageContentTypeRule) *ImageContentRule {
	if types == nil {
		types = DefaultImageContentTypeRule()
	}
	return &ImageContentRule{types: types}
}

// IsValidContent reports whether data is an accepted image.
func (r *ImageContentRule) IsValidContent(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return r.types.IsValidContentType(DetectImageContentType(data))
}

// IsValid implements Rule
func (r *ImageContentRule) IsValid(fl validator.FieldLevel) bool {
	v := fl.Field()
	if v.Kind() != reflect.Slice || v.Type().Elem().Kind() != reflect.Uint8 {
		return false
	}
	return r.IsValidContent(v.Bytes())
}

// Message implements Rule
func (r *ImageContentRule) Message() string {
	return MessageFor(TagImageContent)
}

// mediaType lower-cases contentType and drops its parameters.
func mediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// imageSignature is a magic number at a fixed offset.
type imageSignature struct {
	mime   string
	offset int
	magic  []byte
}

// Ordered by specificity; RIFF must be followed by WEBP at offset 8.
var imageSignatures = []imageSignature{
	{mime: "image/jpeg", offset: 0, magic: []byte{0xFF, 0xD8, 0xFF}},
	{mime: "image/png", offset: 0, magic: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{mime: "image/gif", offset: 0, magic: []byte("GIF87a")},
	{mime: "image/gif", offset: 0, magic: []byte("GIF89a")},
	{mime: "image/webp", offset: 8, magic: []byte("WEBP")},
	{mime: "image/tiff", offset: 0, magic: []byte{0x49, 0x49, 0x2A, 0x00}},
	{mime: "image/tiff", offset: 0, magic: []byte{0x4D, 0x4D, 0x00, 0x2A}},
	{mime: "image/x-icon", offset: 0, magic: []byte{0x00, 0x00, 0x01, 0x00}},
	{mime: "image/x-cmu-raster", offset: 0, magic: []byte{0x59, 0xA6, 0x6A, 0x95}},
	{mime: "image/x-portable-bitmap", offset: 0, magic: []byte("P1")},
	{mime: "image/x-portable-graymap", offset: 0, magic: []byte("P2")},
	{mime: "image/x-portable-pixmap", offset: 0, magic: []byte("P3")},
	{mime: "image/x-portable-bitmap", offset: 0, magic: []byte("P4")},
	{mime: "image/x-portable-graymap", offset: 0, magic: []byte("P5")},
	{mime: "image/x-portable-pixmap", offset: 0, magic: []byte("P6")},
	{mime: "image/bmp", offset: 0, magic: []byte("BM")},
}

// sniffLen matches http.DetectContentType.
const sniffLen = 512

// DetectImageContentType returns the media type of data, trying image
// signatures first and falling back to http.DetectContentType.
func DetectImageContentType(data []byte) string {
	if len(data) == 0 {
		return "application/octet-stream"
	}
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}

	for _, sig := range imageSignatures {
		end := sig.offset + len(sig.magic)
		if end > len(data) {
			continue
		}
		if !bytes.Equal(data[sig.offset:end], sig.magic) {
			continue
		}
		if sig.offset == 8 && !bytes.HasPrefix(data, []byte("RIFF")) {
			continue
		}
		if strings.HasPrefix(sig.mime, "image/x-portable-") && (len(data) < 3 || !isSpace(data[2])) {
			continue
		}
		return sig.mime
	}

	if isSVG(data) {
		return "image/svg+xml"
	}

	return mediaType(http.DetectContentType(data))
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isSVG looks for an <svg element in text that starts with markup.
func isSVG(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}
	return bytes.Contains(bytes.ToLower(trimmed), []byte("<svg"))
}
