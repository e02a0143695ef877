package validkit

import (
	"fmt"
	"maps"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PropertyName is replaced with the failing field's name when a message
// template is rendered.
const PropertyName = "{PropertyName}"

// ExtensionList is replaced with the comma-separated allowed extensions in
// the `fileext` template.
const ExtensionList = "{Extensions}"

var messages = map[string]string{
	TagNoSpecialChars:   "'" + PropertyName + "' contains special chars not explicitly allowed",
	TagNoScript:         "'" + PropertyName + "' contains the value 'SCRIPT' that is not allowed by the validation rules",
	TagFileExt:          "Allowed file extensions: " + ExtensionList,
	TagImageExt:         "Invalid File Extension",
	TagImageContentType: "Invalid Content-Type",
	TagImageContent:     "Invalid Content-Type",
}

// Messages returns the message templates of the built-in tags.
func Messages() map[string]string {
	return maps.Clone(messages)
}

// MessageFor returns the message template for tag, or "" for unknown tags.
// Templates are unrendered: they may hold the PropertyName and, for
// `fileext`, the ExtensionList placeholders.
func MessageFor(tag string) string {
	return messages[tag]
}

// renderMessage fills a template with a field name and, when given, the
// allowed extensions. Values validated on their own have no name and are
// called "value".
func renderMessage(template, field string, extensions ...string) string {
	if field == "" {
		field = "value"
	}
	msg := strings.ReplaceAll(template, PropertyName, field)
	if len(extensions) > 0 {
		msg = strings.ReplaceAll(msg, ExtensionList, strings.Join(extensions, ", "))
	}
	return msg
}

// ErrorMessage returns a human-readable message for a failed field. Built-in
// tags use their templates; a few common engine tags get a short message.
func ErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case TagFileExt:
		return renderMessage(messages[TagFileExt], fe.Field(), normalizeExtensions(splitParam(fe.Param()))...)
	case TagNoSpecialChars, TagNoScript, TagImageExt, TagImageContentType, TagImageContent:
		return renderMessage(messages[fe.Tag()], fe.Field())
	case "required":
		return fmt.Sprintf("'%s' is required", fe.Field())
	case "email":
		return fmt.Sprintf("'%s' must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("'%s' must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("'%s' must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("'%s' must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("'%s' failed validation: %s", fe.Field(), fe.Tag())
	}
}

// errorType maps a tag to its error category.
func errorType(tag string) ValidationErrorType {
	switch tag {
	case TagNoSpecialChars:
		return ErrorTypeSpecialChars
	case TagNoScript:
		return ErrorTypeScript
	case TagFileExt, TagImageExt:
		return ErrorTypeExtension
	case TagImageContentType, TagImageContent:
		return ErrorTypeContentType
	}
	return ErrorTypeOther
}
