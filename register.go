package validkit

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tags bound by Register.
const (
	// TagNoSpecialChars rejects special characters; an optional parameter
	// lists extra allowed characters, e.g. `nospecialchars=-_.`. Use 0x2C
	// for a comma and 0x7C for a pipe.
	TagNoSpecialChars = "nospecialchars"

	// TagNoScript rejects script tag markers.
	TagNoScript = "noscript"

	// TagFileExt requires one of the space-separated extensions,
	// e.g. `fileext=.pdf .tar.gz`.
	TagFileExt = "fileext"

	// TagImageExt requires an image extension; an optional parameter replaces
	// the configured list, e.g. `imageext=png jpg`.
	TagImageExt = "imageext"

	// TagImageContentType requires an image media type; an optional
	// parameter replaces the configured list.
	TagImageContentType = "imagecontenttype"

	// TagImageContent sniffs a []byte field and requires an image media type.
	TagImageContent = "imagecontent"
)

// registry holds the rules backing the built-in tags of one engine.
type registry struct {
	opts         Options
	params       *paramCache
	specialChars *SpecialCharsRule
	script       *ScriptRule
	imageExt     *ImageExtensionRule
	imageType    *ImageContentTypeRule
	imageContent *ImageContentRule
}

func newRegistry(o Options) (*registry, error) {
	imageExt, err := NewImageExtensionRule(o.ImageExtensions...)
	if err != nil {
		return nil, err
	}
	imageType, err := NewImageContentTypeRule(o.ImageContentTypes...)
	if err != nil {
		return nil, err
	}

	opts := o.ruleOptions()
	return &registry{
		opts:         o,
		params:       newParamCache(),
		specialChars: NewSpecialCharsRule(o.AllowedChars, opts...),
		script:       NewScriptRule(opts...),
		imageExt:     imageExt,
		imageType:    imageType,
		imageContent: NewImageContentRule(imageType),
	}, nil
}

// bind registers every built-in tag on engine.
func (r *registry) bind(engine *validator.Validate) error {
	bindings := []struct {
		tag       string
		fn        validator.Func
		evenIfNil bool
	}{
		{TagNoSpecialChars, r.noSpecialChars, true},
		{TagNoScript, r.script.IsValid, true},
		{TagFileExt, r.fileExt, false},
		{TagImageExt, r.imageExtension, false},
		{TagImageContentType, r.imageContentType, false},
		{TagImageContent, r.imageContentBytes, false},
	}
	for _, b := range bindings {
		if err := engine.RegisterValidation(b.tag, b.fn, b.evenIfNil); err != nil {
			return &ConfigError{Rule: b.tag, Err: err}
		}
	}
	return nil
}

func (r *registry) noSpecialChars(fl validator.FieldLevel) bool {
	return r.specialCharsRule(fl.Param()).IsValid(fl)
}

// specialCharsRule returns the rule for an allow-list; "" selects the
// configured default.
func (r *registry) specialCharsRule(allowed string) *SpecialCharsRule {
	if allowed == "" {
		return r.specialChars
	}
	return r.params.get(TagNoSpecialChars, allowed, func(p string) (Rule, error) {
		return NewSpecialCharsRule(p, r.opts.ruleOptions()...), nil
	}).(*SpecialCharsRule)
}

func (r *registry) fileExt(fl validator.FieldLevel) bool {
	return r.params.get(TagFileExt, fl.Param(), func(p string) (Rule, error) {
		return NewFileExtensionRule(splitParam(p)...)
	}).IsValid(fl)
}

func (r *registry) imageExtension(fl validator.FieldLevel) bool {
	param := fl.Param()
	if param == "" {
		return r.imageExt.IsValid(fl)
	}
	return r.params.get(TagImageExt, param, func(p string) (Rule, error) {
		return NewImageExtensionRule(splitParam(p)...)
	}).IsValid(fl)
}

func (r *registry) imageContentType(fl validator.FieldLevel) bool {
	param := fl.Param()
	if param == "" {
		return r.imageType.IsValid(fl)
	}
	return r.params.get(TagImageContentType, param, func(p string) (Rule, error) {
		return NewImageContentTypeRule(splitParam(p)...)
	}).IsValid(fl)
}

func (r *registry) imageContentBytes(fl validator.FieldLevel) bool {
	param := fl.Param()
	if param == "" {
		return r.imageContent.IsValid(fl)
	}
	return r.params.get(TagImageContent, param, func(p string) (Rule, error) {
		types, err := NewImageContentTypeRule(splitParam(p)...)
		if err != nil {
			return nil, err
		}
		return NewImageContentRule(types), nil
	}).IsValid(fl)
}

// splitParam splits a tag parameter on whitespace.
func splitParam(param string) []string {
	return strings.Fields(param)
}

// Register binds the built-in tags to engine.
func Register(engine *validator.Validate, opts ...Option) error {
	if engine == nil {
		return ErrUnsupportedEngine
	}
	r, err := newRegistry(buildOptions(opts))
	if err != nil {
		return err
	}
	return r.bind(engine)
}
