package validkit

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gobeaver/validkit/sanitize"
)

// objectCheck is a scanner run over a whole struct by a struct-level rule.
type objectCheck struct {
	tag     string
	param   string
	scanner *sanitize.Scanner
}

// Validate wraps a validator engine with the built-in tags registered and
// converts its errors to ValidationErrors.
type Validate struct {
	engine   *validator.Validate
	registry *registry
	logger   *zap.Logger

	mu      sync.RWMutex
	custom  map[string]string
	objects map[reflect.Type][]objectCheck
}

// Wrap registers the built-in tags on an existing engine and returns a
// Validate using it.
func Wrap(engine *validator.Validate, opts ...Option) (*Validate, error) {
	if engine == nil {
		return nil, ErrUnsupportedEngine
	}
	o := buildOptions(opts)
	r, err := newRegistry(o)
	if err != nil {
		return nil, err
	}
	if err := r.bind(engine); err != nil {
		return nil, err
	}
	return &Validate{
		engine:   engine,
		registry: r,
		logger:   o.Logger,
		custom:   make(map[string]string),
		objects:  make(map[reflect.Type][]objectCheck),
	}, nil
}

// Engine returns the wrapped engine.
func (v *Validate) Engine() *validator.Validate {
	return v.engine
}

// Struct validates a struct's exported fields.
func (v *Validate) Struct(s any) error {
	return v.convert(v.engine.Struct(s))
}

// StructCtx is Struct with a context passed through to the engine.
func (v *Validate) StructCtx(ctx context.Context, s any) error {
	return v.convert(v.engine.StructCtx(ctx, s))
}

// Var validates a single value against a tag chain, e.g. "required,noscript".
func (v *Validate) Var(field any, tag string) error {
	return v.convert(v.engine.Var(field, tag))
}

// RegisterRule binds a custom rule to tag. Its message is used for
// failures of that tag.
func (v *Validate) RegisterRule(tag string, rule Rule, callEvenIfNull ...bool) error {
	if err := v.engine.RegisterValidation(tag, rule.IsValid, callEvenIfNull...); err != nil {
		return &ConfigError{Rule: tag, Err: err}
	}
	v.mu.Lock()
	v.custom[tag] = rule.Message()
	v.mu.Unlock()
	return nil
}

// RequireNoSpecialChars makes Struct scan every value of the given types
// for special characters, whether or not the fields are tagged. allowed
// works like the `nospecialchars` parameter.
func (v *Validate) RequireNoSpecialChars(allowed string, types ...any) {
	rule := v.registry.specialCharsRule(allowed)
	v.requireObject(objectCheck{tag: TagNoSpecialChars, param: allowed, scanner: rule.scanner}, types)
}

// RequireNoScripts makes Struct scan every value of the given types for
// script markers.
func (v *Validate) RequireNoScripts(types ...any) {
	v.requireObject(objectCheck{tag: TagNoScript, scanner: v.registry.script.scanner}, types)
}

func (v *Validate) requireObject(check objectCheck, types []any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, t := range types {
		typ := reflect.TypeOf(t)
		for typ != nil && typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		if typ == nil || typ.Kind() != reflect.Struct {
			continue
		}
		v.objects[typ] = append(v.objects[typ], check)
		v.engine.RegisterStructValidation(v.validateObject, t)
	}
}

// validateObject reports one error per failing check, named after the
// path of the first offending field.
func (v *Validate) validateObject(sl validator.StructLevel) {
	current := sl.Current()

	v.mu.RLock()
	checks := v.objects[current.Type()]
	v.mu.RUnlock()

	for _, c := range checks {
		violation := c.scanner.ScanValue(current)
		if violation == nil {
			continue
		}
		name := violation.Path
		if name == "" {
			name = current.Type().Name()
		}
		v.logger.Debug("validkit: object rejected",
			zap.String("type", current.Type().String()),
			zap.String("check", violation.Check),
			zap.String("path", violation.Path),
		)
		sl.ReportError(nil, name, name, c.tag, c.param)
	}
}

// ScanSpecialChars scans value for special characters outside allowed and
// returns a *ValidationError naming the first offending path, or nil.
func (v *Validate) ScanSpecialChars(value any, allowed string) error {
	return scanError(v.registry.specialCharsRule(allowed).scanner, TagNoSpecialChars, allowed, value)
}

// ScanScripts scans value for script markers and returns a
// *ValidationError naming the first offending path, or nil.
func (v *Validate) ScanScripts(value any) error {
	return scanError(v.registry.script.scanner, TagNoScript, "", value)
}

func scanError(s *sanitize.Scanner, tag, param string, value any) error {
	violation := s.Scan(value)
	if violation == nil {
		return nil
	}
	return &ValidationError{
		Field:     violation.Path,
		Namespace: violation.Path,
		Tag:       tag,
		Param:     param,
		Type:      errorType(tag),
		Message:   renderMessage(messages[tag], violation.Path),
	}
}

// Strip removes markup from every string reachable from ptr, using the same
// field cache and depth limit as the rules.
func (v *Validate) Strip(ptr any) error {
	o := v.registry.opts
	return sanitize.Strip(ptr, o.scannerOptions()...)
}

// ErrorMessage renders the message for a failed field, preferring
// messages of rules added with RegisterRule.
func (v *Validate) ErrorMessage(fe validator.FieldError) string {
	v.mu.RLock()
	template, ok := v.custom[fe.Tag()]
	v.mu.RUnlock()
	if ok {
		return renderMessage(template, fe.Field())
	}
	return ErrorMessage(fe)
}

// convert turns engine errors into ValidationErrors. Other errors, such as
// *validator.InvalidValidationError, are returned unchanged.
func (v *Validate) convert(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		e := NewValidationError(fe)
		e.Message = v.ErrorMessage(fe)
		out = append(out, e)
	}
	return out
}
