package validkit

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gobeaver/validkit/sanitize"
)

// Rule is a validation function bound to a tag, plus the message template
// rendered when it fails.
type Rule interface {
	IsValid(fl validator.FieldLevel) bool
	Message() string
}

// SpecialCharsRule rejects text holding characters that are neither letters,
// digits nor spaces and are not explicitly allowed. Nested structs, slices
// and maps are scanned; fields tagged `sanitize:"skipspecialchars"` are not.
type SpecialCharsRule struct {
	allowed string
	scanner *sanitize.Scanner
	logger  *zap.Logger
}

// NewSpecialCharsRule creates the rule. An empty allowed set accepts only
// ASCII letters, digits and spaces.
func NewSpecialCharsRule(allowed string, opts ...Option) *SpecialCharsRule {
	o := buildOptions(opts)
	return &SpecialCharsRule{
		allowed: allowed,
		scanner: sanitize.NewScanner(sanitize.SpecialChars([]rune(allowed)...), o.scannerOptions()...),
		logger:  o.Logger,
	}
}

// Allowed returns the allowed characters.
func (r *SpecialCharsRule) Allowed() string {
	return r.allowed
}

// Valid reports whether v holds no disallowed characters.
func (r *SpecialCharsRule) Valid(v any) bool {
	return r.scanner.Valid(v)
}

// Scan returns the first violation in v, or nil.
func (r *SpecialCharsRule) Scan(v any) *sanitize.Violation {
	return r.scanner.Scan(v)
}

// IsValid implements Rule
func (r *SpecialCharsRule) IsValid(fl validator.FieldLevel) bool {
	return scanField(r.scanner, r.logger, fl)
}

// Message implements Rule
func (r *SpecialCharsRule) Message() string {
	return MessageFor(TagNoSpecialChars)
}

// ScriptRule rejects text containing "<script" or "script>" in any case.
// Fields tagged `sanitize:"skipscript"` are not checked.
type ScriptRule struct {
	scanner *sanitize.Scanner
	logger  *zap.Logger
}

// NewScriptRule creates the rule.
func NewScriptRule(opts ...Option) *ScriptRule {
	o := buildOptions(opts)
	return &ScriptRule{
		scanner: sanitize.NewScanner(sanitize.ScriptTags(), o.scannerOptions()...),
		logger:  o.Logger,
	}
}

// Valid reports whether v holds no script markers.
func (r *ScriptRule) Valid(v any) bool {
	return r.scanner.Valid(v)
}

// Scan returns the first violation in v, or nil.
func (r *ScriptRule) Scan(v any) *sanitize.Violation {
	return r.scanner.Scan(v)
}

// IsValid implements Rule
func (r *ScriptRule) IsValid(fl validator.FieldLevel) bool {
	return scanField(r.scanner, r.logger, fl)
}

// Message implements Rule
func (r *ScriptRule) Message() string {
	return MessageFor(TagNoScript)
}

// scanField skips fields carrying the scanner's skip option on their parent
// struct, then scans the field value.
func scanField(s *sanitize.Scanner, logger *zap.Logger, fl validator.FieldLevel) bool {
	check := s.Check()
	if s.Cache().Skipped(fl.Parent(), fl.StructFieldName(), check.SkipOption()) {
		return true
	}

	violation := s.ScanValue(fl.Field())
	if violation == nil {
		return true
	}

	logger.Debug("validkit: value rejected",
		zap.String("field", fl.StructFieldName()),
		zap.String("check", violation.Check),
		zap.String("path", violation.Path),
	)
	return false
}
