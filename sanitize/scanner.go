package sanitize

import (
	"reflect"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds recursion when no depth is configured.
const DefaultMaxDepth = 32

// MaxDepthCheck is the Violation.Check reported when a value is nested deeper
// than the configured depth. Text below that depth is never accepted unseen.
const MaxDepthCheck = "maxdepth"

// Option configures a Scanner or a Strip call.
type Option func(*settings)

type settings struct {
	cache    *FieldCache
	maxDepth int
	logger   *zap.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		cache:    DefaultFieldCache(),
		maxDepth: DefaultMaxDepth,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithMaxDepth limits how deep nested values are walked.
// Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithFieldCache uses the given cache instead of DefaultFieldCache.
func WithFieldCache(cache *FieldCache) Option {
	return func(s *settings) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithLogger sets the logger used for walk diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Violation describes the first text leaf that failed a check.
type Violation struct {
	// Path is the dotted field path from the scanned value, e.g. "Address.Street"
	// or "Tags[2]". It is empty when the scanned value itself failed.
	Path string

	// Check is the name of the failing check.
	Check string
}

// String implements fmt.Stringer
func (v *Violation) String() string {
	if v.Path == "" {
		return v.Check + " check failed"
	}
	return v.Check + " check failed at " + v.Path
}

// Scanner runs a Check over every text leaf of a value.
// A Scanner is safe for concurrent use.
type Scanner struct {
	check    Check
	settings settings
}

// NewScanner creates a scanner for the given check.
func NewScanner(check Check, opts ...Option) *Scanner {
	return &Scanner{
		check:    check,
		settings: newSettings(opts),
	}
}

// Check returns the scanner's check.
func (s *Scanner) Check() Check {
	return s.check
}

// Cache returns the field cache the scanner reads skip options from.
func (s *Scanner) Cache() *FieldCache {
	return s.settings.cache
}

// Scan walks v and returns the first violation, or nil when v is clean.
func (s *Scanner) Scan(v any) *Violation {
	return s.ScanValue(reflect.ValueOf(v))
}

// ScanValue is Scan for an already reflected value.
func (s *Scanner) ScanValue(v reflect.Value) *Violation {
	var found *Violation
	w := newWalker(s.settings, s.check.SkipOption(), func(path string, leaf reflect.Value) bool {
		if s.check.Invalid(textOf(leaf)) {
			found = &Violation{Path: path, Check: s.check.Name()}
			return false
		}
		return true
	})
	w.walk(v, "", 0)
	if found == nil && w.truncated {
		found = &Violation{Path: w.truncatedAt, Check: MaxDepthCheck}
	}
	return found
}

// Valid reports whether v passes the check everywhere.
func (s *Scanner) Valid(v any) bool {
	return s.Scan(v) == nil
}
