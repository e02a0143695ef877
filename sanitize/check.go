package sanitize

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Skip options understood in the `sanitize` struct tag.
const (
	TagName = "sanitize"

	SkipAll          = "-"
	SkipSpecialChars = "skipspecialchars"
	SkipScript       = "skipscript"
	SkipStrip        = "skipstrip"
)

// alphanumericSpace is used when no characters are explicitly allowed.
var alphanumericSpace = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)

// Check decides whether a piece of text is invalid.
type Check interface {
	// Name identifies the check in violations and logs.
	Name() string

	// SkipOption is the `sanitize` tag option that excludes a field from this check.
	SkipOption() string

	// Invalid reports whether s fails the check.
	Invalid(s string) bool
}

type specialChars struct {
	allowed []rune
}

// SpecialChars returns a check rejecting characters that are not letters,
// digits or spaces, unless they appear in allowed. With nothing allowed the
// check is stricter and only accepts ASCII letters, digits and spaces.
func SpecialChars(allowed ...rune) Check {
	return &specialChars{allowed: slices.Clone(allowed)}
}

func (c *specialChars) Name() string       { return "specialchars" }
func (c *specialChars) SkipOption() string { return SkipSpecialChars }

func (c *specialChars) Invalid(s string) bool {
	return ContainsSpecialChar(s, c.allowed)
}

type scriptTags struct{}

// ScriptTags returns a check rejecting text that contains a script tag marker.
func ScriptTags() Check {
	return scriptTags{}
}

func (scriptTags) Name() string          { return "script" }
func (scriptTags) SkipOption() string    { return SkipScript }
func (scriptTags) Invalid(s string) bool { return ContainsScriptTag(s) }

// ContainsSpecialChar reports whether s holds a character outside the
// allow-list. Empty and whitespace-only strings never do.
func ContainsSpecialChar(s string, allowed []rune) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}

	// Composed form, so "e" + U+0301 counts as the letter it renders as.
	s = norm.NFC.String(s)

	if len(allowed) == 0 {
		return !alphanumericSpace.MatchString(s)
	}

	for _, r := range s {
		if r == ' ' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if !slices.Contains(allowed, r) {
			return true
		}
	}
	return false
}

// ContainsScriptTag reports whether s contains "<script" or "script>",
// ignoring case. The closing form also matches "</script>".
func ContainsScriptTag(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	lower := strings.ToLower(s)
	return strings.Contains(lower, "<script") || strings.Contains(lower, "script>")
}
