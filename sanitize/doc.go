// Package sanitize walks arbitrary Go values looking for text that fails a check.
//
// A [Scanner] pairs a [Check] with a recursive walker. Strings are checked
// directly, string and rune slices are concatenated and checked as one value,
// and structs, pointers, interfaces, slices and maps are walked into. Numbers,
// bools and nil values never fail.
//
// # Checks
//
//	sanitize.SpecialChars()         // only [a-zA-Z0-9 ] allowed
//	sanitize.SpecialChars('-', '_') // letters, digits, space, '-' and '_'
//	sanitize.ScriptTags()           // rejects "<script" and "script>"
//
// # Skipping fields
//
// Fields opt out of a check with the `sanitize` struct tag:
//
//	type Comment struct {
//	    Author string
//	    Body   string `sanitize:"skipspecialchars"`
//	    HTML   string `sanitize:"skipscript,skipstrip"`
//	    Raw    string `sanitize:"-"` // skipped by every check
//	}
//
// # Cycles
//
// Each pointer, slice and map is visited at most once per scan, so cyclic
// graphs terminate. Values nested deeper than the configured depth (see
// [WithMaxDepth]) fail the scan with a [MaxDepthCheck] violation, and [Strip]
// returns [ErrMaxDepth] for them.
//
// # Stripping
//
// [Strip] rewrites string fields in place, removing all markup with a
// bluemonday strict policy. [StripString] does the same for a single value.
package sanitize
