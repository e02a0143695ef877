package sanitize

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ErrNotPointer is returned by Strip when it is not given a non-nil pointer.
	ErrNotPointer = errors.New("sanitize: value must be a non-nil pointer")

	// ErrMaxDepth is returned by Strip when the value is nested deeper than the
	// configured depth. Strings above that depth have already been stripped.
	ErrMaxDepth = errors.New("sanitize: value nested deeper than max depth")
)

// stripPolicy removes every element; script and style bodies are dropped.
// bluemonday policies are safe for concurrent use after creation.
var stripPolicy = bluemonday.StrictPolicy()

// StripString removes all markup from s. The remaining text is HTML-escaped,
// so "&" comes back as "&amp;".
func StripString(s string) string {
	return stripPolicy.Sanitize(s)
}

// Strip removes markup from every settable string reachable from ptr,
// including string and rune slices. Fields tagged `sanitize:"skipstrip"` or
// `sanitize:"-"` are left alone, as are map values.
func Strip(ptr any, opts ...Option) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return ErrNotPointer
	}

	w := newWalker(newSettings(opts), SkipStrip, func(_ string, leaf reflect.Value) bool {
		stripLeaf(leaf)
		return true
	})
	w.walk(v, "", 0)
	if w.truncated {
		return fmt.Errorf("%w at %q", ErrMaxDepth, w.truncatedAt)
	}
	return nil
}

func stripLeaf(v reflect.Value) {
	if v.Kind() == reflect.String {
		if v.CanSet() {
			v.SetString(StripString(v.String()))
		}
		return
	}

	if v.Type().Elem().Kind() == reflect.Int32 {
		if v.Kind() == reflect.Slice && v.CanSet() {
			stripped := []rune(StripString(textOf(v)))
			v.Set(reflect.ValueOf(stripped).Convert(v.Type()))
		}
		return
	}

	for i := 0; i < v.Len(); i++ {
		e := v.Index(i)
		if e.Kind() == reflect.Pointer {
			if e.IsNil() {
				continue
			}
			e = e.Elem()
		}
		if e.Kind() == reflect.String && e.CanSet() {
			e.SetString(StripString(e.String()))
		}
	}
}
