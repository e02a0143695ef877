package sanitize

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// visitKey identifies a pointer, slice or map already walked during one
// pass. Slices sharing a backing array differ by length.
type visitKey struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// walker visits every text leaf reachable from a value. A leaf is a string or
// a slice/array of strings or runes. visit returns false to stop the walk.
// A walk that reaches maxDepth stops and records the path in truncatedAt;
// the unvisited subtree must not be treated as clean.
type walker struct {
	cache       *FieldCache
	maxDepth    int
	skip        string
	logger      *zap.Logger
	visit       func(path string, leaf reflect.Value) bool
	visited     map[visitKey]struct{}
	truncated   bool
	truncatedAt string
}

func newWalker(s settings, skip string, visit func(path string, leaf reflect.Value) bool) *walker {
	return &walker{
		cache:    s.cache,
		maxDepth: s.maxDepth,
		skip:     skip,
		logger:   s.logger,
		visit:    visit,
		visited:  make(map[visitKey]struct{}),
	}
}

// walk returns false once visit has asked to stop.
func (w *walker) walk(v reflect.Value, path string, depth int) bool {
	if depth > w.maxDepth {
		w.logger.Warn("sanitize: max depth reached, subtree not scanned",
			zap.String("path", path),
			zap.Int("max_depth", w.maxDepth),
		)
		w.truncated = true
		w.truncatedAt = path
		return false
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return true
		}
		if v.Kind() == reflect.Pointer {
			if w.seen(visitKey{ptr: v.Pointer(), typ: v.Type()}) {
				return true
			}
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return w.visit(path, v)

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return true
		}
		if isText(v.Type()) {
			return w.visit(path, v)
		}
		if !walkable(v.Type().Elem()) {
			return true
		}
		if v.Kind() == reflect.Slice && v.Len() > 0 &&
			w.seen(visitKey{ptr: v.Pointer(), len: v.Len(), typ: v.Type()}) {
			return true
		}
		for i := 0; i < v.Len(); i++ {
			if !w.walk(v.Index(i), path+"["+strconv.Itoa(i)+"]", depth+1) {
				return false
			}
		}

	case reflect.Map:
		if v.IsNil() || !walkable(v.Type().Elem()) {
			return true
		}
		if w.seen(visitKey{ptr: v.Pointer(), typ: v.Type()}) {
			return true
		}
		iter := v.MapRange()
		for iter.Next() {
			if !w.walk(iter.Value(), path+"["+mapKey(iter.Key())+"]", depth+1) {
				return false
			}
		}

	case reflect.Struct:
		for _, f := range w.cache.lookup(v.Type()).fields {
			if f.skip.has(w.skip) {
				continue
			}
			if !w.walk(v.Field(f.index), joinPath(path, f.name), depth+1) {
				return false
			}
		}
	}

	return true
}

// seen marks key as visited and reports whether it already was.
func (w *walker) seen(key visitKey) bool {
	if _, ok := w.visited[key]; ok {
		return true
	}
	w.visited[key] = struct{}{}
	return false
}

// isText reports whether t is a collection of characters or strings.
// []rune and []int32 are the same type, so both count as text.
func isText(t reflect.Type) bool {
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
		return false
	}
	elem := t.Elem()
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	return elem.Kind() == reflect.String || elem.Kind() == reflect.Int32
}

// walkable reports whether values of type t can hold text.
func walkable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Struct, reflect.Pointer, reflect.Interface,
		reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// textOf flattens a text leaf into a single string.
func textOf(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}

	var b strings.Builder
	for i := 0; i < v.Len(); i++ {
		e := v.Index(i)
		if e.Kind() == reflect.Pointer {
			if e.IsNil() {
				continue
			}
			e = e.Elem()
		}
		switch e.Kind() {
		case reflect.String:
			b.WriteString(e.String())
		case reflect.Int32:
			b.WriteRune(rune(e.Int()))
		}
	}
	return b.String()
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() {
		return fmt.Sprint(k.Interface())
	}
	return k.Kind().String()
}
