package sanitize

import (
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
)

// field is an exported struct field with its parsed skip options.
type field struct {
	name  string
	index int
	skip  skipOptions
}

type skipOptions []string

func (o skipOptions) has(option string) bool {
	for _, opt := range o {
		if opt == SkipAll || opt == option {
			return true
		}
	}
	return false
}

type typeFields struct {
	fields []field
	byName map[string]int
}

// CacheStatistics contains field cache metrics.
type CacheStatistics struct {
	Hits    int64
	Misses  int64
	Size    int64
	HitRate float64
}

// FieldCache maps struct types to their exported fields.
// It is safe for concurrent use.
type FieldCache struct {
	mu     sync.RWMutex
	types  map[reflect.Type]*typeFields
	hits   atomic.Int64
	misses atomic.Int64
}

// NewFieldCache creates an empty field cache.
func NewFieldCache() *FieldCache {
	return &FieldCache{
		types: make(map[reflect.Type]*typeFields),
	}
}

var (
	defaultCache     *FieldCache
	defaultCacheOnce sync.Once
)

// DefaultFieldCache returns the process-wide cache used when none is configured.
func DefaultFieldCache() *FieldCache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewFieldCache()
	})
	return defaultCache
}

// lookup returns the fields of struct type t, reflecting on first use.
func (c *FieldCache) lookup(t reflect.Type) *typeFields {
	c.mu.RLock()
	tf, ok := c.types[t]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return tf
	}

	c.misses.Add(1)
	tf = reflectFields(t)

	c.mu.Lock()
	// Another goroutine may have won the race; either result is identical.
	if existing, ok := c.types[t]; ok {
		tf = existing
	} else {
		c.types[t] = tf
	}
	c.mu.Unlock()
	return tf
}

func reflectFields(t reflect.Type) *typeFields {
	tf := &typeFields{byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tf.byName[sf.Name] = len(tf.fields)
		tf.fields = append(tf.fields, field{
			name:  sf.Name,
			index: i,
			skip:  parseSkipTag(sf.Tag.Get(TagName)),
		})
	}
	return tf
}

func parseSkipTag(tag string) skipOptions {
	if tag == "" {
		return nil
	}
	parts := strings.Split(tag, ",")
	opts := make(skipOptions, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			opts = append(opts, p)
		}
	}
	return opts
}

// Skipped reports whether the field named fieldName on parent carries the
// given skip option. parent may be a struct or a pointer to one; anything else
// reports false.
func (c *FieldCache) Skipped(parent reflect.Value, fieldName, option string) bool {
	if fieldName == "" {
		return false
	}
	for parent.Kind() == reflect.Pointer || parent.Kind() == reflect.Interface {
		if parent.IsNil() {
			return false
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	tf := c.lookup(parent.Type())
	idx, ok := tf.byName[fieldName]
	if !ok {
		return false
	}
	return tf.fields[idx].skip.has(option)
}

// Stats returns cache statistics.
func (c *FieldCache) Stats() CacheStatistics {
	c.mu.RLock()
	size := int64(len(c.types))
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return CacheStatistics{
		Hits:    hits,
		Misses:  misses,
		Size:    size,
		HitRate: rate,
	}
}

// Clear drops all cached types and resets the counters.
func (c *FieldCache) Clear() {
	c.mu.Lock()
	c.types = make(map[reflect.Type]*typeFields)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}
