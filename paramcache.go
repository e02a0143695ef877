package validkit

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// paramEntry is a rule built from one tag parameter.
type paramEntry struct {
	tag   string
	param string
	rule  Rule
}

// paramCache holds rules built from tag parameters so that each distinct
// `tag=param` is parsed once per engine. Entries are bucketed by an xxhash
// of tag and param; a bucket is scanned to rule out collisions.
type paramCache struct {
	mu      sync.RWMutex
	buckets map[uint64][]paramEntry
}

func newParamCache() *paramCache {
	return &paramCache{
		buckets: make(map[uint64][]paramEntry),
	}
}

func paramKey(tag, param string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(tag)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(param)
	return d.Sum64()
}

// get returns the cached rule for tag and param, building it on first use.
// A build error panics, the same way the engine treats a malformed tag.
func (c *paramCache) get(tag, param string, build func(param string) (Rule, error)) Rule {
	key := paramKey(tag, param)

	c.mu.RLock()
	for _, e := range c.buckets[key] {
		if e.tag == tag && e.param == param {
			c.mu.RUnlock()
			return e.rule
		}
	}
	c.mu.RUnlock()

	rule, err := build(param)
	if err != nil {
		panic(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.buckets[key] {
		if e.tag == tag && e.param == param {
			return e.rule
		}
	}
	c.buckets[key] = append(c.buckets[key], paramEntry{tag: tag, param: param, rule: rule})
	return rule
}

// len returns the number of cached rules.
func (c *paramCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, b := range c.buckets {
		n += len(b)
	}
	return n
}
