package sanitize

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type tagged struct {
	Plain   string
	Chars   string `sanitize:"skipspecialchars"`
	Both    string `sanitize:"skipspecialchars, skipscript"`
	All     string `sanitize:"-"`
	private string `sanitize:"-"`
}

func TestParseSkipTag(t *testing.T) {
	assert.Nil(t, parseSkipTag(""))
	assert.Equal(t, skipOptions{"skipscript"}, parseSkipTag("skipscript"))
	assert.Equal(t, skipOptions{"skipscript", "skipstrip"}, parseSkipTag(" skipscript ,, skipstrip "))
}

func TestSkipOptions_Has(t *testing.T) {
	assert.False(t, skipOptions(nil).has(SkipScript))
	assert.True(t, skipOptions{SkipScript}.has(SkipScript))
	assert.False(t, skipOptions{SkipScript}.has(SkipSpecialChars))
	assert.True(t, skipOptions{SkipAll}.has(SkipStrip))
}

func TestFieldCache_Skipped(t *testing.T) {
	c := NewFieldCache()
	parent := reflect.ValueOf(tagged{})

	tests := []struct {
		field  string
		option string
		want   bool
	}{
		{"Plain", SkipSpecialChars, false},
		{"Chars", SkipSpecialChars, true},
		{"Chars", SkipScript, false},
		{"Both", SkipScript, true},
		{"Both", SkipSpecialChars, true},
		{"All", SkipStrip, true},
		{"private", SkipStrip, false},
		{"Missing", SkipScript, false},
		{"", SkipScript, false},
	}
	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.option, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Skipped(parent, tt.field, tt.option))
		})
	}

	assert.True(t, c.Skipped(reflect.ValueOf(&tagged{}), "Chars", SkipSpecialChars))
	assert.False(t, c.Skipped(reflect.ValueOf((*tagged)(nil)), "Chars", SkipSpecialChars))
	assert.False(t, c.Skipped(reflect.ValueOf("not a struct"), "Chars", SkipSpecialChars))
	assert.False(t, c.Skipped(reflect.Value{}, "Chars", SkipSpecialChars))
}

func TestFieldCache_Stats(t *testing.T) {
	c := NewFieldCache()
	typ := reflect.TypeOf(tagged{})

	c.lookup(typ)
	c.lookup(typ)
	c.lookup(typ)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Size)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 0.0001)

	c.Clear()
	assert.Equal(t, CacheStatistics{}, c.Stats())
}

func TestFieldCache_ExportedOnly(t *testing.T) {
	tf := NewFieldCache().lookup(reflect.TypeOf(tagged{}))
	names := make([]string, 0, len(tf.fields))
	for _, f := range tf.fields {
		names = append(names, f.name)
	}
	assert.Equal(t, []string{"Plain", "Chars", "Both", "All"}, names)
}

func TestFieldCache_Concurrent(t *testing.T) {
	c := NewFieldCache()
	typ := reflect.TypeOf(tagged{})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tf := c.lookup(typ)
			assert.Len(t, tf.fields, 4)
		}()
	}
	wg.Wait()

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Size)
	assert.Equal(t, int64(32), stats.Hits+stats.Misses)
}
