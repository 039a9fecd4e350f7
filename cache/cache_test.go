package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := New(50 * time.Millisecond)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", 42)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	time.Sleep(60 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestCacheDelete(t *testing.T) {
	c := New(time.Minute)

	c.Set("k", "v")
	c.Delete("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheOverwrite(t *testing.T) {
	c := New(time.Minute)

	c.Set("k", 1)
	c.Set("k", 2)

	v, _ := c.Get("k")
	assert.Equal(t, 2, v)
}
