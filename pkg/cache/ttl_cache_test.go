package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	_, ok := c.Get("yok")
	assert.False(t, ok)

	c.Set("a", 42)
	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	// Üzerine yazma
	c.Set("a", 7)
	val, _ = c.Get("a")
	assert.Equal(t, 7, val)
}

func TestExpiry(t *testing.T) {
	c := New[string, string](20*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("a", "deger")
	time.Sleep(40 * time.Millisecond)

	// Süresi doldu — Get miss döner, entry fiziksel olarak hâlâ durur
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCleanupEvictsExpired(t *testing.T) {
	c := New[string, string](10*time.Millisecond, 20*time.Millisecond)
	defer c.Close()

	c.Set("a", "deger")
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestDeleteAndDeleteFunc(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("user:1", 1)
	c.Set("user:2", 2)
	c.Set("post:1", 3)

	c.Delete("user:1")
	_, ok := c.Get("user:1")
	assert.False(t, ok)

	c.DeleteFunc(func(key string) bool { return key[:5] == "user:" })
	_, ok = c.Get("user:2")
	assert.False(t, ok)
	_, ok = c.Get("post:1")
	assert.True(t, ok)
}

func TestClear(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	assert.Zero(t, c.Len())
}
