//go:build !integration

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache(capacity int, ttl time.Duration) (*TTLCache[string, int], *time.Time) {
	c := New[string, int]("test", capacity, ttl, 0)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }
	return c, &clock
}

func TestTTLCache_Get(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(c *TTLCache[string, int], clock *time.Time)
		key           string
		expectedValue int
		expectedFound bool
	}{
		{
			name: "returns value when exists and not expired",
			setup: func(c *TTLCache[string, int], _ *time.Time) {
				c.Set("cpu", 100)
			},
			key:           "cpu",
			expectedValue: 100,
			expectedFound: true,
		},
		{
			name:          "returns false when key not found",
			setup:         func(*TTLCache[string, int], *time.Time) {},
			key:           "missing",
			expectedFound: false,
		},
		{
			name: "returns false when expired",
			setup: func(c *TTLCache[string, int], clock *time.Time) {
				c.Set("cpu", 100)
				*clock = clock.Add(2 * time.Minute)
			},
			key:           "cpu",
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newTestCache(10, time.Minute)
			tt.setup(c, clock)

			value, found := c.Get(tt.key)

			assert.Equal(t, tt.expectedFound, found)
			if tt.expectedFound {
				assert.Equal(t, tt.expectedValue, value)
			}
		})
	}
}

func TestTTLCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	c.Set("c", 3)

	_, foundA := c.Get("a")
	_, foundB := c.Get("b")
	_, foundC := c.Get("c")
	assert.True(t, foundA)
	assert.False(t, foundB)
	assert.True(t, foundC)
	assert.Equal(t, int64(1), c.Metrics().Evictions)
}

func TestTTLCache_UpdateExistingEntry(t *testing.T) {
	c, clock := newTestCache(2, time.Minute)

	c.Set("a", 1)
	*clock = clock.Add(50 * time.Second)
	c.Set("a", 2)
	*clock = clock.Add(50 * time.Second)

	v, found := c.Get("a")
	assert.True(t, found, "update refreshes the expiry")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Metrics().Size)
}

func TestTTLCache_InvalidateAndClear(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	_, found := c.Get("a")
	assert.False(t, found)

	c.Clear()
	m := c.Metrics()
	assert.Equal(t, 0, m.Size)
	assert.Equal(t, int64(0), m.Misses)
}

func TestTTLCache_Cleanup(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)
	c.Set("a", 1)
	*clock = clock.Add(30 * time.Second)
	c.Set("b", 2)
	*clock = clock.Add(45 * time.Second)

	c.cleanup()

	assert.Equal(t, 1, c.Metrics().Size)
}

func TestTTLCache_Concurrency(t *testing.T) {
	c := New[string, int]("test", 50, time.Minute, time.Millisecond)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (n+j)%80)
				c.Set(key, j)
				_, _ = c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Metrics().Size, 50)
}

func TestTTLCache_StopIsIdempotent(t *testing.T) {
	c := New[string, int]("test", 1, time.Minute, time.Second)
	c.Stop()
	assert.NotPanics(t, c.Stop)
}

func TestTTLCache_ImplementsInterface(t *testing.T) {
	var _ Cache[string, int] = New[string, int]("test", 1, time.Minute, 0)
}
