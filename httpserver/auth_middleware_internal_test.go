package httpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowStore(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	store := newFixedWindowStore(5, 15*time.Minute, func() time.Time { return now })

	allow := func(id string) bool {
		ok, err := store.Allow(id)
		assert.NoError(t, err)
		return ok
	}

	t.Run("grants exactly the limit within one window", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			now = start.Add(time.Duration(i) * 3 * time.Minute)
			assert.True(t, allow("10.0.0.1"), "request %d", i+1)
		}

		// still inside the first window
		now = start.Add(14*time.Minute + 59*time.Second)
		assert.False(t, allow("10.0.0.1"))
	})

	t.Run("clients have separate windows", func(t *testing.T) {
		assert.True(t, allow("10.0.0.2"))
	})

	t.Run("a new window starts after the old one ends", func(t *testing.T) {
		now = start.Add(15 * time.Minute)
		for i := 0; i < 5; i++ {
			assert.True(t, allow("10.0.0.1"))
		}
		assert.False(t, allow("10.0.0.1"))
	})

	t.Run("expired windows are swept", func(t *testing.T) {
		now = start.Add(2 * time.Hour)
		assert.True(t, allow("10.0.0.3"))

		store.mu.Lock()
		defer store.mu.Unlock()
		assert.Len(t, store.windows, 1)
	})
}
