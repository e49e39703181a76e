package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestViewCounterKey(t *testing.T) {
	c := &ViewCounter{}
	at := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "views:2025-06-01:/blog/hello", c.key(at, "/blog/hello"))
}

func TestViewCounterKeyUsesUTCDay(t *testing.T) {
	c := &ViewCounter{}
	// Early morning in UTC+7 is still the previous day in UTC.
	jakarta := time.FixedZone("WIB", 7*3600)
	at := time.Date(2025, 6, 2, 1, 30, 0, 0, jakarta)

	assert.Equal(t, "views:2025-06-01:/", c.key(at, "/"))
}

func TestParseViewKey(t *testing.T) {
	day, path, ok := parseViewKey("views:2025-06-01:/blog/hello")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, "/blog/hello", path)

	// Paths may themselves contain colons.
	_, path, ok = parseViewKey("views:2025-06-01:/docs/v1:beta")
	assert.True(t, ok)
	assert.Equal(t, "/docs/v1:beta", path)

	for _, key := range []string{
		"other:2025-06-01:/",
		"views:not-a-date:/",
		"views:2025-06-01:",
		"views:2025-06-01",
		"",
	} {
		_, _, ok := parseViewKey(key)
		assert.False(t, ok, "key %q", key)
	}
}
