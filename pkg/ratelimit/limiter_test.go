package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterWithoutRedisAllowsEverything(t *testing.T) {
	l := NewLimiter(nil, "login", 1, time.Minute)
	require.False(t, l.Enabled())

	for i := 0; i < 10; i++ {
		ok, retry, err := l.Allow(context.Background(), "alice")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, retry)
	}
	assert.NoError(t, l.Reset(context.Background(), "alice"))
}

func TestLimiterKey(t *testing.T) {
	l := NewLimiter(nil, "login", 5, time.Minute)
	assert.Equal(t, "ratelimit:login:alice@10.0.0.1", l.key("alice@10.0.0.1"))

	var nilLimiter *Limiter
	assert.False(t, nilLimiter.Enabled())
}
