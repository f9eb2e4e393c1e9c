package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/internal/session/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, &domain.Session{ID: "a", Username: "ann", ExpiresAt: now.Add(time.Hour)}))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "ann", got.Username)

	now = now.Add(time.Hour)
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, &domain.Session{ID: "a"}))
	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "session:abc", key("abc"))
}
