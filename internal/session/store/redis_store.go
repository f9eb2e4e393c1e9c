package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/retail-dashboard/internal/session/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis so every instance sees them. Keys
// expire with the session.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore creates a session store on client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Save(ctx context.Context, sess *domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	var ttl time.Duration
	if !sess.ExpiresAt.IsZero() {
		ttl = sess.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}
	if err := s.client.Set(ctx, key(sess.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %v: %w", err, apperror.ErrConnection)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.NotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %v: %w", err, apperror.ErrConnection)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %v: %w", err, apperror.ErrConnection)
	}
	return nil
}

func key(id string) string {
	return keyPrefix + id
}
