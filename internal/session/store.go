package session

import (
	"context"
	"fmt"
	"time"

	"github.com/cajimenez96/gym-console/internal/cache"
)

// Store persists sessions. Load returns (nil, nil) when the id is unknown so
// callers can distinguish absence from store failure.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

const sessionKeyPrefix = "session:"

// RedisStore keeps sessions in the shared Redis cache with the session TTL.
type RedisStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewRedisStore creates a RedisStore over the given cache.
func NewRedisStore(c *cache.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

// Save writes the session record under its id.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	const op = "session.RedisStore.Save"
	if err := r.cache.Set(ctx, sessionKeyPrefix+s.ID, s, r.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load reads a session record by id.
func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	const op = "session.RedisStore.Load"
	var s Session
	found, err := r.cache.Get(ctx, sessionKeyPrefix+id, &s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, nil
	}
	return &s, nil
}

// Delete removes a session record.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	const op = "session.RedisStore.Delete"
	if err := r.cache.Invalidate(ctx, sessionKeyPrefix+id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
