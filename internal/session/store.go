package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned for unknown or expired session ids.
var ErrNoSession = errors.New("session not found")

const keyPrefix = "shop:session:"

// Store keeps server-side sessions in Redis. A session maps an opaque id to
// the principal's user id and nothing else.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a Store whose sessions live for ttl.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create opens a session for userID and returns its id.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+id, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session: save: %w", err)
	}
	return id, nil
}

// Lookup returns the user id stored in the session.
func (s *Store) Lookup(ctx context.Context, id string) (uint, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("session: load: %w", err)
	}
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session: corrupt entry: %w", err)
	}
	return uint(userID), nil
}

// Destroy deletes the session. Unknown ids are not an error.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}
