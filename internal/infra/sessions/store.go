// Package sessions stores login sessions in Redis. A session is an opaque
// token mapped to a user id, expiring after the configured TTL.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionNotFound is returned for unknown or expired tokens.
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrStoreUnavailable is returned when Redis fails.
	ErrStoreUnavailable = errors.New("sessions: store unavailable")
)

// Store manages sessions in Redis.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore creates a session store.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

// Create issues a new session token for the user.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()

	err := s.client.Set(ctx, s.key(token), strconv.FormatInt(userID, 10), s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("%w: Create - set session: %v", ErrStoreUnavailable, err)
	}

	return token, nil
}

// Get resolves a token to the user id and refreshes the TTL.
func (s *Store) Get(ctx context.Context, token string) (int64, error) {
	value, err := s.client.GetEx(ctx, s.key(token), s.ttl).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Get - get session: %v", ErrStoreUnavailable, err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: Get - corrupt session value %q: %v", ErrStoreUnavailable, value, err)
	}

	return userID, nil
}

// Delete revokes a session token. Deleting an unknown token is not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - delete session: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) key(token string) string {
	return s.prefix + ":" + token
}
