package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

var ErrSessionNotFound = errors.New("session: not found")

// User is the authenticated identity behind a session token.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// Store keeps sessions in Redis, one key per token.
type Store struct {
	client redis.Cmdable
}

func NewStore(client redis.Cmdable) *Store {
	return &Store{client: client}
}

func sessionKey(token string) string {
	return keyPrefix + token
}

// Create issues a new token for user that expires after ttl.
func (s *Store) Create(ctx context.Context, user User, ttl time.Duration) (string, error) {
	if user.ID == "" {
		return "", errors.New("session: user id is required")
	}

	token, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshal user: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(token.String()), data, ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token.String(), nil
}

// Lookup resolves token to its user, or ErrSessionNotFound when the token is
// unknown or expired.
func (s *Store) Lookup(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &user, nil
}

func (s *Store) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
