// Package session keeps the server-side record of signed-in sessions. A
// token is only honoured while its session is present in the store, so
// logging out takes effect before the token expires.
package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Session links a session id to the user it was issued for.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has run out at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions until they expire.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Config selects and configures the store implementation.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// NewStore returns a Redis-backed Store if RedisAddr is set, otherwise an
// in-process one.
func NewStore(cfg Config) (Store, error) {
	if cfg.RedisAddr != "" {
		return NewRedisStore(cfg)
	}
	return NewMemoryStore(), nil
}
