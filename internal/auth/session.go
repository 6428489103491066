// README: Redis-backed bearer sessions mapping opaque tokens to rider uuids.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("session not found")

const (
	sessionPrefix = "session:"
	statePrefix   = "oauth-state:"

	sessionTTL = 30 * 24 * time.Hour
	stateTTL   = 10 * time.Minute
)

type Sessions struct {
	rdb *redis.Client
}

func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb}
}

// Create mints a bearer token for the rider.
func (s *Sessions) Create(ctx context.Context, riderUUID string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionPrefix+token, riderUUID, sessionTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Lookup resolves a bearer token to a rider uuid.
func (s *Sessions) Lookup(ctx context.Context, token string) (string, error) {
	v, err := s.rdb.Get(ctx, sessionPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// NewState mints the anti-forgery state for one login attempt.
func (s *Sessions) NewState(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.rdb.Set(ctx, statePrefix+state, "1", stateTTL).Err(); err != nil {
		return "", err
	}
	return state, nil
}

// ConsumeState validates and burns a login state token.
func (s *Sessions) ConsumeState(ctx context.Context, state string) bool {
	n, err := s.rdb.Del(ctx, statePrefix+state).Result()
	return err == nil && n == 1
}
