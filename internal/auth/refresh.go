package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRefreshTokenNotFound is returned for unknown, expired or revoked tokens.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshStore keeps the opaque refresh tokens that let a client obtain a new
// access token without re-sending credentials.
type RefreshStore interface {
	Save(ctx context.Context, token, username string) error
	Lookup(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// NewRefreshToken returns a random opaque token.
func NewRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

const refreshKeyPrefix = "auth:refresh:"

// RedisRefreshStore stores refresh tokens in redis with a TTL so revocation
// and expiry survive process restarts.
type RedisRefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRefreshStore(rdb *redis.Client, ttl time.Duration) *RedisRefreshStore {
	return &RedisRefreshStore{rdb: rdb, ttl: ttl}
}

func (s *RedisRefreshStore) Save(ctx context.Context, token, username string) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+token, username, s.ttl).Err()
}

func (s *RedisRefreshStore) Lookup(ctx context.Context, token string) (string, error) {
	username, err := s.rdb.Get(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRefreshTokenNotFound
	}
	return username, err
}

func (s *RedisRefreshStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+token).Err()
}

// MemoryRefreshStore is the test double for RedisRefreshStore. No expiry.
type MemoryRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewMemoryRefreshStore() *MemoryRefreshStore {
	return &MemoryRefreshStore{tokens: map[string]string{}}
}

func (s *MemoryRefreshStore) Save(ctx context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = username
	return nil
}

func (s *MemoryRefreshStore) Lookup(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.tokens[token]
	if !ok {
		return "", ErrRefreshTokenNotFound
	}
	return username, nil
}

func (s *MemoryRefreshStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
