package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle locks an account out for a while after repeated failed
// logins. The handler only asks two questions: is this account locked, and
// record one more failure.
type LoginThrottle interface {
	Locked(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

const throttleKeyPrefix = "auth:failures:"

// RedisLoginThrottle counts failures in redis under a key that expires after
// the lockout window, so a quiet account unlocks by itself.
type RedisLoginThrottle struct {
	rdb         *redis.Client
	maxAttempts int
	lockout     time.Duration
}

func NewRedisLoginThrottle(rdb *redis.Client, maxAttempts int, lockout time.Duration) *RedisLoginThrottle {
	return &RedisLoginThrottle{rdb: rdb, maxAttempts: maxAttempts, lockout: lockout}
}

func (t *RedisLoginThrottle) Locked(ctx context.Context, username string) (bool, error) {
	count, err := t.rdb.Get(ctx, throttleKeyPrefix+username).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= t.maxAttempts, nil
}

func (t *RedisLoginThrottle) Fail(ctx context.Context, username string) error {
	key := throttleKeyPrefix + username
	count, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return t.rdb.Expire(ctx, key, t.lockout).Err()
	}
	return nil
}

func (t *RedisLoginThrottle) Reset(ctx context.Context, username string) error {
	return t.rdb.Del(ctx, throttleKeyPrefix+username).Err()
}

// MemoryLoginThrottle is the test double for RedisLoginThrottle.
type MemoryLoginThrottle struct {
	mu          sync.Mutex
	failures    map[string]int
	maxAttempts int
}

func NewMemoryLoginThrottle(maxAttempts int) *MemoryLoginThrottle {
	return &MemoryLoginThrottle{failures: map[string]int{}, maxAttempts: maxAttempts}
}

func (t *MemoryLoginThrottle) Locked(ctx context.Context, username string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failures[username] >= t.maxAttempts, nil
}

func (t *MemoryLoginThrottle) Fail(ctx context.Context, username string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures[username]++
	return nil
}

func (t *MemoryLoginThrottle) Reset(ctx context.Context, username string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, username)
	return nil
}
