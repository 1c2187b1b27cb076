package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements shared.Locker with SET NX PX leases.
// Each acquisition stores a random token that release must present.
type RedisLocker struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	wait      time.Duration
	retry     time.Duration
}

// NewRedisLocker creates a Redis-backed locker with an existing client
func NewRedisLocker(client redis.UniversalClient, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client:    client,
		keyPrefix: "pms:lock:",
		ttl:       ttl,
		wait:      wait,
		retry:     25 * time.Millisecond,
	}
}

// Acquire polls SET NX until it wins, the wait budget runs out, or ctx ends
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func() error, error) {
	redisKey := l.keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %q: %w", key, err)
		}
		if ok {
			return l.releaser(redisKey, token), nil
		}
		if !time.Now().Before(deadline) {
			return nil, shared.ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func (l *RedisLocker) releaser(redisKey, token string) func() error {
	return func() error {
		// Use a fresh context so a cancelled request still frees its lease
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		deleted, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
		if err != nil {
			return fmt.Errorf("failed to release lock: %w", err)
		}
		if deleted == 0 {
			return shared.ErrLockNotHeld
		}
		return nil
	}
}

var _ shared.Locker = (*RedisLocker)(nil)
