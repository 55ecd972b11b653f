package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ledger:lock:"

// releaseScript deletes the key only if it still carries our token, so an expired lock
// re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares locks across every instance pointed at the same Redis.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker creates a locker whose keys expire after ttl even if never released.
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func() {
		// Release must not depend on the request context, which may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
			slog.Warn("Failed to release lock", slog.String("key", key), slog.String("error", err.Error()))
		}
	}, nil
}
