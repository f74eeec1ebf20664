package repository

import (
	"context"
	"time"

	redisapp "photostudio/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitRepo counts hits per key in fixed windows.
type RedisRateLimitRepo struct {
	client *redisapp.Client
	prefix string
}

func NewRedisRateLimitRepo(client *redisapp.Client, prefix string) *RedisRateLimitRepo {
	return &RedisRateLimitRepo{client: client, prefix: prefix}
}

// Hit increments the counter for key and returns the new value. The window
// starts on the first hit. INCR and EXPIRE NX go out in one MULTI block, so
// a counter never outlives its window and an existing TTL is never extended.
func (r *RedisRateLimitRepo) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := rateLimitKey(r.prefix, key)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, window)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

func rateLimitKey(prefix, key string) string {
	return "ratelimit:" + prefix + ":" + key
}
