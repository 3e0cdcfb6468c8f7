package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const confirmKeyPrefix = "payment:confirm:"

// RedisLocker marks a payment as being confirmed so concurrent provider callbacks run once.
type RedisLocker struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{Client: client, TTL: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	return l.Client.SetNX(ctx, confirmKeyPrefix+paymentID.String(), time.Now().Unix(), l.TTL).Result()
}

func (l *RedisLocker) Release(ctx context.Context, paymentID uuid.UUID) error {
	return l.Client.Del(ctx, confirmKeyPrefix+paymentID.String()).Err()
}
