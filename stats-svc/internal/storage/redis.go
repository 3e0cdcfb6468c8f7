package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dailyKeyPrefix = "stats:dishes:daily:"
	allTimeKey     = "stats:dishes:alltime"
	dietsKey       = "stats:diets"
	dailyRetention = 7 * 24 * time.Hour
)

type Counter struct {
	DishID int
	Score  float64
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func DailyKey(date string) string {
	return dailyKeyPrefix + date
}

// IncrementDishes counts one serving per dish id for the given day and for all time.
func (s *RedisStore) IncrementDishes(ctx context.Context, date string, dishIDs []int) error {
	if len(dishIDs) == 0 {
		return nil
	}
	dailyKey := DailyKey(date)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range dishIDs {
			member := strconv.Itoa(id)
			pipe.ZIncrBy(ctx, dailyKey, 1, member)
			pipe.ZIncrBy(ctx, allTimeKey, 1, member)
		}
		pipe.Expire(ctx, dailyKey, dailyRetention)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to increment dish counters: %w", err)
	}
	return nil
}

func (s *RedisStore) IncrementDiet(ctx context.Context, dietType string) error {
	return s.rdb.HIncrBy(ctx, dietsKey, dietType, 1).Err()
}

// TopDishes returns up to limit counters for a day, or all time when date is empty.
func (s *RedisStore) TopDishes(ctx context.Context, date string, limit int) ([]Counter, error) {
	key := allTimeKey
	if date != "" {
		key = DailyKey(date)
	}
	result, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	counters := make([]Counter, 0, len(result))
	for _, z := range result {
		member, _ := z.Member.(string)
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		counters = append(counters, Counter{DishID: id, Score: z.Score})
	}
	return counters, nil
}

func (s *RedisStore) DietCounts(ctx context.Context) (map[string]int64, error) {
	raw, err := s.rdb.HGetAll(ctx, dietsKey).Result()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(raw))
	for diet, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		counts[diet] = n
	}
	return counts, nil
}
