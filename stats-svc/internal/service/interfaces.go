package service

import (
	"context"

	"foodplan/stats-svc/internal/domain"
	"foodplan/stats-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type CounterStore interface {
	IncrementDishes(ctx context.Context, date string, dishIDs []int) error
	IncrementDiet(ctx context.Context, dietType string) error
	TopDishes(ctx context.Context, date string, limit int) ([]storage.Counter, error)
	DietCounts(ctx context.Context) (map[string]int64, error)
}

type DishNameResolver interface {
	Names(ctx context.Context, ids []int) (map[int]string, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type StatsServiceInterface interface {
	TopDishes(ctx context.Context, period string, limit int) ([]domain.DishPopularity, error)
	DietDistribution(ctx context.Context) (map[string]int64, error)
}

var (
	_ CounterStore     = (*storage.RedisStore)(nil)
	_ DishNameResolver = (*storage.DishNames)(nil)
	_ MessageReader    = (*kafka.Reader)(nil)

	_ StatsServiceInterface = (*StatsService)(nil)
)
