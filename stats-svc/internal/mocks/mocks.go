package mocks

import (
	"context"

	"foodplan/stats-svc/internal/domain"
	"foodplan/stats-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CounterStore struct {
	mock.Mock
}

func NewCounterStore(t testingT) *CounterStore {
	m := &CounterStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CounterStore) IncrementDishes(ctx context.Context, date string, dishIDs []int) error {
	return m.Called(ctx, date, dishIDs).Error(0)
}

func (m *CounterStore) IncrementDiet(ctx context.Context, dietType string) error {
	return m.Called(ctx, dietType).Error(0)
}

func (m *CounterStore) TopDishes(ctx context.Context, date string, limit int) ([]storage.Counter, error) {
	args := m.Called(ctx, date, limit)
	counters, _ := args.Get(0).([]storage.Counter)
	return counters, args.Error(1)
}

func (m *CounterStore) DietCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

type DishNameResolver struct {
	mock.Mock
}

func NewDishNameResolver(t testingT) *DishNameResolver {
	m := &DishNameResolver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DishNameResolver) Names(ctx context.Context, ids []int) (map[int]string, error) {
	args := m.Called(ctx, ids)
	names, _ := args.Get(0).(map[int]string)
	return names, args.Error(1)
}

type MessageReader struct {
	mock.Mock
}

func NewMessageReader(t testingT) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	msg, _ := args.Get(0).(kafka.Message)
	return msg, args.Error(1)
}

type StatsServiceInterface struct {
	mock.Mock
}

func NewStatsServiceInterface(t testingT) *StatsServiceInterface {
	m := &StatsServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StatsServiceInterface) TopDishes(ctx context.Context, period string, limit int) ([]domain.DishPopularity, error) {
	args := m.Called(ctx, period, limit)
	top, _ := args.Get(0).([]domain.DishPopularity)
	return top, args.Error(1)
}

func (m *StatsServiceInterface) DietDistribution(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	dist, _ := args.Get(0).(map[string]int64)
	return dist, args.Error(1)
}
