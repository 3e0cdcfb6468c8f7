package service

import (
	"context"
	"time"

	"foodplan/stats-svc/internal/domain"
)

const MaxLimit = 100

type StatsService struct {
	counters CounterStore
	names    DishNameResolver
	clock    func() time.Time
}

func NewStatsService(counters CounterStore, names DishNameResolver, clock func() time.Time) *StatsService {
	return &StatsService{
		counters: counters,
		names:    names,
		clock:    clock,
	}
}

// TopDishes ranks dishes by how often they were served today or overall.
// Dishes no longer in the catalog are left out.
func (s *StatsService) TopDishes(ctx context.Context, period string, limit int) ([]domain.DishPopularity, error) {
	var date string
	switch period {
	case domain.PeriodToday:
		// Same calendar date the planner stamps on menus: the clock's own zone.
		date = s.clock().Format(time.DateOnly)
	case domain.PeriodAll:
	default:
		return nil, domain.ErrInvalidPeriod
	}
	if limit <= 0 || limit > MaxLimit {
		limit = 10
	}

	counters, err := s.counters.TopDishes(ctx, date, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(counters))
	for _, c := range counters {
		ids = append(ids, c.DishID)
	}
	names, err := s.names.Names(ctx, ids)
	if err != nil {
		return nil, err
	}

	top := make([]domain.DishPopularity, 0, len(counters))
	for _, c := range counters {
		name, ok := names[c.DishID]
		if !ok {
			continue
		}
		top = append(top, domain.DishPopularity{DishID: c.DishID, DishName: name, Score: c.Score})
	}
	return top, nil
}

func (s *StatsService) DietDistribution(ctx context.Context) (map[string]int64, error) {
	counts, err := s.counters.DietCounts(ctx)
	if err != nil {
		return nil, err
	}
	distribution := make(map[string]int64, len(domain.DietTypes))
	for _, diet := range domain.DietTypes {
		distribution[diet] = counts[diet]
	}
	return distribution, nil
}
