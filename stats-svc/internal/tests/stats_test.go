package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodplan/stats-svc/internal/domain"
	"foodplan/stats-svc/internal/mocks"
	"foodplan/stats-svc/internal/service"
	"foodplan/stats-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC) }

func TestStatsService_TopDishes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		period    string
		limit     int
		setupMock func(store *mocks.CounterStore, names *mocks.DishNameResolver)
		want      []domain.DishPopularity
		wantErr   error
	}{
		{
			name:   "today resolves names and drops removed dishes",
			period: domain.PeriodToday,
			limit:  5,
			setupMock: func(store *mocks.CounterStore, names *mocks.DishNameResolver) {
				store.On("TopDishes", ctx, "2024-03-10", 5).
					Return([]storage.Counter{{DishID: 3, Score: 4}, {DishID: 9, Score: 2}, {DishID: 7, Score: 1}}, nil).Once()
				names.On("Names", ctx, []int{3, 9, 7}).Return(map[int]string{3: "Омлет", 7: "Салат"}, nil).Once()
			},
			want: []domain.DishPopularity{
				{DishID: 3, DishName: "Омлет", Score: 4},
				{DishID: 7, DishName: "Салат", Score: 1},
			},
		},
		{
			name:   "all time with default limit",
			period: domain.PeriodAll,
			limit:  0,
			setupMock: func(store *mocks.CounterStore, names *mocks.DishNameResolver) {
				store.On("TopDishes", ctx, "", 10).Return([]storage.Counter{}, nil).Once()
				names.On("Names", ctx, []int{}).Return(map[int]string{}, nil).Once()
			},
			want: []domain.DishPopularity{},
		},
		{
			name:      "unknown period",
			period:    "week",
			limit:     5,
			setupMock: func(store *mocks.CounterStore, names *mocks.DishNameResolver) {},
			wantErr:   domain.ErrInvalidPeriod,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := mocks.NewCounterStore(t)
			names := mocks.NewDishNameResolver(t)
			testCase.setupMock(store, names)

			top, err := service.NewStatsService(store, names, fixedClock).TopDishes(ctx, testCase.period, testCase.limit)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, top)
		})
	}
}

func TestStatsService_DietDistribution(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewCounterStore(t)
	store.On("DietCounts", ctx).Return(map[string]int64{"keto": 3, "paleo": 1}, nil).Once()

	dist, err := service.NewStatsService(store, nil, fixedClock).DietDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"classic": 0, "low_carb": 0, "vegetarian": 0, "keto": 3}, dist)

	failing := mocks.NewCounterStore(t)
	failing.On("DietCounts", ctx).Return(nil, errors.New("redis down")).Once()
	_, err = service.NewStatsService(failing, nil, fixedClock).DietDistribution(ctx)
	assert.Error(t, err)
}

func TestStatsService_TopDishesTodayUsesClockZone(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewCounterStore(t)
	names := mocks.NewDishNameResolver(t)

	// 01:30 on the 10th in UTC+3 is still the 9th in UTC.
	clock := func() time.Time { return time.Date(2024, 3, 10, 1, 30, 0, 0, time.FixedZone("UTC+3", 3*3600)) }

	store.On("TopDishes", ctx, "2024-03-10", 10).Return([]storage.Counter{}, nil).Once()
	names.On("Names", ctx, []int{}).Return(map[int]string{}, nil).Once()

	_, err := service.NewStatsService(store, names, clock).TopDishes(ctx, domain.PeriodToday, 10)
	require.NoError(t, err)
}
