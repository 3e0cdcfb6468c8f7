package tests

import (
	"context"
	"fmt"
	"testing"

	"foodplan/planner-svc/internal/domain"
	"foodplan/planner-svc/internal/mocks"
	"foodplan/planner-svc/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestPricingService_ComputePrice(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		duration     int
		mealTypes    []domain.MealType
		persons      int
		prepareMocks func(plans *mocks.PlanRepository)
		want         string
		wantErr      error
		wantField    string
	}{
		{
			name:      "breakfast and lunch for two",
			duration:  1,
			mealTypes: []domain.MealType{domain.MealBreakfast, domain.MealLunch},
			persons:   2,
			prepareMocks: func(plans *mocks.PlanRepository) {
				plans.On("GetPlanByDuration", ctx, 1).Return(basicPlan(), nil).Once()
			},
			want: "500.00",
		},
		{
			name:      "unknown meal type adds zero",
			duration:  1,
			mealTypes: []domain.MealType{domain.MealDessert, "supper"},
			persons:   3,
			prepareMocks: func(plans *mocks.PlanRepository) {
				plans.On("GetPlanByDuration", ctx, 1).Return(basicPlan(), nil).Once()
			},
			want: "150.00",
		},
		{
			name:      "no meal types",
			duration:  1,
			mealTypes: nil,
			persons:   1,
			prepareMocks: func(plans *mocks.PlanRepository) {
				plans.On("GetPlanByDuration", ctx, 1).Return(basicPlan(), nil).Once()
			},
			want: "0.00",
		},
		{
			name:      "unknown plan duration",
			duration:  2,
			mealTypes: []domain.MealType{domain.MealLunch},
			persons:   1,
			prepareMocks: func(plans *mocks.PlanRepository) {
				plans.On("GetPlanByDuration", ctx, 2).Return(nil, fmt.Errorf("plan for 2 months: %w", domain.ErrNotFound)).Once()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:         "too many persons",
			duration:     1,
			mealTypes:    []domain.MealType{domain.MealLunch},
			persons:      7,
			prepareMocks: func(plans *mocks.PlanRepository) {},
			wantField:    "persons_count",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			plans := mocks.NewPlanRepository(t)
			testCase.prepareMocks(plans)
			svc := service.NewPricingService(plans)

			total, err := svc.ComputePrice(ctx, testCase.duration, testCase.mealTypes, testCase.persons)

			switch {
			case testCase.wantErr != nil:
				assert.ErrorIs(t, err, testCase.wantErr)
			case testCase.wantField != "":
				var verrs domain.ValidationErrors
				assert.ErrorAs(t, err, &verrs)
				assert.Equal(t, testCase.wantField, verrs[0].Field)
			default:
				assert.NoError(t, err)
				assert.Equal(t, testCase.want, total.StringFixed(2))
			}
		})
	}
}
