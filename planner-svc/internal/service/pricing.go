package service

import (
	"context"
	"fmt"

	"foodplan/planner-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type PricingService struct {
	plans PlanRepository
}

func NewPricingService(plans PlanRepository) *PricingService {
	return &PricingService{plans: plans}
}

func (s *PricingService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.plans.ListPlans(ctx)
}

// ComputePrice prices an order. Meal types the plan does not know add nothing.
func (s *PricingService) ComputePrice(ctx context.Context, planDuration int, mealTypes []domain.MealType, persons int) (decimal.Decimal, error) {
	if persons < domain.MinPersons || persons > domain.MaxPersons {
		var errs domain.ValidationErrors
		errs.Add("persons_count", fmt.Sprintf("must be between %d and %d", domain.MinPersons, domain.MaxPersons))
		return decimal.Zero, errs
	}

	plan, err := s.plans.GetPlanByDuration(ctx, planDuration)
	if err != nil {
		return decimal.Zero, err
	}

	return plan.TotalPrice(mealTypes).Mul(decimal.NewFromInt(int64(persons))).RoundBank(2), nil
}
