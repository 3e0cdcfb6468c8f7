package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"foodplan/planner-svc/internal/domain"

	"go.uber.org/zap"
)

type SubscriptionService struct {
	subs      SubscriptionRepository
	plans     PlanRepository
	catalog   CatalogRepository
	publisher EventPublisher
	clock     Clock
	log       *zap.Logger
}

func NewSubscriptionService(subs SubscriptionRepository, plans PlanRepository, catalog CatalogRepository,
	publisher EventPublisher, clock Clock, log *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		subs:      subs,
		plans:     plans,
		catalog:   catalog,
		publisher: publisher,
		clock:     clock,
		log:       log,
	}
}

// CreateSubscription validates an order and stores it as the user's subscription,
// replacing any previous one. Every rejected field is reported at once.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, userID int, req domain.SubscriptionRequest) (*domain.Subscription, error) {
	exists, err := s.subs.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	var errs domain.ValidationErrors

	if !req.DietType.Valid() {
		errs.Add("diet_type", fmt.Sprintf("unknown diet type %q", req.DietType))
	}

	mealTypes := uniqueMealTypes(req.SelectedMealTypes)
	if len(mealTypes) == 0 {
		errs.Add("selected_meal_types", "select at least one meal type")
	}
	var badMeals []string
	for _, m := range mealTypes {
		if !m.Valid() {
			badMeals = append(badMeals, strconv.Quote(string(m)))
		}
	}
	switch len(badMeals) {
	case 0:
	case 1:
		errs.Add("selected_meal_types", "unknown meal type "+badMeals[0])
	default:
		errs.Add("selected_meal_types", "unknown meal types "+strings.Join(badMeals, ", "))
	}

	if req.PersonsCount < domain.MinPersons || req.PersonsCount > domain.MaxPersons {
		errs.Add("persons_count", fmt.Sprintf("must be between %d and %d", domain.MinPersons, domain.MaxPersons))
	}

	var plan *domain.Plan
	if !domain.ValidPlanDuration(req.PlanDuration) {
		errs.Add("plan_duration", fmt.Sprintf("must be one of %v months", domain.PlanDurations))
	} else {
		plan, err = s.plans.GetPlanByDuration(ctx, req.PlanDuration)
		if errors.Is(err, domain.ErrNotFound) {
			errs.Add("plan_duration", fmt.Sprintf("no plan for %d months", req.PlanDuration))
		} else if err != nil {
			return nil, fmt.Errorf("failed to load plan: %w", err)
		}
	}

	allergyIDs := uniqueInts(req.AllergyIDs)
	allergies, err := s.catalog.GetAllergies(ctx, allergyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load allergies: %w", err)
	}
	if len(allergies) != len(allergyIDs) {
		known := make(map[int]struct{}, len(allergies))
		for _, a := range allergies {
			known[a.ID] = struct{}{}
		}
		var unknown []string
		for _, id := range allergyIDs {
			if _, ok := known[id]; !ok {
				unknown = append(unknown, strconv.Itoa(id))
			}
		}
		if len(unknown) == 1 {
			errs.Add("allergies", "unknown allergy "+unknown[0])
		} else if len(unknown) > 1 {
			errs.Add("allergies", "unknown allergies "+strings.Join(unknown, ", "))
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	start := domain.DateOf(s.clock())
	sub := &domain.Subscription{
		UserID:            userID,
		DietType:          req.DietType,
		SelectedMealTypes: mealTypes,
		PersonsCount:      req.PersonsCount,
		Plan:              *plan,
		Allergies:         allergies,
		StartDate:         start,
		EndDate:           domain.AddMonths(start, plan.Duration),
	}
	if err := s.subs.SaveSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.log.Info("subscription created",
		zap.Int("user_id", userID),
		zap.Int("subscription_id", sub.ID),
		zap.String("diet_type", string(sub.DietType)),
		zap.String("total_price", sub.TotalPrice().StringFixed(2)))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.KafkaMessage{
			Type:      domain.EventSubscriptionCreated,
			UserID:    userID,
			DietType:  sub.DietType,
			Date:      start.Format(time.DateOnly),
			Timestamp: s.clock(),
		}); err != nil {
			s.log.Warn("failed to publish subscription event", zap.Int("user_id", userID), zap.Error(err))
		}
	}

	return sub, nil
}

// GetActiveSubscription returns nil without error when the user has no subscription or it has ended.
func (s *SubscriptionService) GetActiveSubscription(ctx context.Context, userID int) (*domain.Subscription, error) {
	sub, err := s.subs.GetSubscription(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !sub.IsActive(s.clock()) {
		return nil, nil
	}
	return sub, nil
}

func uniqueMealTypes(in []domain.MealType) []domain.MealType {
	seen := make(map[domain.MealType]struct{}, len(in))
	out := make([]domain.MealType, 0, len(in))
	for _, m := range in {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func uniqueInts(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
