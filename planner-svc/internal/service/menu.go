package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodplan/planner-svc/internal/domain"

	"go.uber.org/zap"
)

type EligibleDishLister interface {
	ListEligibleDishes(ctx context.Context, criteria domain.Criteria) ([]domain.Dish, error)
}

type MenuService struct {
	subs      SubscriptionServiceInterface
	menus     MenuRepository
	catalog   EligibleDishLister
	chooser   Chooser
	publisher EventPublisher
	clock     Clock
	log       *zap.Logger
}

func NewMenuService(subs SubscriptionServiceInterface, menus MenuRepository, catalog EligibleDishLister,
	chooser Chooser, publisher EventPublisher, clock Clock, log *zap.Logger) *MenuService {
	return &MenuService{
		subs:      subs,
		menus:     menus,
		catalog:   catalog,
		chooser:   chooser,
		publisher: publisher,
		clock:     clock,
		log:       log,
	}
}

// GetTodaysMenu returns the stored menu for today, generating it on first access.
// A nil menu means the user has nothing to show.
func (s *MenuService) GetTodaysMenu(ctx context.Context, userID int) (*domain.Menu, error) {
	today := domain.DateOf(s.clock())
	menu, err := s.menus.GetMenu(ctx, userID, today)
	if err == nil {
		return menu, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return s.generate(ctx, userID, today)
}

// RegenerateMenu discards today's menu and draws a new one.
func (s *MenuService) RegenerateMenu(ctx context.Context, userID int) (*domain.Menu, error) {
	return s.generate(ctx, userID, domain.DateOf(s.clock()))
}

func (s *MenuService) generate(ctx context.Context, userID int, date time.Time) (*domain.Menu, error) {
	sub, err := s.subs.GetActiveSubscription(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		return nil, nil
	}

	eligible, err := s.catalog.ListEligibleDishes(ctx, sub.Criteria())
	if err != nil {
		return nil, err
	}
	byCategory := make(map[domain.MealType][]domain.Dish)
	for _, dish := range eligible {
		byCategory[dish.Category] = append(byCategory[dish.Category], dish)
	}

	menu := &domain.Menu{UserID: userID, Date: date, Meals: []domain.Meal{}}
	used := make(map[domain.MealType]struct{}, len(sub.SelectedMealTypes))
	for _, mealType := range sub.SelectedMealTypes {
		if _, ok := used[mealType]; ok {
			continue
		}
		used[mealType] = struct{}{}

		candidates := byCategory[mealType]
		if len(candidates) == 0 {
			s.log.Debug("no eligible dish for meal", zap.Int("user_id", userID), zap.String("meal_type", string(mealType)))
			continue
		}
		menu.Meals = append(menu.Meals, domain.Meal{
			MealType: mealType,
			Dish:     candidates[s.chooser.IntN(len(candidates))],
		})
	}

	if err := s.menus.ReplaceMenu(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to save menu: %w", err)
	}

	s.log.Info("menu generated",
		zap.Int("user_id", userID),
		zap.String("date", date.Format(time.DateOnly)),
		zap.Int("meals", len(menu.Meals)))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.KafkaMessage{
			Type:      domain.EventMenuGenerated,
			UserID:    userID,
			DietType:  sub.DietType,
			Date:      date.Format(time.DateOnly),
			DishIDs:   menu.DishIDs(),
			Timestamp: s.clock(),
		}); err != nil {
			s.log.Warn("failed to publish menu event", zap.Int("user_id", userID), zap.Error(err))
		}
	}

	return menu, nil
}
