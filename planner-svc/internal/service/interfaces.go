package service

import (
	"context"
	"time"

	"foodplan/planner-svc/internal/domain"
	"foodplan/planner-svc/internal/storage"

	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	GetDish(ctx context.Context, id int) (*domain.Dish, error)
	ListDishes(ctx context.Context, dietType domain.DietType, categories []domain.MealType) ([]domain.Dish, error)
	ListAllergies(ctx context.Context) ([]domain.Allergy, error)
	GetAllergies(ctx context.Context, ids []int) ([]domain.Allergy, error)
}

type PlanRepository interface {
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	GetPlanByDuration(ctx context.Context, duration int) (*domain.Plan, error)
}

type SubscriptionRepository interface {
	UserExists(ctx context.Context, userID int) (bool, error)
	SaveSubscription(ctx context.Context, sub *domain.Subscription) error
	GetSubscription(ctx context.Context, userID int) (*domain.Subscription, error)
}

type MenuRepository interface {
	GetMenu(ctx context.Context, userID int, date time.Time) (*domain.Menu, error)
	ReplaceMenu(ctx context.Context, menu *domain.Menu) error
}

type EventPublisher interface {
	Publish(ctx context.Context, msg domain.KafkaMessage) error
}

type CatalogServiceInterface interface {
	GetDish(ctx context.Context, id int) (*domain.Dish, error)
	ListAllergies(ctx context.Context) ([]domain.Allergy, error)
	ListEligibleDishes(ctx context.Context, criteria domain.Criteria) ([]domain.Dish, error)
	DishQRCode(ctx context.Context, id int) ([]byte, error)
}

type PricingServiceInterface interface {
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	ComputePrice(ctx context.Context, planDuration int, mealTypes []domain.MealType, persons int) (decimal.Decimal, error)
}

type SubscriptionServiceInterface interface {
	CreateSubscription(ctx context.Context, userID int, req domain.SubscriptionRequest) (*domain.Subscription, error)
	GetActiveSubscription(ctx context.Context, userID int) (*domain.Subscription, error)
}

type MenuServiceInterface interface {
	GetTodaysMenu(ctx context.Context, userID int) (*domain.Menu, error)
	RegenerateMenu(ctx context.Context, userID int) (*domain.Menu, error)
}

// Clock returns the current time; menus and subscriptions are dated by it.
type Clock func() time.Time

var (
	_ CatalogRepository      = (*storage.PostgresRepository)(nil)
	_ PlanRepository         = (*storage.PostgresRepository)(nil)
	_ SubscriptionRepository = (*storage.PostgresRepository)(nil)
	_ MenuRepository         = (*storage.PostgresRepository)(nil)
	_ EventPublisher         = (*storage.KafkaPublisher)(nil)

	_ CatalogServiceInterface      = (*CatalogService)(nil)
	_ PricingServiceInterface      = (*PricingService)(nil)
	_ SubscriptionServiceInterface = (*SubscriptionService)(nil)
	_ MenuServiceInterface         = (*MenuService)(nil)
)
