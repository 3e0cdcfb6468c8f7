package mocks

import (
	"context"
	"time"

	"foodplan/planner-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CatalogRepository struct {
	mock.Mock
}

func NewCatalogRepository(t testingT) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogRepository) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	args := m.Called(ctx, id)
	dish, _ := args.Get(0).(*domain.Dish)
	return dish, args.Error(1)
}

func (m *CatalogRepository) ListDishes(ctx context.Context, dietType domain.DietType, categories []domain.MealType) ([]domain.Dish, error) {
	args := m.Called(ctx, dietType, categories)
	dishes, _ := args.Get(0).([]domain.Dish)
	return dishes, args.Error(1)
}

func (m *CatalogRepository) ListAllergies(ctx context.Context) ([]domain.Allergy, error) {
	args := m.Called(ctx)
	allergies, _ := args.Get(0).([]domain.Allergy)
	return allergies, args.Error(1)
}

func (m *CatalogRepository) GetAllergies(ctx context.Context, ids []int) ([]domain.Allergy, error) {
	args := m.Called(ctx, ids)
	allergies, _ := args.Get(0).([]domain.Allergy)
	return allergies, args.Error(1)
}

type PlanRepository struct {
	mock.Mock
}

func NewPlanRepository(t testingT) *PlanRepository {
	m := &PlanRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	plans, _ := args.Get(0).([]domain.Plan)
	return plans, args.Error(1)
}

func (m *PlanRepository) GetPlanByDuration(ctx context.Context, duration int) (*domain.Plan, error) {
	args := m.Called(ctx, duration)
	plan, _ := args.Get(0).(*domain.Plan)
	return plan, args.Error(1)
}

type SubscriptionRepository struct {
	mock.Mock
}

func NewSubscriptionRepository(t testingT) *SubscriptionRepository {
	m := &SubscriptionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SubscriptionRepository) UserExists(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *SubscriptionRepository) SaveSubscription(ctx context.Context, sub *domain.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *SubscriptionRepository) GetSubscription(ctx context.Context, userID int) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)
	sub, _ := args.Get(0).(*domain.Subscription)
	return sub, args.Error(1)
}

type MenuRepository struct {
	mock.Mock
}

func NewMenuRepository(t testingT) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuRepository) GetMenu(ctx context.Context, userID int, date time.Time) (*domain.Menu, error) {
	args := m.Called(ctx, userID, date)
	menu, _ := args.Get(0).(*domain.Menu)
	return menu, args.Error(1)
}

func (m *MenuRepository) ReplaceMenu(ctx context.Context, menu *domain.Menu) error {
	return m.Called(ctx, menu).Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) Publish(ctx context.Context, msg domain.KafkaMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(dishID int) ([]byte, error) {
	args := m.Called(dishID)
	png, _ := args.Get(0).([]byte)
	return png, args.Error(1)
}
