package mocks

import (
	"context"

	"foodplan/planner-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type CatalogServiceInterface struct {
	mock.Mock
}

func NewCatalogServiceInterface(t testingT) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogServiceInterface) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	args := m.Called(ctx, id)
	dish, _ := args.Get(0).(*domain.Dish)
	return dish, args.Error(1)
}

func (m *CatalogServiceInterface) ListAllergies(ctx context.Context) ([]domain.Allergy, error) {
	args := m.Called(ctx)
	allergies, _ := args.Get(0).([]domain.Allergy)
	return allergies, args.Error(1)
}

func (m *CatalogServiceInterface) ListEligibleDishes(ctx context.Context, criteria domain.Criteria) ([]domain.Dish, error) {
	args := m.Called(ctx, criteria)
	dishes, _ := args.Get(0).([]domain.Dish)
	return dishes, args.Error(1)
}

func (m *CatalogServiceInterface) DishQRCode(ctx context.Context, id int) ([]byte, error) {
	args := m.Called(ctx, id)
	png, _ := args.Get(0).([]byte)
	return png, args.Error(1)
}

type PricingServiceInterface struct {
	mock.Mock
}

func NewPricingServiceInterface(t testingT) *PricingServiceInterface {
	m := &PricingServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PricingServiceInterface) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	plans, _ := args.Get(0).([]domain.Plan)
	return plans, args.Error(1)
}

func (m *PricingServiceInterface) ComputePrice(ctx context.Context, planDuration int, mealTypes []domain.MealType, persons int) (decimal.Decimal, error) {
	args := m.Called(ctx, planDuration, mealTypes, persons)
	price, _ := args.Get(0).(decimal.Decimal)
	return price, args.Error(1)
}

type SubscriptionServiceInterface struct {
	mock.Mock
}

func NewSubscriptionServiceInterface(t testingT) *SubscriptionServiceInterface {
	m := &SubscriptionServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SubscriptionServiceInterface) CreateSubscription(ctx context.Context, userID int, req domain.SubscriptionRequest) (*domain.Subscription, error) {
	args := m.Called(ctx, userID, req)
	sub, _ := args.Get(0).(*domain.Subscription)
	return sub, args.Error(1)
}

func (m *SubscriptionServiceInterface) GetActiveSubscription(ctx context.Context, userID int) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)
	sub, _ := args.Get(0).(*domain.Subscription)
	return sub, args.Error(1)
}

type MenuServiceInterface struct {
	mock.Mock
}

func NewMenuServiceInterface(t testingT) *MenuServiceInterface {
	m := &MenuServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuServiceInterface) GetTodaysMenu(ctx context.Context, userID int) (*domain.Menu, error) {
	args := m.Called(ctx, userID)
	menu, _ := args.Get(0).(*domain.Menu)
	return menu, args.Error(1)
}

func (m *MenuServiceInterface) RegenerateMenu(ctx context.Context, userID int) (*domain.Menu, error) {
	args := m.Called(ctx, userID)
	menu, _ := args.Get(0).(*domain.Menu)
	return menu, args.Error(1)
}

type Chooser struct {
	mock.Mock
}

func NewChooser(t testingT) *Chooser {
	m := &Chooser{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Chooser) IntN(n int) int {
	return m.Called(n).Int(0)
}
