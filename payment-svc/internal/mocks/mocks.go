package mocks

import (
	"context"

	"foodplan/payment-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type PaymentRepository struct {
	mock.Mock
}

func NewPaymentRepository(t testingT) *PaymentRepository {
	m := &PaymentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentRepository) CreatePayment(ctx context.Context, p *domain.SubscriptionPayment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PaymentRepository) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.SubscriptionPayment, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(*domain.SubscriptionPayment)
	return p, args.Error(1)
}

func (m *PaymentRepository) ListUserPayments(ctx context.Context, userID int) ([]domain.SubscriptionPayment, error) {
	args := m.Called(ctx, userID)
	payments, _ := args.Get(0).([]domain.SubscriptionPayment)
	return payments, args.Error(1)
}

func (m *PaymentRepository) MarkSucceeded(ctx context.Context, paymentID uuid.UUID, subscriptionID int, amount decimal.Decimal) error {
	return m.Called(ctx, paymentID, subscriptionID, amount).Error(0)
}

func (m *PaymentRepository) MarkFailed(ctx context.Context, paymentID uuid.UUID) error {
	return m.Called(ctx, paymentID).Error(0)
}

type Locker struct {
	mock.Mock
}

func NewLocker(t testingT) *Locker {
	m := &Locker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Locker) Acquire(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, paymentID)
	return args.Bool(0), args.Error(1)
}

func (m *Locker) Release(ctx context.Context, paymentID uuid.UUID) error {
	return m.Called(ctx, paymentID).Error(0)
}

type Planner struct {
	mock.Mock
}

func NewPlanner(t testingT) *Planner {
	m := &Planner{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Planner) Price(ctx context.Context, order domain.OrderRequest) (decimal.Decimal, error) {
	args := m.Called(ctx, order)
	total, _ := args.Get(0).(decimal.Decimal)
	return total, args.Error(1)
}

func (m *Planner) CreateSubscription(ctx context.Context, userID int, order domain.OrderRequest) (*domain.SubscriptionResult, error) {
	args := m.Called(ctx, userID, order)
	sub, _ := args.Get(0).(*domain.SubscriptionResult)
	return sub, args.Error(1)
}

type PaymentServiceInterface struct {
	mock.Mock
}

func NewPaymentServiceInterface(t testingT) *PaymentServiceInterface {
	m := &PaymentServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentServiceInterface) CreateOrder(ctx context.Context, userID int, order domain.OrderRequest) (*domain.SubscriptionPayment, error) {
	args := m.Called(ctx, userID, order)
	p, _ := args.Get(0).(*domain.SubscriptionPayment)
	return p, args.Error(1)
}

func (m *PaymentServiceInterface) ConfirmPayment(ctx context.Context, paymentID uuid.UUID) (*domain.SubscriptionPayment, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(*domain.SubscriptionPayment)
	return p, args.Error(1)
}

func (m *PaymentServiceInterface) GetPayment(ctx context.Context, userID int, paymentID uuid.UUID) (*domain.SubscriptionPayment, error) {
	args := m.Called(ctx, userID, paymentID)
	p, _ := args.Get(0).(*domain.SubscriptionPayment)
	return p, args.Error(1)
}

func (m *PaymentServiceInterface) ListUserPayments(ctx context.Context, userID int) ([]domain.SubscriptionPayment, error) {
	args := m.Called(ctx, userID)
	payments, _ := args.Get(0).([]domain.SubscriptionPayment)
	return payments, args.Error(1)
}
