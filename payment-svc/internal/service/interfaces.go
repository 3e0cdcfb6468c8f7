package service

import (
	"context"

	"foodplan/payment-svc/internal/client"
	"foodplan/payment-svc/internal/domain"
	"foodplan/payment-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, p *domain.SubscriptionPayment) error
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.SubscriptionPayment, error)
	ListUserPayments(ctx context.Context, userID int) ([]domain.SubscriptionPayment, error)
	MarkSucceeded(ctx context.Context, paymentID uuid.UUID, subscriptionID int, amount decimal.Decimal) error
	MarkFailed(ctx context.Context, paymentID uuid.UUID) error
}

type Locker interface {
	Acquire(ctx context.Context, paymentID uuid.UUID) (bool, error)
	Release(ctx context.Context, paymentID uuid.UUID) error
}

type Planner interface {
	Price(ctx context.Context, order domain.OrderRequest) (decimal.Decimal, error)
	CreateSubscription(ctx context.Context, userID int, order domain.OrderRequest) (*domain.SubscriptionResult, error)
}

type PaymentServiceInterface interface {
	CreateOrder(ctx context.Context, userID int, order domain.OrderRequest) (*domain.SubscriptionPayment, error)
	ConfirmPayment(ctx context.Context, paymentID uuid.UUID) (*domain.SubscriptionPayment, error)
	GetPayment(ctx context.Context, userID int, paymentID uuid.UUID) (*domain.SubscriptionPayment, error)
	ListUserPayments(ctx context.Context, userID int) ([]domain.SubscriptionPayment, error)
}

var (
	_ PaymentRepository = (*storage.GormRepository)(nil)
	_ Locker            = (*storage.RedisLocker)(nil)
	_ Planner           = (*client.PlannerClient)(nil)

	_ PaymentServiceInterface = (*PaymentService)(nil)
)
