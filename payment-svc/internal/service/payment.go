package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"foodplan/payment-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type PaymentService struct {
	repo    PaymentRepository
	locker  Locker
	planner Planner
	newID   func() uuid.UUID
	log     *zap.Logger
}

func NewPaymentService(repo PaymentRepository, locker Locker, planner Planner, log *zap.Logger) *PaymentService {
	return &PaymentService{
		repo:    repo,
		locker:  locker,
		planner: planner,
		newID:   uuid.New,
		log:     log,
	}
}

// WithIDGenerator replaces the payment id source.
func (s *PaymentService) WithIDGenerator(gen func() uuid.UUID) *PaymentService {
	s.newID = gen
	return s
}

// CreateOrder prices the order through the planner and stores it as a pending payment.
func (s *PaymentService) CreateOrder(ctx context.Context, userID int, order domain.OrderRequest) (*domain.SubscriptionPayment, error) {
	total, err := s.planner.Price(ctx, order)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	p := &domain.SubscriptionPayment{
		PaymentID:   s.newID(),
		UserID:      userID,
		Provider:    domain.ProviderYookassa,
		Amount:      total,
		Status:      domain.StatusPending,
		Description: describe(order),
		Order:       datatypes.JSON(snapshot),
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("payment_id", p.PaymentID.String()),
		zap.Int("user_id", userID),
		zap.String("amount", total.StringFixed(2)))
	return p, nil
}

// ConfirmPayment turns a pending payment into a subscription. Repeated calls for a
// succeeded payment return it unchanged.
func (s *PaymentService) ConfirmPayment(ctx context.Context, paymentID uuid.UUID) (*domain.SubscriptionPayment, error) {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if done, err := settled(p); done {
		return p, err
	}

	acquired, err := s.locker.Acquire(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock payment: %w", err)
	}
	if !acquired {
		return nil, domain.ErrPaymentInProgress
	}
	defer func() {
		if err := s.locker.Release(ctx, paymentID); err != nil {
			s.log.Warn("failed to release payment lock", zap.String("payment_id", paymentID.String()), zap.Error(err))
		}
	}()

	// A concurrent callback may have finished between the first read and the lock.
	p, err = s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if done, err := settled(p); done {
		return p, err
	}

	var order domain.OrderRequest
	if err := json.Unmarshal(p.Order, &order); err != nil {
		return nil, fmt.Errorf("failed to decode stored order: %w", err)
	}

	sub, err := s.planner.CreateSubscription(ctx, p.UserID, order)
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) || errors.Is(err, domain.ErrNotFound) {
			if markErr := s.repo.MarkFailed(ctx, paymentID); markErr != nil {
				return nil, markErr
			}
			s.log.Warn("payment failed", zap.String("payment_id", paymentID.String()), zap.Error(err))
		}
		return nil, err
	}

	amount, err := decimal.NewFromString(sub.TotalPrice)
	if err != nil {
		amount = p.Amount
	}
	if err := s.repo.MarkSucceeded(ctx, paymentID, sub.ID, amount); err != nil {
		return nil, err
	}

	p.Status = domain.StatusSucceeded
	p.SubscriptionID = &sub.ID
	p.Amount = amount
	s.log.Info("payment succeeded",
		zap.String("payment_id", paymentID.String()),
		zap.Int("user_id", p.UserID),
		zap.Int("subscription_id", sub.ID))
	return p, nil
}

// GetPayment hides other users' payments behind ErrNotFound.
func (s *PaymentService) GetPayment(ctx context.Context, userID int, paymentID uuid.UUID) (*domain.SubscriptionPayment, error) {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("payment %s: %w", paymentID, domain.ErrNotFound)
	}
	return p, nil
}

func (s *PaymentService) ListUserPayments(ctx context.Context, userID int) ([]domain.SubscriptionPayment, error) {
	return s.repo.ListUserPayments(ctx, userID)
}

func settled(p *domain.SubscriptionPayment) (bool, error) {
	switch p.Status {
	case domain.StatusSucceeded:
		return true, nil
	case domain.StatusFailed:
		return true, domain.ErrPaymentClosed
	}
	return false, nil
}

func describe(order domain.OrderRequest) string {
	return fmt.Sprintf("Meal plan subscription: %d mo., %d person(s)", order.PlanDuration, order.PersonsCount)
}
