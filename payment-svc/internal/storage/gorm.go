package storage

import (
	"context"
	"errors"
	"fmt"

	"foodplan/payment-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) CreatePayment(ctx context.Context, p *domain.SubscriptionPayment) error {
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *GormRepository) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.SubscriptionPayment, error) {
	var p domain.SubscriptionPayment
	err := r.DB.WithContext(ctx).Where("payment_id = ?", paymentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("payment %s: %w", paymentID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) ListUserPayments(ctx context.Context, userID int) ([]domain.SubscriptionPayment, error) {
	payments := []domain.SubscriptionPayment{}
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// MarkSucceeded only moves pending payments, so a replayed callback cannot relink a payment.
func (r *GormRepository) MarkSucceeded(ctx context.Context, paymentID uuid.UUID, subscriptionID int, amount decimal.Decimal) error {
	return r.transition(ctx, paymentID, map[string]interface{}{
		"status":          domain.StatusSucceeded,
		"subscription_id": subscriptionID,
		"amount":          amount,
	})
}

func (r *GormRepository) MarkFailed(ctx context.Context, paymentID uuid.UUID) error {
	return r.transition(ctx, paymentID, map[string]interface{}{"status": domain.StatusFailed})
}

func (r *GormRepository) transition(ctx context.Context, paymentID uuid.UUID, fields map[string]interface{}) error {
	res := r.DB.WithContext(ctx).
		Model(&domain.SubscriptionPayment{}).
		Where("payment_id = ? AND status = ?", paymentID, domain.StatusPending).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pending payment %s: %w", paymentID, domain.ErrNotFound)
	}
	return nil
}
