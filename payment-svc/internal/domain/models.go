package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusSucceeded PaymentStatus = "succeeded"
	StatusFailed    PaymentStatus = "failed"
)

const ProviderYookassa = "yookassa"

// SubscriptionPayment is one attempt to pay for a subscription. Renewals point at the
// same SubscriptionID, so it is indexed but not unique. Order keeps the
// request the subscription will be created from once the provider reports success.
type SubscriptionPayment struct {
	ID             uint            `gorm:"primaryKey" json:"-"`
	PaymentID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"payment_id"`
	UserID         int             `gorm:"not null;index" json:"user_id"`
	SubscriptionID *int            `gorm:"index" json:"subscription_id,omitempty"`
	Provider       string          `gorm:"size:16;index;not null" json:"provider"`
	Amount         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status         PaymentStatus   `gorm:"size:16;not null;default:pending" json:"status"`
	Description    string          `gorm:"size:100" json:"description"`
	Order          datatypes.JSON  `gorm:"type:jsonb" json:"order"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderRequest mirrors the planner's subscription request.
type OrderRequest struct {
	DietType          string   `json:"diet_type"`
	SelectedMealTypes []string `json:"selected_meal_types"`
	PersonsCount      int      `json:"persons_count"`
	PlanDuration      int      `json:"plan_duration"`
	AllergyIDs        []int    `json:"allergies"`
}

// SubscriptionResult is what the planner reports after creating a subscription.
type SubscriptionResult struct {
	ID         int    `json:"id"`
	TotalPrice string `json:"total_price"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}
