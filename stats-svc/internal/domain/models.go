package domain

import (
	"errors"
	"time"
)

const (
	EventMenuGenerated       = "menu_generated"
	EventSubscriptionCreated = "subscription_created"
)

const (
	PeriodToday = "today"
	PeriodAll   = "all"
)

// DietTypes lists every diet the planner offers; distributions report all of them.
var DietTypes = []string{"classic", "low_carb", "vegetarian", "keto"}

var ErrInvalidPeriod = errors.New("period must be today or all")

// KafkaMessage is a planner domain event.
type KafkaMessage struct {
	Type      string    `json:"type"`
	UserID    int       `json:"user_id"`
	DietType  string    `json:"diet_type,omitempty"`
	Date      string    `json:"date,omitempty"`
	DishIDs   []int     `json:"dish_ids,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type DishPopularity struct {
	DishID   int     `json:"dish_id"`
	DishName string  `json:"dish_name"`
	Score    float64 `json:"score"`
}
