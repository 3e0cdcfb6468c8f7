package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Menu struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Date      time.Time `json:"date"`
	Meals     []Meal    `json:"meals"`
	CreatedAt time.Time `json:"created_at"`
}

type Meal struct {
	ID       int      `json:"id"`
	MealType MealType `json:"meal_type"`
	Dish     Dish     `json:"dish"`
}

func (m Menu) TotalCalories() decimal.Decimal {
	total := decimal.Zero
	for _, meal := range m.Meals {
		total = total.Add(meal.Dish.TotalCalories())
	}
	return total.RoundBank(2)
}

func (m Menu) TotalCookingTime() int {
	total := 0
	for _, meal := range m.Meals {
		total += meal.Dish.CookingTime
	}
	return total
}

func (m Menu) DishIDs() []int {
	ids := make([]int, 0, len(m.Meals))
	for _, meal := range m.Meals {
		ids = append(ids, meal.Dish.ID)
	}
	return ids
}

const (
	EventMenuGenerated       = "menu_generated"
	EventSubscriptionCreated = "subscription_created"
)

type KafkaMessage struct {
	Type      string    `json:"type"`
	UserID    int       `json:"user_id"`
	DietType  DietType  `json:"diet_type,omitempty"`
	Date      string    `json:"date,omitempty"`
	DishIDs   []int     `json:"dish_ids,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
