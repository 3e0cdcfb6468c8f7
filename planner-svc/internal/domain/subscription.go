package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinPersons = 1
	MaxPersons = 6
)

// PlanDurations lists the subscription terms in months.
var PlanDurations = []int{1, 3, 6, 12}

func ValidPlanDuration(months int) bool {
	for _, d := range PlanDurations {
		if d == months {
			return true
		}
	}
	return false
}

type Plan struct {
	ID             int             `json:"id"`
	Duration       int             `json:"duration"`
	BreakfastPrice decimal.Decimal `json:"breakfast_price"`
	LunchPrice     decimal.Decimal `json:"lunch_price"`
	DinnerPrice    decimal.Decimal `json:"dinner_price"`
	DessertPrice   decimal.Decimal `json:"dessert_price"`
}

// PriceFor returns zero for meal types the plan does not price.
func (p Plan) PriceFor(mealType MealType) decimal.Decimal {
	switch mealType {
	case MealBreakfast:
		return p.BreakfastPrice
	case MealLunch:
		return p.LunchPrice
	case MealDinner:
		return p.DinnerPrice
	case MealDessert:
		return p.DessertPrice
	}
	return decimal.Zero
}

func (p Plan) TotalPrice(mealTypes []MealType) decimal.Decimal {
	total := decimal.Zero
	for _, mealType := range mealTypes {
		total = total.Add(p.PriceFor(mealType))
	}
	return total.RoundBank(2)
}

type Subscription struct {
	ID                int        `json:"id"`
	UserID            int        `json:"user_id"`
	DietType          DietType   `json:"diet_type"`
	SelectedMealTypes []MealType `json:"selected_meal_types"`
	PersonsCount      int        `json:"persons_count"`
	Plan              Plan       `json:"plan"`
	Allergies         []Allergy  `json:"allergies"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
}

func (s Subscription) IsActive(today time.Time) bool {
	return !DateOf(s.EndDate).Before(DateOf(today))
}

func (s Subscription) TotalPrice() decimal.Decimal {
	return s.Plan.TotalPrice(s.SelectedMealTypes).Mul(decimal.NewFromInt(int64(s.PersonsCount))).RoundBank(2)
}

func (s Subscription) AllergyIDs() []int {
	ids := make([]int, 0, len(s.Allergies))
	for _, a := range s.Allergies {
		ids = append(ids, a.ID)
	}
	return ids
}

func (s Subscription) Criteria() Criteria {
	return Criteria{
		DietType:   s.DietType,
		MealTypes:  s.SelectedMealTypes,
		AllergyIDs: s.AllergyIDs(),
	}
}

// SubscriptionRequest carries an order as submitted by the user or replayed by the payment service.
type SubscriptionRequest struct {
	DietType          DietType   `json:"diet_type"`
	SelectedMealTypes []MealType `json:"selected_meal_types"`
	PersonsCount      int        `json:"persons_count"`
	PlanDuration      int        `json:"plan_duration"`
	AllergyIDs        []int      `json:"allergies"`
}

// DateOf drops the clock part of t, keeping its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves date forward by whole months, clamping to the last day of the target month.
func AddMonths(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}
