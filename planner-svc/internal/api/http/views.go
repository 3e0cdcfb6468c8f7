package httpapi

import (
	"time"

	"foodplan/planner-svc/internal/domain"
)

type dishView struct {
	domain.Dish
	TotalCalories      string `json:"total_calories"`
	CaloriesPerPortion string `json:"calories_per_portion"`
	TotalPrice         string `json:"total_price"`
	IsVegetarian       bool   `json:"is_vegetarian"`
}

func newDishView(d domain.Dish) dishView {
	if d.Ingredients == nil {
		d.Ingredients = []domain.DishIngredient{}
	}
	return dishView{
		Dish:               d,
		TotalCalories:      d.TotalCalories().StringFixed(2),
		CaloriesPerPortion: d.CaloriesPerPortion().StringFixed(2),
		TotalPrice:         d.TotalPrice().StringFixed(2),
		IsVegetarian:       d.IsVegetarian(),
	}
}

func newDishViews(dishes []domain.Dish) []dishView {
	views := make([]dishView, 0, len(dishes))
	for _, d := range dishes {
		views = append(views, newDishView(d))
	}
	return views
}

type mealView struct {
	ID       int             `json:"id"`
	MealType domain.MealType `json:"meal_type"`
	Dish     dishView        `json:"dish"`
}

type menuView struct {
	ID               int        `json:"id"`
	Date             string     `json:"date"`
	Meals            []mealView `json:"meals"`
	TotalCalories    string     `json:"total_calories"`
	TotalCookingTime int        `json:"total_cooking_time"`
	CreatedAt        time.Time  `json:"created_at"`
}

func newMenuView(m *domain.Menu) menuView {
	meals := make([]mealView, 0, len(m.Meals))
	for _, meal := range m.Meals {
		meals = append(meals, mealView{ID: meal.ID, MealType: meal.MealType, Dish: newDishView(meal.Dish)})
	}
	return menuView{
		ID:               m.ID,
		Date:             m.Date.Format(time.DateOnly),
		Meals:            meals,
		TotalCalories:    m.TotalCalories().StringFixed(2),
		TotalCookingTime: m.TotalCookingTime(),
		CreatedAt:        m.CreatedAt,
	}
}

type subscriptionView struct {
	domain.Subscription
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	TotalPrice string `json:"total_price"`
}

func newSubscriptionView(s *domain.Subscription) subscriptionView {
	sub := *s
	if sub.Allergies == nil {
		sub.Allergies = []domain.Allergy{}
	}
	return subscriptionView{
		Subscription: sub,
		StartDate:    s.StartDate.Format(time.DateOnly),
		EndDate:      s.EndDate.Format(time.DateOnly),
		TotalPrice:   s.TotalPrice().StringFixed(2),
	}
}

type priceRequest struct {
	PlanDuration      int               `json:"plan_duration"`
	SelectedMealTypes []domain.MealType `json:"selected_meal_types"`
	PersonsCount      int               `json:"persons_count"`
}

type priceResponse struct {
	TotalPrice string `json:"total_price"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}
