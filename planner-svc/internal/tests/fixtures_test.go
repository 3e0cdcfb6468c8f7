package tests

import (
	"time"

	"foodplan/planner-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	fixedNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	today    = domain.DateOf(fixedNow)

	nuts    = domain.Allergy{ID: 1, Name: "Орехи"}
	lactose = domain.Allergy{ID: 2, Name: "Лактоза"}
)

func fixedClock() time.Time { return fixedNow }

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func basicPlan() *domain.Plan {
	return &domain.Plan{
		ID:             1,
		Duration:       1,
		BreakfastPrice: price("100"),
		LunchPrice:     price("150"),
		DinnerPrice:    price("200"),
		DessertPrice:   price("50"),
	}
}

func dishWith(id int, diet domain.DietType, category domain.MealType, allergens ...domain.Allergy) domain.Dish {
	return domain.Dish{
		ID:          id,
		Name:        "dish",
		DietType:    diet,
		Category:    category,
		CookingTime: 15,
		Portions:    2,
		Ingredients: []domain.DishIngredient{{
			Ingredient: domain.Ingredient{ID: id * 10, Name: "ingredient", Calories: price("1.5"), Price: price("0.2"), Allergens: allergens},
			Quantity:   price("100"),
		}},
	}
}

func activeSubscription(diet domain.DietType, mealTypes []domain.MealType, allergies ...domain.Allergy) *domain.Subscription {
	return &domain.Subscription{
		ID:                42,
		UserID:            5,
		DietType:          diet,
		SelectedMealTypes: mealTypes,
		PersonsCount:      1,
		Plan:              *basicPlan(),
		Allergies:         allergies,
		StartDate:         today,
		EndDate:           domain.AddMonths(today, 1),
	}
}
