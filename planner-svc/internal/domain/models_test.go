package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ingredient(name, calories, price string, allergens ...Allergy) Ingredient {
	return Ingredient{Name: name, Calories: dec(calories), Price: dec(price), Unit: UnitGram, Allergens: allergens}
}

func TestPlan_TotalPrice(t *testing.T) {
	plan := Plan{
		Duration:       1,
		BreakfastPrice: dec("100"),
		LunchPrice:     dec("150"),
		DinnerPrice:    dec("200.50"),
		DessertPrice:   dec("80.25"),
	}

	tests := []struct {
		name      string
		mealTypes []MealType
		want      string
	}{
		{name: "empty selection", mealTypes: nil, want: "0.00"},
		{name: "breakfast and lunch", mealTypes: []MealType{MealBreakfast, MealLunch}, want: "250.00"},
		{name: "all meal types", mealTypes: []MealType{MealBreakfast, MealLunch, MealDinner, MealDessert}, want: "530.75"},
		{name: "unknown type adds nothing", mealTypes: []MealType{MealDinner, "brunch"}, want: "200.50"},
		{name: "order does not matter", mealTypes: []MealType{MealDessert, MealBreakfast}, want: "180.25"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, plan.TotalPrice(testCase.mealTypes).StringFixed(2))
		})
	}
}

func TestSubscription_TotalPrice(t *testing.T) {
	sub := Subscription{
		Plan:              Plan{Duration: 1, BreakfastPrice: dec("100"), LunchPrice: dec("150")},
		SelectedMealTypes: []MealType{MealBreakfast, MealLunch},
		PersonsCount:      2,
	}
	assert.Equal(t, "500.00", sub.TotalPrice().StringFixed(2))
}

func TestSubscription_IsActive(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 4, 0, 0, time.UTC)

	tests := []struct {
		name    string
		endDate time.Time
		want    bool
	}{
		{name: "ends in future", endDate: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), want: true},
		{name: "ends today", endDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), want: true},
		{name: "ended yesterday", endDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			sub := Subscription{EndDate: testCase.endDate}
			assert.Equal(t, testCase.want, sub.IsActive(today))
		})
	}
}

func TestDish_Rollups(t *testing.T) {
	dish := Dish{
		Portions: 3,
		Ingredients: []DishIngredient{
			{Ingredient: ingredient("Овсянка", "3.70", "0.12"), Quantity: dec("50")},
			{Ingredient: ingredient("Молоко", "0.64", "0.09"), Quantity: dec("200")},
			{Ingredient: ingredient("Мёд", "3.04", "1.10"), Quantity: dec("2.5")},
		},
	}

	assert.Equal(t, "185.00", dish.Ingredients[0].TotalCalories().StringFixed(2))
	assert.Equal(t, "128.00", dish.Ingredients[1].TotalCalories().StringFixed(2))
	assert.Equal(t, "7.60", dish.Ingredients[2].TotalCalories().StringFixed(2))
	assert.Equal(t, "320.60", dish.TotalCalories().StringFixed(2))
	assert.Equal(t, "106.87", dish.CaloriesPerPortion().StringFixed(2))
	assert.Equal(t, "26.75", dish.TotalPrice().StringFixed(2))
}

func TestDish_TotalCaloriesIndependentOfOrder(t *testing.T) {
	a := DishIngredient{Ingredient: ingredient("a", "1.115", "0"), Quantity: dec("3")}
	b := DishIngredient{Ingredient: ingredient("b", "2.345", "0"), Quantity: dec("1.5")}
	c := DishIngredient{Ingredient: ingredient("c", "0.333", "0"), Quantity: dec("7")}

	first := Dish{Ingredients: []DishIngredient{a, b, c}}
	second := Dish{Ingredients: []DishIngredient{c, a, b}}

	assert.True(t, first.TotalCalories().Equal(second.TotalCalories()))
}

func TestDish_CaloriesPerPortion(t *testing.T) {
	threeHundred := []DishIngredient{{Ingredient: ingredient("рис", "3", "0"), Quantity: dec("100")}}

	tests := []struct {
		name     string
		portions int
		want     string
	}{
		{name: "three portions", portions: 3, want: "100.00"},
		{name: "single portion", portions: 1, want: "300.00"},
		{name: "zero portions", portions: 0, want: "0.00"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			dish := Dish{Portions: testCase.portions, Ingredients: threeHundred}
			assert.Equal(t, testCase.want, dish.CaloriesPerPortion().StringFixed(2))
		})
	}
}

func TestDish_IsVegetarian(t *testing.T) {
	tests := []struct {
		name string
		dish Dish
		want bool
	}{
		{
			name: "vegetable salad",
			dish: Dish{Name: "Салат с курагой", Ingredients: []DishIngredient{{Ingredient: ingredient("Курага", "2", "1")}}},
			want: true,
		},
		{
			name: "meat in dish name",
			dish: Dish{Name: "Говядина по-французски"},
			want: false,
		},
		{
			name: "fish in ingredient",
			dish: Dish{Name: "Паста", Ingredients: []DishIngredient{{Ingredient: ingredient("Филе лосося", "2", "1")}}},
			want: false,
		},
		{
			name: "english chicken",
			dish: Dish{Name: "Caesar", Ingredients: []DishIngredient{{Ingredient: ingredient("Chicken breast", "2", "1")}}},
			want: false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.dish.IsVegetarian())
		})
	}
}

func TestDish_ContainsAllergen(t *testing.T) {
	nuts := Allergy{ID: 1, Name: "Орехи"}
	dish := Dish{Ingredients: []DishIngredient{{Ingredient: ingredient("Миндаль", "6", "2", nuts)}}}

	assert.True(t, dish.ContainsAllergen(map[int]struct{}{1: {}}))
	assert.False(t, dish.ContainsAllergen(map[int]struct{}{2: {}}))
	assert.False(t, dish.ContainsAllergen(nil))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{name: "plain", start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), months: 3, want: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{name: "clamps to leap february", start: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), months: 1, want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "clamps to short february", start: time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), months: 1, want: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{name: "crosses year", start: time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), months: 6, want: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{name: "twelve months", start: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), months: 12, want: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, AddMonths(testCase.start, testCase.months))
		})
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("persons_count", "must be between 1 and 6")
	errs.Add("diet_type", "unknown diet type")

	err := errs.Err()
	assert.Error(t, err)
	assert.Equal(t, "validation failed: persons_count: must be between 1 and 6; diet_type: unknown diet type", err.Error())
}
