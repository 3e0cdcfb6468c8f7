package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

type DietType string

const (
	DietClassic    DietType = "classic"
	DietLowCarb    DietType = "low_carb"
	DietVegetarian DietType = "vegetarian"
	DietKeto       DietType = "keto"
)

func (d DietType) Valid() bool {
	switch d {
	case DietClassic, DietLowCarb, DietVegetarian, DietKeto:
		return true
	}
	return false
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealDessert   MealType = "dessert"
)

func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealDessert:
		return true
	}
	return false
}

type Unit string

const (
	UnitGram       Unit = "g"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "pcs"
	UnitTablespoon Unit = "tbsp"
	UnitTeaspoon   Unit = "tsp"
)

type Allergy struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Ingredient struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Unit      Unit            `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	Calories  decimal.Decimal `json:"calories"`
	Allergens []Allergy       `json:"allergens"`
}

type DishIngredient struct {
	Ingredient Ingredient      `json:"ingredient"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// TotalCalories is quantized per row so that dish sums match the stored two-place values.
func (di DishIngredient) TotalCalories() decimal.Decimal {
	return di.Ingredient.Calories.Mul(di.Quantity).RoundBank(2)
}

func (di DishIngredient) TotalPrice() decimal.Decimal {
	return di.Ingredient.Price.Mul(di.Quantity).RoundBank(2)
}

type Dish struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Recipe      string           `json:"recipe"`
	DietType    DietType         `json:"diet_type"`
	Category    MealType         `json:"category"`
	CookingTime int              `json:"cooking_time"`
	Difficulty  string           `json:"difficulty"`
	Portions    int              `json:"portions"`
	Ingredients []DishIngredient `json:"ingredients"`
}

func (d Dish) TotalCalories() decimal.Decimal {
	total := decimal.Zero
	for _, di := range d.Ingredients {
		total = total.Add(di.TotalCalories())
	}
	return total.RoundBank(2)
}

func (d Dish) CaloriesPerPortion() decimal.Decimal {
	if d.Portions <= 0 {
		return decimal.Zero
	}
	return d.TotalCalories().Div(decimal.NewFromInt(int64(d.Portions))).RoundBank(2)
}

func (d Dish) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, di := range d.Ingredients {
		total = total.Add(di.TotalPrice())
	}
	return total.RoundBank(2)
}

// Word stems that mark a dish as containing meat or fish.
var nonVegetarianStems = []string{
	"мяс", "говя", "свин", "куриц", "курин", "цыпл", "индей", "утк", "утин", "гусь", "гусин",
	"баран", "телят", "фарш", "бекон", "ветчин", "колбас", "сосис", "рыб", "лосос",
	"семг", "сёмг", "тунец", "тунц", "треск", "кревет", "кальмар", "мидии", "краб",
	"meat", "beef", "pork", "chicken", "turkey", "duck", "goose", "lamb", "veal",
	"bacon", "ham", "sausage", "fish", "salmon", "tuna", "cod", "shrimp", "prawn",
	"squid", "mussel", "crab",
}

func (d Dish) IsVegetarian() bool {
	if containsNonVegetarian(d.Name) {
		return false
	}
	for _, di := range d.Ingredients {
		if containsNonVegetarian(di.Ingredient.Name) {
			return false
		}
	}
	return true
}

func containsNonVegetarian(text string) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, word := range words {
		for _, stem := range nonVegetarianStems {
			if strings.HasPrefix(word, stem) {
				return true
			}
		}
	}
	return false
}

// ContainsAllergen reports whether any ingredient carries one of the given allergies.
func (d Dish) ContainsAllergen(allergyIDs map[int]struct{}) bool {
	if len(allergyIDs) == 0 {
		return false
	}
	for _, di := range d.Ingredients {
		for _, allergen := range di.Ingredient.Allergens {
			if _, ok := allergyIDs[allergen.ID]; ok {
				return true
			}
		}
	}
	return false
}

// Criteria selects catalog dishes for a diet, a set of meal types and a set of excluded allergies.
type Criteria struct {
	DietType   DietType   `json:"diet_type"`
	MealTypes  []MealType `json:"meal_types"`
	AllergyIDs []int      `json:"allergy_ids"`
}
