package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodplan/planner-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const dishColumns = `id, name, COALESCE(description, ''), COALESCE(recipe, ''), COALESCE(diet_type, ''), category,
	cooking_time, COALESCE(difficulty, ''), portions`

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return err
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}

func (r *PostgresRepository) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	dishes, err := r.queryDishes(ctx, "SELECT "+dishColumns+" FROM dishes WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(dishes) == 0 {
		return nil, fmt.Errorf("dish %d: %w", id, domain.ErrNotFound)
	}
	return &dishes[0], nil
}

// ListDishes returns distinct dishes of one diet whose category is among the given meal types.
func (r *PostgresRepository) ListDishes(ctx context.Context, dietType domain.DietType, categories []domain.MealType) ([]domain.Dish, error) {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return r.queryDishes(ctx, "SELECT "+dishColumns+`
		FROM dishes
		WHERE diet_type = $1 AND category = ANY($2)
		ORDER BY id`, string(dietType), pq.Array(names))
}

func (r *PostgresRepository) getDishesByID(ctx context.Context, ids []int) (map[int]domain.Dish, error) {
	dishes, err := r.queryDishes(ctx, "SELECT "+dishColumns+" FROM dishes WHERE id = ANY($1) ORDER BY id", pq.Array(toInt64s(ids)))
	if err != nil {
		return nil, err
	}
	byID := make(map[int]domain.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}
	return byID, nil
}

func (r *PostgresRepository) queryDishes(ctx context.Context, query string, args ...interface{}) ([]domain.Dish, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		var d domain.Dish
		var dietType, category string
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Recipe, &dietType, &category,
			&d.CookingTime, &d.Difficulty, &d.Portions); err != nil {
			return nil, err
		}
		d.DietType = domain.DietType(dietType)
		d.Category = domain.MealType(category)
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(dishes) == 0 {
		return dishes, nil
	}

	if err := r.attachIngredients(ctx, dishes); err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *PostgresRepository) attachIngredients(ctx context.Context, dishes []domain.Dish) error {
	index := make(map[int]int, len(dishes))
	ids := make([]int, 0, len(dishes))
	for i, d := range dishes {
		index[d.ID] = i
		ids = append(ids, d.ID)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT di.dish_id, i.id, i.name, i.unit, i.price, i.calories, di.quantity
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		WHERE di.dish_id = ANY($1)
		ORDER BY di.dish_id, di.id`, pq.Array(toInt64s(ids)))
	if err != nil {
		return fmt.Errorf("load dish ingredients: %w", err)
	}
	defer rows.Close()

	type position struct{ dish, row int }
	var ingredientIDs []int
	positions := map[int][]position{}
	for rows.Next() {
		var dishID int
		var di domain.DishIngredient
		var unit string
		if err := rows.Scan(&dishID, &di.Ingredient.ID, &di.Ingredient.Name, &unit,
			&di.Ingredient.Price, &di.Ingredient.Calories, &di.Quantity); err != nil {
			return err
		}
		di.Ingredient.Unit = domain.Unit(unit)
		i := index[dishID]
		dishes[i].Ingredients = append(dishes[i].Ingredients, di)
		if _, seen := positions[di.Ingredient.ID]; !seen {
			ingredientIDs = append(ingredientIDs, di.Ingredient.ID)
		}
		positions[di.Ingredient.ID] = append(positions[di.Ingredient.ID], position{dish: i, row: len(dishes[i].Ingredients) - 1})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(ingredientIDs) == 0 {
		return nil
	}

	allergens, err := r.ingredientAllergens(ctx, ingredientIDs)
	if err != nil {
		return err
	}
	for ingredientID, list := range allergens {
		for _, p := range positions[ingredientID] {
			dishes[p.dish].Ingredients[p.row].Ingredient.Allergens = list
		}
	}
	return nil
}

func (r *PostgresRepository) ingredientAllergens(ctx context.Context, ingredientIDs []int) (map[int][]domain.Allergy, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT ia.ingredient_id, a.id, a.name
		FROM ingredient_allergens ia
		JOIN allergies a ON a.id = ia.allergy_id
		WHERE ia.ingredient_id = ANY($1)
		ORDER BY ia.ingredient_id, a.id`, pq.Array(toInt64s(ingredientIDs)))
	if err != nil {
		return nil, fmt.Errorf("load ingredient allergens: %w", err)
	}
	defer rows.Close()

	result := map[int][]domain.Allergy{}
	for rows.Next() {
		var ingredientID int
		var a domain.Allergy
		if err := rows.Scan(&ingredientID, &a.ID, &a.Name); err != nil {
			return nil, err
		}
		result[ingredientID] = append(result[ingredientID], a)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) ListAllergies(ctx context.Context) ([]domain.Allergy, error) {
	return r.queryAllergies(ctx, "SELECT id, name FROM allergies ORDER BY id")
}

func (r *PostgresRepository) GetAllergies(ctx context.Context, ids []int) ([]domain.Allergy, error) {
	if len(ids) == 0 {
		return []domain.Allergy{}, nil
	}
	return r.queryAllergies(ctx, "SELECT id, name FROM allergies WHERE id = ANY($1) ORDER BY id", pq.Array(toInt64s(ids)))
}

func (r *PostgresRepository) queryAllergies(ctx context.Context, query string, args ...interface{}) ([]domain.Allergy, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allergies := []domain.Allergy{}
	for rows.Next() {
		var a domain.Allergy
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		allergies = append(allergies, a)
	}
	return allergies, rows.Err()
}

const planColumns = "id, duration, breakfast_price, lunch_price, dinner_price, dessert_price"

func (r *PostgresRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+planColumns+" FROM subscription_plans ORDER BY duration")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		var p domain.Plan
		if err := rows.Scan(&p.ID, &p.Duration, &p.BreakfastPrice, &p.LunchPrice, &p.DinnerPrice, &p.DessertPrice); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *PostgresRepository) GetPlanByDuration(ctx context.Context, duration int) (*domain.Plan, error) {
	var p domain.Plan
	err := r.DB.QueryRowContext(ctx, "SELECT "+planColumns+" FROM subscription_plans WHERE duration = $1", duration).
		Scan(&p.ID, &p.Duration, &p.BreakfastPrice, &p.LunchPrice, &p.DinnerPrice, &p.DessertPrice)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("plan for %d months", duration))
	}
	return &p, nil
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", userID).Scan(&exists)
	return exists, err
}

// SaveSubscription replaces the user's single subscription together with its allergy set.
func (r *PostgresRepository) SaveSubscription(ctx context.Context, sub *domain.Subscription) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	mealTypes := make([]string, 0, len(sub.SelectedMealTypes))
	for _, m := range sub.SelectedMealTypes {
		mealTypes = append(mealTypes, string(m))
	}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO user_subscriptions (user_id, diet_type, selected_meal_types, persons_count, plan_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			diet_type = EXCLUDED.diet_type,
			selected_meal_types = EXCLUDED.selected_meal_types,
			persons_count = EXCLUDED.persons_count,
			plan_id = EXCLUDED.plan_id,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date
		RETURNING id`,
		sub.UserID, string(sub.DietType), pq.Array(mealTypes), sub.PersonsCount, sub.Plan.ID, sub.StartDate, sub.EndDate,
	).Scan(&sub.ID); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM user_subscription_allergies WHERE subscription_id = $1", sub.ID); err != nil {
		return err
	}
	for _, a := range sub.Allergies {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO user_subscription_allergies (subscription_id, allergy_id) VALUES ($1, $2)",
			sub.ID, a.ID); err != nil {
			return fmt.Errorf("attach allergy %d: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetSubscription(ctx context.Context, userID int) (*domain.Subscription, error) {
	var sub domain.Subscription
	var dietType string
	var mealTypes []string
	err := r.DB.QueryRowContext(ctx, `
		SELECT s.id, s.user_id, s.diet_type, s.selected_meal_types, s.persons_count, s.start_date, s.end_date,
			p.id, p.duration, p.breakfast_price, p.lunch_price, p.dinner_price, p.dessert_price
		FROM user_subscriptions s
		JOIN subscription_plans p ON p.id = s.plan_id
		WHERE s.user_id = $1`, userID).
		Scan(&sub.ID, &sub.UserID, &dietType, pq.Array(&mealTypes), &sub.PersonsCount, &sub.StartDate, &sub.EndDate,
			&sub.Plan.ID, &sub.Plan.Duration, &sub.Plan.BreakfastPrice, &sub.Plan.LunchPrice,
			&sub.Plan.DinnerPrice, &sub.Plan.DessertPrice)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("subscription of user %d", userID))
	}
	sub.DietType = domain.DietType(dietType)
	for _, m := range mealTypes {
		sub.SelectedMealTypes = append(sub.SelectedMealTypes, domain.MealType(m))
	}

	sub.Allergies, err = r.queryAllergies(ctx, `
		SELECT a.id, a.name
		FROM user_subscription_allergies sa
		JOIN allergies a ON a.id = sa.allergy_id
		WHERE sa.subscription_id = $1
		ORDER BY a.id`, sub.ID)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *PostgresRepository) GetMenu(ctx context.Context, userID int, date time.Time) (*domain.Menu, error) {
	menu := domain.Menu{UserID: userID, Date: date}
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, menu_date, created_at FROM daily_menus WHERE user_id = $1 AND menu_date = $2",
		userID, date).Scan(&menu.ID, &menu.Date, &menu.CreatedAt)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("menu of user %d", userID))
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, meal_type, dish_id FROM daily_meals WHERE menu_id = $1 ORDER BY id", menu.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishIDs []int
	for rows.Next() {
		var meal domain.Meal
		var mealType string
		if err := rows.Scan(&meal.ID, &mealType, &meal.Dish.ID); err != nil {
			return nil, err
		}
		meal.MealType = domain.MealType(mealType)
		menu.Meals = append(menu.Meals, meal)
		dishIDs = append(dishIDs, meal.Dish.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(dishIDs) == 0 {
		return &menu, nil
	}

	dishes, err := r.getDishesByID(ctx, dishIDs)
	if err != nil {
		return nil, err
	}
	for i := range menu.Meals {
		if d, ok := dishes[menu.Meals[i].Dish.ID]; ok {
			menu.Meals[i].Dish = d
		}
	}
	return &menu, nil
}

// ReplaceMenu swaps the (user, date) menu for the given one inside a single transaction.
// A concurrent regeneration of the same day lands on the existing row through ON CONFLICT.
func (r *PostgresRepository) ReplaceMenu(ctx context.Context, menu *domain.Menu) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM daily_menus WHERE user_id = $1 AND menu_date = $2", menu.UserID, menu.Date); err != nil {
		return fmt.Errorf("delete previous menu: %w", err)
	}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO daily_menus (user_id, menu_date)
		VALUES ($1, $2)
		ON CONFLICT (user_id, menu_date) DO UPDATE SET created_at = CURRENT_TIMESTAMP
		RETURNING id, created_at`, menu.UserID, menu.Date).Scan(&menu.ID, &menu.CreatedAt); err != nil {
		return fmt.Errorf("create menu: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM daily_meals WHERE menu_id = $1", menu.ID); err != nil {
		return err
	}

	for i := range menu.Meals {
		meal := &menu.Meals[i]
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO daily_meals (menu_id, meal_type, dish_id)
			VALUES ($1, $2, $3)
			RETURNING id`, menu.ID, string(meal.MealType), meal.Dish.ID).Scan(&meal.ID); err != nil {
			return fmt.Errorf("add %s: %w", meal.MealType, err)
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(150) NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS allergies (
			id SERIAL PRIMARY KEY,
			name VARCHAR(150) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ingredients (
			id SERIAL PRIMARY KEY,
			name VARCHAR(150) NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			calories NUMERIC(7,2) NOT NULL,
			unit VARCHAR(10) NOT NULL DEFAULT 'g'
		)`,
		`CREATE TABLE IF NOT EXISTS ingredient_allergens (
			ingredient_id INTEGER NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			allergy_id INTEGER NOT NULL REFERENCES allergies(id) ON DELETE CASCADE,
			PRIMARY KEY (ingredient_id, allergy_id)
		)`,
		`CREATE TABLE IF NOT EXISTS dishes (
			id SERIAL PRIMARY KEY,
			name VARCHAR(150) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			recipe TEXT NOT NULL DEFAULT '',
			diet_type VARCHAR(20),
			category VARCHAR(50) NOT NULL DEFAULT 'lunch',
			cooking_time INTEGER NOT NULL DEFAULT 0,
			difficulty VARCHAR(20) NOT NULL DEFAULT '',
			portions INTEGER NOT NULL DEFAULT 1
		)`,
		"CREATE INDEX IF NOT EXISTS dishes_diet_category_idx ON dishes (diet_type, category)",
		`CREATE TABLE IF NOT EXISTS dish_ingredients (
			id SERIAL PRIMARY KEY,
			dish_id INTEGER NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
			ingredient_id INTEGER NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			quantity NUMERIC(10,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS subscription_plans (
			id SERIAL PRIMARY KEY,
			duration INTEGER NOT NULL UNIQUE CHECK (duration IN (1, 3, 6, 12)),
			breakfast_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			lunch_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			dinner_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			dessert_price NUMERIC(10,2) NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS user_subscriptions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			diet_type VARCHAR(20) NOT NULL,
			selected_meal_types TEXT[] NOT NULL,
			persons_count INTEGER NOT NULL DEFAULT 1 CHECK (persons_count BETWEEN 1 AND 6),
			plan_id INTEGER NOT NULL REFERENCES subscription_plans(id) ON DELETE RESTRICT,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_subscription_allergies (
			subscription_id INTEGER NOT NULL REFERENCES user_subscriptions(id) ON DELETE CASCADE,
			allergy_id INTEGER NOT NULL REFERENCES allergies(id) ON DELETE CASCADE,
			PRIMARY KEY (subscription_id, allergy_id)
		)`,
		`CREATE TABLE IF NOT EXISTS daily_menus (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			menu_date DATE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, menu_date)
		)`,
		`CREATE TABLE IF NOT EXISTS daily_meals (
			id SERIAL PRIMARY KEY,
			menu_id INTEGER NOT NULL REFERENCES daily_menus(id) ON DELETE CASCADE,
			meal_type VARCHAR(20) NOT NULL,
			dish_id INTEGER NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
			UNIQUE (menu_id, meal_type)
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
