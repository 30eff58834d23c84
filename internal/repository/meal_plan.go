package repository

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/model"
)

var (
	ErrMealPlanNotFound = errors.New("meal plan not found")
	ErrMealNotFound     = errors.New("meal not found")
)

type MealPlanRepository interface {
	Create(ctx context.Context, plan *model.MealPlan) error
	ByID(ctx context.Context, id string) (*model.MealPlan, error)
	ByUserAndWeek(ctx context.Context, userID, weekStart string) (*model.MealPlan, error)
	Delete(ctx context.Context, id string) error
}

type mealPlanRepository struct {
	db sqlx.ExtContext
}

func NewMealPlanRepository(db sqlx.ExtContext) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) Create(ctx context.Context, plan *model.MealPlan) error {
	query := `INSERT INTO meal_plans (id, user_id, week_start, generated_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, plan.ID, plan.UserID, plan.WeekStart, plan.GeneratedAt)
	return err
}

func (r *mealPlanRepository) ByID(ctx context.Context, id string) (*model.MealPlan, error) {
	plan := &model.MealPlan{}

	err := sqlx.GetContext(ctx, r.db, plan, `SELECT * FROM meal_plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMealPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *mealPlanRepository) ByUserAndWeek(ctx context.Context, userID, weekStart string) (*model.MealPlan, error) {
	plan := &model.MealPlan{}
	query := `SELECT * FROM meal_plans WHERE user_id = $1 AND week_start = $2`

	err := sqlx.GetContext(ctx, r.db, plan, query, userID, weekStart)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMealPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	return plan, nil
}

// Delete removes the plan and, through the foreign key, all of its meals.
func (r *mealPlanRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRows(result, ErrMealPlanNotFound)
}

type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	ByID(ctx context.Context, id string) (*model.Meal, error)
	ByPlan(ctx context.Context, planID string) ([]*model.Meal, error)
	ByPlanAndDay(ctx context.Context, planID string, day model.DayOfWeek) ([]*model.Meal, error)
	Update(ctx context.Context, meal *model.Meal) error
}

type mealRepository struct {
	db sqlx.ExtContext
}

func NewMealRepository(db sqlx.ExtContext) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Create(ctx context.Context, meal *model.Meal) error {
	query := `INSERT INTO meals (id, meal_plan_id, user_id, day, meal_type, name, calories, protein, carbs, fats, ingredients, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		meal.ID,
		meal.MealPlanID,
		meal.UserID,
		meal.Day,
		meal.MealType,
		meal.Name,
		meal.Calories,
		meal.Protein,
		meal.Carbs,
		meal.Fats,
		meal.Ingredients,
		meal.CreatedAt,
	)
	return err
}

func (r *mealRepository) ByID(ctx context.Context, id string) (*model.Meal, error) {
	meal := &model.Meal{}

	err := sqlx.GetContext(ctx, r.db, meal, `SELECT * FROM meals WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}

	return meal, nil
}

// ByPlan returns the plan's meals ordered by day of week, then meal type.
func (r *mealRepository) ByPlan(ctx context.Context, planID string) ([]*model.Meal, error) {
	var meals []*model.Meal

	err := sqlx.SelectContext(ctx, r.db, &meals, `SELECT * FROM meals WHERE meal_plan_id = $1`, planID)
	if err != nil {
		return nil, err
	}

	sortMeals(meals)
	return meals, nil
}

func (r *mealRepository) ByPlanAndDay(ctx context.Context, planID string, day model.DayOfWeek) ([]*model.Meal, error) {
	var meals []*model.Meal
	query := `SELECT * FROM meals WHERE meal_plan_id = $1 AND day = $2`

	err := sqlx.SelectContext(ctx, r.db, &meals, query, planID, day)
	if err != nil {
		return nil, err
	}

	sortMeals(meals)
	return meals, nil
}

// Update replaces the generated content of a meal in place.
func (r *mealRepository) Update(ctx context.Context, meal *model.Meal) error {
	query := `UPDATE meals SET name = $1, calories = $2, protein = $3, carbs = $4, fats = $5, ingredients = $6 WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		meal.Name, meal.Calories, meal.Protein, meal.Carbs, meal.Fats, meal.Ingredients, meal.ID)
	if err != nil {
		return err
	}
	return expectRows(result, ErrMealNotFound)
}

// Day and meal type are stored as text, so SQL ordering would be alphabetical.
func sortMeals(meals []*model.Meal) {
	slices.SortStableFunc(meals, func(a, b *model.Meal) int {
		if d := a.Day.Index() - b.Day.Index(); d != 0 {
			return d
		}
		return slices.Index(model.MealTypes, a.MealType) - slices.Index(model.MealTypes, b.MealType)
	})
}
