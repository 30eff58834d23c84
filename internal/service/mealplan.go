package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/ai"
	"github.com/macromind/backend/internal/authclient"
	"github.com/macromind/backend/internal/db"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/repository"
)

var ErrForbidden = errors.New("resource belongs to another user")

// ProfileSource fetches the caller's profile from the auth service.
type ProfileSource interface {
	Profile(ctx context.Context, bearerToken string) (*authclient.Profile, error)
}

// PlanPreferences are the profile values meal generation depends on.
type PlanPreferences struct {
	FitnessGoal       model.FitnessGoal
	DietaryPreference model.DietaryPreference
	DailyCalories     *int
}

// DefaultPlanPreferences apply when the auth service cannot be reached.
func DefaultPlanPreferences() PlanPreferences {
	daily := 2200
	return PlanPreferences{
		FitnessGoal:       model.FitnessGoalMaintain,
		DietaryPreference: model.DietaryPreferenceNone,
		DailyCalories:     &daily,
	}
}

type PlanWithMeals struct {
	Plan  *model.MealPlan
	Meals []*model.Meal
}

type DayMeals struct {
	Date  time.Time
	Day   model.DayOfWeek
	Meals []*model.Meal
}

type MealPlanService struct {
	db        *sqlx.DB
	generator *ai.MealGenerator
	profiles  ProfileSource
	now       func() time.Time
}

func NewMealPlanService(database *sqlx.DB, generator *ai.MealGenerator, profiles ProfileSource) *MealPlanService {
	return &MealPlanService{
		db:        database,
		generator: generator,
		profiles:  profiles,
		now:       time.Now,
	}
}

// WeekStart returns the Monday of the week containing t, as YYYY-MM-DD.
func WeekStart(t time.Time) string {
	offset := model.DayOf(t).Index()
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location()).Format(time.DateOnly)
}

// preferences falls back to defaults when the profile cannot be fetched.
func (s *MealPlanService) preferences(ctx context.Context, bearerToken string) PlanPreferences {
	prefs := DefaultPlanPreferences()
	if s.profiles == nil || bearerToken == "" {
		return prefs
	}

	profile, err := s.profiles.Profile(ctx, bearerToken)
	if err != nil {
		slog.Warn("could not fetch profile, using defaults", "error", err)
		return prefs
	}
	if profile == nil {
		return prefs
	}

	if profile.FitnessGoal.Valid() {
		prefs.FitnessGoal = profile.FitnessGoal
	}
	if profile.DietaryPreference.Valid() {
		prefs.DietaryPreference = profile.DietaryPreference
	}
	// nil lets the generator pick the goal default
	prefs.DailyCalories = profile.DailyCalories
	return prefs
}

// Generate builds a 21-meal plan for the week containing weekOf (today when
// nil). An existing plan for that week is replaced.
func (s *MealPlanService) Generate(ctx context.Context, userID, bearerToken string, weekOf *time.Time) (*PlanWithMeals, error) {
	ref := s.now()
	if weekOf != nil {
		ref = *weekOf
	}
	weekStart := WeekStart(ref)

	prefs := s.preferences(ctx, bearerToken)
	generated := s.generator.GenerateWeek(ctx, prefs.FitnessGoal, prefs.DietaryPreference, prefs.DailyCalories)

	now := s.now()
	plan := &model.MealPlan{
		ID:          uuid.New().String(),
		UserID:      userID,
		WeekStart:   weekStart,
		GeneratedAt: now,
	}

	meals := make([]*model.Meal, 0, len(generated))
	for _, g := range generated {
		meals = append(meals, &model.Meal{
			ID:          uuid.New().String(),
			MealPlanID:  plan.ID,
			UserID:      userID,
			Day:         g.Day,
			MealType:    g.MealType,
			Name:        g.Meal.Name,
			Calories:    g.Meal.Calories,
			Protein:     g.Meal.Protein,
			Carbs:       g.Meal.Carbs,
			Fats:        g.Meal.Fats,
			Ingredients: g.Meal.Ingredients,
			CreatedAt:   now,
		})
	}

	err := db.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		plans := repository.NewMealPlanRepository(tx)

		existing, err := plans.ByUserAndWeek(ctx, userID, weekStart)
		if err == nil {
			if err := plans.Delete(ctx, existing.ID); err != nil {
				return fmt.Errorf("failed to replace existing plan: %w", err)
			}
		} else if !errors.Is(err, repository.ErrMealPlanNotFound) {
			return err
		}

		if err := plans.Create(ctx, plan); err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}

		mealRepo := repository.NewMealRepository(tx)
		for _, meal := range meals {
			if err := mealRepo.Create(ctx, meal); err != nil {
				return fmt.Errorf("failed to create meal: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("meal plan generated", "user_id", userID, "plan_id", plan.ID, "week_start", weekStart)
	return &PlanWithMeals{Plan: plan, Meals: meals}, nil
}

// Weekly returns the plan for the week containing weekOf (today when nil).
func (s *MealPlanService) Weekly(ctx context.Context, userID string, weekOf *time.Time) (*PlanWithMeals, error) {
	ref := s.now()
	if weekOf != nil {
		ref = *weekOf
	}

	plan, err := repository.NewMealPlanRepository(s.db).ByUserAndWeek(ctx, userID, WeekStart(ref))
	if err != nil {
		return nil, err
	}

	meals, err := repository.NewMealRepository(s.db).ByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get meals: %w", err)
	}

	return &PlanWithMeals{Plan: plan, Meals: meals}, nil
}

// Today returns today's meals from the current week's plan.
func (s *MealPlanService) Today(ctx context.Context, userID string) (*DayMeals, error) {
	today := s.now()
	day := model.DayOf(today)

	plan, err := repository.NewMealPlanRepository(s.db).ByUserAndWeek(ctx, userID, WeekStart(today))
	if err != nil {
		return nil, err
	}

	meals, err := repository.NewMealRepository(s.db).ByPlanAndDay(ctx, plan.ID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get meals: %w", err)
	}
	if len(meals) == 0 {
		return nil, repository.ErrMealNotFound
	}

	return &DayMeals{Date: today, Day: day, Meals: meals}, nil
}

// Swap regenerates one meal in place, keeping its day and meal type.
func (s *MealPlanService) Swap(ctx context.Context, userID, bearerToken, mealID string) (*model.Meal, error) {
	meal, err := repository.NewMealRepository(s.db).ByID(ctx, mealID)
	if err != nil {
		return nil, err
	}
	if meal.UserID != userID {
		return nil, ErrForbidden
	}

	prefs := s.preferences(ctx, bearerToken)
	daily := ai.DefaultDailyCalories(prefs.FitnessGoal)
	if prefs.DailyCalories != nil {
		daily = *prefs.DailyCalories
	}

	result := s.generator.Generate(ctx, ai.MealRequest{
		MealType:          meal.MealType,
		FitnessGoal:       prefs.FitnessGoal,
		DietaryPreference: prefs.DietaryPreference,
		TargetCalories:    ai.CalorieTarget(meal.MealType, daily),
	})

	meal.Name = result.Value.Name
	meal.Calories = result.Value.Calories
	meal.Protein = result.Value.Protein
	meal.Carbs = result.Value.Carbs
	meal.Fats = result.Value.Fats
	meal.Ingredients = result.Value.Ingredients

	err = db.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return repository.NewMealRepository(tx).Update(ctx, meal)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("meal swapped", "user_id", userID, "meal_id", meal.ID, "source", result.Source)
	return meal, nil
}

// DeletePlan removes a plan and its meals.
func (s *MealPlanService) DeletePlan(ctx context.Context, userID, planID string) error {
	return db.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		plans := repository.NewMealPlanRepository(tx)

		plan, err := plans.ByID(ctx, planID)
		if err != nil {
			return err
		}
		if plan.UserID != userID {
			return ErrForbidden
		}
		return plans.Delete(ctx, planID)
	})
}
