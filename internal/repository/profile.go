package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/model"
)

type ProfileRepository interface {
	ByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, profile *model.Profile) error
}

type profileRepository struct {
	db sqlx.ExtContext
}

func NewProfileRepository(db sqlx.ExtContext) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := sqlx.GetContext(ctx, r.db, &profile, `SELECT * FROM user_profiles WHERE user_id = $1`, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = profile.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (id, user_id, full_name, fitness_goal, daily_calories, dietary_preference,
			has_completed_onboarding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, profile.ID, profile.UserID, profile.FullName, profile.FitnessGoal, profile.DailyCalories,
		profile.DietaryPreference, profile.HasCompletedOnboarding, profile.CreatedAt, profile.UpdatedAt)

	return err
}

// Update writes every mutable column of profile. Callers load the row,
// apply the fields they were given and pass it back.
func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	profile.UpdatedAt = time.Now()

	result, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE user_profiles SET
			full_name = :full_name,
			fitness_goal = :fitness_goal,
			daily_calories = :daily_calories,
			dietary_preference = :dietary_preference,
			has_completed_onboarding = :has_completed_onboarding,
			current_weight = :current_weight,
			goal_weight = :goal_weight,
			height = :height,
			age_range = :age_range,
			main_goal = :main_goal,
			seriousness_score = :seriousness_score,
			disliked_foods = :disliked_foods,
			meals_per_day = :meals_per_day,
			snacking_frequency = :snacking_frequency,
			activity_level = :activity_level,
			preferred_workout_location = :preferred_workout_location,
			enjoyed_movement_types = :enjoyed_movement_types,
			current_mental_state = :current_mental_state,
			biggest_struggle = :biggest_struggle,
			sleep_quality = :sleep_quality,
			motivation_text = :motivation_text,
			fear_text = :fear_text,
			plan_strictness = :plan_strictness,
			reminder_frequency = :reminder_frequency,
			motivation_tone = :motivation_tone,
			commitment_ready = :commitment_ready,
			commitment_score = :commitment_score,
			updated_at = :updated_at
		WHERE user_id = :user_id
	`, profile)
	if err != nil {
		return err
	}

	return expectRows(result, ErrProfileNotFound)
}
