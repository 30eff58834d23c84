package model

import "time"

// Profile holds fitness preferences and onboarding answers.
// Onboarding fields stay nil until the user submits them.
type Profile struct {
	ID                     string            `db:"id" json:"-"`
	UserID                 string            `db:"user_id" json:"-"`
	FullName               *string           `db:"full_name" json:"full_name"`
	FitnessGoal            FitnessGoal       `db:"fitness_goal" json:"fitness_goal"`
	DailyCalories          *int              `db:"daily_calories" json:"daily_calories"`
	DietaryPreference      DietaryPreference `db:"dietary_preference" json:"dietary_preference"`
	HasCompletedOnboarding bool              `db:"has_completed_onboarding" json:"has_completed_onboarding"`

	CurrentWeight            *float64 `db:"current_weight" json:"current_weight"`
	GoalWeight               *float64 `db:"goal_weight" json:"goal_weight"`
	Height                   *float64 `db:"height" json:"height"`
	AgeRange                 *string  `db:"age_range" json:"age_range"`
	MainGoal                 *string  `db:"main_goal" json:"main_goal"`
	SeriousnessScore         *int     `db:"seriousness_score" json:"seriousness_score"`
	DislikedFoods            *string  `db:"disliked_foods" json:"disliked_foods"`
	MealsPerDay              *int     `db:"meals_per_day" json:"meals_per_day"`
	SnackingFrequency        *string  `db:"snacking_frequency" json:"snacking_frequency"`
	ActivityLevel            *string  `db:"activity_level" json:"activity_level"`
	PreferredWorkoutLocation *string  `db:"preferred_workout_location" json:"preferred_workout_location"`
	EnjoyedMovementTypes     *string  `db:"enjoyed_movement_types" json:"enjoyed_movement_types"`
	CurrentMentalState       *string  `db:"current_mental_state" json:"current_mental_state"`
	BiggestStruggle          *string  `db:"biggest_struggle" json:"biggest_struggle"`
	SleepQuality             *string  `db:"sleep_quality" json:"sleep_quality"`
	MotivationText           *string  `db:"motivation_text" json:"motivation_text"`
	FearText                 *string  `db:"fear_text" json:"fear_text"`
	PlanStrictness           *string  `db:"plan_strictness" json:"plan_strictness"`
	ReminderFrequency        *string  `db:"reminder_frequency" json:"reminder_frequency"`
	MotivationTone           *string  `db:"motivation_tone" json:"motivation_tone"`
	CommitmentReady          *string  `db:"commitment_ready" json:"commitment_ready"`
	CommitmentScore          *int     `db:"commitment_score" json:"commitment_score"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// NewProfile returns the profile every user gets at registration.
func NewProfile(id, userID string, now time.Time) *Profile {
	return &Profile{
		ID:                id,
		UserID:            userID,
		FitnessGoal:       FitnessGoalMaintain,
		DietaryPreference: DietaryPreferenceNone,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
