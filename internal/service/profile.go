package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/db"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/repository"
	"github.com/macromind/backend/internal/validation"
)

// ProfileUpdate carries a partial update. Nil fields are left unchanged,
// whether they were absent from the request or sent as null.
type ProfileUpdate struct {
	FullName          *string                  `json:"full_name"`
	FitnessGoal       *model.FitnessGoal       `json:"fitness_goal"`
	DietaryPreference *model.DietaryPreference `json:"dietary_preference"`
	DailyCalories     *int                     `json:"daily_calories"`
}

func (u *ProfileUpdate) Validate() error {
	errs := validation.Errors{}
	if u.FullName != nil {
		errs.Add("full_name", validation.ValidateFullName(*u.FullName))
	}
	if u.FitnessGoal != nil && !u.FitnessGoal.Valid() {
		errs.Add("fitness_goal", fmt.Errorf("must be one of cut, bulk, maintain"))
	}
	if u.DietaryPreference != nil && !u.DietaryPreference.Valid() {
		errs.Add("dietary_preference", fmt.Errorf("must be one of none, halal, vegan, vegetarian"))
	}
	errs.Add("daily_calories", validation.IntRange(u.DailyCalories, 1000, 5000))
	return errs.Err()
}

func (u *ProfileUpdate) apply(p *model.Profile) {
	if u.FullName != nil {
		name := strings.TrimSpace(*u.FullName)
		p.FullName = &name
	}
	if u.FitnessGoal != nil {
		p.FitnessGoal = *u.FitnessGoal
	}
	if u.DietaryPreference != nil {
		p.DietaryPreference = *u.DietaryPreference
	}
	if u.DailyCalories != nil {
		p.DailyCalories = u.DailyCalories
	}
}

// OnboardingInput holds the answers collected by the onboarding flow.
type OnboardingInput struct {
	MainGoal                 *string                  `json:"main_goal"`
	SeriousnessScore         *int                     `json:"seriousness_score"`
	CurrentWeight            *float64                 `json:"current_weight"`
	GoalWeight               *float64                 `json:"goal_weight"`
	Height                   *float64                 `json:"height"`
	AgeRange                 *string                  `json:"age_range"`
	DietaryPreference        *model.DietaryPreference `json:"dietary_preference"`
	DislikedFoods            *string                  `json:"disliked_foods"`
	MealsPerDay              *int                     `json:"meals_per_day"`
	SnackingFrequency        *string                  `json:"snacking_frequency"`
	ActivityLevel            *string                  `json:"activity_level"`
	PreferredWorkoutLocation *string                  `json:"preferred_workout_location"`
	EnjoyedMovementTypes     *string                  `json:"enjoyed_movement_types"`
	CurrentMentalState       *string                  `json:"current_mental_state"`
	BiggestStruggle          *string                  `json:"biggest_struggle"`
	SleepQuality             *string                  `json:"sleep_quality"`
	MotivationText           *string                  `json:"motivation_text"`
	FearText                 *string                  `json:"fear_text"`
	PlanStrictness           *string                  `json:"plan_strictness"`
	ReminderFrequency        *string                  `json:"reminder_frequency"`
	MotivationTone           *string                  `json:"motivation_tone"`
	CommitmentReady          *string                  `json:"commitment_ready"`
	CommitmentScore          *int                     `json:"commitment_score"`
}

func (in *OnboardingInput) Validate() error {
	errs := validation.Errors{}
	errs.Add("seriousness_score", validation.IntRange(in.SeriousnessScore, 1, 10))
	errs.Add("commitment_score", validation.IntRange(in.CommitmentScore, 1, 10))
	errs.Add("meals_per_day", validation.IntRange(in.MealsPerDay, 1, 10))
	errs.Add("current_weight", validation.Positive(in.CurrentWeight))
	errs.Add("goal_weight", validation.Positive(in.GoalWeight))
	errs.Add("height", validation.Positive(in.Height))
	if in.DietaryPreference != nil && !in.DietaryPreference.Valid() {
		errs.Add("dietary_preference", fmt.Errorf("must be one of none, halal, vegan, vegetarian"))
	}
	return errs.Err()
}

func (in *OnboardingInput) apply(p *model.Profile) {
	setIf(&p.MainGoal, in.MainGoal)
	setIf(&p.SeriousnessScore, in.SeriousnessScore)
	setIf(&p.CurrentWeight, in.CurrentWeight)
	setIf(&p.GoalWeight, in.GoalWeight)
	setIf(&p.Height, in.Height)
	setIf(&p.AgeRange, in.AgeRange)
	if in.DietaryPreference != nil {
		p.DietaryPreference = *in.DietaryPreference
	}
	setIf(&p.DislikedFoods, in.DislikedFoods)
	setIf(&p.MealsPerDay, in.MealsPerDay)
	setIf(&p.SnackingFrequency, in.SnackingFrequency)
	setIf(&p.ActivityLevel, in.ActivityLevel)
	setIf(&p.PreferredWorkoutLocation, in.PreferredWorkoutLocation)
	setIf(&p.EnjoyedMovementTypes, in.EnjoyedMovementTypes)
	setIf(&p.CurrentMentalState, in.CurrentMentalState)
	setIf(&p.BiggestStruggle, in.BiggestStruggle)
	setIf(&p.SleepQuality, in.SleepQuality)
	setIf(&p.MotivationText, in.MotivationText)
	setIf(&p.FearText, in.FearText)
	setIf(&p.PlanStrictness, in.PlanStrictness)
	setIf(&p.ReminderFrequency, in.ReminderFrequency)
	setIf(&p.MotivationTone, in.MotivationTone)
	setIf(&p.CommitmentReady, in.CommitmentReady)
	setIf(&p.CommitmentScore, in.CommitmentScore)
	p.HasCompletedOnboarding = true
}

func setIf[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

type ProfileService struct {
	db *sqlx.DB
}

func NewProfileService(database *sqlx.DB) *ProfileService {
	return &ProfileService{db: database}
}

func (s *ProfileService) ByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	return repository.NewProfileRepository(s.db).ByUserID(ctx, userID)
}

// Update applies a partial update and returns the stored profile.
func (s *ProfileService) Update(ctx context.Context, userID string, u ProfileUpdate) (*model.Profile, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return s.modify(ctx, userID, u.apply)
}

// CompleteOnboarding stores the answers and marks onboarding complete.
func (s *ProfileService) CompleteOnboarding(ctx context.Context, userID string, in OnboardingInput) (*model.Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.modify(ctx, userID, in.apply)
}

// modify loads, changes and stores the profile in a single transaction.
func (s *ProfileService) modify(ctx context.Context, userID string, change func(*model.Profile)) (*model.Profile, error) {
	var profile *model.Profile
	err := db.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		profiles := repository.NewProfileRepository(tx)

		var err error
		profile, err = profiles.ByUserID(ctx, userID)
		if err != nil {
			return err
		}

		change(profile)
		return profiles.Update(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
