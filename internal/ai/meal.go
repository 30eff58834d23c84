package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/macromind/backend/internal/llm"
	"github.com/macromind/backend/internal/model"
)

const mealSystemPrompt = "You are a professional nutritionist creating meal plans. Return only valid JSON without markdown formatting."

// GeneratedMeal is one meal as returned by the model or the fallback table.
type GeneratedMeal struct {
	Name        string   `json:"name"`
	Calories    int      `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fats        float64  `json:"fats"`
	Ingredients []string `json:"ingredients"`
}

type MealRequest struct {
	MealType          model.MealType
	FitnessGoal       model.FitnessGoal
	DietaryPreference model.DietaryPreference
	TargetCalories    int
}

// WeekMeal is a generated meal placed in the week.
type WeekMeal struct {
	Day      model.DayOfWeek
	MealType model.MealType
	Meal     GeneratedMeal
	Source   Source
}

var mealShares = map[model.MealType]float64{
	model.MealTypeBreakfast: 0.25,
	model.MealTypeLunch:     0.35,
	model.MealTypeDinner:    0.40,
}

// CalorieTarget splits a daily target across meals, truncating to whole calories.
func CalorieTarget(mealType model.MealType, daily int) int {
	share, ok := mealShares[mealType]
	if !ok {
		share = 0.33
	}
	return int(float64(daily) * share)
}

// DefaultDailyCalories is used when the profile has no daily target.
func DefaultDailyCalories(goal model.FitnessGoal) int {
	switch goal {
	case model.FitnessGoalCut:
		return 1800
	case model.FitnessGoalBulk:
		return 2800
	case model.FitnessGoalMaintain:
		return 2200
	}
	return 2000
}

var goalDescriptions = map[model.FitnessGoal]string{
	model.FitnessGoalCut:      "designed for weight loss with high protein and lower carbs",
	model.FitnessGoalBulk:     "designed for muscle gain with high protein and higher calories",
	model.FitnessGoalMaintain: "designed for weight maintenance with balanced macros",
}

type MealGenerator struct {
	llm    llm.Completer
	model  string
	logger *slog.Logger
}

func NewMealGenerator(completer llm.Completer, modelName string) *MealGenerator {
	return &MealGenerator{
		llm:    completer,
		model:  modelName,
		logger: slog.Default().With("component", "meal_generator"),
	}
}

func mealPrompt(req MealRequest) string {
	dietaryConstraint := ""
	if req.DietaryPreference != "" && req.DietaryPreference != model.DietaryPreferenceNone {
		dietaryConstraint = fmt.Sprintf("The meal must be %s. ", req.DietaryPreference)
	}

	return fmt.Sprintf(`Generate a %s meal %s.

Requirements:
- Target calories: approximately %d calories
- %sMust include realistic portions and ingredients
- Provide macros (protein, carbs, fats in grams)
- List 3-6 specific ingredients with measurements

Return ONLY a valid JSON object in this exact format:
{
    "name": "Meal Name",
    "calories": %d,
    "protein": 25.5,
    "carbs": 45.0,
    "fats": 12.0,
    "ingredients": [
        "1 cup ingredient 1",
        "200g ingredient 2",
        "2 tbsp ingredient 3"
    ]
}

Do not include any markdown formatting, explanations, or additional text. Return only the JSON object.`,
		req.MealType, goalDescriptions[req.FitnessGoal], req.TargetCalories, dietaryConstraint, req.TargetCalories)
}

// Generate asks the model for one meal and falls back to the static table
// on any failure.
func (g *MealGenerator) Generate(ctx context.Context, req MealRequest) Result[GeneratedMeal] {
	raw, err := g.llm.Complete(ctx, llm.Request{
		Model:       g.model,
		System:      mealSystemPrompt,
		User:        mealPrompt(req),
		MaxTokens:   500,
		Temperature: 0.8,
	})
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			g.logger.Warn("meal generation failed, using fallback", "meal_type", req.MealType, "error", err)
		}
		return fallbackResult(FallbackMeal(req.MealType, req.FitnessGoal))
	}

	meal, err := parseMeal(raw)
	if err != nil {
		g.logger.Warn("unusable meal response, using fallback", "meal_type", req.MealType, "error", err)
		return fallbackResult(FallbackMeal(req.MealType, req.FitnessGoal))
	}

	return modelResult(meal)
}

// GenerateWeek produces 21 meals, one per day and meal type, in week order.
// A nil daily target uses the goal default.
func (g *MealGenerator) GenerateWeek(ctx context.Context, goal model.FitnessGoal, pref model.DietaryPreference, daily *int) []WeekMeal {
	dailyCalories := DefaultDailyCalories(goal)
	if daily != nil {
		dailyCalories = *daily
	}

	meals := make([]WeekMeal, 0, len(model.Days)*len(model.MealTypes))
	var modelCount int
	for _, day := range model.Days {
		for _, mealType := range model.MealTypes {
			result := g.Generate(ctx, MealRequest{
				MealType:          mealType,
				FitnessGoal:       goal,
				DietaryPreference: pref,
				TargetCalories:    CalorieTarget(mealType, dailyCalories),
			})
			if result.Source == SourceModel {
				modelCount++
			}
			meals = append(meals, WeekMeal{Day: day, MealType: mealType, Meal: result.Value, Source: result.Source})
		}
	}

	g.logger.Info("weekly meals generated", "goal", goal, "daily_calories", dailyCalories, "from_model", modelCount, "total", len(meals))
	return meals
}

// rawMeal uses pointers so missing fields can be told apart from zero values.
type rawMeal struct {
	Name        *string         `json:"name"`
	Calories    *float64        `json:"calories"`
	Protein     *float64        `json:"protein"`
	Carbs       *float64        `json:"carbs"`
	Fats        *float64        `json:"fats"`
	Ingredients json.RawMessage `json:"ingredients"`
}

func parseMeal(raw string) (GeneratedMeal, error) {
	var m rawMeal
	if err := decodeResponse(raw, &m); err != nil {
		return GeneratedMeal{}, fmt.Errorf("decode meal: %w", err)
	}

	if m.Name == nil || m.Calories == nil || m.Protein == nil || m.Carbs == nil || m.Fats == nil || m.Ingredients == nil {
		return GeneratedMeal{}, errors.New("missing required meal fields")
	}
	if !isArray(m.Ingredients) {
		return GeneratedMeal{}, fmt.Errorf("ingredients: %w", errNotArray)
	}

	var ingredients []string
	if err := json.Unmarshal(m.Ingredients, &ingredients); err != nil {
		return GeneratedMeal{}, fmt.Errorf("ingredients: %w", err)
	}

	return GeneratedMeal{
		Name:        *m.Name,
		Calories:    int(math.Round(*m.Calories)),
		Protein:     *m.Protein,
		Carbs:       *m.Carbs,
		Fats:        *m.Fats,
		Ingredients: ingredients,
	}, nil
}
