package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/macromind/backend/internal/llm"
	"github.com/macromind/backend/internal/model"
)

func TestCalorieTarget(t *testing.T) {
	cases := []struct {
		mealType model.MealType
		want     int
	}{
		{model.MealTypeBreakfast, 500},
		{model.MealTypeLunch, 700},
		{model.MealTypeDinner, 800},
		{model.MealType("snack"), 660},
	}
	for _, tc := range cases {
		if got := CalorieTarget(tc.mealType, 2000); got != tc.want {
			t.Errorf("CalorieTarget(%s, 2000) = %d, want %d", tc.mealType, got, tc.want)
		}
	}

	// truncation, not rounding
	if got := CalorieTarget(model.MealTypeLunch, 1999); got != 699 {
		t.Errorf("CalorieTarget(lunch, 1999) = %d, want 699", got)
	}
}

func TestDefaultDailyCalories(t *testing.T) {
	want := map[model.FitnessGoal]int{
		model.FitnessGoalCut:      1800,
		model.FitnessGoalBulk:     2800,
		model.FitnessGoalMaintain: 2200,
		model.FitnessGoal("??"):   2000,
	}
	for goal, kcal := range want {
		if got := DefaultDailyCalories(goal); got != kcal {
			t.Errorf("DefaultDailyCalories(%s) = %d, want %d", goal, got, kcal)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		if got := StripCodeFences(in); got != want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateParsesModelOutput(t *testing.T) {
	fake := &fakeLLM{reply: "```json\n" + `{"name":"Tofu Scramble","calories":498.6,"protein":30,"carbs":40,"fats":18,"ingredients":["200g tofu","1 cup spinach","1 tbsp oil"]}` + "\n```"}
	g := NewMealGenerator(fake, "gpt-4o-mini")

	res := g.Generate(context.Background(), MealRequest{
		MealType:          model.MealTypeBreakfast,
		FitnessGoal:       model.FitnessGoalCut,
		DietaryPreference: model.DietaryPreferenceVegan,
		TargetCalories:    450,
	})

	if res.Source != SourceModel {
		t.Fatalf("Source = %s, want model", res.Source)
	}
	if res.Value.Name != "Tofu Scramble" || res.Value.Calories != 499 || len(res.Value.Ingredients) != 3 {
		t.Errorf("meal = %+v", res.Value)
	}

	req := fake.requests[0]
	if req.Temperature != 0.8 || req.MaxTokens != 500 || req.Model != "gpt-4o-mini" {
		t.Errorf("request params = %+v", req)
	}
	if !strings.Contains(req.User, "The meal must be vegan.") || !strings.Contains(req.User, "approximately 450 calories") {
		t.Errorf("prompt missing constraints:\n%s", req.User)
	}
}

func TestMealPromptOmitsNoneConstraint(t *testing.T) {
	p := mealPrompt(MealRequest{MealType: model.MealTypeLunch, FitnessGoal: model.FitnessGoalBulk, DietaryPreference: model.DietaryPreferenceNone, TargetCalories: 980})
	if strings.Contains(p, "The meal must be") {
		t.Error("prompt contains a dietary constraint for preference none")
	}
	if !strings.HasPrefix(p, "Generate a lunch meal designed for muscle gain") {
		t.Errorf("prompt starts with %q", p[:60])
	}
}

func TestGenerateFallsBack(t *testing.T) {
	cases := map[string]*fakeLLM{
		"provider error":     {err: errors.New("connection refused")},
		"not configured":     {err: llm.ErrNotConfigured},
		"not json":           {reply: "Here is a tasty meal!"},
		"missing fields":     {reply: `{"name":"Soup","calories":300}`},
		"ingredients string": {reply: `{"name":"Soup","calories":300,"protein":1,"carbs":1,"fats":1,"ingredients":"water"}`},
	}

	for name, fake := range cases {
		t.Run(name, func(t *testing.T) {
			g := NewMealGenerator(fake, "m")
			res := g.Generate(context.Background(), MealRequest{MealType: model.MealTypeDinner, FitnessGoal: model.FitnessGoalBulk, TargetCalories: 1120})

			if res.Source != SourceFallback {
				t.Fatalf("Source = %s, want fallback", res.Source)
			}
			if res.Value.Name != "Steak with Pasta" || res.Value.Calories != 800 || len(res.Value.Ingredients) != 5 {
				t.Errorf("fallback = %+v", res.Value)
			}
		})
	}
}

func TestFallbackMealUnknownKeys(t *testing.T) {
	got := FallbackMeal(model.MealType("brunch"), model.FitnessGoal("shred"))
	if got.Name != "Oatmeal with Berries and Nuts" {
		t.Errorf("FallbackMeal(unknown) = %s", got.Name)
	}

	got.Ingredients[0] = "mutated"
	if FallbackMeal(model.MealTypeBreakfast, model.FitnessGoalMaintain).Ingredients[0] == "mutated" {
		t.Error("FallbackMeal shares its ingredient slice")
	}
}

func TestGenerateWeekYields21Meals(t *testing.T) {
	fake := &fakeLLM{err: errors.New("down")}
	g := NewMealGenerator(fake, "m")

	meals := g.GenerateWeek(context.Background(), model.FitnessGoalMaintain, model.DietaryPreferenceHalal, nil)
	if len(meals) != 21 {
		t.Fatalf("GenerateWeek returned %d meals, want 21", len(meals))
	}

	seen := map[string]bool{}
	for _, m := range meals {
		key := string(m.Day) + "/" + string(m.MealType)
		if seen[key] {
			t.Errorf("duplicate slot %s", key)
		}
		seen[key] = true
		if m.Meal.Name == "" || len(m.Meal.Ingredients) == 0 {
			t.Errorf("slot %s has empty meal", key)
		}
	}
	if meals[0].Day != model.Monday || meals[20].Day != model.Sunday || meals[20].MealType != model.MealTypeDinner {
		t.Errorf("unexpected order: first %s/%s, last %s/%s", meals[0].Day, meals[0].MealType, meals[20].Day, meals[20].MealType)
	}

	// default maintain target is 2200: breakfast 550, lunch 770, dinner 880
	if !strings.Contains(fake.requests[1].User, "approximately 770 calories") {
		t.Errorf("lunch prompt does not target 770 kcal")
	}
}
