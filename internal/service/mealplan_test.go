package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/macromind/backend/internal/ai"
	"github.com/macromind/backend/internal/authclient"
	"github.com/macromind/backend/internal/config"
	"github.com/macromind/backend/internal/db/dbtest"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/repository"
)

// wednesday falls in the week starting Monday 2025-01-13.
var wednesday = time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC)

func newMealPlanService(t *testing.T, completer *fakeCompleter, profiles ProfileSource) *MealPlanService {
	t.Helper()

	svc := NewMealPlanService(dbtest.Open(t, config.ServiceMealPlanner), ai.NewMealGenerator(completer, "test-model"), profiles)
	svc.now = func() time.Time { return wednesday }
	return svc
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC), "2025-01-13"},
		{wednesday, "2025-01-13"},
		{time.Date(2025, time.January, 19, 23, 59, 0, 0, time.UTC), "2025-01-13"},
		{time.Date(2025, time.March, 2, 12, 0, 0, 0, time.UTC), "2025-02-24"},
	}
	for _, tt := range tests {
		if got := WeekStart(tt.in); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.in.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestGenerateWithoutProviderUsesFallback(t *testing.T) {
	ctx := context.Background()
	svc := newMealPlanService(t, unconfigured, &fakeProfiles{err: errAuthDown})

	plan, err := svc.Generate(ctx, "user-1", "token", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if plan.Plan.WeekStart != "2025-01-13" {
		t.Errorf("WeekStart = %s", plan.Plan.WeekStart)
	}
	if len(plan.Meals) != 21 {
		t.Fatalf("len(Meals) = %d, want 21", len(plan.Meals))
	}

	seen := map[string]bool{}
	for _, meal := range plan.Meals {
		key := string(meal.Day) + "/" + string(meal.MealType)
		if seen[key] {
			t.Errorf("duplicate slot %s", key)
		}
		seen[key] = true

		want := ai.FallbackMeal(meal.MealType, model.FitnessGoalMaintain)
		if meal.Name != want.Name {
			t.Errorf("%s: name = %q, want fallback %q", key, meal.Name, want.Name)
		}
	}
}

func TestGenerateUsesProfilePreferences(t *testing.T) {
	ctx := context.Background()
	daily := 3000
	profiles := &fakeProfiles{profile: &authclient.Profile{
		FitnessGoal:       model.FitnessGoalBulk,
		DietaryPreference: model.DietaryPreferenceVegan,
		DailyCalories:     &daily,
	}}
	svc := newMealPlanService(t, unconfigured, profiles)

	plan, err := svc.Generate(ctx, "user-1", "bearer-abc", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(profiles.tokens) == 0 || profiles.tokens[0] != "bearer-abc" {
		t.Errorf("profile fetched with %v, want caller token", profiles.tokens)
	}

	want := ai.FallbackMeal(model.MealTypeLunch, model.FitnessGoalBulk)
	for _, meal := range plan.Meals {
		if meal.MealType == model.MealTypeLunch && meal.Name != want.Name {
			t.Errorf("lunch = %q, want bulk fallback %q", meal.Name, want.Name)
		}
	}
}

func TestGenerateReplacesExistingWeek(t *testing.T) {
	ctx := context.Background()
	svc := newMealPlanService(t, unconfigured, nil)

	first, err := svc.Generate(ctx, "user-1", "", nil)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := svc.Generate(ctx, "user-1", "", nil)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if first.Plan.ID == second.Plan.ID {
		t.Fatal("plan was not regenerated")
	}

	_, err = repository.NewMealPlanRepository(svc.db).ByID(ctx, first.Plan.ID)
	if !errors.Is(err, repository.ErrMealPlanNotFound) {
		t.Errorf("old plan still present: err = %v", err)
	}

	weekly, err := svc.Weekly(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if weekly.Plan.ID != second.Plan.ID || len(weekly.Meals) != 21 {
		t.Errorf("Weekly = plan %s with %d meals", weekly.Plan.ID, len(weekly.Meals))
	}
}

func TestWeeklyAndTodayWithoutPlan(t *testing.T) {
	ctx := context.Background()
	svc := newMealPlanService(t, unconfigured, nil)

	if _, err := svc.Weekly(ctx, "user-1", nil); !errors.Is(err, repository.ErrMealPlanNotFound) {
		t.Errorf("Weekly: err = %v, want ErrMealPlanNotFound", err)
	}
	if _, err := svc.Today(ctx, "user-1"); !errors.Is(err, repository.ErrMealPlanNotFound) {
		t.Errorf("Today: err = %v, want ErrMealPlanNotFound", err)
	}
}

func TestToday(t *testing.T) {
	ctx := context.Background()
	svc := newMealPlanService(t, unconfigured, nil)

	if _, err := svc.Generate(ctx, "user-1", "", nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	today, err := svc.Today(ctx, "user-1")
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if today.Day != model.Wednesday || len(today.Meals) != 3 {
		t.Fatalf("Today = %s with %d meals", today.Day, len(today.Meals))
	}
	for i, mealType := range model.MealTypes {
		if today.Meals[i].MealType != mealType {
			t.Errorf("meal %d type = %s, want %s", i, today.Meals[i].MealType, mealType)
		}
	}
}

func TestSwap(t *testing.T) {
	ctx := context.Background()
	completer := &fakeCompleter{err: llm503}
	svc := newMealPlanService(t, completer, nil)

	plan, err := svc.Generate(ctx, "user-1", "", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	target := plan.Meals[4]

	completer.err = nil
	completer.reply = `{"name":"Tofu Stir Fry","calories":610,"protein":38,"carbs":55,"fats":22,"ingredients":["tofu","rice","broccoli"]}`

	swapped, err := svc.Swap(ctx, "user-1", "", target.ID)
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if swapped.ID != target.ID || swapped.Day != target.Day || swapped.MealType != target.MealType {
		t.Errorf("swap moved the meal: %+v", swapped)
	}
	if swapped.Name != "Tofu Stir Fry" {
		t.Errorf("Name = %q", swapped.Name)
	}

	stored, err := repository.NewMealRepository(svc.db).ByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Name != "Tofu Stir Fry" || len(stored.Ingredients) != 3 {
		t.Errorf("stored = %+v", stored)
	}

	if _, err := svc.Swap(ctx, "user-2", "", target.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("other user swap: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Swap(ctx, "user-1", "", "missing"); !errors.Is(err, repository.ErrMealNotFound) {
		t.Errorf("missing meal: err = %v, want ErrMealNotFound", err)
	}
}

func TestDeletePlan(t *testing.T) {
	ctx := context.Background()
	svc := newMealPlanService(t, unconfigured, nil)

	plan, err := svc.Generate(ctx, "user-1", "", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := svc.DeletePlan(ctx, "user-2", plan.Plan.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("other user delete: err = %v, want ErrForbidden", err)
	}
	if err := svc.DeletePlan(ctx, "user-1", plan.Plan.ID); err != nil {
		t.Fatalf("DeletePlan: %v", err)
	}
	if err := svc.DeletePlan(ctx, "user-1", plan.Plan.ID); !errors.Is(err, repository.ErrMealPlanNotFound) {
		t.Errorf("second delete: err = %v, want ErrMealPlanNotFound", err)
	}

	meals, err := repository.NewMealRepository(svc.db).ByPlan(ctx, plan.Plan.ID)
	if err != nil {
		t.Fatalf("ByPlan: %v", err)
	}
	if len(meals) != 0 {
		t.Errorf("%d meals left after delete", len(meals))
	}
}
