package model

import (
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	cases := map[string]DayOfWeek{
		"2025-11-24": Monday,
		"2025-11-26": Wednesday,
		"2025-11-30": Sunday,
	}
	for date, want := range cases {
		d, _ := time.Parse("2006-01-02", date)
		if got := DayOf(d); got != want {
			t.Errorf("DayOf(%s) = %s, want %s", date, got, want)
		}
	}
}

func TestEnumsRejectUnknownValues(t *testing.T) {
	if FitnessGoal("shred").Valid() {
		t.Error("FitnessGoal(shred) is valid")
	}
	if DietaryPreference("keto").Valid() {
		t.Error("DietaryPreference(keto) is valid")
	}
	if MealType("snack").Valid() {
		t.Error("MealType(snack) is valid")
	}
	if DayOfWeek("funday").Valid() {
		t.Error("DayOfWeek(funday) is valid")
	}
	if !FitnessGoalBulk.Valid() || !DietaryPreferenceHalal.Valid() || !MealTypeDinner.Valid() || !Sunday.Valid() {
		t.Error("known enum value rejected")
	}
}

func TestIngredientsScanValue(t *testing.T) {
	var got Ingredients
	err := got.Scan(`["1 cup oats","2 eggs"]`)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 2 || got[1] != "2 eggs" {
		t.Errorf("Scan = %v", got)
	}

	v, err := Ingredients(nil).Value()
	if err != nil || v != "[]" {
		t.Errorf("Value(nil) = %v, %v; want []", v, err)
	}

	if err := got.Scan(42); err == nil {
		t.Error("Scan(int) returned nil error")
	}
}
