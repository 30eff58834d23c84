package model

import "time"

type FitnessGoal string

const (
	FitnessGoalCut      FitnessGoal = "cut"
	FitnessGoalBulk     FitnessGoal = "bulk"
	FitnessGoalMaintain FitnessGoal = "maintain"
)

func (g FitnessGoal) Valid() bool {
	switch g {
	case FitnessGoalCut, FitnessGoalBulk, FitnessGoalMaintain:
		return true
	}
	return false
}

type DietaryPreference string

const (
	DietaryPreferenceNone       DietaryPreference = "none"
	DietaryPreferenceHalal      DietaryPreference = "halal"
	DietaryPreferenceVegan      DietaryPreference = "vegan"
	DietaryPreferenceVegetarian DietaryPreference = "vegetarian"
)

func (p DietaryPreference) Valid() bool {
	switch p {
	case DietaryPreferenceNone, DietaryPreferenceHalal, DietaryPreferenceVegan, DietaryPreferenceVegetarian:
		return true
	}
	return false
}

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// MealTypes lists the meals of a day in serving order.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}

func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner:
		return true
	}
	return false
}

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// Days lists the week starting on Monday.
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d DayOfWeek) Valid() bool {
	return d.Index() >= 0
}

// Index returns the zero-based position of d in the week, or -1.
func (d DayOfWeek) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// DayOf returns the weekday of t as a DayOfWeek.
func DayOf(t time.Time) DayOfWeek {
	// time.Weekday starts on Sunday
	return Days[(int(t.Weekday())+6)%7]
}
