package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type MealPlan struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	WeekStart   string    `db:"week_start"` // Monday, YYYY-MM-DD
	GeneratedAt time.Time `db:"generated_at"`
}

type Meal struct {
	ID          string      `db:"id"`
	MealPlanID  string      `db:"meal_plan_id"`
	UserID      string      `db:"user_id"`
	Day         DayOfWeek   `db:"day"`
	MealType    MealType    `db:"meal_type"`
	Name        string      `db:"name"`
	Calories    int         `db:"calories"`
	Protein     float64     `db:"protein"`
	Carbs       float64     `db:"carbs"`
	Fats        float64     `db:"fats"`
	Ingredients Ingredients `db:"ingredients"`
	CreatedAt   time.Time   `db:"created_at"`
}

// Ingredients is stored as a JSON array in a text column.
type Ingredients []string

func (i Ingredients) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(i))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *Ingredients) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*i = Ingredients{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("ingredients: unsupported type %T", src)
	}

	var out []string
	err := json.Unmarshal(raw, &out)
	if err != nil {
		return fmt.Errorf("ingredients: %w", err)
	}
	*i = out
	return nil
}
