package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/macromind/backend/internal/ctxkeys"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/respond"
	"github.com/macromind/backend/internal/service"
)

type MealResponse struct {
	ID          string   `json:"id"`
	Day         string   `json:"day"`
	MealType    string   `json:"meal_type"`
	Name        string   `json:"name"`
	Calories    int      `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fats        float64  `json:"fats"`
	Ingredients []string `json:"ingredients"`
}

func newMealResponse(m *model.Meal) MealResponse {
	ingredients := []string(m.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	return MealResponse{
		ID:          m.ID,
		Day:         string(m.Day),
		MealType:    string(m.MealType),
		Name:        m.Name,
		Calories:    m.Calories,
		Protein:     m.Protein,
		Carbs:       m.Carbs,
		Fats:        m.Fats,
		Ingredients: ingredients,
	}
}

func newMealResponses(meals []*model.Meal) []MealResponse {
	out := make([]MealResponse, 0, len(meals))
	for _, m := range meals {
		out = append(out, newMealResponse(m))
	}
	return out
}

type MealPlanResponse struct {
	PlanID      string         `json:"plan_id"`
	WeekStart   string         `json:"week_start"`
	Meals       []MealResponse `json:"meals"`
	GeneratedAt time.Time      `json:"generated_at"`
}

func newMealPlanResponse(p *service.PlanWithMeals) MealPlanResponse {
	return MealPlanResponse{
		PlanID:      p.Plan.ID,
		WeekStart:   p.Plan.WeekStart,
		Meals:       newMealResponses(p.Meals),
		GeneratedAt: p.Plan.GeneratedAt,
	}
}

type DailyTotals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type DailyMealsResponse struct {
	Date        string         `json:"date"`
	Day         string         `json:"day"`
	Meals       []MealResponse `json:"meals"`
	DailyTotals DailyTotals    `json:"daily_totals"`
}

func newDailyMealsResponse(d *service.DayMeals) DailyMealsResponse {
	var totals DailyTotals
	for _, m := range d.Meals {
		totals.Calories += m.Calories
		totals.Protein += m.Protein
		totals.Carbs += m.Carbs
		totals.Fats += m.Fats
	}
	return DailyMealsResponse{
		Date:        d.Date.Format(time.DateOnly),
		Day:         string(d.Day),
		Meals:       newMealResponses(d.Meals),
		DailyTotals: totals,
	}
}

type mealPlanHandler struct {
	mealPlanService *service.MealPlanService
}

func NewMealPlanHandler(mealPlanService *service.MealPlanService) *mealPlanHandler {
	return &mealPlanHandler{mealPlanService: mealPlanService}
}

var errWeekStartFormat = errors.New("must be a date in YYYY-MM-DD format")

// parseWeekStart returns nil for an empty value.
func parseWeekStart(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, errWeekStartFormat
	}
	return &t, nil
}

type generateRequest struct {
	WeekStart string `json:"week_start"`
}

func (h *mealPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var in generateRequest
	if !decodeOptionalJSON(w, r, &in) {
		return
	}

	weekOf, err := parseWeekStart(in.WeekStart)
	if err != nil {
		fieldError(w, "week_start", err)
		return
	}

	ctx := r.Context()
	plan, err := h.mealPlanService.Generate(ctx, ctxkeys.UserID(ctx), ctxkeys.BearerToken(ctx), weekOf)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, newMealPlanResponse(plan))
}

func (h *mealPlanHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	weekOf, err := parseWeekStart(r.URL.Query().Get("week_start"))
	if err != nil {
		fieldError(w, "week_start", err)
		return
	}

	plan, err := h.mealPlanService.Weekly(r.Context(), ctxkeys.UserID(r.Context()), weekOf)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, newMealPlanResponse(plan))
}

func (h *mealPlanHandler) Today(w http.ResponseWriter, r *http.Request) {
	today, err := h.mealPlanService.Today(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, newDailyMealsResponse(today))
}

func (h *mealPlanHandler) Swap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meal, err := h.mealPlanService.Swap(ctx, ctxkeys.UserID(ctx), ctxkeys.BearerToken(ctx), r.PathValue("meal_id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, newMealResponse(meal))
}

func (h *mealPlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	err := h.mealPlanService.DeletePlan(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("plan_id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.Message(w, "Meal plan deleted successfully")
}
