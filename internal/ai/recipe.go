package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/macromind/backend/internal/llm"
)

const recipeSystemPrompt = "You are a professional nutritionist analyzing recipe macros. Return only valid JSON without markdown formatting."

type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

type IngredientMacros struct {
	Name     string  `json:"name"`
	Amount   string  `json:"amount"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type RecipeAnalysis struct {
	RecipeName    string             `json:"recipe_name"`
	TotalCalories int                `json:"total_calories"`
	Macros        Macros             `json:"macros"`
	Ingredients   []IngredientMacros `json:"ingredients"`
}

// FallbackRecipe is returned when the model cannot analyze a recipe.
func FallbackRecipe() RecipeAnalysis {
	return RecipeAnalysis{
		RecipeName:    "Custom Recipe",
		TotalCalories: 500,
		Macros:        Macros{Protein: 30, Carbs: 50, Fats: 15},
		Ingredients: []IngredientMacros{
			{Name: "Mixed ingredients", Amount: "as listed", Calories: 500, Protein: 30, Carbs: 50, Fats: 15},
		},
	}
}

type RecipeAnalyzer struct {
	llm    llm.Completer
	model  string
	logger *slog.Logger
}

func NewRecipeAnalyzer(completer llm.Completer, modelName string) *RecipeAnalyzer {
	return &RecipeAnalyzer{
		llm:    completer,
		model:  modelName,
		logger: slog.Default().With("component", "recipe_analyzer"),
	}
}

func recipePrompt(recipeText string) string {
	return fmt.Sprintf(`Analyze the following recipe ingredients and calculate the total nutritional macros.

Recipe: %s

Provide a detailed breakdown with:
1. Recipe name (create a simple descriptive name)
2. Each ingredient with amount and individual macros
3. Total calories and macros (protein, carbs, fats in grams)

Return ONLY a valid JSON object in this exact format:
{
    "recipe_name": "Descriptive Recipe Name",
    "total_calories": 500,
    "macros": {
        "protein": 50.0,
        "carbs": 55.0,
        "fats": 12.0
    },
    "ingredients": [
        {
            "name": "ingredient name",
            "amount": "200g",
            "calories": 330,
            "protein": 62.0,
            "carbs": 0.0,
            "fats": 7.0
        }
    ]
}

Be accurate with portion sizes and macro calculations. Do not include markdown formatting or explanations.`, recipeText)
}

// Analyze extracts macros from free-form recipe text. Any failure yields
// FallbackRecipe.
func (a *RecipeAnalyzer) Analyze(ctx context.Context, recipeText string) Result[RecipeAnalysis] {
	raw, err := a.llm.Complete(ctx, llm.Request{
		Model:       a.model,
		System:      recipeSystemPrompt,
		User:        recipePrompt(recipeText),
		MaxTokens:   800,
		Temperature: 0.3,
	})
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			a.logger.Warn("recipe analysis failed, using fallback", "error", err)
		}
		return fallbackResult(FallbackRecipe())
	}

	analysis, err := parseRecipe(raw)
	if err != nil {
		a.logger.Warn("unusable recipe response, using fallback", "error", err)
		return fallbackResult(FallbackRecipe())
	}

	return modelResult(analysis)
}

type rawRecipe struct {
	RecipeName    *string  `json:"recipe_name"`
	TotalCalories *float64 `json:"total_calories"`
	Macros        *struct {
		Protein *float64 `json:"protein"`
		Carbs   *float64 `json:"carbs"`
		Fats    *float64 `json:"fats"`
	} `json:"macros"`
	Ingredients json.RawMessage `json:"ingredients"`
}

type rawIngredient struct {
	Name     string  `json:"name"`
	Amount   string  `json:"amount"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

func parseRecipe(raw string) (RecipeAnalysis, error) {
	var r rawRecipe
	if err := decodeResponse(raw, &r); err != nil {
		return RecipeAnalysis{}, fmt.Errorf("decode recipe: %w", err)
	}

	if r.RecipeName == nil || r.TotalCalories == nil || r.Macros == nil {
		return RecipeAnalysis{}, errors.New("missing required recipe fields")
	}
	if r.Macros.Protein == nil || r.Macros.Carbs == nil || r.Macros.Fats == nil {
		return RecipeAnalysis{}, errors.New("missing macro fields")
	}
	if !isArray(r.Ingredients) {
		return RecipeAnalysis{}, fmt.Errorf("ingredients: %w", errNotArray)
	}

	var rawIngredients []rawIngredient
	if err := json.Unmarshal(r.Ingredients, &rawIngredients); err != nil {
		return RecipeAnalysis{}, fmt.Errorf("ingredients: %w", err)
	}
	if len(rawIngredients) == 0 {
		return RecipeAnalysis{}, errors.New("ingredients: empty list")
	}

	ingredients := make([]IngredientMacros, 0, len(rawIngredients))
	for _, in := range rawIngredients {
		ingredients = append(ingredients, IngredientMacros{
			Name:     in.Name,
			Amount:   in.Amount,
			Calories: int(math.Round(in.Calories)),
			Protein:  in.Protein,
			Carbs:    in.Carbs,
			Fats:     in.Fats,
		})
	}

	return RecipeAnalysis{
		RecipeName:    *r.RecipeName,
		TotalCalories: int(math.Round(*r.TotalCalories)),
		Macros:        Macros{Protein: *r.Macros.Protein, Carbs: *r.Macros.Carbs, Fats: *r.Macros.Fats},
		Ingredients:   ingredients,
	}, nil
}
