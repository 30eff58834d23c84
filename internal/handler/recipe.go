package handler

import (
	"net/http"

	"github.com/macromind/backend/internal/ai"
	"github.com/macromind/backend/internal/respond"
	"github.com/macromind/backend/internal/validation"
)

type recipeHandler struct {
	analyzer *ai.RecipeAnalyzer
}

func NewRecipeHandler(analyzer *ai.RecipeAnalyzer) *recipeHandler {
	return &recipeHandler{analyzer: analyzer}
}

type recipeRequest struct {
	RecipeText string `json:"recipe_text"`
}

// Analyze always answers 200; model failures yield the fallback analysis.
func (h *recipeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var in recipeRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	if err := validation.TextLength(in.RecipeText, 10, 5000); err != nil {
		fieldError(w, "recipe_text", err)
		return
	}

	result := h.analyzer.Analyze(r.Context(), in.RecipeText)
	respond.JSON(w, http.StatusOK, result.Value)
}
