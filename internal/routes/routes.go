package routes

import (
	"net/http"

	"github.com/macromind/backend/internal/app"
	"github.com/macromind/backend/internal/config"
	"github.com/macromind/backend/internal/handler"
	"github.com/macromind/backend/internal/middleware"
)

const version = "1.0.0"

func SetupRoutes(app *app.App) http.Handler {
	mux := http.NewServeMux()

	switch app.Cfg.Service {
	case config.ServiceAuth:
		authRoutes(mux, app)
	case config.ServiceMealPlanner:
		mealPlannerRoutes(mux, app)
	case config.ServiceNutritionAI:
		nutritionAIRoutes(mux, app)
	}

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSOrigins),
	)
}

func homeRoutes(mux *http.ServeMux, home *handler.HomeHandler) {
	mux.HandleFunc("GET /{$}", home.Root)
	mux.HandleFunc("GET /health", home.Health)
	mux.HandleFunc("/{path...}", home.NotFound)
}

func authRoutes(mux *http.ServeMux, app *app.App) {
	home := handler.NewHomeHandler(handler.ServiceInfo{
		Service: config.ServiceAuth,
		Name:    "MacroMind Auth Service",
		Version: version,
	}, app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	profile := handler.NewProfileHandler(app.ProfileService, app.UserService)
	account := handler.NewAccountHandler(app.UserService, app.FileService)

	homeRoutes(mux, home)

	rateLimit := middleware.RateLimit(app.AuthLimiter, app.Cfg.TrustProxy)
	requireAuth := middleware.RequireAuth(app.Tokens)

	// Public
	mux.Handle("POST /api/auth/register", rateLimit(http.HandlerFunc(auth.Register)))
	mux.Handle("POST /api/auth/login", rateLimit(http.HandlerFunc(auth.Login)))
	mux.Handle("POST /api/auth/refresh", rateLimit(http.HandlerFunc(auth.Refresh)))

	// Protected
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(auth.Me)))
	mux.Handle("POST /api/auth/logout", requireAuth(http.HandlerFunc(auth.Logout)))
	mux.Handle("PUT /api/auth/profile", requireAuth(http.HandlerFunc(profile.Update)))
	mux.Handle("POST /api/auth/onboarding", requireAuth(http.HandlerFunc(profile.Onboarding)))
	mux.Handle("POST /api/auth/password", requireAuth(http.HandlerFunc(account.UpdatePassword)))
	mux.Handle("DELETE /api/auth/account", requireAuth(http.HandlerFunc(account.DeleteAccount)))
	mux.Handle("POST /api/auth/avatar", requireAuth(http.HandlerFunc(account.UploadAvatar)))
	mux.Handle("DELETE /api/auth/avatar", requireAuth(http.HandlerFunc(account.DeleteAvatar)))
}

func mealPlannerRoutes(mux *http.ServeMux, app *app.App) {
	home := handler.NewHomeHandler(handler.ServiceInfo{
		Service: config.ServiceMealPlanner,
		Name:    "MacroMind Meal Planner",
		Version: version,
	}, app.DB)
	meals := handler.NewMealPlanHandler(app.MealPlanService)

	homeRoutes(mux, home)

	requireAuth := middleware.RequireAuth(app.Tokens)
	// One generation is 21 provider calls.
	rateLimit := middleware.RateLimit(app.AILimiter, app.Cfg.TrustProxy)

	mux.Handle("POST /api/meal-planner/generate", rateLimit(requireAuth(http.HandlerFunc(meals.Generate))))
	mux.Handle("GET /api/meal-planner/weekly", requireAuth(http.HandlerFunc(meals.Weekly)))
	mux.Handle("GET /api/meal-planner/today", requireAuth(http.HandlerFunc(meals.Today)))
	mux.Handle("PUT /api/meal-planner/{meal_id}/swap", requireAuth(http.HandlerFunc(meals.Swap)))
	mux.Handle("DELETE /api/meal-planner/plans/{plan_id}", requireAuth(http.HandlerFunc(meals.DeletePlan)))
}

func nutritionAIRoutes(mux *http.ServeMux, app *app.App) {
	llmConfigured := app.Cfg.LLMConfigured()
	home := handler.NewHomeHandler(handler.ServiceInfo{
		Service:       config.ServiceNutritionAI,
		Name:          "MacroMind Nutrition AI Service",
		Version:       version,
		Features:      []string{"AI Nutrition Coach", "Recipe Macro Analysis", "Chat History"},
		LLMConfigured: &llmConfigured,
	}, app.DB)
	coach := handler.NewCoachHandler(app.CoachService)
	recipe := handler.NewRecipeHandler(app.RecipeAnalyzer)

	homeRoutes(mux, home)

	requireAuth := middleware.RequireAuth(app.Tokens)
	rateLimit := middleware.RateLimit(app.AILimiter, app.Cfg.TrustProxy)

	mux.Handle("POST /api/ai/chat", rateLimit(requireAuth(http.HandlerFunc(coach.Chat))))
	mux.Handle("POST /api/ai/analyze-recipe", rateLimit(requireAuth(http.HandlerFunc(recipe.Analyze))))
	mux.Handle("GET /api/ai/history/{user_id}", requireAuth(http.HandlerFunc(coach.History)))
	mux.Handle("DELETE /api/ai/history/{user_id}", requireAuth(http.HandlerFunc(coach.ClearHistory)))
}
