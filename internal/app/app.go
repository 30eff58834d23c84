package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/ai"
	"github.com/macromind/backend/internal/authclient"
	"github.com/macromind/backend/internal/config"
	"github.com/macromind/backend/internal/db"
	"github.com/macromind/backend/internal/llm"
	"github.com/macromind/backend/internal/middleware"
	"github.com/macromind/backend/internal/service"
	"github.com/macromind/backend/internal/storage"
	"github.com/macromind/backend/internal/token"
)

// App is the dependency container for one service process. Only the
// fields of the configured service are set.
type App struct {
	Cfg    *config.Config
	DB     *sqlx.DB
	Tokens *token.Manager

	// auth-service
	AuthService    *service.AuthService
	UserService    *service.UserService
	ProfileService *service.ProfileService
	EmailService   *service.EmailService
	FileService    *service.FileService
	AuthLimiter    *middleware.RateLimiter

	// meal-planner-service
	MealPlanService *service.MealPlanService

	// nutrition-ai-service
	CoachService   *service.CoachService
	RecipeAnalyzer *ai.RecipeAnalyzer

	// Limits provider-backed routes in meal-planner and nutrition-ai.
	AILimiter *middleware.RateLimiter
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver, cfg.Service)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a := &App{
		Cfg:    cfg,
		DB:     database,
		Tokens: token.NewManager(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry),
	}

	switch cfg.Service {
	case config.ServiceAuth:
		err = a.initAuth(ctx)
	case config.ServiceMealPlanner:
		a.initMealPlanner()
	case config.ServiceNutritionAI:
		a.initNutritionAI()
	default:
		err = fmt.Errorf("unknown service %q", cfg.Service)
	}
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) initAuth(ctx context.Context) error {
	cfg := a.Cfg

	// Storage is optional; avatar endpoints answer 503 without it.
	fileStorage, err := storage.New(ctx, cfg)
	if errors.Is(err, storage.ErrNotConfigured) {
		slog.Info("S3 storage not configured, avatar uploads disabled")
		fileStorage, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	a.EmailService = service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	a.FileService = service.NewFileService(a.DB, fileStorage)
	a.AuthService = service.NewAuthService(a.DB, a.Tokens, a.EmailService)
	a.UserService = service.NewUserService(a.DB, a.AuthService, a.FileService, a.EmailService)
	a.ProfileService = service.NewProfileService(a.DB)
	a.AuthLimiter = middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	return nil
}

func (a *App) initMealPlanner() {
	cfg := a.Cfg

	client := llm.NewClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMTimeout)
	generator := ai.NewMealGenerator(client, cfg.LLMModel)
	profiles := authclient.New(cfg.AuthServiceURL, cfg.AuthServiceTimeout)

	a.MealPlanService = service.NewMealPlanService(a.DB, generator, profiles)
	a.AILimiter = middleware.NewRateLimiter(cfg.AIRateLimit, cfg.AIRateWindow)
}

func (a *App) initNutritionAI() {
	cfg := a.Cfg

	client := llm.NewClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMTimeout)
	profiles := authclient.New(cfg.AuthServiceURL, cfg.AuthServiceTimeout)

	a.CoachService = service.NewCoachService(a.DB, ai.NewCoach(client, cfg.LLMChatModel), profiles)
	a.RecipeAnalyzer = ai.NewRecipeAnalyzer(client, cfg.LLMModel)
	a.AILimiter = middleware.NewRateLimiter(cfg.AIRateLimit, cfg.AIRateWindow)
}

func (a *App) Close() error {
	for _, limiter := range []*middleware.RateLimiter{a.AuthLimiter, a.AILimiter} {
		if limiter != nil {
			limiter.Stop()
		}
	}
	return db.Close(a.DB)
}
