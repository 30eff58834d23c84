package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsPerService(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "")
	t.Setenv("DB_CONNECTION", "")

	cfg := Load(ServiceMealPlanner)

	if cfg.Port != "8001" {
		t.Errorf("Port = %q, want 8001", cfg.Port)
	}
	if cfg.JWTAccessExpiry != 30*time.Minute {
		t.Errorf("JWTAccessExpiry = %v, want 30m", cfg.JWTAccessExpiry)
	}
	if cfg.JWTRefreshExpiry != 7*24*time.Hour {
		t.Errorf("JWTRefreshExpiry = %v, want 168h", cfg.JWTRefreshExpiry)
	}
	if cfg.DBConnection[:len("./data/meal-planner-service.db")] != "./data/meal-planner-service.db" {
		t.Errorf("DBConnection = %q", cfg.DBConnection)
	}
	if cfg.AIRateLimit != 10 {
		t.Errorf("AIRateLimit = %d, want 10", cfg.AIRateLimit)
	}
}

func TestEnvHelpersFallBackOnInvalidValues(t *testing.T) {
	t.Setenv("X_INT", "ten")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_LIST", " a, ,b ")
	t.Setenv("X_BOOL", "maybe")

	if got := envInt("X_INT", 3); got != 3 {
		t.Errorf("envInt = %d, want 3", got)
	}
	if got := envDuration("X_DUR", time.Second); got != time.Second {
		t.Errorf("envDuration = %v, want 1s", got)
	}
	if got := envBool("X_BOOL", true); !got {
		t.Errorf("envBool = false, want default true")
	}
	got := envList("X_LIST", "")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("envList = %v, want [a b]", got)
	}
}

func TestTrustProxyIsOptIn(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")

	t.Setenv("TRUSTED_PROXY", "")
	if Load(ServiceNutritionAI).TrustProxy {
		t.Error("TrustProxy enabled without TRUSTED_PROXY")
	}

	t.Setenv("TRUSTED_PROXY", "true")
	if !Load(ServiceNutritionAI).TrustProxy {
		t.Error("TRUSTED_PROXY=true not honoured")
	}
}
