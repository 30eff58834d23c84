package authclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/macromind/backend/internal/model"
)

func TestProfileForwardsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/me" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"a@b.co","profile":{"fitness_goal":"bulk","dietary_preference":"vegan","daily_calories":3000,"goal_weight":180.5}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	p, err := c.Profile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.FitnessGoal != model.FitnessGoalBulk || p.DietaryPreference != model.DietaryPreferenceVegan {
		t.Errorf("profile = %+v", p)
	}
	if p.DailyCalories == nil || *p.DailyCalories != 3000 || p.GoalWeight == nil || *p.GoalWeight != 180.5 {
		t.Errorf("numeric fields = %v, %v", p.DailyCalories, p.GoalWeight)
	}

	if _, err := c.Profile(context.Background(), "wrong"); err == nil {
		t.Error("Profile with rejected token returned nil error")
	}
}

func TestProfileUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond)
	if _, err := c.Profile(context.Background(), "tok"); err == nil {
		t.Error("Profile against closed port returned nil error")
	}
}
