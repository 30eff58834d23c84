// Package authclient fetches the caller's profile from the auth service
// using the caller's own bearer token.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/macromind/backend/internal/model"
)

// Profile is the part of the auth service's /me profile other services use.
type Profile struct {
	FitnessGoal       model.FitnessGoal       `json:"fitness_goal"`
	DietaryPreference model.DietaryPreference `json:"dietary_preference"`
	DailyCalories     *int                    `json:"daily_calories"`
	CurrentWeight     *float64                `json:"current_weight"`
	GoalWeight        *float64                `json:"goal_weight"`
	ActivityLevel     *string                 `json:"activity_level"`
	DislikedFoods     *string                 `json:"disliked_foods"`
	MainGoal          *string                 `json:"main_goal"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Profile calls GET /api/auth/me. A user without a profile yields (nil, nil).
func (c *Client) Profile(ctx context.Context, bearerToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("authclient: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authclient: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("authclient: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Profile *Profile `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("authclient: decode response: %w", err)
	}

	return body.Profile, nil
}
