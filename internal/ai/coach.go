package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/macromind/backend/internal/llm"
)

var (
	ErrProviderNotConfigured = errors.New("AI provider is not configured")
	ErrProviderUnavailable   = errors.New("AI provider rejected the request")
)

const coachBasePrompt = "You are MacroMind, an encouraging but data-driven nutrition coach. Keep answers concise, helpful, and focused on the user's goals."

// MaxReplyWords bounds every stored coach reply.
const MaxReplyWords = 150

// ProfileContext is the subset of a user profile used to personalize replies.
type ProfileContext struct {
	CurrentWeight     *float64 `json:"current_weight"`
	GoalWeight        *float64 `json:"goal_weight"`
	ActivityLevel     *string  `json:"activity_level"`
	DietaryPreference string   `json:"dietary_preference"`
	DislikedFoods     *string  `json:"disliked_foods"`
	MainGoal          *string  `json:"main_goal"`
}

// CoachPrompt returns the system prompt, personalized when p is set.
func CoachPrompt(p *ProfileContext) string {
	if p == nil {
		return coachBasePrompt
	}

	var parts []string
	if p.GoalWeight != nil && p.CurrentWeight != nil && *p.GoalWeight != 0 && *p.CurrentWeight != 0 {
		diff := *p.GoalWeight - *p.CurrentWeight
		if diff > 0 {
			parts = append(parts, fmt.Sprintf("User wants to gain %.1f lbs", diff))
		} else if diff < 0 {
			parts = append(parts, fmt.Sprintf("User wants to lose %.1f lbs", math.Abs(diff)))
		}
	}
	if p.ActivityLevel != nil && *p.ActivityLevel != "" {
		parts = append(parts, "Activity level: "+*p.ActivityLevel)
	}
	if p.DietaryPreference != "" {
		parts = append(parts, "Dietary preference: "+p.DietaryPreference)
	}
	if p.DislikedFoods != nil && *p.DislikedFoods != "" {
		parts = append(parts, "Dislikes: "+*p.DislikedFoods)
	}
	if p.MainGoal != nil && *p.MainGoal != "" {
		parts = append(parts, "Main goal: "+*p.MainGoal)
	}

	if len(parts) == 0 {
		return coachBasePrompt
	}
	return coachBasePrompt + "\n\nUser context: " + strings.Join(parts, "; ") + "."
}

var coachFallbacks = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"protein", "muscle", "build"},
		reply:    "For muscle building, aim for 0.8-1g of protein per pound of body weight. Include lean meats, eggs, dairy, and plant proteins in your meals.",
	},
	{
		keywords: []string{"lose", "weight", "fat", "cut"},
		reply:    "To lose weight sustainably, create a moderate calorie deficit (500-750 calories/day), prioritize protein and vegetables, and stay active. Consistency is key.",
	},
	{
		keywords: []string{"meal", "plan", "planning"},
		reply:    "Plan meals around your schedule. Prep protein sources in advance, include vegetables with every meal, and balance carbs around your activity level.",
	},
}

const coachDefaultReply = "I'm here to help with your nutrition goals! Focus on whole foods, adequate protein, and staying consistent with your plan. What specific area would you like guidance on?"

// FallbackReply picks a canned reply by keyword, first match wins.
func FallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, f := range coachFallbacks {
		for _, kw := range f.keywords {
			if strings.Contains(lower, kw) {
				return f.reply
			}
		}
	}
	return coachDefaultReply
}

// TruncateWords keeps the first max words of s. Truncated text gets "..."
// unless it already ends a sentence.
func TruncateWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}

	truncated := strings.Join(words[:max], " ")
	if !strings.HasSuffix(truncated, ".") && !strings.HasSuffix(truncated, "!") && !strings.HasSuffix(truncated, "?") {
		truncated += "..."
	}
	return truncated
}

type Coach struct {
	llm    llm.Completer
	model  string
	logger *slog.Logger
}

func NewCoach(completer llm.Completer, modelName string) *Coach {
	return &Coach{
		llm:    completer,
		model:  modelName,
		logger: slog.Default().With("component", "coach"),
	}
}

// Reply answers a chat message. Unlike meal and recipe generation, a missing
// or rejected credential is a hard error; other provider failures fall back
// to a keyword reply.
func (c *Coach) Reply(ctx context.Context, message string, profile *ProfileContext) (Result[string], error) {
	raw, err := c.llm.Complete(ctx, llm.Request{
		Model:       c.model,
		System:      CoachPrompt(profile),
		User:        message,
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return Result[string]{}, ErrProviderNotConfigured
		}
		if isCredentialOrQuotaError(err) {
			c.logger.Error("AI provider rejected coach request", "error", err)
			return Result[string]{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		c.logger.Warn("coach reply failed, using fallback", "error", err)
		return fallbackResult(FallbackReply(message)), nil
	}

	reply := strings.TrimSpace(raw)
	if reply == "" {
		c.logger.Warn("empty coach reply, using fallback")
		return fallbackResult(FallbackReply(message)), nil
	}
	return modelResult(TruncateWords(reply, MaxReplyWords)), nil
}

func isCredentialOrQuotaError(err error) bool {
	var status *llm.StatusError
	if errors.As(err, &status) {
		switch status.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"api_key", "api key", "authentication", "rate_limit", "rate limit", "quota"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
