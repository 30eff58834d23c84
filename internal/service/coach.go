package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/ai"
	"github.com/macromind/backend/internal/db"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/repository"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

type CoachService struct {
	db       *sqlx.DB
	coach    *ai.Coach
	profiles ProfileSource
	now      func() time.Time
}

func NewCoachService(database *sqlx.DB, coach *ai.Coach, profiles ProfileSource) *CoachService {
	return &CoachService{
		db:       database,
		coach:    coach,
		profiles: profiles,
		now:      time.Now,
	}
}

// Chat asks the coach and stores the exchange. Provider configuration
// errors are returned as is; the handler maps them to 503.
func (s *CoachService) Chat(ctx context.Context, userID, bearerToken, message string) (*model.ChatMessage, error) {
	reply, err := s.coach.Reply(ctx, message, s.profileContext(ctx, bearerToken))
	if err != nil {
		return nil, err
	}

	msg := &model.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Response:  reply.Value,
		Timestamp: s.now().UTC(),
	}

	err = db.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return repository.NewChatMessageRepository(tx).Create(ctx, msg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	slog.Info("coach reply stored", "user_id", userID, "message_id", msg.ID, "source", reply.Source)
	return msg, nil
}

func (s *CoachService) profileContext(ctx context.Context, bearerToken string) *ai.ProfileContext {
	if s.profiles == nil || bearerToken == "" {
		return nil
	}

	profile, err := s.profiles.Profile(ctx, bearerToken)
	if err != nil {
		slog.Warn("could not fetch profile, continuing without it", "error", err)
		return nil
	}
	if profile == nil {
		return nil
	}

	return &ai.ProfileContext{
		CurrentWeight:     profile.CurrentWeight,
		GoalWeight:        profile.GoalWeight,
		ActivityLevel:     profile.ActivityLevel,
		DietaryPreference: string(profile.DietaryPreference),
		DislikedFoods:     profile.DislikedFoods,
		MainGoal:          profile.MainGoal,
	}
}

// History returns one page of ownerID's messages, newest first, and the total count.
func (s *CoachService) History(ctx context.Context, requesterID, ownerID string, limit, offset int) (int, []*model.ChatMessage, error) {
	if requesterID != ownerID {
		return 0, nil, ErrForbidden
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)
	offset = max(offset, 0)

	messages := repository.NewChatMessageRepository(s.db)

	total, err := messages.CountByUser(ctx, ownerID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count messages: %w", err)
	}

	page, err := messages.ByUser(ctx, ownerID, limit, offset)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get messages: %w", err)
	}

	return total, page, nil
}

func (s *CoachService) ClearHistory(ctx context.Context, requesterID, ownerID string) (int64, error) {
	if requesterID != ownerID {
		return 0, ErrForbidden
	}

	var deleted int64
	err := db.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		deleted, err = repository.NewChatMessageRepository(tx).DeleteByUser(ctx, ownerID)
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.Info("chat history cleared", "user_id", ownerID, "deleted", deleted)
	return deleted, nil
}
