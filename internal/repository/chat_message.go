package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/model"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	ByUser(ctx context.Context, userID string, limit, offset int) ([]*model.ChatMessage, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type chatMessageRepository struct {
	db sqlx.ExtContext
}

func NewChatMessageRepository(db sqlx.ExtContext) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	query := `INSERT INTO chat_messages (id, user_id, message, response, timestamp) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, msg.ID, msg.UserID, msg.Message, msg.Response, msg.Timestamp)
	return err
}

// ByUser returns a page of the user's messages, newest first.
func (r *chatMessageRepository) ByUser(ctx context.Context, userID string, limit, offset int) ([]*model.ChatMessage, error) {
	messages := []*model.ChatMessage{}
	query := `SELECT * FROM chat_messages WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`

	err := sqlx.SelectContext(ctx, r.db, &messages, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *chatMessageRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM chat_messages WHERE user_id = $1`, userID)
	return count, err
}

func (r *chatMessageRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
