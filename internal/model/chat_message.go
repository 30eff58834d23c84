package model

import "time"

type ChatMessage struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Message   string    `db:"message"`
	Response  string    `db:"response"`
	Timestamp time.Time `db:"timestamp"`
}
