package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/macromind/backend/internal/config"
	"github.com/macromind/backend/internal/db/dbtest"
	"github.com/macromind/backend/internal/model"
)

func TestChatMessagesNewestFirstAndBulkDelete(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t, config.ServiceNutritionAI)
	messages := NewChatMessageRepository(database)

	base := time.Date(2025, 11, 24, 9, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		err := messages.Create(ctx, &model.ChatMessage{
			ID:        uuid.New().String(),
			UserID:    "user-1",
			Message:   text,
			Response:  "ok",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	other := &model.ChatMessage{ID: uuid.New().String(), UserID: "user-2", Message: "hi", Response: "ok", Timestamp: base}
	if err := messages.Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	page, err := messages.ByUser(ctx, "user-1", 2, 0)
	if err != nil {
		t.Fatalf("ByUser: %v", err)
	}
	if len(page) != 2 || page[0].Message != "third" || page[1].Message != "second" {
		t.Errorf("ByUser page = %v", page)
	}

	total, _ := messages.CountByUser(ctx, "user-1")
	if total != 3 {
		t.Errorf("CountByUser = %d, want 3", total)
	}

	n, err := messages.DeleteByUser(ctx, "user-1")
	if err != nil || n != 3 {
		t.Fatalf("DeleteByUser = %d, %v; want 3", n, err)
	}
	if left, _ := messages.CountByUser(ctx, "user-2"); left != 1 {
		t.Errorf("other user's messages = %d, want 1", left)
	}
}
