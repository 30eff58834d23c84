package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/macromind/backend/internal/ai"
	"github.com/macromind/backend/internal/config"
	"github.com/macromind/backend/internal/db/dbtest"
	"github.com/macromind/backend/internal/llm"
)

func newCoachService(t *testing.T, completer *fakeCompleter, profiles ProfileSource) *CoachService {
	t.Helper()
	return NewCoachService(dbtest.Open(t, config.ServiceNutritionAI), ai.NewCoach(completer, "test-model"), profiles)
}

func TestChatStoresExchange(t *testing.T) {
	ctx := context.Background()
	svc := newCoachService(t, &fakeCompleter{reply: "Aim for 150g protein a day."}, &fakeProfiles{err: errAuthDown})

	msg, err := svc.Chat(ctx, "user-1", "token", "How much protein?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if msg.Response != "Aim for 150g protein a day." || msg.Message != "How much protein?" {
		t.Errorf("msg = %+v", msg)
	}

	total, page, err := svc.History(ctx, "user-1", "user-1", 0, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if total != 1 || len(page) != 1 || page[0].ID != msg.ID {
		t.Errorf("History = %d, %v", total, page)
	}
}

func TestChatProviderErrors(t *testing.T) {
	ctx := context.Background()

	svc := newCoachService(t, unconfigured, nil)
	if _, err := svc.Chat(ctx, "user-1", "", "hi"); !errors.Is(err, ai.ErrProviderNotConfigured) {
		t.Errorf("unconfigured: err = %v", err)
	}

	svc = newCoachService(t, &fakeCompleter{err: &llm.StatusError{StatusCode: 429, Body: "slow down"}}, nil)
	if _, err := svc.Chat(ctx, "user-1", "", "hi"); !errors.Is(err, ai.ErrProviderUnavailable) {
		t.Errorf("rate limited: err = %v", err)
	}

	total, _, err := svc.History(ctx, "user-1", "user-1", 0, 0)
	if err != nil || total != 0 {
		t.Errorf("failed chats were stored: total = %d, err = %v", total, err)
	}
}

func TestChatFallbackIsStored(t *testing.T) {
	ctx := context.Background()
	svc := newCoachService(t, &fakeCompleter{err: errors.New("connection reset")}, nil)

	msg, err := svc.Chat(ctx, "user-1", "", "What should I eat for protein?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if want := ai.FallbackReply("What should I eat for protein?"); msg.Response != want {
		t.Errorf("Response = %q, want %q", msg.Response, want)
	}
}

func TestHistoryPaging(t *testing.T) {
	ctx := context.Background()
	svc := newCoachService(t, &fakeCompleter{reply: "ok"}, nil)

	base := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		if _, err := svc.Chat(ctx, "user-1", "", fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("Chat %d: %v", i, err)
		}
	}

	total, page, err := svc.History(ctx, "user-1", "user-1", 2, 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if total != 5 || len(page) != 2 {
		t.Fatalf("History = total %d, %d messages", total, len(page))
	}
	if page[0].Message != "message 3" || page[1].Message != "message 2" {
		t.Errorf("page = %q, %q, want newest first after offset", page[0].Message, page[1].Message)
	}
}

func TestHistoryOwnership(t *testing.T) {
	ctx := context.Background()
	svc := newCoachService(t, &fakeCompleter{reply: "ok"}, nil)

	if _, err := svc.Chat(ctx, "user-1", "", "hello"); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if _, _, err := svc.History(ctx, "user-2", "user-1", 0, 0); !errors.Is(err, ErrForbidden) {
		t.Errorf("History: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.ClearHistory(ctx, "user-2", "user-1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("ClearHistory: err = %v, want ErrForbidden", err)
	}

	deleted, err := svc.ClearHistory(ctx, "user-1", "user-1")
	if err != nil || deleted != 1 {
		t.Errorf("ClearHistory = %d, %v", deleted, err)
	}
	deleted, err = svc.ClearHistory(ctx, "user-1", "user-1")
	if err != nil || deleted != 0 {
		t.Errorf("second ClearHistory = %d, %v", deleted, err)
	}
}
