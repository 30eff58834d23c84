package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/macromind/backend/internal/ctxkeys"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/respond"
	"github.com/macromind/backend/internal/service"
	"github.com/macromind/backend/internal/validation"
)

const maxChatMessage = 1000

type ChatResponse struct {
	MessageID   string    `json:"message_id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	Timestamp   time.Time `json:"timestamp"`
}

type ChatHistoryItem struct {
	ID          string    `json:"id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	Timestamp   time.Time `json:"timestamp"`
}

type ChatHistoryResponse struct {
	Total    int               `json:"total"`
	Messages []ChatHistoryItem `json:"messages"`
}

func newChatHistoryResponse(total int, messages []*model.ChatMessage) ChatHistoryResponse {
	items := make([]ChatHistoryItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, ChatHistoryItem{
			ID:          m.ID,
			UserMessage: m.Message,
			AIResponse:  m.Response,
			Timestamp:   m.Timestamp,
		})
	}
	return ChatHistoryResponse{Total: total, Messages: items}
}

type coachHandler struct {
	coachService *service.CoachService
}

func NewCoachHandler(coachService *service.CoachService) *coachHandler {
	return &coachHandler{coachService: coachService}
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *coachHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var in chatRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	err := validation.TextLength(in.Message, 1, maxChatMessage)
	if err == nil && strings.TrimSpace(in.Message) == "" {
		err = errors.New("must not be blank")
	}
	if err != nil {
		fieldError(w, "message", err)
		return
	}

	ctx := r.Context()
	msg, err := h.coachService.Chat(ctx, ctxkeys.UserID(ctx), ctxkeys.BearerToken(ctx), in.Message)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ChatResponse{
		MessageID:   msg.ID,
		UserMessage: msg.Message,
		AIResponse:  msg.Response,
		Timestamp:   msg.Timestamp,
	})
}

func (h *coachHandler) History(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fields := validation.Errors{}
	limit, err := queryInt(query.Get("limit"), service.DefaultHistoryLimit, 1, service.MaxHistoryLimit)
	fields.Add("limit", err)
	offset, err := queryInt(query.Get("offset"), 0, 0, -1)
	fields.Add("offset", err)
	if err := fields.Err(); err != nil {
		handleError(w, r, err)
		return
	}

	total, messages, err := h.coachService.History(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("user_id"), limit, offset)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, newChatHistoryResponse(total, messages))
}

func (h *coachHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.coachService.ClearHistory(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("user_id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.Message(w, fmt.Sprintf("Cleared %d chat messages", deleted))
}

// queryInt parses an optional query parameter. A negative max means unbounded.
func queryInt(value string, def, min, max int) (int, error) {
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	if n < min {
		return 0, fmt.Errorf("must be at least %d", min)
	}
	if max >= 0 && n > max {
		return 0, fmt.Errorf("must be at most %d", max)
	}
	return n, nil
}
