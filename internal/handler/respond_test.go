package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/macromind/backend/internal/ai"
	"github.com/macromind/backend/internal/repository"
	"github.com/macromind/backend/internal/respond"
	"github.com/macromind/backend/internal/service"
	"github.com/macromind/backend/internal/validation"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{validation.Errors{"email": "invalid"}, http.StatusUnprocessableEntity, respond.CodeValidation},
		{service.ErrEmailAlreadyExists, http.StatusConflict, respond.CodeEmailExists},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, respond.CodeUnauthorized},
		{service.ErrInvalidToken, http.StatusUnauthorized, respond.CodeUnauthorized},
		{service.ErrForbidden, http.StatusForbidden, respond.CodeForbidden},
		{fmt.Errorf("get meal: %w", repository.ErrMealNotFound), http.StatusNotFound, respond.CodeNotFound},
		{repository.ErrMealPlanNotFound, http.StatusNotFound, respond.CodeNotFound},
		{repository.ErrProfileNotFound, http.StatusNotFound, respond.CodeNotFound},
		{ai.ErrProviderNotConfigured, http.StatusServiceUnavailable, respond.CodeServiceUnavailable},
		{fmt.Errorf("%w: 429", ai.ErrProviderUnavailable), http.StatusServiceUnavailable, respond.CodeServiceUnavailable},
		{service.ErrStorageDisabled, http.StatusServiceUnavailable, respond.CodeServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError, respond.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body respond.ErrorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Code != tt.code {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestInternalErrorCarriesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("disk full"))

	if !strings.Contains(rec.Body.String(), "disk full") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"valid", `{"email":"a@b.co"}`, true},
		{"empty", ``, false},
		{"malformed", `{"email":`, false},
		{"wrong type", `{"email":42}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in loginRequest
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			if got := decodeJSON(rec, req, &in); got != tt.ok {
				t.Fatalf("decodeJSON = %v, want %v", got, tt.ok)
			}
			if !tt.ok && rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestDecodeOptionalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		ok        bool
		weekStart string
	}{
		{"chunked empty", ``, true, ""},
		{"chunked body", `{"week_start":"2025-01-13"}`, true, "2025-01-13"},
		{"malformed", `{"week_start":`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in generateRequest
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/meal-planner/generate", nil)
			req.Body = io.NopCloser(strings.NewReader(tt.body))
			req.ContentLength = -1

			if got := decodeOptionalJSON(rec, req, &in); got != tt.ok {
				t.Fatalf("decodeOptionalJSON = %v, want %v (status %d)", got, tt.ok, rec.Code)
			}
			if !tt.ok && rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if in.WeekStart != tt.weekStart {
				t.Errorf("week_start = %q, want %q", in.WeekStart, tt.weekStart)
			}
		})
	}

	t.Run("no body", func(t *testing.T) {
		var in generateRequest
		req := httptest.NewRequest(http.MethodPost, "/api/meal-planner/generate", nil)
		if !decodeOptionalJSON(httptest.NewRecorder(), req, &in) {
			t.Error("request without body rejected")
		}
	})
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"", 50, false},
		{"10", 10, false},
		{"100", 100, false},
		{"0", 0, true},
		{"101", 0, true},
		{"ten", 0, true},
	}
	for _, tt := range tests {
		got, err := queryInt(tt.value, 50, 1, 100)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("queryInt(%q) = %d, %v", tt.value, got, err)
		}
	}

	if _, err := queryInt("100000", 0, 0, -1); err != nil {
		t.Errorf("unbounded max: %v", err)
	}
}

func TestParseWeekStart(t *testing.T) {
	got, err := parseWeekStart("")
	if got != nil || err != nil {
		t.Errorf("empty = %v, %v", got, err)
	}

	got, err = parseWeekStart("2025-01-15")
	if err != nil || got.Day() != 15 {
		t.Errorf("valid = %v, %v", got, err)
	}

	if _, err := parseWeekStart("01/15/2025"); err == nil {
		t.Error("invalid format accepted")
	}
}
