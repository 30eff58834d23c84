package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/macromind/backend/internal/ai"
	"github.com/macromind/backend/internal/repository"
	"github.com/macromind/backend/internal/respond"
	"github.com/macromind/backend/internal/service"
	"github.com/macromind/backend/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is required")

// decodeJSON reads the body into v and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeBody(w, r, v, false)
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty,
// whether the request declares Content-Length: 0 or is chunked. v keeps its
// zero value then.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeBody(w, r, v, true)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	if r.Body == nil || r.Body == http.NoBody {
		if optional {
			return true
		}
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "Invalid request body", map[string]string{"body": errEmptyBody.Error()})
		return false
	}

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		if optional {
			return true
		}
		err = errEmptyBody
	}
	if err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "Invalid request body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}

// handleError maps service and repository errors to status codes.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		respond.Error(w, http.StatusUnprocessableEntity, respond.CodeValidation, "Validation failed", fields)

	case errors.Is(err, service.ErrEmailAlreadyExists):
		respond.Error(w, http.StatusConflict, respond.CodeEmailExists, "Email already registered", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "Incorrect email or password", nil)
	case errors.Is(err, service.ErrInvalidToken):
		respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "Invalid or expired refresh token", nil)
	case errors.Is(err, service.ErrInvalidCurrentPassword):
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "Current password is incorrect",
			map[string]string{"current_password": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		respond.Error(w, http.StatusForbidden, respond.CodeForbidden, "Not allowed to access this resource", nil)

	case errors.Is(err, repository.ErrUserNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "User not found", nil)
	case errors.Is(err, repository.ErrProfileNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "Profile not found", nil)
	case errors.Is(err, repository.ErrMealPlanNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "No meal plan found for this week", nil)
	case errors.Is(err, repository.ErrMealNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "Meal not found", nil)
	case errors.Is(err, repository.ErrFileNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "File not found", nil)

	case errors.Is(err, ai.ErrProviderNotConfigured):
		respond.Error(w, http.StatusServiceUnavailable, respond.CodeServiceUnavailable, "AI service not configured", nil)
	case errors.Is(err, ai.ErrProviderUnavailable):
		respond.Error(w, http.StatusServiceUnavailable, respond.CodeServiceUnavailable, "AI service temporarily unavailable", nil)
	case errors.Is(err, service.ErrStorageDisabled):
		respond.Error(w, http.StatusServiceUnavailable, respond.CodeServiceUnavailable, "File storage is not configured", nil)

	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, err.Error(), nil)
	}
}

// fieldError writes a 422 for a single invalid field.
func fieldError(w http.ResponseWriter, field string, err error) {
	respond.Error(w, http.StatusUnprocessableEntity, respond.CodeValidation, "Validation failed", map[string]string{field: err.Error()})
}
