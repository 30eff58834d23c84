package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/macromind/backend/internal/ctxkeys"
	"github.com/macromind/backend/internal/respond"
	"github.com/macromind/backend/internal/service"
	"github.com/macromind/backend/internal/validation"
)

// maxAvatarUpload bounds the multipart form, slightly above the 5MB image limit.
const maxAvatarUpload = 6 << 20

type accountHandler struct {
	userService *service.UserService
	fileService *service.FileService
}

func NewAccountHandler(userService *service.UserService, fileService *service.FileService) *accountHandler {
	return &accountHandler{
		userService: userService,
		fileService: fileService,
	}
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *accountHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var in passwordRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	err := h.userService.UpdatePassword(r.Context(), ctxkeys.UserID(r.Context()), in.CurrentPassword, in.NewPassword)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.Message(w, "Password updated successfully")
}

func (h *accountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	err := h.userService.DeleteAccount(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.Message(w, "Account deleted successfully")
}

type avatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

func (h *accountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if !h.fileService.Enabled() {
		handleError(w, r, service.ErrStorageDisabled)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUpload)
	err := r.ParseMultipartForm(maxAvatarUpload)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "Failed to parse form", nil)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		fieldError(w, "avatar", errors.New("no file uploaded"))
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close file", "error", closeErr)
		}
	}()

	contentType, err := validation.Image(header, validation.AvatarRules)
	if err != nil {
		fieldError(w, "avatar", err)
		return
	}

	userID := ctxkeys.UserID(r.Context())
	_, err = h.fileService.UploadAvatar(r.Context(), userID, file, header, contentType)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, avatarResponse{AvatarURL: h.fileService.AvatarURL(r.Context(), userID)})
}

func (h *accountHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	err := h.fileService.DeleteUserAvatar(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.Message(w, "Avatar deleted successfully")
}
