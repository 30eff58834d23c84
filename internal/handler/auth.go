package handler

import (
	"net/http"
	"time"

	"github.com/macromind/backend/internal/ctxkeys"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/respond"
	"github.com/macromind/backend/internal/service"
	"github.com/macromind/backend/internal/token"
)

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

func newTokenResponse(pair *token.Pair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	}
}

type UserResponse struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Profile   *model.Profile `json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
}

func newUserResponse(u *service.UserWithProfile) UserResponse {
	return UserResponse{
		ID:        u.User.ID,
		Email:     u.User.Email,
		AvatarURL: u.User.AvatarURL,
		Profile:   u.Profile,
		CreatedAt: u.User.CreatedAt,
	}
}

type authHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *authHandler {
	return &authHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	pair, err := h.authService.Register(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, newTokenResponse(pair))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	pair, err := h.authService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, newTokenResponse(pair))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *authHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	pair, err := h.authService.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, newTokenResponse(pair))
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	me, err := h.userService.Me(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, newUserResponse(me))
}

// Logout only acknowledges; tokens expire on their own.
func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, "Logout successful")
}
