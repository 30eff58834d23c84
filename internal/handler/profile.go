package handler

import (
	"net/http"

	"github.com/macromind/backend/internal/ctxkeys"
	"github.com/macromind/backend/internal/respond"
	"github.com/macromind/backend/internal/service"
)

type profileHandler struct {
	profileService *service.ProfileService
	userService    *service.UserService
}

func NewProfileHandler(profileService *service.ProfileService, userService *service.UserService) *profileHandler {
	return &profileHandler{
		profileService: profileService,
		userService:    userService,
	}
}

func (h *profileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.ProfileUpdate
	if !decodeJSON(w, r, &in) {
		return
	}

	_, err := h.profileService.Update(r.Context(), ctxkeys.UserID(r.Context()), in)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.Message(w, "Profile updated successfully")
}

func (h *profileHandler) Onboarding(w http.ResponseWriter, r *http.Request) {
	var in service.OnboardingInput
	if !decodeJSON(w, r, &in) {
		return
	}

	userID := ctxkeys.UserID(r.Context())
	_, err := h.profileService.CompleteOnboarding(r.Context(), userID, in)
	if err != nil {
		handleError(w, r, err)
		return
	}

	me, err := h.userService.Me(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, newUserResponse(me))
}
