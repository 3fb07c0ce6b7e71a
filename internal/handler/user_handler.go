package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{svc: s}
}

// @Summary Get own profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.UserDoc
// @Router /api/users/profile [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetProfile(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type updateProfileRequest struct {
	PreferredGenres    *[]string `json:"preferredGenres"`
	PreferredLanguages *[]string `json:"preferredLanguages"`
}

// @Summary Update own preferences
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body updateProfileRequest true "preference changes"
// @Success 200 {object} models.UserDoc
// @Failure 400 {object} errorResponse
// @Router /api/users/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), UserIDFromContext(r.Context()), service.ProfileUpdate{
		PreferredGenres:    req.PreferredGenres,
		PreferredLanguages: req.PreferredLanguages,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
