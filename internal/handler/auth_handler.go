package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"
	"github.com/rabhirag60-coder/cine-ai/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: s}
}

type userResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Role               string   `json:"role"`
	PreferredGenres    []string `json:"preferredGenres"`
	PreferredLanguages []string `json:"preferredLanguages"`
}

func toUserResponse(u *models.UserDoc) userResponse {
	return userResponse{
		ID:                 u.ID.Hex(),
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		PreferredGenres:    u.PreferredGenres,
		PreferredLanguages: u.PreferredLanguages,
	}
}

type registerRequest struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	PreferredGenres    []string `json:"preferredGenres"`
	PreferredLanguages []string `json:"preferredLanguages"`
}

// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "registration data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	u, token, err := h.svc.Register(r.Context(), service.RegisterUserData{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		PreferredGenres:    req.PreferredGenres,
		PreferredLanguages: req.PreferredLanguages,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  toUserResponse(u),
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  toUserResponse(u),
		"token": token,
	})
}

// @Summary Current user profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} userResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}
