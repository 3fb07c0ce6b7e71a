package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(s *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: s}
}

func userIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid user id")
	}
	return id, nil
}

// @Summary Dashboard stats
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.Stats
// @Router /api/admin/stats [get]
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// @Summary List users
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param search query string false "name/email search"
// @Param limit query int false "page size (default 20)"
// @Param offset query int false "offset"
// @Success 200 {array} models.UserDoc
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(q.Get("offset"), 10, 64)
	if limit <= 0 {
		limit = 20
	}

	users, err := h.svc.ListUsers(r.Context(), q.Get("search"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// @Summary Get user
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} models.UserDoc
// @Failure 404 {object} errorResponse
// @Router /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type adminUserUpdateRequest struct {
	Role               *string   `json:"role"`
	PreferredGenres    *[]string `json:"preferredGenres"`
	PreferredLanguages *[]string `json:"preferredLanguages"`
}

// @Summary Update user
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param body body adminUserUpdateRequest true "fields to update"
// @Success 200 {object} models.UserDoc
// @Failure 404 {object} errorResponse
// @Router /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req adminUserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	u, err := h.svc.UpdateUser(r.Context(), id, service.AdminUserUpdate{
		Role:               req.Role,
		PreferredGenres:    req.PreferredGenres,
		PreferredLanguages: req.PreferredLanguages,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// @Summary Delete user and their history
// @Tags admin
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List movies for the dashboard
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "page size (default 20)"
// @Param offset query int false "offset"
// @Success 200 {array} models.MovieDoc
// @Router /api/admin/movies [get]
func (h *AdminHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(q.Get("offset"), 10, 64)
	if limit <= 0 {
		limit = 20
	}

	movies, err := h.svc.ListMovies(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}
