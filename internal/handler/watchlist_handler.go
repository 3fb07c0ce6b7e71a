package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WatchlistHandler struct {
	svc *service.WatchlistService
}

func NewWatchlistHandler(s *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: s}
}

// @Summary Get own watchlist
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.MovieDoc
// @Router /api/watchlist [get]
func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	movies, err := h.svc.Get(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

type addWatchlistRequest struct {
	MovieID string `json:"movieId"`
}

// @Summary Add movie to watchlist
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body addWatchlistRequest true "movie id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/watchlist [post]
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MovieID == "" {
		writeError(w, apperr.Validation("please provide a movie id"))
		return
	}
	movieID, err := primitive.ObjectIDFromHex(req.MovieID)
	if err != nil {
		writeError(w, apperr.Validation("invalid movie id"))
		return
	}

	if err := h.svc.Add(r.Context(), UserIDFromContext(r.Context()), movieID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"added": movieID.Hex()})
}

// @Summary Remove movie from watchlist (idempotent)
// @Tags watchlist
// @Security BearerAuth
// @Param movieId path string true "movie id"
// @Success 204
// @Router /api/watchlist/{movieId} [delete]
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	movieID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "movieId"))
	if err != nil {
		writeError(w, apperr.Validation("invalid movie id"))
		return
	}

	if err := h.svc.Remove(r.Context(), UserIDFromContext(r.Context()), movieID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
