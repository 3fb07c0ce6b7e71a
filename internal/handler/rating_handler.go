package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/service"
)

type RatingHandler struct {
	svc *service.RatingService
}

func NewRatingHandler(s *service.RatingService) *RatingHandler {
	return &RatingHandler{svc: s}
}

type rateRequest struct {
	Rating int `json:"rating"`
}

// @Summary Rate a movie (1-5, upsert)
// @Tags ratings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "movie id"
// @Param body body rateRequest true "rating"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/movies/{id}/rate [post]
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	movieID, err := movieIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	if err := h.svc.Rate(r.Context(), UserIDFromContext(r.Context()), movieID, req.Rating); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"movieId": movieID.Hex(),
		"rating":  req.Rating,
	})
}

// @Summary List own ratings with movies
// @Tags ratings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} service.RatedMovie
// @Router /api/ratings [get]
func (h *RatingHandler) GetMyRatings(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.GetUserRatings(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary Own rating for one movie
// @Tags ratings
// @Security BearerAuth
// @Produce json
// @Param id path string true "movie id"
// @Success 200 {object} map[string]any
// @Router /api/movies/{id}/rating [get]
func (h *RatingHandler) GetMovieRating(w http.ResponseWriter, r *http.Request) {
	movieID, err := movieIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rating, err := h.svc.GetMovieRating(r.Context(), UserIDFromContext(r.Context()), movieID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{"movieId": movieID.Hex()}
	if rating > 0 {
		resp["rating"] = rating
	} else {
		resp["rating"] = nil
	}
	writeJSON(w, http.StatusOK, resp)
}
