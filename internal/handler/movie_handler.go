package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"
	"github.com/rabhirag60-coder/cine-ai/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MovieHandler struct {
	svc *service.MovieService
}

func NewMovieHandler(s *service.MovieService) *MovieHandler {
	return &MovieHandler{svc: s}
}

func movieIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid movie id")
	}
	return id, nil
}

// @Summary List movies
// @Tags movies
// @Produce json
// @Param search query string false "title search"
// @Param genre query string false "genre filter"
// @Param language query string false "language filter"
// @Param limit query int false "page size (default 20)"
// @Param offset query int false "offset"
// @Success 200 {array} models.MovieDoc
// @Router /api/movies [get]
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(q.Get("offset"), 10, 64)
	if limit <= 0 {
		limit = 20
	}

	movies, err := h.svc.List(r.Context(), q.Get("search"), q.Get("genre"), q.Get("language"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path string true "movie id"
// @Success 200 {object} models.MovieDoc
// @Failure 404 {object} errorResponse
// @Router /api/movies/{id} [get]
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := movieIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := h.svc.GetMovie(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// @Summary Search TMDB
// @Tags movies
// @Produce json
// @Param query query string true "search query"
// @Param page query int false "page (default 1)"
// @Success 200 {object} map[string]any
// @Failure 502 {object} errorResponse
// @Router /api/movies/search/tmdb [get]
func (h *MovieHandler) SearchTMDB(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}

	movies, totalPages, err := h.svc.SearchTMDB(r.Context(), r.URL.Query().Get("query"), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":       movies,
		"page":       page,
		"totalPages": totalPages,
	})
}

// @Summary Popular TMDB movies
// @Tags movies
// @Produce json
// @Param page query int false "page (default 1)"
// @Success 200 {object} map[string]any
// @Failure 502 {object} errorResponse
// @Router /api/movies/popular/tmdb [get]
func (h *MovieHandler) PopularTMDB(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}

	movies, totalPages, err := h.svc.PopularTMDB(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":       movies,
		"page":       page,
		"totalPages": totalPages,
	})
}

// @Summary Discover TMDB movies by genre
// @Tags movies
// @Produce json
// @Param genre query int true "TMDB genre id"
// @Param page query int false "page (default 1)"
// @Success 200 {object} map[string]any
// @Failure 502 {object} errorResponse
// @Router /api/movies/discover/tmdb [get]
func (h *MovieHandler) DiscoverTMDB(w http.ResponseWriter, r *http.Request) {
	genreID, _ := strconv.Atoi(r.URL.Query().Get("genre"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}

	movies, totalPages, err := h.svc.DiscoverTMDB(r.Context(), genreID, page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":       movies,
		"page":       page,
		"totalPages": totalPages,
	})
}

// ====== ADMIN: catalog management ======

// @Summary Create movie (manual or TMDB import)
// @Tags movies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.MovieCreateRequest true "movie data; set tmdbId to import"
// @Success 201 {object} models.MovieDoc
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/movies [post]
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MovieCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	m, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// @Summary Update movie
// @Tags movies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "movie id"
// @Param body body models.MovieUpdateRequest true "fields to update"
// @Success 200 {object} models.MovieDoc
// @Failure 404 {object} errorResponse
// @Router /api/movies/{id} [put]
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := movieIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.MovieUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	m, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// @Summary Delete movie
// @Tags movies
// @Security BearerAuth
// @Param id path string true "movie id"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/movies/{id} [delete]
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := movieIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
