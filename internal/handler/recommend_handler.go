package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
	"github.com/rabhirag60-coder/cine-ai/internal/models"
	"github.com/rabhirag60-coder/cine-ai/internal/recommend"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RecommendHandler struct {
	svc *recommend.Service
}

func NewRecommendHandler(s *recommend.Service) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

type generateRequest struct {
	Mood  string `json:"mood"`
	Limit int    `json:"limit"`
}

type recommendationResponse struct {
	Record *models.RecommendationDoc `json:"recommendation"`
	Movies []models.MovieDoc         `json:"movies"`
}

// @Summary Generate mood-based recommendations
// @Description Creates a new history record on every call.
// @Tags recommendations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body generateRequest true "mood and optional limit"
// @Success 200 {object} recommendationResponse
// @Failure 400 {object} errorResponse
// @Router /api/recommendations [post]
func (h *RecommendHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}
	if req.Mood == "" {
		writeError(w, apperr.Validation("please provide a mood"))
		return
	}

	res, err := h.svc.Generate(r.Context(), UserIDFromContext(r.Context()), req.Mood, req.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationResponse{Record: res.Record, Movies: res.Movies})
}

// @Summary Own recommendation history (newest first, max 50)
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Success 200 {array} recommendationResponse
// @Router /api/recommendations [get]
func (h *RecommendHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.History(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]recommendationResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, recommendationResponse{Record: e.Record, Movies: e.Movies})
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary One history record, owner only
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Param id path string true "recommendation id"
// @Success 200 {object} recommendationResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/recommendations/{id} [get]
func (h *RecommendHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	recID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("invalid recommendation id"))
		return
	}

	entry, err := h.svc.GetByID(r.Context(), UserIDFromContext(r.Context()), recID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationResponse{Record: entry.Record, Movies: entry.Movies})
}

// @Summary Known mood labels
// @Tags recommendations
// @Produce json
// @Success 200 {array} string
// @Router /api/recommendations/moods [get]
func (h *RecommendHandler) MoodOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.MoodOptions())
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Generate recommendations over WebSocket
// @Description Streams progress frames, then the result.
// @Tags recommendations
// @Security BearerAuth
// @Param mood query string true "mood"
// @Param limit query int false "max movies"
// @Router /api/ws/recommendations [get]
func (h *RecommendHandler) GenerateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		return
	}
	defer conn.Close()

	mood := r.URL.Query().Get("mood")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if mood == "" {
		_ = conn.WriteJSON(map[string]any{"type": "error", "error": "please provide a mood"})
		return
	}

	_ = conn.WriteJSON(map[string]any{"type": "start", "mood": mood})

	res, err := h.svc.Generate(r.Context(), UserIDFromContext(r.Context()), mood, limit)
	if err != nil {
		_ = conn.WriteJSON(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	_ = conn.WriteJSON(map[string]any{
		"type":           "recommendations",
		"recommendation": res.Record,
		"movies":         res.Movies,
	})
}
