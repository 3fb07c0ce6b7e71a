package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rabhirag60-coder/cine-ai/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string      `json:"error"`
	Kind  apperr.Kind `json:"kind"`
}

// writeError renders the error taxonomy as a structured body with the
// status derived from the error kind.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperr.HTTPStatus(err), errorResponse{
		Error: err.Error(),
		Kind:  apperr.KindOf(err),
	})
}
