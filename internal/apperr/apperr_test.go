package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Forbidden("nope"), http.StatusForbidden},
		{Upstream("tmdb", errors.New("boom")), http.StatusBadGateway},
		{Internal("store", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("handler context: %w", NotFound("user not found"))
	if KindOf(err) != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want not_found", KindOf(err))
	}
}

func TestErrorMessage(t *testing.T) {
	e := Internal("saving rating", errors.New("connection reset"))
	if e.Error() != "saving rating: connection reset" {
		t.Errorf("Error() = %q", e.Error())
	}
	if !errors.Is(e, e.Err) {
		t.Error("wrapped cause should be reachable with errors.Is")
	}
}
