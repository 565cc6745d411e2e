package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"conflict", Conflict("duplicate"), http.StatusConflict},
		{"unauthorized", Unauthorized("no token"), http.StatusUnauthorized},
		{"unavailable", Unavailable(errors.New("conn refused")), http.StatusServiceUnavailable},
		{"untyped error is storage failure", errors.New("boom"), http.StatusServiceUnavailable},
		{"wrapped typed error", fmt.Errorf("list posts: %w", Conflict("duplicate")), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessageHidesDriverDetails(t *testing.T) {
	err := errors.New("pq: connection reset by peer")
	if got := Message(err); strings.Contains(got, "connection") {
		t.Errorf("driver detail leaked: %q", got)
	}

	typed := Conflict("Slug já existente.")
	if got := Message(typed); got != "Slug já existente." {
		t.Errorf("Message = %q, want typed message", got)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NotFound("Não foi possível carregar."))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content-type: got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Não foi possível carregar.") {
		t.Errorf("body missing message: %s", rec.Body.String())
	}
}
