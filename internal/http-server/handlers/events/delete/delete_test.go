package delete

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"treedash/pkg/response"
)

type deleterFunc func(ctx context.Context, id string, confirmed bool) error

func (f deleterFunc) DeleteEvent(ctx context.Context, id string, confirmed bool) error {
	return f(ctx, id, confirmed)
}

func TestDeleteEvent(t *testing.T) {
	var gotID string
	deleter := deleterFunc(func(ctx context.Context, id string, confirmed bool) error {
		if !confirmed {
			return fmt.Errorf("service.DeleteEvent: %w", response.ErrConfirmRequired)
		}
		gotID = id
		return nil
	})

	router := chi.NewRouter()
	router.Delete("/events/{id}", New(slog.New(slog.NewTextHandler(io.Discard, nil)), deleter))

	tests := []struct {
		url    string
		status int
	}{
		{"/events/e1", http.StatusPreconditionRequired},
		{"/events/e1?confirm=false", http.StatusPreconditionRequired},
		{"/events/e1?confirm=true", http.StatusNoContent},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.url, nil))
		if rec.Code != tt.status {
			t.Fatalf("%s: status = %d, want %d", tt.url, rec.Code, tt.status)
		}
	}

	if gotID != "e1" {
		t.Fatalf("deleted id = %q", gotID)
	}
}
