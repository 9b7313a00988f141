package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"

	"treedash/internal/backend"
	"treedash/pkg/response"
)

func TestFail(t *testing.T) {
	type form struct {
		Title string `validate:"required"`
	}
	verr := validator.New().Struct(form{})

	tests := []struct {
		name   string
		err    error
		status int
		code   response.ErrCode
		msg    string
	}{
		{"not found", fmt.Errorf("op: %w", response.ErrNotFound), http.StatusNotFound, response.NOT_FOUND, "resource not found"},
		{"locked", fmt.Errorf("op: %w", response.ErrLocked), http.StatusLocked, response.LOCKED, "resource is locked"},
		{"full-day job", fmt.Errorf("op: %w", response.ErrFullDayJobLocked), http.StatusConflict, response.DAY_LOCKED, "date is locked by a full-day job"},
		{"illegal transition", fmt.Errorf("op: %w", response.ErrIllegalTransition), http.StatusConflict, response.ILLEGAL_TRANSITION, "illegal status transition"},
		{"confirm", fmt.Errorf("op: %w", response.ErrConfirmRequired), http.StatusPreconditionRequired, response.CONFIRM_REQUIRED, "confirmation required"},
		{"upstream 404 verbatim", fmt.Errorf("op: %w", &backend.Error{Status: 404, Message: "Booking not found"}), http.StatusNotFound, response.NOT_FOUND, "Booking not found"},
		{"upstream 500 verbatim", fmt.Errorf("op: %w", &backend.Error{Status: 500, Message: "database down"}), http.StatusBadGateway, response.UPSTREAM_ERROR, "database down"},
		{"validation", fmt.Errorf("op: %w", verr), http.StatusBadRequest, response.VALIDATION_FAILED, "Field 'Title' is required"},
		{"other", errors.New("boom"), http.StatusInternalServerError, response.FAILED_REQUEST, "failed to save"},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			Fail(rec, req, log, tt.err, "save")

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}

			var body response.Response
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != string(tt.code) || body.Message != tt.msg {
				t.Fatalf("body = %+v, want %s %q", body.ResponseError, tt.code, tt.msg)
			}
		})
	}
}
