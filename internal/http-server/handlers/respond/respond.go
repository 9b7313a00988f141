package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"treedash/internal/backend"
	"treedash/internal/events"
	"treedash/pkg/response"
	"treedash/pkg/sl"
)

type failure struct {
	target error
	status int
	code   response.ErrCode
}

var failures = []failure{
	{response.ErrFullDayJobLocked, http.StatusConflict, response.DAY_LOCKED},
	{response.ErrIllegalTransition, http.StatusConflict, response.ILLEGAL_TRANSITION},
	{response.ErrConfirmRequired, http.StatusPreconditionRequired, response.CONFIRM_REQUIRED},
	{response.ErrLocked, http.StatusLocked, response.LOCKED},
	{events.ErrSubmitting, http.StatusLocked, response.LOCKED},
	{events.ErrModalState, http.StatusConflict, response.CONFLICT},
	{response.ErrUnauthorized, http.StatusUnauthorized, response.UNAUTHORIZED},
	{response.ErrNotFound, http.StatusNotFound, response.NOT_FOUND},
	{response.ErrConflict, http.StatusConflict, response.CONFLICT},
	{response.ErrInvalidId, http.StatusBadRequest, response.BAD_REQUEST},
	{response.ErrBadRequest, http.StatusBadRequest, response.BAD_REQUEST},
}

// Fail maps err to a status and error body. Upstream messages are passed
// through as they are; what names the action for the catch-all message.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, what string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		log.Error("Validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	var upstream *backend.Error

	for _, f := range failures {
		if !errors.Is(err, f.target) {
			continue
		}

		msg := f.target.Error()
		if errors.As(err, &upstream) && upstream.Message != "" {
			msg = upstream.Message
		}

		log.Error(msg, sl.Err(err))
		w.WriteHeader(f.status)
		render.JSON(w, r, response.Error(string(f.code), msg))
		return
	}

	if errors.As(err, &upstream) {
		log.Error("Upstream request failed", slog.Int("upstream_status", upstream.Status), sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error(string(response.UPSTREAM_ERROR), upstream.Message))
		return
	}

	log.Error("Failed to "+what, sl.Err(err))
	w.WriteHeader(http.StatusInternalServerError)
	render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to "+what))
}

// DecodeFailed answers a body that could not be decoded.
func DecodeFailed(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Error("Failed to decode request body", sl.Err(err))
	w.WriteHeader(http.StatusBadRequest)
	render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
}

// Required answers a missing path or query parameter.
func Required(w http.ResponseWriter, r *http.Request, log *slog.Logger, name string) {
	log.Error(name + " is empty")
	w.WriteHeader(http.StatusBadRequest)
	render.JSON(w, r, response.Error(string(response.BAD_REQUEST), name+" is required"))
}
