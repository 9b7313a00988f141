package save

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"treedash/api"
	"treedash/internal/events"
	"treedash/internal/http-server/handlers/respond"
	"treedash/pkg/response"
)

type EventSaver interface {
	SaveEvent(ctx context.Context, id string, form events.Form) (api.EventResult, error)
}

type Request struct {
	events.Form
}

type Response struct {
	response.Response
	api.EventResult
}

// New serves both create (POST /events) and edit (PUT /events/{id}).
func New(log *slog.Logger, saver EventSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.events.save.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.DecodeFailed(w, r, log, err)
			return
		}

		id := chi.URLParam(r, "id")

		res, err := saver.SaveEvent(r.Context(), id, req.Form)
		if err != nil {
			respond.Fail(w, r, log, err, "save event")
			return
		}

		log.Info("Event saved", slog.String("event_id", res.Event.ID), slog.Int("warnings", len(res.Warnings)))

		if id == "" {
			w.WriteHeader(http.StatusCreated)
		}
		render.JSON(w, r, Response{EventResult: res})
	}
}
