package delete

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"treedash/internal/http-server/handlers/respond"
)

type EventDeleter interface {
	DeleteEvent(ctx context.Context, id string, confirmed bool) error
}

func New(log *slog.Logger, deleter EventDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.events.delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			respond.Required(w, r, log, "id")
			return
		}

		confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

		if err := deleter.DeleteEvent(r.Context(), id, confirmed); err != nil {
			respond.Fail(w, r, log, err, "delete event")
			return
		}

		log.Info("Event deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
