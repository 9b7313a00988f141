package delete

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"treedash/internal/http-server/handlers/respond"
)

type BookingPurger interface {
	PurgeBooking(ctx context.Context, id string) error
}

func New(log *slog.Logger, purger BookingPurger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.trash.delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			respond.Required(w, r, log, "id")
			return
		}

		if err := purger.PurgeBooking(r.Context(), id); err != nil {
			respond.Fail(w, r, log, err, "delete booking")
			return
		}

		log.Info("Booking deleted permanently", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
