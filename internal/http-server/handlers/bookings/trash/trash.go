package trash

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"treedash/internal/http-server/handlers/respond"
)

type BookingTrasher interface {
	TrashBooking(ctx context.Context, id string) error
}

func New(log *slog.Logger, trasher BookingTrasher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.trash.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			respond.Required(w, r, log, "id")
			return
		}

		if err := trasher.TrashBooking(r.Context(), id); err != nil {
			respond.Fail(w, r, log, err, "move booking to trash")
			return
		}

		log.Info("Booking trashed", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
