package restore

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"treedash/internal/http-server/handlers/respond"
	"treedash/internal/models"
	"treedash/pkg/response"
)

type BookingRestorer interface {
	RestoreBooking(ctx context.Context, id string) (models.Booking, error)
}

type Response struct {
	response.Response
	Booking models.Booking `json:"booking"`
}

func New(log *slog.Logger, restorer BookingRestorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.trash.restore.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			respond.Required(w, r, log, "id")
			return
		}

		booking, err := restorer.RestoreBooking(r.Context(), id)
		if err != nil {
			respond.Fail(w, r, log, err, "restore booking")
			return
		}

		log.Info("Booking restored", slog.String("id", id))
		render.JSON(w, r, Response{Booking: booking})
	}
}
