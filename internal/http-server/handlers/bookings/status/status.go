package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"treedash/api"
	"treedash/internal/http-server/handlers/respond"
	"treedash/internal/models"
	"treedash/pkg/response"
)

type StatusChanger interface {
	ChangeBookingStatus(ctx context.Context, id string, to models.BookingStatus) (api.BookingView, error)
}

type Request struct {
	api.StatusChangeRequest
}

type Response struct {
	response.Response
	Booking api.BookingView `json:"booking"`
}

func New(log *slog.Logger, changer StatusChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.status.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			respond.Required(w, r, log, "id")
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.DecodeFailed(w, r, log, err)
			return
		}

		if req.Status == "" {
			respond.Required(w, r, log, "status")
			return
		}

		booking, err := changer.ChangeBookingStatus(r.Context(), id, models.BookingStatus(req.Status))
		if err != nil {
			respond.Fail(w, r, log, err, "update booking status")
			return
		}

		log.Info("Booking status updated", slog.String("id", id), slog.String("status", req.Status))
		render.JSON(w, r, Response{Booking: booking})
	}
}
