package reschedule

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"treedash/api"
	"treedash/internal/http-server/handlers/respond"
	"treedash/pkg/response"
)

type BookingMover interface {
	MoveBookings(ctx context.Context, req api.MoveRequest) (api.MoveResult, error)
}

type Request struct {
	api.MoveRequest
}

type Response struct {
	response.Response
	Result api.MoveResult `json:"result"`
}

func New(log *slog.Logger, mover BookingMover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.reschedule.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.DecodeFailed(w, r, log, err)
			return
		}

		if req.NewDate == "" {
			respond.Required(w, r, log, "new_date")
			return
		}

		if len(req.BookingIDs) == 0 && req.FromDate == "" {
			log.Error("neither booking_ids nor from_date given")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "booking_ids or from_date is required"))
			return
		}

		res, err := mover.MoveBookings(r.Context(), req.MoveRequest)
		if err != nil {
			respond.Fail(w, r, log, err, "move bookings")
			return
		}

		log.Info("Bookings rescheduled", slog.Int("moved", res.Moved), slog.String("new_date", res.NewDate))
		render.JSON(w, r, Response{Result: res})
	}
}
