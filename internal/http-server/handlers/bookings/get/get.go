package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"treedash/api"
	"treedash/internal/http-server/handlers/respond"
	"treedash/pkg/response"
	"treedash/pkg/sl"
)

// LogoutAfter is how long the shell waits before the forced logout.
const LogoutAfter = 2000

type BookingLister interface {
	ListBookings(ctx context.Context) ([]api.BookingView, error)
}

type Response struct {
	response.Response
	Bookings      []api.BookingView `json:"bookings,omitempty"`
	Logout        bool              `json:"logout,omitempty"`
	LogoutAfterMs int               `json:"logout_after_ms,omitempty"`
}

func New(log *slog.Logger, lister BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		bookings, err := lister.ListBookings(r.Context())

		// a rejected session while loading bookings ends it
		if errors.Is(err, response.ErrUnauthorized) {
			log.Warn("Session rejected by upstream", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, Response{
				Response:      response.Error(string(response.SESSION_EXPIRED), "session expired, please sign in again"),
				Logout:        true,
				LogoutAfterMs: LogoutAfter,
			})
			return
		}

		if err != nil {
			respond.Fail(w, r, log, err, "load bookings")
			return
		}
		if bookings == nil {
			bookings = []api.BookingView{}
		}

		log.Info("Bookings retrieved", slog.Int("count", len(bookings)))
		render.JSON(w, r, Response{Bookings: bookings})
	}
}
