package selected

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

type SelectedDater interface {
	SelectedDate(ctx context.Context) string
	SelectDate(ctx context.Context, date string) error
}

type Request struct {
	api.SelectedDate
}

type Response struct {
	response.Response
	api.SelectedDate
}

func New(log *slog.Logger, dater SelectedDater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.selected.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := dater.SelectedDate(r.Context())

		log.Debug("Selected date read", slog.String("date", date))
		render.JSON(w, r, Response{SelectedDate: api.SelectedDate{Date: date}})
	}
}

func NewSet(log *slog.Logger, dater SelectedDater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.selected.NewSet"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.DecodeFailed(w, r, log, err)
			return
		}

		if req.Date == "" {
			respond.Required(w, r, log, "date")
			return
		}

		if err := dater.SelectDate(r.Context(), req.Date); err != nil {
			respond.Fail(w, r, log, err, "store selected date")
			return
		}

		log.Info("Selected date stored", slog.String("date", req.Date))
		render.JSON(w, r, Response{SelectedDate: req.SelectedDate})
	}
}
