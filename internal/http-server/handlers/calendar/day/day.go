package day

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"treedash/api"
	"treedash/internal/http-server/handlers/respond"
	"treedash/pkg/response"
)

type DayViewer interface {
	DayView(ctx context.Context, date string) (api.DayView, error)
}

type Response struct {
	response.Response
	Day api.DayView `json:"day"`
}

func New(log *slog.Logger, viewer DayViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.day.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := chi.URLParam(r, "date")
		if date == "" {
			respond.Required(w, r, log, "date")
			return
		}

		view, err := viewer.DayView(r.Context(), date)
		if err != nil {
			respond.Fail(w, r, log, err, "load day")
			return
		}

		log.Info("Day view built", slog.String("date", date), slog.Int("items", view.Total))
		render.JSON(w, r, Response{Day: view})
	}
}
