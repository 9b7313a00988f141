package week

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

type WeekViewer interface {
	WeekView(ctx context.Context, date string) (api.WeekView, error)
}

type Response struct {
	response.Response
	Week api.WeekView `json:"week"`
}

func New(log *slog.Logger, viewer WeekViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.week.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		view, err := viewer.WeekView(r.Context(), r.URL.Query().Get("date"))
		if err != nil {
			respond.Fail(w, r, log, err, "load week")
			return
		}

		log.Info("Week view built", slog.String("start", view.Start))
		render.JSON(w, r, Response{Week: view})
	}
}
