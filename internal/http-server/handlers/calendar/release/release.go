package release

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

type JobReleaser interface {
	ReleaseFullDayJob(ctx context.Context, date string) (api.DayView, error)
}

type Response struct {
	response.Response
	Day api.DayView `json:"day"`
}

func New(log *slog.Logger, releaser JobReleaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.release.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := chi.URLParam(r, "date")
		if date == "" {
			respond.Required(w, r, log, "date")
			return
		}

		view, err := releaser.ReleaseFullDayJob(r.Context(), date)
		if err != nil {
			respond.Fail(w, r, log, err, "release full-day job")
			return
		}

		log.Info("Full-day job released", slog.String("date", date))
		render.JSON(w, r, Response{Day: view})
	}
}
