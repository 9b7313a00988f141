package toggle

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

type DayToggler interface {
	ToggleDay(ctx context.Context, date string) (api.ToggleResult, error)
}

type Response struct {
	response.Response
	Result api.ToggleResult `json:"result"`
}

func New(log *slog.Logger, toggler DayToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.toggle.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := chi.URLParam(r, "date")
		if date == "" {
			respond.Required(w, r, log, "date")
			return
		}

		res, err := toggler.ToggleDay(r.Context(), date)
		if err != nil {
			respond.Fail(w, r, log, err, "update availability")
			return
		}

		log.Info("Day toggled", slog.String("date", date), slog.String("status", string(res.Status)))
		render.JSON(w, r, Response{Result: res})
	}
}
