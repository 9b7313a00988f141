package agenda

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

type AgendaViewer interface {
	Agenda(ctx context.Context, date string) (api.AgendaView, error)
}

type Response struct {
	response.Response
	Agenda api.AgendaView `json:"agenda"`
}

func New(log *slog.Logger, viewer AgendaViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.agenda.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		view, err := viewer.Agenda(r.Context(), r.URL.Query().Get("date"))
		if err != nil {
			respond.Fail(w, r, log, err, "load agenda")
			return
		}

		log.Info("Agenda built", slog.String("date", view.Date), slog.Int("groups", len(view.Groups)))
		render.JSON(w, r, Response{Agenda: view})
	}
}
