package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"treedash/internal/http-server/handlers/respond"
	"treedash/internal/models"
	"treedash/pkg/response"
)

type EventLister interface {
	ListEvents(ctx context.Context) ([]models.CalendarEvent, error)
}

type Response struct {
	response.Response
	Events []models.CalendarEvent `json:"events"`
}

func New(log *slog.Logger, lister EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.events.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		events, err := lister.ListEvents(r.Context())
		if err != nil {
			respond.Fail(w, r, log, err, "load events")
			return
		}
		if events == nil {
			events = []models.CalendarEvent{}
		}

		log.Info("Events retrieved", slog.Int("count", len(events)))
		render.JSON(w, r, Response{Events: events})
	}
}
