package get

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

type TrashLister interface {
	ListTrash(ctx context.Context, query string) (api.TrashView, error)
}

type Response struct {
	response.Response
	Trash api.TrashView `json:"trash"`
}

func New(log *slog.Logger, lister TrashLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.trash.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		view, err := lister.ListTrash(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			respond.Fail(w, r, log, err, "load trash")
			return
		}

		log.Info("Trash retrieved", slog.Int("count", len(view.Items)), slog.Int("cleaned_up", view.CleanedUp))
		render.JSON(w, r, Response{Trash: view})
	}
}
