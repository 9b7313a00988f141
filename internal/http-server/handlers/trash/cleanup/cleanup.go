package cleanup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"treedash/internal/http-server/handlers/respond"
	"treedash/pkg/response"
)

type TrashCleaner interface {
	CleanupTrash(ctx context.Context) (int, error)
}

type Response struct {
	response.Response
	Deleted int `json:"deleted"`
}

func New(log *slog.Logger, cleaner TrashCleaner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.trash.cleanup.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		deleted, err := cleaner.CleanupTrash(r.Context())
		if err != nil {
			respond.Fail(w, r, log, err, "clean up trash")
			return
		}

		log.Info("Trash cleaned up", slog.Int("deleted", deleted))
		render.JSON(w, r, Response{Deleted: deleted})
	}
}
