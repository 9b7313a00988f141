package reorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"treedash/api"
	"treedash/internal/http-server/handlers/respond"
	"treedash/pkg/response"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ProjectReorderer interface {
	ReorderProjects(ctx context.Context, ids []string) (api.ReorderResult, error)
}

type Request struct {
	api.ReorderRequest
}

type Response struct {
	response.Response
	api.ReorderResult
}

func New(log *slog.Logger, reorderer ProjectReorderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.reorder.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.DecodeFailed(w, r, log, err)
			return
		}

		if err := validate.Struct(req.ReorderRequest); err != nil {
			respond.Fail(w, r, log, err, "validate order")
			return
		}

		res, err := reorderer.ReorderProjects(r.Context(), req.ProjectIDs)
		if err != nil {
			respond.Fail(w, r, log, err, "reorder projects")
			return
		}

		log.Info("Project order scheduled", slog.Int("count", res.Scheduled))
		w.WriteHeader(http.StatusAccepted)
		render.JSON(w, r, Response{ReorderResult: res})
	}
}
