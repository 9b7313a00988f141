package save

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"treedash/api"
	"treedash/internal/http-server/handlers/respond"
	"treedash/pkg/response"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ProjectSaver interface {
	SaveProject(ctx context.Context, id string, req api.ProjectRequest) (api.ProjectView, error)
}

type Request struct {
	api.ProjectRequest
}

type Response struct {
	response.Response
	Project api.ProjectView `json:"project"`
}

// New serves both create (POST /projects) and update (PUT /projects/{id}).
func New(log *slog.Logger, saver ProjectSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.save.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.DecodeFailed(w, r, log, err)
			return
		}

		if err := validate.Struct(req.ProjectRequest); err != nil {
			respond.Fail(w, r, log, err, "validate project")
			return
		}

		id := chi.URLParam(r, "id")

		project, err := saver.SaveProject(r.Context(), id, req.ProjectRequest)
		if err != nil {
			respond.Fail(w, r, log, err, "save project")
			return
		}

		log.Info("Project saved", slog.String("id", project.ProjectID))

		if id == "" {
			w.WriteHeader(http.StatusCreated)
		}
		render.JSON(w, r, Response{Project: project})
	}
}
