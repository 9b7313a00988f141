package get

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

type ProjectGetter interface {
	GetProject(ctx context.Context, id string) (api.ProjectView, error)
	ListProjects(ctx context.Context) ([]api.ProjectView, error)
}

type Response struct {
	response.Response
	Projects []api.ProjectView `json:"projects,omitempty"`
	Project  *api.ProjectView  `json:"project,omitempty"`
}

func New(log *slog.Logger, getter ProjectGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			project, err := getter.GetProject(r.Context(), id)
			if err != nil {
				respond.Fail(w, r, log, err, "load project")
				return
			}

			log.Info("Project retrieved", slog.String("id", id))
			render.JSON(w, r, Response{Project: &project})
			return
		}

		projects, err := getter.ListProjects(r.Context())
		if err != nil {
			respond.Fail(w, r, log, err, "load projects")
			return
		}
		if projects == nil {
			projects = []api.ProjectView{}
		}

		log.Info("Projects retrieved", slog.Int("count", len(projects)))
		render.JSON(w, r, Response{Projects: projects})
	}
}
