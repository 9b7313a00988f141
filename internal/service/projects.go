package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"treedash/api"
	"treedash/internal/models"
	"treedash/internal/projects"
	"treedash/pkg/response"
	"treedash/pkg/sl"
)

// ListProjects loads the portfolio sorted by its display order, repairing
// legacy tag values on the way.
func (s *Service) ListProjects(ctx context.Context) ([]api.ProjectView, error) {
	const op = "service.ListProjects"

	list, err := s.backend.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	slices.SortStableFunc(list, func(a, b models.Project) int {
		return cmp.Compare(a.Order, b.Order)
	})
	s.state.SetProjects(list)
	s.reorder.Forget(orderOf(list))

	views := make([]api.ProjectView, 0, len(list))
	for _, p := range list {
		views = append(views, s.projectView(p))
	}
	return views, nil
}

func orderOf(list []models.Project) map[string]int {
	order := make(map[string]int, len(list))
	for _, p := range list {
		order[p.ProjectID] = p.Order
	}
	return order
}

func (s *Service) projectView(p models.Project) api.ProjectView {
	view := api.ProjectView{
		ProjectID:     p.ProjectID,
		Title:         p.Title,
		Duration:      p.Duration,
		Location:      p.Location,
		Description:   p.Description,
		ImagePreviews: p.ImagePreviews,
		ImageURLs:     make([]string, 0, len(p.ImagePreviews)),
		Published:     p.Published,
		Order:         p.Order,
	}
	if view.ImagePreviews == nil {
		view.ImagePreviews = []string{}
	}
	for i := range p.ImagePreviews {
		view.ImageURLs = append(view.ImageURLs, s.backend.ImageURL(p.ProjectID, i))
	}

	tags, rep, err := projects.RepairTags(p.RawTags)
	if err != nil {
		s.log.Warn("Project tags could not be repaired",
			slog.String("project_id", p.ProjectID),
			sl.Err(err),
		)
		view.Tags = []models.Tag{}
		view.TagsError = err.Error()
		return view
	}
	if rep.Changed() {
		s.log.Debug("Project tags repaired",
			slog.String("project_id", p.ProjectID),
			slog.Int("unwrapped", rep.Unwrapped),
			slog.Int("dropped", rep.Dropped),
		)
	}
	view.Tags = tags
	view.TagsRepaired = rep.Changed()

	return view
}

func (s *Service) GetProject(ctx context.Context, id string) (api.ProjectView, error) {
	const op = "service.GetProject"

	if strings.TrimSpace(id) == "" {
		return api.ProjectView{}, fmt.Errorf("%s: %w", op, response.ErrInvalidId)
	}

	p, err := s.backend.GetProject(ctx, id)
	if err != nil {
		return api.ProjectView{}, fmt.Errorf("%s: %w", op, err)
	}
	return s.projectView(p), nil
}

// SaveProject creates a project when id is empty and updates it otherwise.
// Tags are always written as a plain JSON array.
func (s *Service) SaveProject(ctx context.Context, id string, req api.ProjectRequest) (api.ProjectView, error) {
	const op = "service.SaveProject"

	p := models.Project{
		ProjectID:     id,
		Title:         strings.TrimSpace(req.Title),
		Duration:      strings.TrimSpace(req.Duration),
		Location:      strings.TrimSpace(req.Location),
		Description:   strings.TrimSpace(req.Description),
		RawTags:       projects.EncodeTags(req.Tags),
		ImagePreviews: req.ImagePreviews,
		Published:     req.Published,
		Order:         req.Order,
	}
	if p.ImagePreviews == nil {
		p.ImagePreviews = []string{}
	}

	var (
		saved models.Project
		err   error
	)
	if id == "" {
		saved, err = s.backend.CreateProject(ctx, p)
	} else {
		saved, err = s.backend.UpdateProject(ctx, p)
	}
	if err != nil {
		return api.ProjectView{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("Project saved",
		slog.String("project_id", saved.ProjectID),
		slog.Bool("created", id == ""),
	)

	return s.projectView(saved), nil
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	const op = "service.DeleteProject"

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s: %w", op, response.ErrInvalidId)
	}

	if err := s.backend.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("Project deleted", slog.String("project_id", id))
	return nil
}

// ReorderProjects records a new display order. The writes go out once the
// order has been still for the debounce delay.
func (s *Service) ReorderProjects(ctx context.Context, ids []string) (api.ReorderResult, error) {
	const op = "service.ReorderProjects"

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			return api.ReorderResult{}, fmt.Errorf("%s: duplicate or empty project id: %w", op, response.ErrBadRequest)
		}
		seen[id] = true
	}

	current := orderOf(s.state.Projects())
	if len(current) == 0 {
		if _, err := s.ListProjects(ctx); err != nil {
			return api.ReorderResult{}, fmt.Errorf("%s: %w", op, err)
		}
		current = orderOf(s.state.Projects())
	}
	for _, id := range ids {
		if _, ok := current[id]; !ok {
			return api.ReorderResult{}, fmt.Errorf("%s: project %s: %w", op, id, response.ErrNotFound)
		}
	}

	s.reorder.Schedule(ctx, ids, current)

	return api.ReorderResult{Scheduled: len(ids)}, nil
}

// FlushReorder writes any pending project order now. It is called on
// shutdown so a reorder made just before it is not lost.
func (s *Service) FlushReorder() (int, error) {
	return s.reorder.Flush()
}
