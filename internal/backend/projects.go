package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"treedash/internal/models"
)

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	const op = "backend.ListProjects"

	var projects []models.Project
	if err := c.getList(ctx, "/api/projects", &projects, "projects", "data"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	const op = "backend.GetProject"

	var p models.Project
	if err := c.getList(ctx, "/api/projects/"+url.PathEscape(id), &p, "project", "data"); err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (c *Client) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	const op = "backend.CreateProject"

	saved, err := c.saveProject(ctx, http.MethodPost, "/api/projects", p)
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

func (c *Client) UpdateProject(ctx context.Context, p models.Project) (models.Project, error) {
	const op = "backend.UpdateProject"

	saved, err := c.saveProject(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(p.ProjectID), p)
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

func (c *Client) saveProject(ctx context.Context, method, path string, p models.Project) (models.Project, error) {
	var env envelope
	if err := c.do(ctx, method, path, p, &env); err != nil {
		return models.Project{}, err
	}

	saved := p
	var echoed models.Project
	if err := env.decode(&echoed, "project", "data"); err == nil && echoed.ProjectID != "" {
		saved = echoed
	}
	return saved, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	const op = "backend.DeleteProject"

	if err := c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) ReorderProject(ctx context.Context, id string, order int) error {
	const op = "backend.ReorderProject"

	body := map[string]int{"order": order}
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id)+"/reorder", body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ImageURL is where the upstream serves a project's index-th image.
func (c *Client) ImageURL(projectID string, index int) string {
	return c.baseURL + "/api/projects/images/" + url.PathEscape(projectID) + "/" + strconv.Itoa(index)
}
