package marketplace

import (
	"context"
	"fmt"
	"net/http"

	"marketplace_web/internal/models/project"
)

func (s *Storage) ReadProjects(ctx context.Context) ([]project.Project, error) {
	const op = "storage.marketplace.ReadProjects"

	var projects []project.Project
	if err := s.getJSON(ctx, "/api/projects", "/api/projects", &projects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

func (s *Storage) ReadProject(ctx context.Context, projectId int64) (project.Project, error) {
	const op = "storage.marketplace.ReadProject"

	var p project.Project
	path := fmt.Sprintf("/api/projects/%d", projectId)
	if err := s.getJSON(ctx, "/api/projects/{id}", path, &p); err != nil {
		return project.Project{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Storage) SaveProject(ctx context.Context, req project.ProjectRequest) (int64, error) {
	const op = "storage.marketplace.SaveProject"

	res, err := s.sendJSON(ctx, http.MethodPost, "/api/projects", "/api/projects", req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.ProjectId, nil
}

func (s *Storage) PatchProject(ctx context.Context, projectId int64, req project.ProjectPatchRequest) error {
	const op = "storage.marketplace.PatchProject"

	path := fmt.Sprintf("/api/projects/%d", projectId)
	if _, err := s.sendJSON(ctx, http.MethodPut, "/api/projects/{id}", path, req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteProject(ctx context.Context, projectId int64) error {
	const op = "storage.marketplace.DeleteProject"

	path := fmt.Sprintf("/api/projects/%d", projectId)
	if _, err := s.sendJSON(ctx, http.MethodDelete, "/api/projects/{id}", path, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) ReadAvailableProjects(ctx context.Context) ([]project.Project, error) {
	const op = "storage.marketplace.ReadAvailableProjects"

	var projects []project.Project
	if err := s.getJSON(ctx, "/api/available_projects", "/api/available_projects", &projects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

func (s *Storage) ReadMyProjects(ctx context.Context) ([]project.Project, error) {
	const op = "storage.marketplace.ReadMyProjects"

	var projects []project.Project
	if err := s.getJSON(ctx, "/api/my_projects", "/api/my_projects", &projects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

func (s *Storage) ReadHistory(ctx context.Context) ([]project.Project, error) {
	const op = "storage.marketplace.ReadHistory"

	var projects []project.Project
	if err := s.getJSON(ctx, "/api/history", "/api/history", &projects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}
