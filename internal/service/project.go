package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/projectdesk/projectdesk/internal/metrics"
	"github.com/projectdesk/projectdesk/internal/model"
	"github.com/projectdesk/projectdesk/internal/repository"
)

// Project service errors.
var (
	ErrTitleRequired   = errors.New("title is required")
	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("not allowed to modify this project")
)

// ProjectStore is the persistence surface the project service needs.
// *repository.Repository satisfies it.
type ProjectStore interface {
	CreateProject(ctx context.Context, project *model.Project) error
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id string) error
}

// ProjectService handles project CRUD and the ownership policy.
type ProjectService struct {
	projects ProjectStore
	metrics  metrics.Recorder
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects ProjectStore, recorder metrics.Recorder) *ProjectService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProjectService{
		projects: projects,
		metrics:  recorder,
	}
}

// CreateProjectInput defines input for creating a project.
type CreateProjectInput struct {
	Title       string
	Description string
	Metadata    map[string]any
}

// Create creates a project owned by the acting user.
func (s *ProjectService) Create(ctx context.Context, actor *model.User, input CreateProjectInput) (*model.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	metadata := input.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:          ulid.Make().String(),
		Title:       title,
		Description: input.Description,
		Metadata:    metadata,
		OwnerID:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.metrics.IncProjectCreated()

	return project, nil
}

// Get retrieves a single project.
func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projects.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// List retrieves all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProjectInput defines a partial update. Nil fields are left untouched.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Metadata    map[string]any
}

// Update applies a partial update to a project. Only the owner or an admin
// may update; only the provided fields overwrite existing values.
func (s *ProjectService) Update(ctx context.Context, actor *model.User, id string, input UpdateProjectInput) (*model.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !project.EditableBy(actor) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		project.Title = title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Metadata != nil {
		project.Metadata = input.Metadata
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.metrics.IncProjectUpdated()

	return project, nil
}

// Delete removes a project. Only the owner or an admin may delete.
func (s *ProjectService) Delete(ctx context.Context, actor *model.User, id string) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !project.EditableBy(actor) {
		return ErrForbidden
	}

	if err := s.projects.DeleteProject(ctx, project.ID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.metrics.IncProjectDeleted()

	return nil
}
