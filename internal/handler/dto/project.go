package dto

import (
	"time"

	"github.com/projectdesk/projectdesk/internal/model"
)

// CreateProjectRequest represents the request body for creating a project.
type CreateProjectRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// UpdateProjectRequest represents a partial update. Absent fields stay nil
// and leave the stored value untouched.
type UpdateProjectRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ProjectResponse represents a full project in API responses.
type ProjectResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	OwnerID     string         `json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProjectSummary is the reduced shape used by the public listing.
type ProjectSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ToProjectResponse converts a Project model to ProjectResponse DTO.
func ToProjectResponse(project *model.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Metadata:    project.Metadata,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectSummaries converts a slice of Project models to summaries.
func ToProjectSummaries(projects []*model.Project) []ProjectSummary {
	summaries := make([]ProjectSummary, len(projects))
	for i, project := range projects {
		summaries[i] = ProjectSummary{
			ID:          project.ID,
			Title:       project.Title,
			Description: project.Description,
		}
	}
	return summaries
}
