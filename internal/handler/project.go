package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/projectdesk/projectdesk/internal/auth"
	"github.com/projectdesk/projectdesk/internal/handler/dto"
	"github.com/projectdesk/projectdesk/internal/service"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	svc    *service.ProjectService
	logger *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/projects. Public; returns reduced summaries.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectSummaries(projects))
}

// Get handles GET /api/projects/{id}. Public; returns the full project.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(project))
}

// Create handles POST /api/projects. The authenticated user becomes owner.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustUserFromContext(r.Context())

	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.svc.Create(r.Context(), actor, service.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("project_created",
		"project_id", project.ID,
		"owner_id", project.OwnerID,
	)

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(project))
}

// Update handles PUT /api/projects/{id}. Partial merge: only provided
// fields overwrite stored values.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req dto.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.svc.Update(r.Context(), actor, id, service.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("project_updated", "project_id", project.ID)

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(project))
}

// Delete handles DELETE /api/projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("project_deleted", "project_id", id)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Deleted"})
}

// handleServiceError maps project service errors to HTTP responses.
func (h *ProjectHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		writeError(w, http.StatusBadRequest, "Title is required")
	case errors.Is(err, service.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not allowed to modify this project")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}
