package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/projectdesk/projectdesk/internal/model"
)

// Common errors for project repository operations.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrOwnerNotFound   = errors.New("owner does not exist")
)

// foreignKeyViolationCode is the PostgreSQL error code for foreign_key_violation.
const foreignKeyViolationCode = "23503"

// CreateProject inserts a new project into the database.
// The owner must reference an existing user.
func (r *Repository) CreateProject(ctx context.Context, project *model.Project) error {
	metadata, err := marshalMetadata(project.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (id, title, description, metadata, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		project.ID,
		project.Title,
		project.Description,
		metadata,
		project.OwnerID,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrOwnerNotFound
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetProjectByID retrieves a project by its ID.
func (r *Repository) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	query := `
		SELECT id, title, description, metadata, owner_id, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project by ID: %w", err)
	}

	return project, nil
}

// ListProjects retrieves all projects, newest first.
func (r *Repository) ListProjects(ctx context.Context) ([]*model.Project, error) {
	query := `
		SELECT id, title, description, metadata, owner_id, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// UpdateProject writes a project's mutable fields. Field merging happens in
// the service layer; this is a full-row write of the mutable columns.
func (r *Repository) UpdateProject(ctx context.Context, project *model.Project) error {
	metadata, err := marshalMetadata(project.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET title = $2, description = $3, metadata = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		project.ID,
		project.Title,
		project.Description,
		metadata,
		project.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// DeleteProject removes a project.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// ProjectCountByOwner returns the number of projects owned by a user.
func (r *Repository) ProjectCountByOwner(ctx context.Context, ownerID string) (int64, error) {
	query := `SELECT COUNT(*) FROM projects WHERE owner_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}

	return count, nil
}

// scanProject scans a single row into a Project model.
// Metadata round-trips through jsonb explicitly so there is no
// driver-dependent conversion behavior.
func scanProject(row pgx.Row) (*model.Project, error) {
	var (
		project  model.Project
		metadata []byte
	)
	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&metadata,
		&project.OwnerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &project.Metadata); err != nil {
			return nil, fmt.Errorf("decode project metadata: %w", err)
		}
	}
	if project.Metadata == nil {
		project.Metadata = map[string]any{}
	}

	return &project, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("encode project metadata: %w", err)
	}
	return data, nil
}

// isForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
