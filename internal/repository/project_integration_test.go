//go:build integration

package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/projectdesk/projectdesk/internal/testutil"
)

func TestIntegrationProjectRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("owner"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	project := testutil.NewTestProject(t, owner.ID)
	project.Metadata = map[string]any{"stage": "alpha", "stars": float64(3)}

	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	retrieved, err := repo.GetProjectByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProjectByID failed: %v", err)
	}

	if retrieved.Title != project.Title {
		t.Errorf("Title mismatch: got %q, want %q", retrieved.Title, project.Title)
	}
	if retrieved.OwnerID != owner.ID {
		t.Errorf("OwnerID mismatch: got %q, want %q", retrieved.OwnerID, owner.ID)
	}
	if retrieved.Metadata["stage"] != "alpha" {
		t.Errorf("Metadata did not round-trip: %v", retrieved.Metadata)
	}
}

func TestIntegrationProjectRepository_CreateWithUnknownOwner(t *testing.T) {
	ctx, repo := newTestEnv(t)

	project := testutil.NewTestProject(t, "no-such-user")

	err := repo.CreateProject(ctx, project)
	if !errors.Is(err, ErrOwnerNotFound) {
		t.Errorf("Expected ErrOwnerNotFound, got: %v", err)
	}
}

func TestIntegrationProjectRepository_List(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("list"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	first := testutil.NewTestProject(t, owner.ID)
	second := testutil.NewTestProject(t, owner.ID)
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	if err := repo.CreateProject(ctx, first); err != nil {
		t.Fatalf("CreateProject (first) failed: %v", err)
	}
	if err := repo.CreateProject(ctx, second); err != nil {
		t.Fatalf("CreateProject (second) failed: %v", err)
	}

	projects, err := repo.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}

	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	// Newest first.
	if projects[0].ID != second.ID {
		t.Errorf("expected newest project first, got %q", projects[0].ID)
	}
}

func TestIntegrationProjectRepository_Update(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("update"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	project := testutil.NewTestProject(t, owner.ID)
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	project.Title = "Renamed"
	project.Metadata = map[string]any{"renamed": true}
	project.UpdatedAt = time.Now().UTC()

	if err := repo.UpdateProject(ctx, project); err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}

	retrieved, err := repo.GetProjectByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProjectByID failed: %v", err)
	}
	if retrieved.Title != "Renamed" {
		t.Errorf("Title mismatch after update: got %q", retrieved.Title)
	}
	if retrieved.Metadata["renamed"] != true {
		t.Errorf("Metadata mismatch after update: %v", retrieved.Metadata)
	}
}

func TestIntegrationProjectRepository_Delete(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("delete"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	project := testutil.NewTestProject(t, owner.ID)
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	if err := repo.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	if _, err := repo.GetProjectByID(ctx, project.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound after delete, got: %v", err)
	}

	if err := repo.DeleteProject(ctx, project.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound for repeat delete, got: %v", err)
	}
}

func TestIntegrationProjectRepository_CountByOwner(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("count"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.CreateProject(ctx, testutil.NewTestProject(t, owner.ID)); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
	}

	count, err := repo.ProjectCountByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ProjectCountByOwner failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 projects, got %d", count)
	}
}
