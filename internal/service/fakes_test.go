package service

import (
	"context"
	"sync"

	"github.com/projectdesk/projectdesk/internal/model"
	"github.com/projectdesk/projectdesk/internal/repository"
)

// fakeUserStore is an in-memory UserStore for tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by ID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// fakeProjectStore is an in-memory ProjectStore for tests.
type fakeProjectStore struct {
	mu       sync.Mutex
	projects map[string]*model.Project
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: make(map[string]*model.Project)}
}

func (f *fakeProjectStore) CreateProject(_ context.Context, project *model.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *project
	f.projects[project.ID] = &copied
	return nil
}

func (f *fakeProjectStore) GetProjectByID(_ context.Context, id string) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project, ok := f.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	copied := *project
	return &copied, nil
}

func (f *fakeProjectStore) ListProjects(_ context.Context) ([]*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*model.Project, 0, len(f.projects))
	for _, project := range f.projects {
		copied := *project
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeProjectStore) UpdateProject(_ context.Context, project *model.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[project.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	copied := *project
	f.projects[project.ID] = &copied
	return nil
}

func (f *fakeProjectStore) DeleteProject(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}
