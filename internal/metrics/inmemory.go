package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	UserLogins      uint64
	ProjectsCreated uint64
	ProjectsUpdated uint64
	ProjectsDeleted uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered uint64
	userLogins      uint64
	projectsCreated uint64
	projectsUpdated uint64
	projectsDeleted uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		UserLogins:      atomic.LoadUint64(&m.userLogins),
		ProjectsCreated: atomic.LoadUint64(&m.projectsCreated),
		ProjectsUpdated: atomic.LoadUint64(&m.projectsUpdated),
		ProjectsDeleted: atomic.LoadUint64(&m.projectsDeleted),
	}
}

func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

func (m *InMemoryRecorder) IncUserLogin() {
	atomic.AddUint64(&m.userLogins, 1)
}

func (m *InMemoryRecorder) IncProjectCreated() {
	atomic.AddUint64(&m.projectsCreated, 1)
}

func (m *InMemoryRecorder) IncProjectUpdated() {
	atomic.AddUint64(&m.projectsUpdated, 1)
}

func (m *InMemoryRecorder) IncProjectDeleted() {
	atomic.AddUint64(&m.projectsDeleted, 1)
}
