// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder receives counter events from the service layer. Implementations
// must be safe for concurrent use.
type Recorder interface {
	IncUserRegistered()
	IncUserLogin()
	IncProjectCreated()
	IncProjectUpdated()
	IncProjectDeleted()
}
