package metrics

// NoopRecorder discards all events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (NoopRecorder) IncUserRegistered() {}
func (NoopRecorder) IncUserLogin()      {}
func (NoopRecorder) IncProjectCreated() {}
func (NoopRecorder) IncProjectUpdated() {}
func (NoopRecorder) IncProjectDeleted() {}
