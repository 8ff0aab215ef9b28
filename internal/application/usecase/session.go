package usecase

import (
	"sync"

	"github.com/google/uuid"

	"momentchain/internal/domain/entity"
)

// Session is the in-memory state of one migration run: the progress log and
// the mapping from local-asset handle to resolved storage address. It lives
// for exactly one run and is never shared between runs.
type Session struct {
	mu       sync.Mutex
	runID    string
	resolved map[string]string
	events   []entity.Event
	report   *entity.RunReport
}

func newSession() *Session {
	return &Session{
		runID:    uuid.New().String(),
		resolved: make(map[string]string),
	}
}

func (s *Session) RunID() string {
	return s.runID
}

func (s *Session) record(event entity.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *Session) resolve(handle, address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved[handle] = address
}

// Resolved returns a copy of the handle-to-address mapping.
func (s *Session) Resolved() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.resolved))
	for k, v := range s.resolved {
		out[k] = v
	}

	return out
}

// Events returns a snapshot of the progress log.
func (s *Session) Events() []entity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Event, len(s.events))
	copy(out, s.events)

	return out
}

func (s *Session) finish(report *entity.RunReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
}

func (s *Session) Report() *entity.RunReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.report
}
