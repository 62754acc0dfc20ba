package session

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Manager isolates interview state per session identifier for hosts serving
// multiple interviews. Each session remains single-threaded; the manager only
// guards the lookup table.
type Manager struct {
	mu       sync.Mutex
	options  []Option
	sessions map[string]*Session
}

// NewManager constructs a Manager. The provided options apply to every
// session it opens.
func NewManager(options ...Option) *Manager {
	return &Manager{
		options:  options,
		sessions: make(map[string]*Session),
	}
}

// Open starts a new session for the form and registers it under its ID.
func (m *Manager) Open(form *schema.Form) *Session {
	s := New(form, m.options...)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

// Get returns the session registered under id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session: unknown session %q", id)
	}
	return s, nil
}

// Close removes the session from the manager.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
