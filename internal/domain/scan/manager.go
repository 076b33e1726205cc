package scan

import (
	"sync"
)

// Manager keys sessions by terminal so several registers can scan
// concurrently without sharing draft or channel state.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  func(terminalID string) *Session
}

// NewManager creates a session manager. factory builds a session for a
// terminal seen for the first time.
func NewManager(factory func(terminalID string) *Session) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		factory:  factory,
	}
}

// Get returns the terminal's session, creating it on first use.
func (m *Manager) Get(terminalID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[terminalID]; ok {
		return s
	}
	s := m.factory(terminalID)
	m.sessions[terminalID] = s
	return s
}

// Close discards the terminal's session. In-flight resolutions for it are
// invalidated first.
func (m *Manager) Close(terminalID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[terminalID]; ok {
		s.DiscardInFlight()
		delete(m.sessions, terminalID)
	}
}
