package state

import (
	"sync"
)

type SessionKind string

const (
	KindOnboarding   SessionKind = "onboarding"
	KindEmailCapture SessionKind = "email_capture"
	KindResetConfirm SessionKind = "reset_confirm"
)

// Session is the transient per-sender conversation state. A sender has at
// most one active session; which kind wins is the router's call, not ours.
type Session struct {
	Phone string
	Kind  SessionKind
	Step  int               // onboarding progress, unused for other kinds
	Data  map[string]string // fields collected so far
}

// Manager keeps sessions in memory. Nothing is persisted: a restart drops
// every in-flight conversation, which is a documented limitation.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Get(phone string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sessions[phone]
}

func (m *Manager) Set(phone string, session *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.Phone = phone
	if session.Data == nil {
		session.Data = make(map[string]string)
	}
	m.sessions[phone] = session
}

func (m *Manager) Delete(phone string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, phone)
}

// Has reports whether the sender currently owns a session of the given kind.
func (m *Manager) Has(phone string, kind SessionKind) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[phone]
	return exists && session.Kind == kind
}
