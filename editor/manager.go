package editor

import "sync"

// Manager tracks the sessions of a host editing several documents at
// once, keyed by name, with one optionally marked active. Unlike a
// single Session, a Manager is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	active   string
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Add registers a session under the given name. The first session added
// becomes the active one.
func (m *Manager) Add(name string, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[name]; ok {
		return ErrSessionExists
	}
	m.sessions[name] = s
	m.order = append(m.order, name)
	if m.active == "" {
		m.active = name
	}
	return nil
}

// Get returns the session registered under name.
func (m *Manager) Get(name string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[name]
	return s, ok
}

// Remove unregisters a session without closing it. Removing the active
// session leaves no session active.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[name]; !ok {
		return false
	}
	delete(m.sessions, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.active == name {
		m.active = ""
	}
	return true
}

// SetActive marks the named session active.
func (m *Manager) SetActive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[name]; !ok {
		return ErrSessionNotFound
	}
	m.active = name
	return nil
}

// Active returns the active session.
func (m *Manager) Active() (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[m.active]
	return s, ok
}

// Names returns the registered session names in registration order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of registered sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
