package session

import (
	"sync"
)

// Manager es el dueño de las sesiones vivas, indexadas por usuario.
// Al quitar una sesión se cancelan sus timers: ningún cierre programado
// sobrevive al logout.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager construye el registro de sesiones.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get devuelve la sesión del usuario, o nil si no hay.
func (m *Manager) Get(userID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[userID]
}

// Put registra la sesión del usuario, cerrando la anterior si existía.
func (m *Manager) Put(userID string, s *Session) {
	m.mu.Lock()
	prev := m.sessions[userID]
	m.sessions[userID] = s
	m.mu.Unlock()
	if prev != nil {
		prev.Close()
	}
}

// Remove quita y cierra la sesión del usuario.
func (m *Manager) Remove(userID string) {
	m.mu.Lock()
	s := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if s != nil {
		s.Close()
	}
}

// Range recorre las sesiones vivas. fn no debe retener la referencia.
func (m *Manager) Range(fn func(s *Session)) {
	m.mu.RLock()
	snapshot := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		snapshot = append(snapshot, s)
	}
	m.mu.RUnlock()
	for _, s := range snapshot {
		fn(s)
	}
}

// Teardown cierra todas las sesiones (apagado del servicio).
func (m *Manager) Teardown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
