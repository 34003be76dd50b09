package studio

import "sync"

// Sessions tracks live play sessions.
// Thread-safe for concurrent access.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
	}
}

// Register adds a session to the registry.
func (r *Sessions) Register(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Unregister removes a session from the registry.
func (r *Sessions) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get retrieves a session by ID.
func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (r *Sessions) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StopAll stops every registered session.
func (r *Sessions) StopAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		s.Stop()
	}
}
