// Package session owns the per-interaction authentication state and the
// registry that carries it across HTTP requests.
package session

import (
	"strings"
	"sync"
)

// Session is the authentication state of one interaction.
// The zero value is the logged-out state.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Identity      string `json:"identity"`
}

// DisplayName is the local part of the identity (text before '@').
func (s Session) DisplayName() string {
	local, _, _ := strings.Cut(s.Identity, "@")
	return local
}

// Manager guards a Session. Only the Auth service transitions it; everyone
// else reads snapshots via Current.
type Manager struct {
	mu sync.RWMutex
	s  Session
}

// NewManager returns a Manager in the logged-out state.
func NewManager() *Manager {
	return &Manager{}
}

// Restore returns a Manager holding s, e.g. one loaded from a Store.
func Restore(s Session) *Manager {
	return &Manager{s: s}
}

func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s
}

func (m *Manager) Authenticate(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = Session{Authenticated: true, Identity: identity}
}

// Reset moves to the logged-out state. It is idempotent.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = Session{}
}

func (m *Manager) DisplayName() string {
	return m.Current().DisplayName()
}
