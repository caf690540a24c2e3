package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_StartsLoggedOut(t *testing.T) {
	m := NewManager()
	assert.Equal(t, Session{}, m.Current())
	assert.Equal(t, "", m.DisplayName())
}

func TestManager_AuthenticateAndReset(t *testing.T) {
	m := NewManager()

	m.Authenticate("jane.doe@guidehousefederal.com")
	assert.Equal(t, Session{Authenticated: true, Identity: "jane.doe@guidehousefederal.com"}, m.Current())
	assert.Equal(t, "jane.doe", m.DisplayName())

	m.Reset()
	assert.Equal(t, Session{}, m.Current())

	// idempotent
	m.Reset()
	assert.Equal(t, Session{}, m.Current())
}

func TestRestore(t *testing.T) {
	s := Session{Authenticated: true, Identity: "a@guidehousefederal.com"}
	assert.Equal(t, s, Restore(s).Current())
}

func TestSession_DisplayName(t *testing.T) {
	tests := []struct {
		identity string
		want     string
	}{
		{"a@guidehousefederal.com", "a"},
		{"noat", "noat"},
		{"x@y@z", "x"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Session{Identity: tt.identity}.DisplayName(), tt.identity)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Authenticate("a@guidehousefederal.com")
		}()
		go func() {
			defer wg.Done()
			s := m.Current()
			if s.Authenticated {
				assert.Equal(t, "a@guidehousefederal.com", s.Identity)
			}
		}()
	}
	wg.Wait()
	assert.True(t, m.Current().Authenticated)
}
