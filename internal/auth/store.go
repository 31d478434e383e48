// Package auth holds the bearer token and drives login, registration and
// logout.
package auth

import (
	"errors"
	"sync"
)

// ErrNoToken is returned when a token is required but none is stored.
var ErrNoToken = errors.New("no token stored")

// CredentialStore keeps the opaque bearer token.
type CredentialStore interface {
	Token() (string, bool)
	SetToken(token string) error
	ClearToken() error
}

// MemoryStore is a CredentialStore living only for the process.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token implements CredentialStore.
func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken implements CredentialStore.
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// ClearToken implements CredentialStore.
func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
