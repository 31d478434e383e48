package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	tokenKey       = "token"
	storageTimeout = 5 * time.Second
)

// CredentialStore keeps the bearer token in local storage so it survives
// between CLI runs.
type CredentialStore struct {
	kv  *LocalStorage
	log *slog.Logger
}

// NewCredentialStore creates a credential store on db.
func NewCredentialStore(db *DB, log *slog.Logger) *CredentialStore {
	return &CredentialStore{kv: NewLocalStorage(db), log: log}
}

// Token returns the stored token. Read failures are logged and reported
// as no token.
func (s *CredentialStore) Token() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	token, err := s.kv.Get(ctx, tokenKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("reading token failed", "error", err)
		}
		return "", false
	}
	return token, token != ""
}

// SetToken stores token.
func (s *CredentialStore) SetToken(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return s.kv.Set(ctx, tokenKey, token)
}

// ClearToken removes the token.
func (s *CredentialStore) ClearToken() error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return s.kv.Remove(ctx, tokenKey)
}
