package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mekedron/daleeli/internal/domain"
)

const (
	defaultDirName  = ".daleeli"
	defaultFileName = "session.json"
	envSessionPath  = "DALEELI_SESSION_PATH"
)

var (
	// ErrSessionNotFound is returned when the session file does not exist.
	ErrSessionNotFound = errors.New("session file not found")
	// ErrInvalidSession is returned when the session payload is malformed.
	ErrInvalidSession = errors.New("session file is invalid")
)

// Store loads and writes the local session.
type Store struct {
	path string
}

// NewStore creates a store using env overrides or defaults.
func NewStore() (*Store, error) {
	if path := os.Getenv(envSessionPath); path != "" {
		return &Store{path: path}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &Store{path: filepath.Join(home, defaultDirName, defaultFileName)}, nil
}

// NewStoreAt creates a store backed by path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns current session path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session file.
func (s *Store) Load(_ context.Context) (domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Session{}, ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	for _, account := range session.Accounts {
		if account.Email == "" {
			return domain.Session{}, fmt.Errorf("%w: account without email", ErrInvalidSession)
		}
	}
	return session, nil
}

// LoadOrEmpty reads the session and treats a missing file as an empty one.
func (s *Store) LoadOrEmpty(ctx context.Context) (domain.Session, error) {
	session, err := s.Load(ctx)
	if errors.Is(err, ErrSessionNotFound) {
		return domain.Session{}, nil
	}
	return session, err
}

// Save writes the session payload.
func (s *Store) Save(_ context.Context, session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
