// Package session persists the authenticated user's credential on disk so
// repositories can read it synchronously between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"unitip-client/internal/domain"
)

// FileStore keeps the current session in memory and mirrors it to a JSON
// file. Read never touches the disk; the file is loaded once at construction
// and rewritten on Save/Clear. Safe for concurrent readers with a single
// writer (the auth flow).
type FileStore struct {
	mu      sync.RWMutex
	path    string
	current *domain.Session
}

// NewFileStore loads any previously saved session from path. A missing file
// is not an error; it just means no session.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt credential file is treated as no session rather than a
		// fatal error; the next login rewrites it.
		return s, nil
	}
	s.current = &sess
	return s, nil
}

// Read returns the current session. The second return is false when no
// session is stored.
func (s *FileStore) Read() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// Save replaces the current session and persists it.
func (s *FileStore) Save(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.current = &sess
	return nil
}

// Clear removes the stored session, both in memory and on disk.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
