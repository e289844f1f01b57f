package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is an authenticated user of the backend.
type Session struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Name   string `json:"name,omitempty"`
}

// Valid reports whether the session can be used to call the backend.
func (s *Session) Valid() bool { return s != nil && s.Token != "" && s.UserID > 0 }

// SaveSession writes s to path, readable by the current user only.
func SaveSession(path string, s *Session) error {
	if !s.Valid() {
		return fmt.Errorf("cannot save an invalid session")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("cannot create session folder: %w", err)
	}
	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("cannot save session: %w", err)
	}
	return nil
}

// LoadSession reads the session saved at path. A missing file is ErrNoSession.
func LoadSession(path string) (*Session, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(content, &s); err != nil {
		return nil, fmt.Errorf("corrupted session file %q: %w", path, err)
	}
	if !s.Valid() {
		return nil, ErrNoSession
	}
	return &s, nil
}

// DeleteSession removes the session saved at path, if any.
func DeleteSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot delete session: %w", err)
	}
	return nil
}
