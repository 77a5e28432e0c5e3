package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// User is the account record returned by the login endpoint and persisted
// alongside the token.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Store persists the session as plain files under a state directory:
// "token" holds the credential string, "user.json" the serialized user
// record. Reads and writes are synchronous; there is no cross-process
// invalidation, so two concurrent sessions last-writer-win.
type Store struct {
	dir string
}

const (
	tokenFile = "token"
	userFile  = "user.json"
)

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the state directory backing the store.
func (s *Store) Dir() string { return s.dir }

// Token returns the persisted session token, or "" when logged out.
func (s *Store) Token() string {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// User returns the persisted user record, or nil when none is stored.
func (s *Store) User() *User {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// Save writes the token and user record. Called exactly once per login.
func (s *Store) Save(token string, user *User) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to encode user: %w", err)
		}
		if err := os.WriteFile(filepath.Join(s.dir, userFile), data, 0600); err != nil {
			return fmt.Errorf("failed to write user: %w", err)
		}
	}
	return nil
}

// Clear removes the token and user record. Used for logout and for the
// forced logout on a 401 response.
func (s *Store) Clear() error {
	for _, name := range []string{tokenFile, userFile} {
		err := os.Remove(filepath.Join(s.dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}
