// Package storage provides the durable token stores behind the session's
// single well-known key: a file under the user config dir (default) and a
// Redis key for shared headless agents.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sajilokaam/client-core/internal/core/ports"
)

const tokenFileName = "jwt_token"

// FileTokenStore persists the bearer token as a single file, the headless
// equivalent of the browser's localStorage key. Absence of the file means
// logged-out.
type FileTokenStore struct {
	path string
}

var _ ports.TokenStore = (*FileTokenStore)(nil)

// NewFileTokenStore stores the token at path. Empty path falls back to
// DefaultTokenPath.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		var err error
		path, err = DefaultTokenPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileTokenStore{path: path}, nil
}

// DefaultTokenPath is <user config dir>/sajilokaam/jwt_token.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "sajilokaam", tokenFileName), nil
}

// Path returns where the token lives on disk.
func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with owner-only permissions via a temp file and
// rename, so a crash mid-write never leaves a truncated credential behind.
func (s *FileTokenStore) Save(_ context.Context, token string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tokenFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod token file: %w", err)
	}
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return fmt.Errorf("write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close token file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
