// Package credential persists the GitHub personal access token.
package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gderrors "gitdesk.dev/gitdesk/internal/errors"
)

// FileName is the token file inside the configuration directory
const FileName = "github_token.txt"

// EnvVar supplies a token when the file holds none
const EnvVar = "GITHUB_TOKEN"

// Store holds the token in memory and in a single plaintext file.
type Store struct {
	mu    sync.RWMutex
	dir   string
	token string
}

// NewStore creates a Store backed by dir/github_token.txt
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the token file location
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Load reads the token file. A missing file means no token; surrounding
// whitespace is dropped. When the file yields nothing the GITHUB_TOKEN
// environment variable is used.
func (s *Store) Load() (string, error) {
	token, err := s.readFile()
	if err != nil {
		return "", err
	}
	if token == "" {
		token = strings.TrimSpace(os.Getenv(EnvVar))
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return token, nil
}

func (s *Store) readFile() (string, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save replaces the stored token. The file is rewritten wholesale and the
// directory created when missing. An empty token is rejected.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return gderrors.TokenNotSet
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.Path(), []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Token returns the token currently held in memory
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasToken reports whether a token is available
func (s *Store) HasToken() bool {
	return s.Token() != ""
}
