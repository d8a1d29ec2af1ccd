package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// UserRepos is served from /user/repos
	UserRepos []*github.Repository
	// Orgs is served from /user/orgs, in order
	Orgs []*github.Organization
	// OrgRepos maps an org login to the body of /orgs/{org}/repos
	OrgRepos map[string][]*github.Repository
	// Failures maps a request path to the status code it answers with
	Failures map[string]int
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		UserRepos: make([]*github.Repository, 0),
		Orgs:      make([]*github.Organization, 0),
		OrgRepos:  make(map[string][]*github.Repository),
		Failures:  make(map[string]int),
	}
}

// MockGitHubServer is an httptest server for the listing endpoints. It
// counts hits per path and records the Authorization header of every request.
type MockGitHubServer struct {
	*httptest.Server

	mu     sync.Mutex
	config *MockGitHubServerConfig
	hits   map[string]int
	auth   []string
}

// NewMockGitHubServer creates an httptest server that mocks GitHub API endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *MockGitHubServer {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	m := &MockGitHubServer{
		config: config,
		hits:   make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/user/repos", m.handle(func() any { return m.config.UserRepos }))
	mux.HandleFunc("/user/orgs", m.handle(func() any { return m.config.Orgs }))
	mux.HandleFunc("/orgs/", func(w http.ResponseWriter, r *http.Request) {
		// /orgs/{org}/repos
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[2] != "repos" {
			m.record(r)
			http.Error(w, fmt.Sprintf("Unhandled path: %s", r.URL.Path), http.StatusNotFound)
			return
		}
		org := parts[1]
		m.handle(func() any {
			repos := m.config.OrgRepos[org]
			if repos == nil {
				return []*github.Repository{}
			}
			return repos
		})(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		m.record(r)
		http.Error(w, fmt.Sprintf("Unhandled path: %s (method: %s)", r.URL.Path, r.Method), http.StatusNotFound)
	})

	m.Server = httptest.NewServer(mux)
	t.Cleanup(func() { m.Close() })
	return m
}

func (m *MockGitHubServer) handle(body func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.record(r)
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		m.mu.Lock()
		status, failing := m.config.Failures[r.URL.Path]
		var payload any
		if !failing {
			payload = body()
		}
		m.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if failing {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": http.StatusText(status)})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func (m *MockGitHubServer) record(r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits[r.URL.Path]++
	m.auth = append(m.auth, r.Header.Get("Authorization"))
}

// BaseURL returns the API root to hand to the client
func (m *MockGitHubServer) BaseURL() string {
	return m.URL + "/"
}

// Hits returns how many requests reached path
func (m *MockGitHubServer) Hits(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits[path]
}

// TotalHits returns the number of requests served
func (m *MockGitHubServer) TotalHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.hits {
		n += c
	}
	return n
}

// AuthorizationHeaders returns the Authorization header of every request
func (m *MockGitHubServer) AuthorizationHeaders() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.auth))
	copy(out, m.auth)
	return out
}

// Fail makes path answer with status from now on
func (m *MockGitHubServer) Fail(path string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.Failures[path] = status
}
