package testhelpers

import (
	"strings"

	"github.com/google/go-github/v62/github"
)

// NewSampleRepository creates a github.Repository with the fields listings use
func NewSampleRepository(fullName string, private bool) *github.Repository {
	name := fullName
	if i := strings.LastIndex(fullName, "/"); i >= 0 {
		name = fullName[i+1:]
	}
	return &github.Repository{
		Name:     github.String(name),
		FullName: github.String(fullName),
		Private:  github.Bool(private),
	}
}

// NewSampleOrganization creates a github.Organization with a login
func NewSampleOrganization(login string) *github.Organization {
	return &github.Organization{Login: github.String(login)}
}

// AddOrg registers an organization and its repositories on the config
func (c *MockGitHubServerConfig) AddOrg(login string, repos ...*github.Repository) *MockGitHubServerConfig {
	c.Orgs = append(c.Orgs, NewSampleOrganization(login))
	c.OrgRepos[login] = append(c.OrgRepos[login], repos...)
	return c
}

// AddUserRepo registers a repository on /user/repos
func (c *MockGitHubServerConfig) AddUserRepo(fullName string, private bool) *MockGitHubServerConfig {
	c.UserRepos = append(c.UserRepos, NewSampleRepository(fullName, private))
	return c
}
