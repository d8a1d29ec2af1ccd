package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v62/github"
)

// ErrListOrganizations marks a failure of the organization listing itself,
// before any organization's repositories were requested
var ErrListOrganizations = errors.New("failed to list organizations")

// Repository is a hosted repository as shown in listings
type Repository struct {
	FullName string
	Private  bool
}

// OrgRepositories groups the repositories of one organization
type OrgRepositories struct {
	Org   string
	Repos []Repository
}

// ListUserRepos returns the first page of repositories visible to the
// authenticated user. One request is made.
func (c *Client) ListUserRepos(ctx context.Context) ([]Repository, error) {
	repos, _, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list user repositories: %w", err)
	}
	return toRepositories(repos), nil
}

// ListOrgRepos lists the user's organizations, then the first page of each
// organization's repositories in the order the organizations were returned.
// On failure the groups completed so far are returned with the error.
func (c *Client) ListOrgRepos(ctx context.Context) ([]OrgRepositories, error) {
	orgs, _, err := c.gh.Organizations.List(ctx, "", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListOrganizations, err)
	}

	groups := make([]OrgRepositories, 0, len(orgs))
	for _, org := range orgs {
		login := org.GetLogin()
		repos, _, err := c.gh.Repositories.ListByOrg(ctx, login, nil)
		if err != nil {
			return groups, fmt.Errorf("failed to list repositories for %s: %w", login, err)
		}
		groups = append(groups, OrgRepositories{Org: login, Repos: toRepositories(repos)})
	}
	return groups, nil
}

func toRepositories(repos []*github.Repository) []Repository {
	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		out = append(out, Repository{
			FullName: r.GetFullName(),
			Private:  r.GetPrivate(),
		})
	}
	return out
}
