package session

import (
	"context"
	"errors"
	"fmt"

	gderrors "gitdesk.dev/gitdesk/internal/errors"
	"gitdesk.dev/gitdesk/internal/github"
)

// SetToken stores a new GitHub token. An empty token leaves the stored one
// in place.
func (s *Session) SetToken(token string) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	if err := s.creds.Save(token); err != nil {
		if errors.Is(err, gderrors.ErrNoToken) {
			s.log.Append(err.Error())
			return false
		}
		s.fail("", err)
		return false
	}
	s.log.Append("GitHub token set and saved.")
	return true
}

// ListMyRepos lists the repositories of the authenticated user
func (s *Session) ListMyRepos(ctx context.Context) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	lister, ok := s.newLister(ctx)
	if !ok {
		return false
	}

	op := newOpID()
	var (
		repos []github.Repository
		err   error
	)
	s.withIndicator("list repositories", func() {
		repos, err = lister.ListUserRepos(ctx)
	})
	if err != nil {
		s.logger.Debug("user repository listing failed", "op", op, "error", err)
		s.log.AppendOp(op, fmt.Sprintf("Error fetching user repos: %v", err))
		return false
	}

	s.log.AppendOp(op, "---- My GitHub Repositories ----")
	for _, r := range repos {
		s.log.AppendOp(op, formatRepo(r))
	}
	return true
}

// ListOrgRepos lists the repositories of every organization the user
// belongs to. Groups completed before a failure stay in the output.
func (s *Session) ListOrgRepos(ctx context.Context) bool {
	if !s.acquire() {
		return false
	}
	defer s.release()

	lister, ok := s.newLister(ctx)
	if !ok {
		return false
	}

	op := newOpID()
	var (
		groups []github.OrgRepositories
		err    error
	)
	s.withIndicator("list organization repositories", func() {
		groups, err = lister.ListOrgRepos(ctx)
	})

	if err == nil || !errors.Is(err, github.ErrListOrganizations) {
		s.log.AppendOp(op, "---- Organization Repositories ----")
		for _, g := range groups {
			s.log.AppendOp(op, "\nOrg: "+g.Org)
			for _, r := range g.Repos {
				s.log.AppendOp(op, "  "+formatRepo(r))
			}
		}
	}
	if err != nil {
		s.logger.Debug("organization repository listing failed", "op", op, "error", err)
		s.log.AppendOp(op, fmt.Sprintf("Error fetching org repos: %v", err))
		return false
	}
	return true
}

// newLister checks for a token before anything touches the network
func (s *Session) newLister(ctx context.Context) (Lister, bool) {
	token := ""
	if s.creds != nil {
		token = s.creds.Token()
	}
	if token == "" {
		s.fail("", gderrors.NoToken)
		return nil, false
	}
	lister, err := s.lister(ctx, token)
	if err != nil {
		s.fail("", err)
		return nil, false
	}
	return lister, true
}

func formatRepo(r github.Repository) string {
	return fmt.Sprintf("%s (Private: %t)", r.FullName, r.Private)
}
