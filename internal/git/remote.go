package git

import (
	"fmt"
	"strings"
)

// RemoteInfo contains parsed information from a git remote URL
type RemoteInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// Slug returns owner/repo
func (i RemoteInfo) Slug() string {
	return i.Owner + "/" + i.Repo
}

// WebURL returns the repository's page on its host
func (i RemoteInfo) WebURL() string {
	return "https://" + i.Hostname + "/" + i.Slug()
}

// ParseRemoteURL parses a git remote URL and extracts hostname, owner, and repo.
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.company.com/owner/repo.git
func ParseRemoteURL(remoteURL string) (*RemoteInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, ".git")
	remoteURL = strings.TrimPrefix(remoteURL, "ssh://")

	var hostname, path string

	if strings.Contains(remoteURL, "@") && !strings.Contains(remoteURL, "://") {
		// SSH format: git@hostname:owner/repo or git@hostname/owner/repo
		parts := strings.SplitN(remoteURL, "@", 2)
		hostAndPath := parts[1]
		if strings.Contains(hostAndPath, ":") {
			hostPath := strings.SplitN(hostAndPath, ":", 2)
			hostname, path = hostPath[0], hostPath[1]
		} else {
			hostPath := strings.SplitN(hostAndPath, "/", 2)
			if len(hostPath) < 2 {
				return nil, fmt.Errorf("invalid SSH remote URL: missing path")
			}
			hostname, path = hostPath[0], hostPath[1]
		}
	} else {
		remoteURL = strings.TrimPrefix(remoteURL, "https://")
		remoteURL = strings.TrimPrefix(remoteURL, "http://")
		// Drop embedded credentials
		if at := strings.Index(remoteURL, "@"); at >= 0 && at < strings.Index(remoteURL+"/", "/") {
			remoteURL = remoteURL[at+1:]
		}
		hostPath := strings.SplitN(remoteURL, "/", 2)
		if len(hostPath) < 2 {
			return nil, fmt.Errorf("invalid HTTPS remote URL: must be protocol://hostname/owner/repo")
		}
		hostname, path = hostPath[0], hostPath[1]
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 {
		return nil, fmt.Errorf("invalid remote URL: path must be owner/repo")
	}
	info := &RemoteInfo{
		Hostname: hostname,
		Owner:    segments[len(segments)-2],
		Repo:     segments[len(segments)-1],
	}
	if info.Hostname == "" || info.Owner == "" || info.Repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL")
	}
	return info, nil
}

// parseGitDirFile reads the "gitdir: <path>" line of a worktree .git file
func parseGitDirFile(content string) (string, bool) {
	line := strings.TrimSpace(content)
	dir, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", false
	}
	dir = strings.TrimSpace(dir)
	return dir, dir != ""
}
