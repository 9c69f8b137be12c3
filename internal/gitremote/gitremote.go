// Package gitremote derives a repository context from a local git clone.
package gitremote

import (
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/shalinks/internal/commitlink"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
)

// DefaultRemote is used when no remote name is given.
const DefaultRemote = "origin"

// Detect opens the clone containing path (searching parent directories for
// .git) and parses the first URL of the named remote.
func Detect(path, remoteName string) (commitlink.Repository, error) {
	if remoteName == "" {
		remoteName = DefaultRemote
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return commitlink.Repository{}, errors.WrapError(err, errors.CategoryGit, "failed to open git repository").
			WithContext("path", path).
			UserAction().
			Build()
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		msg := "failed to read git remote"
		if stderrors.Is(err, git.ErrRemoteNotFound) {
			msg = "git remote not found"
		}
		return commitlink.Repository{}, errors.WrapError(err, errors.CategoryGit, msg).
			WithContext("path", path).
			WithContext("remote", remoteName).
			UserAction().
			Build()
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return commitlink.Repository{}, errors.GitError("git remote has no URL").
			WithContext("remote", remoteName).
			Build()
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL converts a clone URL into a repository context. HTTP(S),
// ssh:// and scp-like (git@host:owner/name) forms are understood; the web UI
// is assumed to be served over https on the same host.
func ParseRemoteURL(raw string) (commitlink.Repository, error) {
	raw = strings.TrimSpace(raw)
	host, path, ok := splitRemote(raw)
	if !ok {
		return commitlink.Repository{}, invalidRemote(raw, nil)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	owner, name, err := commitlink.ParseNameWithOwner(path)
	if err != nil {
		return commitlink.Repository{}, invalidRemote(raw, err)
	}
	repo, err := commitlink.NewRepository("https://"+host, owner, name)
	if err != nil {
		return commitlink.Repository{}, invalidRemote(raw, err)
	}
	return repo, nil
}

func splitRemote(raw string) (host, path string, ok bool) {
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return "", "", false
		}
		switch u.Scheme {
		case "https", "http":
			return u.Host, u.Path, true
		case "ssh", "git", "git+ssh":
			// SSH ports do not carry over to the web UI.
			return u.Hostname(), u.Path, true
		}
		return "", "", false
	}

	// scp-like syntax: [user@]host:path
	hostPart, path, found := strings.Cut(raw, ":")
	if !found || strings.Contains(hostPart, "/") {
		return "", "", false
	}
	if i := strings.LastIndex(hostPart, "@"); i >= 0 {
		hostPart = hostPart[i+1:]
	}
	if hostPart == "" {
		return "", "", false
	}
	return hostPart, path, true
}

func invalidRemote(raw string, cause error) error {
	b := errors.GitError("unsupported git remote URL").WithContext("url", raw)
	if cause != nil {
		b = b.WithCause(cause)
	}
	return b.Build()
}
