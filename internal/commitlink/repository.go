package commitlink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRepository is returned by NewRepository for unusable host, owner or name values.
var ErrInvalidRepository = errors.New("invalid repository")

// Repository identifies the repository the rendered content belongs to.
// It is a value type and is never mutated after construction.
type Repository struct {
	// HostBaseURL is the scheme and host of the repository web UI, without a
	// trailing slash (https://github.com or a GitHub Enterprise URL).
	HostBaseURL string
	Owner       string
	Name        string
}

// NewRepository validates and normalizes a repository context.
func NewRepository(hostBaseURL, owner, name string) (Repository, error) {
	host := strings.TrimRight(strings.TrimSpace(hostBaseURL), "/")
	u, err := url.Parse(host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Repository{}, fmt.Errorf("%w: host %q must be an absolute URL", ErrInvalidRepository, hostBaseURL)
	}
	if !ownerPattern.MatchString(owner) {
		return Repository{}, fmt.Errorf("%w: owner %q", ErrInvalidRepository, owner)
	}
	if !namePattern.MatchString(name) {
		return Repository{}, fmt.Errorf("%w: name %q", ErrInvalidRepository, name)
	}
	return Repository{HostBaseURL: host, Owner: owner, Name: name}, nil
}

// ParseNameWithOwner splits an "owner/name" string.
func ParseNameWithOwner(nwo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(nwo), "/")
	if !ok || !ownerPattern.MatchString(owner) || !namePattern.MatchString(name) {
		return "", "", fmt.Errorf("%w: %q is not in owner/name form", ErrInvalidRepository, nwo)
	}
	return owner, name, nil
}

// NameWithOwner returns "owner/name".
func (r Repository) NameWithOwner() string {
	return r.Owner + "/" + r.Name
}

// WithNameWithOwner returns a copy of r on the same host pointing at owner/name.
func (r Repository) WithNameWithOwner(owner, name string) (Repository, error) {
	return NewRepository(r.HostBaseURL, owner, name)
}

func (r Repository) isForeign(owner, name string) bool {
	return owner != r.Owner || name != r.Name
}

func (r Repository) String() string {
	return r.HostBaseURL + "/" + r.NameWithOwner()
}
