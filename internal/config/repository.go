package config

import (
	"git.home.luguber.info/inful/shalinks/internal/commitlink"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/gitremote"
)

// ResolveRepository returns the configured repository context. When owner and
// name are unset it is detected from the git clone at detect_from, or from the
// working directory when that is unset too.
func (c *Config) ResolveRepository() (commitlink.Repository, error) {
	r := c.Repository
	if r.Owner != "" && r.Name != "" {
		repo, err := commitlink.NewRepository(r.Host, r.Owner, r.Name)
		if err != nil {
			return commitlink.Repository{}, errors.WrapError(err, errors.CategoryConfig, "invalid repository").
				UserAction().
				Build()
		}
		return repo, nil
	}

	dir := r.DetectFrom
	if dir == "" {
		dir = "."
	}
	repo, err := gitremote.Detect(dir, r.Remote)
	if err != nil {
		return commitlink.Repository{}, errors.ConfigError("repository is not configured and could not be detected from git").
			WithCause(err).
			WithContext("detect_from", dir).
			Build()
	}
	return repo, nil
}
