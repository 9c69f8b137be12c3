package commitlink

import (
	"regexp"
	"strings"
)

// Shape names one of the recognized URL path structures.
type Shape string

const (
	ShapeNone       Shape = ""
	ShapeCommit     Shape = "commit"
	ShapeCompare    Shape = "compare"
	ShapePullCommit Shape = "pull_commit"
)

var (
	ownerPattern = regexp.MustCompile(`^-?[A-Za-z0-9][A-Za-z0-9_-]*$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

	// shaPattern is the strict form required for pull request commits.
	shaPattern        = regexp.MustCompile(`^[0-9a-f]{7,40}$`)
	pullNumberPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Unanchored forms of the slug patterns, used to build the full mention URL pattern.
const (
	ownerToken = `-?[A-Za-z0-9][A-Za-z0-9_-]*`
	nameToken  = `[A-Za-z0-9._-]+`
)

// PathMatch is the transient parse result of a URL path that fits one of the shapes.
type PathMatch interface {
	Shape() Shape
	NameWithOwner() (owner, name string)
}

// CommitMatch is /{owner}/{name}/commit/{fragment}. SHAFragment is the raw
// remainder and may still carry a /-separated sub-path.
type CommitMatch struct {
	Owner       string
	Name        string
	SHAFragment string
}

// CompareMatch is /{owner}/{name}/compare/{range}.
type CompareMatch struct {
	Owner string
	Name  string
	Range string
}

// PullCommitMatch is /{owner}/{name}/pull/{number}/commits/{sha}.
type PullCommitMatch struct {
	Owner string
	Name  string
	SHA   string
}

func (CommitMatch) Shape() Shape { return ShapeCommit }
func (m CommitMatch) NameWithOwner() (string, string) { return m.Owner, m.Name }
func (CompareMatch) Shape() Shape { return ShapeCompare }
func (m CompareMatch) NameWithOwner() (string, string) { return m.Owner, m.Name }
func (PullCommitMatch) Shape() Shape { return ShapePullCommit }
func (m PullCommitMatch) NameWithOwner() (string, string) { return m.Owner, m.Name }

// MatchPath tries the commit, compare and pull request commit shapes in that order.
func MatchPath(path string) (PathMatch, bool) {
	if m, ok := MatchCommitPath(path); ok {
		return m, true
	}
	if m, ok := MatchComparePath(path); ok {
		return m, true
	}
	if m, ok := MatchPullCommitPath(path); ok {
		return m, true
	}
	return nil, false
}

// MatchCommitPath matches /{owner}/{name}/commit/{fragment} with a non-empty fragment.
func MatchCommitPath(path string) (CommitMatch, bool) {
	owner, name, rest, ok := splitRepoPath(path)
	if !ok {
		return CommitMatch{}, false
	}
	fragment, ok := strings.CutPrefix(rest, "commit/")
	if !ok || fragment == "" {
		return CommitMatch{}, false
	}
	return CommitMatch{Owner: owner, Name: name, SHAFragment: fragment}, true
}

// MatchComparePath matches /{owner}/{name}/compare/{range} with a non-empty range.
func MatchComparePath(path string) (CompareMatch, bool) {
	owner, name, rest, ok := splitRepoPath(path)
	if !ok {
		return CompareMatch{}, false
	}
	rng, ok := strings.CutPrefix(rest, "compare/")
	if !ok || rng == "" {
		return CompareMatch{}, false
	}
	return CompareMatch{Owner: owner, Name: name, Range: rng}, true
}

// MatchPullCommitPath matches /{owner}/{name}/pull/{number}/commits/{sha}.
// Nothing may follow the sha segment. The sha itself is captured as-is; the
// rewriter applies the strict hex check.
func MatchPullCommitPath(path string) (PullCommitMatch, bool) {
	owner, name, rest, ok := splitRepoPath(path)
	if !ok {
		return PullCommitMatch{}, false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 4 || parts[0] != "pull" || parts[2] != "commits" {
		return PullCommitMatch{}, false
	}
	if !pullNumberPattern.MatchString(parts[1]) || parts[3] == "" {
		return PullCommitMatch{}, false
	}
	return PullCommitMatch{Owner: owner, Name: name, SHA: parts[3]}, true
}

// splitRepoPath splits "/{owner}/{name}/{rest}" and validates the slug tokens.
func splitRepoPath(path string) (owner, name, rest string, ok bool) {
	trimmed, ok := strings.CutPrefix(path, "/")
	if !ok {
		return "", "", "", false
	}
	parts := strings.SplitN(trimmed, "/", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	if !ownerPattern.MatchString(parts[0]) || !namePattern.MatchString(parts[1]) {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
