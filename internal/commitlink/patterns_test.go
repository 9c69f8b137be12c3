package commitlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPath_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		want  PathMatch
		match bool
	}{
		{
			name:  "commit",
			path:  "/desktop/desktop/commit/" + fullSHA,
			want:  CommitMatch{Owner: "desktop", Name: "desktop", SHAFragment: fullSHA},
			match: true,
		},
		{
			name:  "commit keeps the sub-path in the fragment",
			path:  "/desktop/desktop/commit/" + fullSHA + "/app/src/main.ts",
			want:  CommitMatch{Owner: "desktop", Name: "desktop", SHAFragment: fullSHA + "/app/src/main.ts"},
			match: true,
		},
		{
			name:  "compare",
			path:  "/desktop/desktop/compare/6fd7945...abc1234",
			want:  CompareMatch{Owner: "desktop", Name: "desktop", Range: "6fd7945...abc1234"},
			match: true,
		},
		{
			name:  "pull request commit",
			path:  "/desktop/desktop/pull/14239/commits/" + fullSHA,
			want:  PullCommitMatch{Owner: "desktop", Name: "desktop", SHA: fullSHA},
			match: true,
		},
		{
			name:  "repo names may contain dots",
			path:  "/shiftkey/shiftkey.github.io/commit/abc1234",
			want:  CommitMatch{Owner: "shiftkey", Name: "shiftkey.github.io", SHAFragment: "abc1234"},
			match: true,
		},
		{
			name:  "owner with leading dash is tolerated",
			path:  "/-dash/repo/commit/abc1234",
			want:  CommitMatch{Owner: "-dash", Name: "repo", SHAFragment: "abc1234"},
			match: true,
		},
		{name: "issue", path: "/desktop/desktop/issues/123"},
		{name: "empty commit fragment", path: "/desktop/desktop/commit/"},
		{name: "empty compare range", path: "/desktop/desktop/compare/"},
		{name: "pull request without commits segment", path: "/desktop/desktop/pull/14239"},
		{name: "pull request commit with trailing path", path: "/desktop/desktop/pull/14239/commits/" + fullSHA + "/file.go"},
		{name: "pull request commit with non-numeric number", path: "/desktop/desktop/pull/abc/commits/" + fullSHA},
		{name: "owner with dot", path: "/desk.top/desktop/commit/abc1234"},
		{name: "missing leading slash", path: "desktop/desktop/commit/abc1234"},
		{name: "no repository", path: "/desktop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchPath(tt.path)
			require.Equal(t, tt.match, ok)
			if tt.match {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.want.Shape(), got.Shape())
			}
		})
	}
}

func TestMatchPullCommitPath_CapturesLooseSHA(t *testing.T) {
	m, ok := MatchPullCommitPath("/o/r/pull/1/commits/NOT-HEX")
	require.True(t, ok)
	assert.Equal(t, "NOT-HEX", m.SHA)

	owner, name := m.NameWithOwner()
	assert.Equal(t, "o", owner)
	assert.Equal(t, "r", name)
}

func TestShapesAreDisjoint(t *testing.T) {
	path := "/o/r/commit/" + fullSHA
	_, compare := MatchComparePath(path)
	_, pull := MatchPullCommitPath(path)
	assert.False(t, compare)
	assert.False(t, pull)
}
