package commitlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimSHA_Threshold(t *testing.T) {
	for n := 1; n <= 40; n++ {
		sha := hexOfLength(n)
		got := TrimSHA(sha)
		if n >= 30 {
			assert.Equal(t, sha[:7], got, "length %d", n)
		} else {
			assert.Equal(t, sha, got, "length %d", n)
		}
	}
}

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter(mustRepository(t, "desktop", "desktop"))

	tests := []struct {
		name             string
		owner, repo, sha string
		suffix           string
		want             string
	}{
		{name: "full hash", owner: "desktop", repo: "desktop", sha: fullSHA, want: "<tt>6fd7945</tt>"},
		{name: "short hash unchanged", owner: "desktop", repo: "desktop", sha: "6fd794543af1", want: "<tt>6fd794543af1</tt>"},
		{name: "foreign repository", owner: "shiftkey", repo: "desktop", sha: fullSHA, want: "shiftkey/desktop@<tt>6fd7945</tt>"},
		{name: "same owner other repo is foreign", owner: "desktop", repo: "dugite", sha: fullSHA, want: "desktop/dugite@<tt>6fd7945</tt>"},
		{name: "file path suffix", owner: "desktop", repo: "desktop", sha: fullSHA, suffix: "/app/package.json?plain=1", want: "<tt>6fd7945</tt>/app/package.json?plain=1"},
		{name: "range trims both sides", owner: "desktop", repo: "desktop", sha: fullSHA + "..." + fullSHA, want: "<tt>6fd7945...6fd7945</tt>"},
		{name: "range trims each side independently", owner: "desktop", repo: "desktop", sha: "abc1234..." + fullSHA, want: "<tt>abc1234...6fd7945</tt>"},
		{name: "suffix is escaped as text", owner: "desktop", repo: "desktop", sha: "abc1234", suffix: "/a.go?x=1&y=2", want: "<tt>abc1234</tt>/a.go?x=1&amp;y=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.owner, tt.repo, tt.sha, tt.suffix))
		})
	}
}

func TestFormatter_PrefixOnlyForForeignRepositories(t *testing.T) {
	f := NewFormatter(mustRepository(t, "desktop", "desktop"))

	same := f.Reference("desktop", "desktop", fullSHA, "")
	assert.Empty(t, same.OwnerRepoPrefix)

	foreign := f.Reference("other", "thing", fullSHA, "")
	assert.Equal(t, "other/thing@", foreign.OwnerRepoPrefix)
}

func TestCommitReference_Nodes(t *testing.T) {
	ref := CommitReference{OwnerRepoPrefix: "o/r@", SHALabel: "abc1234", FilePathSuffix: "/x"}
	nodes := ref.Nodes()

	assert.Len(t, nodes, 3)
	assert.Equal(t, "o/r@", nodes[0].Data)
	assert.Equal(t, "tt", nodes[1].Data)
	assert.Equal(t, "abc1234", nodes[1].FirstChild.Data)
	assert.Equal(t, "/x", nodes[2].Data)

	assert.Len(t, CommitReference{SHALabel: "abc1234"}.Nodes(), 1)
}
