package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/shalinks/internal/foundation/errors"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nrepository: desktop/desktop\n---\n# Title\n")

	fm, body, had, style, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "\n", style.Newline)
	require.Equal(t, []byte("repository: desktop/desktop\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, _, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, style, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "\r\n", style.Newline)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	fm, body, had, _, err := Split([]byte("---\n---\nBody\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("Body\n"), body)
}

func TestSplit_HorizontalRuleLaterInDocumentIsBody(t *testing.T) {
	input := []byte("Intro\n---\nMore\n")

	_, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Equal(t, input, body)
}

func TestParseYAML_ValidYAML_ReturnsMap(t *testing.T) {
	fields, err := ParseYAML([]byte("title: Hello\nrepository: a/b\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello", fields["title"])
	require.Equal(t, "a/b", fields["repository"])
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML([]byte("  \n"))
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseYAML_InvalidYAML_ReturnsValidationError(t *testing.T) {
	_, err := ParseYAML([]byte("title: [unterminated\n"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestRepositoryOverride(t *testing.T) {
	tests := []struct {
		name      string
		fields    map[string]any
		wantOwner string
		wantName  string
		wantOK    bool
		wantErr   bool
	}{
		{name: "absent", fields: map[string]any{"title": "x"}},
		{name: "empty string", fields: map[string]any{"repository": "  "}},
		{name: "owner and name", fields: map[string]any{"repository": "desktop/desktop"}, wantOwner: "desktop", wantName: "desktop", wantOK: true},
		{name: "surrounding space", fields: map[string]any{"repository": " a/b.c "}, wantOwner: "a", wantName: "b.c", wantOK: true},
		{name: "missing name", fields: map[string]any{"repository": "desktop/"}, wantErr: true},
		{name: "too many segments", fields: map[string]any{"repository": "a/b/c"}, wantErr: true},
		{name: "not a string", fields: map[string]any{"repository": 42}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, ok, err := RepositoryOverride(tt.fields)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantOwner, owner)
			require.Equal(t, tt.wantName, name)
		})
	}
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint([]byte("title: x\n"), []byte("body\n"))
	require.NotEmpty(t, fp)
	require.Equal(t, fp, Fingerprint([]byte("title: x\n"), []byte("body\n")))
	require.NotEqual(t, fp, Fingerprint([]byte("title: y\n"), []byte("body\n")))
}
