package commitlink

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// Hashes shorter than this are assumed to be abbreviated already.
	trimThreshold  = 30
	shortSHALength = 7
	rangeSeparator = "..."
)

// TrimSHA abbreviates a full-length hash to 7 characters. Shorter tokens are
// returned unchanged.
func TrimSHA(sha string) string {
	if len(sha) >= trimThreshold {
		return sha[:shortSHALength]
	}
	return sha
}

// trimRange trims each side of an a...b range independently.
func trimRange(shaOrRange string) string {
	parts := strings.Split(shaOrRange, rangeSeparator)
	for i, p := range parts {
		parts[i] = TrimSHA(p)
	}
	return strings.Join(parts, rangeSeparator)
}

// CommitReference is the resolved display form of a commit mention.
type CommitReference struct {
	// OwnerRepoPrefix is "owner/name@" for mentions of another repository, empty otherwise.
	OwnerRepoPrefix string
	SHALabel        string
	// FilePathSuffix is "/path?query" when the link pointed below the commit.
	FilePathSuffix string
}

// Nodes builds the inner content of the replacement anchor: the optional
// prefix, the label in a <tt> element and the optional suffix.
func (r CommitReference) Nodes() []*html.Node {
	nodes := make([]*html.Node, 0, 3)
	if r.OwnerRepoPrefix != "" {
		nodes = append(nodes, &html.Node{Type: html.TextNode, Data: r.OwnerRepoPrefix})
	}
	tt := &html.Node{Type: html.ElementNode, Data: "tt", DataAtom: atom.Tt}
	tt.AppendChild(&html.Node{Type: html.TextNode, Data: r.SHALabel})
	nodes = append(nodes, tt)
	if r.FilePathSuffix != "" {
		nodes = append(nodes, &html.Node{Type: html.TextNode, Data: r.FilePathSuffix})
	}
	return nodes
}

// String renders the reference as HTML, e.g. desktop/desktop@<tt>6fd7945</tt>.
func (r CommitReference) String() string {
	var b strings.Builder
	for _, n := range r.Nodes() {
		// Rendering detached text and element nodes into a strings.Builder cannot fail.
		_ = html.Render(&b, n)
	}
	return b.String()
}

// Formatter builds labels relative to a fixed repository.
type Formatter struct {
	repo Repository
}

func NewFormatter(repo Repository) *Formatter {
	return &Formatter{repo: repo}
}

// Reference trims every hash token of shaOrRange and adds the owner/name@
// prefix when owner/name differ from the formatter's repository. The suffix
// is kept verbatim.
func (f *Formatter) Reference(owner, name, shaOrRange, filePathSuffix string) CommitReference {
	ref := CommitReference{
		SHALabel:       trimRange(shaOrRange),
		FilePathSuffix: filePathSuffix,
	}
	if f.repo.isForeign(owner, name) {
		ref.OwnerRepoPrefix = owner + "/" + name + "@"
	}
	return ref
}

// Format is Reference rendered as an HTML string.
func (f *Formatter) Format(owner, name, shaOrRange, filePathSuffix string) string {
	return f.Reference(owner, name, shaOrRange, filePathSuffix).String()
}
