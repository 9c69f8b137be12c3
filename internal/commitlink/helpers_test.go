package commitlink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const fullSHA = "6fd794543af171c35cc9c325f570f9553128ffc9"

func mustRepository(t *testing.T, owner, name string) Repository {
	t.Helper()
	repo, err := NewRepository("https://github.com", owner, name)
	require.NoError(t, err)
	return repo
}

// parseBody parses fragment in a <body> context and returns the body holding it.
func parseBody(t *testing.T, fragment string) *html.Node {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	require.NoError(t, err)
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body
}

func firstAnchor(t *testing.T, fragment string) *html.Node {
	t.Helper()
	a := findFirst(parseBody(t, fragment), atom.A)
	require.NotNil(t, a, "fragment has no anchor: %s", fragment)
	return a
}

// autolink builds the markup a Markdown renderer emits for a bare URL.
func autolink(url string) string {
	return `<p><a href="` + html.EscapeString(url) + `">` + html.EscapeString(url) + `</a></p>`
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func innerHTML(t *testing.T, n *html.Node) string {
	t.Helper()
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&b, c))
	}
	return b.String()
}

func hexOfLength(n int) string {
	return strings.Repeat("0123456789abcdef", 3)[:n]
}
