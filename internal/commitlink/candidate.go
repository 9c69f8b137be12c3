package commitlink

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkCandidate is an anchor that passed selection. Downstream code relies on
// Node being an <a> element whose href equals Text.
type LinkCandidate struct {
	Node *html.Node
	Href string
	Text string
}

// Selector decides whether a node is a commit mention link of the repository host.
type Selector struct {
	mentionURL *regexp.Regexp
}

// NewSelector compiles the full mention URL pattern for repo's host once.
func NewSelector(repo Repository) *Selector {
	pattern := `^` + regexp.QuoteMeta(repo.HostBaseURL) +
		`/` + ownerToken + `/` + nameToken +
		`/(?:commit|pull|compare)/(?:[0-9]+/commits/)?[0-9a-f]{7,40}\b`
	return &Selector{mentionURL: regexp.MustCompile(pattern)}
}

// IsCandidate reports whether n should be handed to the rewriter.
func (s *Selector) IsCandidate(n *html.Node) bool {
	_, ok := s.Select(n)
	return ok
}

// Select returns the typed candidate for n. It rejects nodes whose parent is a
// pre, code or a element, nodes that are not anchors, anchors whose href
// differs from their text, and targets outside the repository host's commit,
// compare and pull request commit views.
func (s *Selector) Select(n *html.Node) (LinkCandidate, bool) {
	if n == nil || n.Type != html.ElementNode {
		return LinkCandidate{}, false
	}
	if p := n.Parent; p != nil && p.Type == html.ElementNode {
		switch p.DataAtom {
		case atom.Pre, atom.Code, atom.A:
			return LinkCandidate{}, false
		}
	}
	if n.DataAtom != atom.A {
		return LinkCandidate{}, false
	}
	href, ok := attr(n, "href")
	if !ok {
		return LinkCandidate{}, false
	}
	text := textContent(n)
	if href != text {
		return LinkCandidate{}, false
	}
	if !s.mentionURL.MatchString(href) {
		return LinkCandidate{}, false
	}
	return LinkCandidate{Node: n, Href: href, Text: text}, true
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// textContent concatenates all descendant text nodes without trimming.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
