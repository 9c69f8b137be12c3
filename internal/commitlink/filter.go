package commitlink

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FilterName identifies the commit mention filter in pipelines and metrics.
const FilterName = "commit_mention"

// Filter bundles selection and rewriting for one repository. It satisfies
// htmlfilter.NodeFilter.
type Filter struct {
	repo     Repository
	selector *Selector
	rewriter *Rewriter
}

func NewFilter(repo Repository) *Filter {
	return &Filter{
		repo:     repo,
		selector: NewSelector(repo),
		rewriter: NewRewriter(repo),
	}
}

func (f *Filter) Name() string { return FilterName }

// Repository returns the context the filter labels against.
func (f *Filter) Repository() Repository { return f.repo }

// Accept is the traversal acceptance callback.
func (f *Filter) Accept(n *html.Node) bool {
	return f.selector.IsCandidate(n)
}

// Rewrite returns a single replacement node, or nil to leave n untouched.
// Nodes that no longer pass selection, such as an anchor that was already
// rewritten, yield nil.
func (f *Filter) Rewrite(n *html.Node) []*html.Node {
	c, ok := f.selector.Select(n)
	if !ok {
		return nil
	}
	if replacement := f.rewriter.Rewrite(c); replacement != nil {
		return []*html.Node{replacement}
	}
	return nil
}

// Classification explains how the filter treats a bare URL.
type Classification struct {
	URL       string
	Candidate bool
	Outcome   Outcome
	Reference CommitReference
}

// Label is the rendered reference, or "" when the URL would not be rewritten.
func (c Classification) Label() string {
	if !c.Candidate || !c.Outcome.Rewritten() {
		return ""
	}
	return c.Reference.String()
}

// Classify runs rawURL through selection and resolution as if it were the
// auto-linked anchor <a href=rawURL>rawURL</a> in a paragraph.
func (f *Filter) Classify(rawURL string) Classification {
	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr:     []html.Attribute{{Key: "href", Val: rawURL}},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: rawURL})
	p.AppendChild(a)

	result := Classification{URL: rawURL}
	c, ok := f.selector.Select(a)
	if !ok {
		return result
	}
	result.Candidate = true
	result.Reference, result.Outcome = f.rewriter.Resolve(c)
	return result
}
