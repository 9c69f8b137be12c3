package htmlfilter

import (
	"context"
	"log/slog"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/shalinks/internal/logfields"
	"git.home.luguber.info/inful/shalinks/internal/metrics"
)

// NodeFilter selects element nodes and produces their replacements.
//
// Rewrite must not mutate n. Returning nil leaves n in place; returning a
// slice splices those nodes where n was.
type NodeFilter interface {
	Name() string
	Accept(n *html.Node) bool
	Rewrite(n *html.Node) []*html.Node
}

// Stats summarises one pipeline run.
type Stats struct {
	Visited   int `json:"visited"`
	Accepted  int `json:"accepted"`
	Rewritten int `json:"rewritten"`
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Visited:   s.Visited + o.Visited,
		Accepted:  s.Accepted + o.Accepted,
		Rewritten: s.Rewritten + o.Rewritten,
	}
}

// Pipeline applies an ordered list of filters to HTML trees. It holds no
// per-run state and may be shared between goroutines when its filters can.
type Pipeline struct {
	filters  []NodeFilter
	recorder metrics.Recorder
	logger   *slog.Logger
}

// New builds a pipeline running filters in the given order. Nil filters are skipped.
func New(filters ...NodeFilter) *Pipeline {
	p := &Pipeline{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, f := range filters {
		if f != nil {
			p.filters = append(p.filters, f)
		}
	}
	return p
}

// WithRecorder sets the metrics recorder. Nil restores the no-op recorder.
func (p *Pipeline) WithRecorder(r metrics.Recorder) *Pipeline {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	p.recorder = r
	return p
}

// WithLogger sets the logger used for per-node debug output.
func (p *Pipeline) WithLogger(l *slog.Logger) *Pipeline {
	if l != nil {
		p.logger = l
	}
	return p
}

// Filters returns the filter names in execution order.
func (p *Pipeline) Filters() []string {
	names := make([]string, 0, len(p.filters))
	for _, f := range p.filters {
		names = append(names, f.Name())
	}
	return names
}

type match struct {
	filter NodeFilter
	node   *html.Node
}

// Apply runs all filters over the tree rooted at root. Cancellation is
// checked between rewrites; nodes replaced before that stay replaced.
func (p *Pipeline) Apply(ctx context.Context, root *html.Node) (Stats, error) {
	var stats Stats
	if root == nil || len(p.filters) == 0 {
		return stats, nil
	}

	var matches []match
	walk(root, func(n *html.Node) {
		stats.Visited++
		for _, f := range p.filters {
			if f.Accept(n) {
				matches = append(matches, match{filter: f, node: n})
			}
		}
	})
	stats.Accepted = len(matches)

	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		// An earlier replacement may have detached this node or one of its ancestors.
		if !attached(m.node, root) {
			continue
		}
		replacements := m.filter.Rewrite(m.node)
		if replacements == nil {
			p.recorder.IncLinkResult(m.filter.Name(), metrics.LinkUnchanged)
			continue
		}
		splice(m.node, replacements)
		stats.Rewritten++
		p.recorder.IncLinkResult(m.filter.Name(), metrics.LinkRewritten)
		p.logger.Debug("Rewrote node", logfields.Filter(m.filter.Name()), slog.Int("replacements", len(replacements)))
	}
	return stats, nil
}

// applyChildren runs Apply over each child of container, leaving container
// itself out of the walk. Fragments use it so their synthetic parent is never
// offered to the filters.
func (p *Pipeline) applyChildren(ctx context.Context, container *html.Node) (Stats, error) {
	var children []*html.Node
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}

	var total Stats
	for _, c := range children {
		stats, err := p.Apply(ctx, c)
		total = total.Add(stats)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// walk visits element nodes in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attached(n, root *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// splice replaces old with nodes, keeping old's position among its siblings.
func splice(old *html.Node, nodes []*html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		parent.InsertBefore(n, old)
	}
	parent.RemoveChild(old)
}
