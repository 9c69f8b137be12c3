package commitlink

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// OutcomeKind classifies what happened to a candidate.
type OutcomeKind string

const (
	OutcomeRewritten OutcomeKind = "rewritten"
	// OutcomeStructuralMismatch: the path fits none of the shapes.
	OutcomeStructuralMismatch OutcomeKind = "structural_mismatch"
	// OutcomeDisqualified: the path fits a shape but hits an exclusion.
	OutcomeDisqualified OutcomeKind = "disqualified"
	// OutcomeMalformed: the link text is not an absolute URL.
	OutcomeMalformed OutcomeKind = "malformed"
)

// Reasons reported with non-rewritten outcomes.
const (
	ReasonNoShape            = "no_shape"
	ReasonUnparseableURL     = "unparseable_url"
	ReasonMissingSHA         = "missing_sha"
	ReasonFormatSuffix       = "format_suffix"
	ReasonReservedActionPath = "reserved_action_path"
	ReasonDiffView           = "diff_view"
	ReasonTooManyRangeParts  = "too_many_range_parts"
	ReasonInvalidSHA         = "invalid_sha"
)

// Outcome describes the result of resolving one candidate.
type Outcome struct {
	Kind   OutcomeKind
	Shape  Shape
	Reason string
}

// Rewritten reports whether a replacement is produced.
func (o Outcome) Rewritten() bool {
	return o.Kind == OutcomeRewritten
}

func rewritten(shape Shape) Outcome {
	return Outcome{Kind: OutcomeRewritten, Shape: shape}
}

func disqualified(shape Shape, reason string) Outcome {
	return Outcome{Kind: OutcomeDisqualified, Shape: shape, Reason: reason}
}

// Server-side endpoints below /commit/{sha}/ that are not file paths.
var reservedActionPaths = map[string]struct{}{
	"checks_state_summary": {},
	"hovercard":            {},
	"rollup":               {},
	"show_partial":         {},
}

var reservedActionSegments = map[string]struct{}{
	"_render_node": {},
	"checks":       {},
}

func isReservedActionPath(filePath string) bool {
	if _, ok := reservedActionPaths[filePath]; ok {
		return true
	}
	first, _, _ := strings.Cut(filePath, "/")
	_, ok := reservedActionSegments[first]
	return ok
}

// Rewriter turns selected candidates into replacement anchors.
type Rewriter struct {
	formatter *Formatter
}

func NewRewriter(repo Repository) *Rewriter {
	return &Rewriter{formatter: NewFormatter(repo)}
}

// Rewrite returns a detached clone of the candidate anchor with the label as
// its content, or nil when the link should be left as it is. The href and
// every other attribute of the clone equal the original's.
func (r *Rewriter) Rewrite(c LinkCandidate) *html.Node {
	ref, outcome := r.Resolve(c)
	if !outcome.Rewritten() {
		return nil
	}
	return cloneWithContent(c.Node, ref.Nodes())
}

// Resolve classifies the candidate's URL and builds its reference.
func (r *Rewriter) Resolve(c LinkCandidate) (CommitReference, Outcome) {
	return r.ResolveURL(c.Text)
}

// ResolveURL classifies an absolute URL against the commit, compare and pull
// request commit shapes, in that order.
func (r *Rewriter) ResolveURL(raw string) (CommitReference, Outcome) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return CommitReference{}, Outcome{Kind: OutcomeMalformed, Reason: ReasonUnparseableURL}
	}
	path := u.EscapedPath()
	search := ""
	if u.RawQuery != "" {
		search = "?" + u.RawQuery
	}

	if m, ok := MatchCommitPath(path); ok {
		return r.resolveCommit(m, search)
	}
	if m, ok := MatchComparePath(path); ok {
		return r.resolveCompare(m, search)
	}
	if m, ok := MatchPullCommitPath(path); ok {
		return r.resolvePullCommit(m)
	}
	return CommitReference{}, Outcome{Kind: OutcomeStructuralMismatch, Reason: ReasonNoShape}
}

func (r *Rewriter) resolveCommit(m CommitMatch, search string) (CommitReference, Outcome) {
	possibleSHA, filePath, _ := strings.Cut(m.SHAFragment, "/")
	if possibleSHA == "" {
		return CommitReference{}, disqualified(ShapeCommit, ReasonMissingSHA)
	}
	// sha.patch, sha.diff and friends are alternate views, not references.
	if strings.Contains(possibleSHA, ".") {
		return CommitReference{}, disqualified(ShapeCommit, ReasonFormatSuffix)
	}
	if filePath != "" && isReservedActionPath(filePath) {
		return CommitReference{}, disqualified(ShapeCommit, ReasonReservedActionPath)
	}

	suffix := ""
	if filePath != "" {
		suffix = "/" + filePath + search
	}
	return r.formatter.Reference(m.Owner, m.Name, possibleSHA, suffix), rewritten(ShapeCommit)
}

func (r *Rewriter) resolveCompare(m CompareMatch, search string) (CommitReference, Outcome) {
	if strings.HasSuffix(m.Range, ".diff") || strings.HasSuffix(m.Range, ".patch") {
		return CommitReference{}, disqualified(ShapeCompare, ReasonDiffView)
	}
	parts := strings.Split(m.Range, rangeSeparator)
	if len(parts) > 2 {
		return CommitReference{}, disqualified(ShapeCompare, ReasonTooManyRangeParts)
	}
	if parts[0] == "" {
		return CommitReference{}, disqualified(ShapeCompare, ReasonMissingSHA)
	}

	shaRange := parts[0]
	suffix := ""
	if len(parts) == 2 {
		finalSHA, filePath, _ := strings.Cut(parts[1], "/")
		if finalSHA == "" {
			return CommitReference{}, disqualified(ShapeCompare, ReasonMissingSHA)
		}
		shaRange += rangeSeparator + finalSHA
		if filePath != "" {
			suffix = "/" + filePath + search
		}
	}
	return r.formatter.Reference(m.Owner, m.Name, shaRange, suffix), rewritten(ShapeCompare)
}

func (r *Rewriter) resolvePullCommit(m PullCommitMatch) (CommitReference, Outcome) {
	if !shaPattern.MatchString(m.SHA) {
		return CommitReference{}, disqualified(ShapePullCommit, ReasonInvalidSHA)
	}
	return r.formatter.Reference(m.Owner, m.Name, m.SHA, ""), rewritten(ShapePullCommit)
}

// cloneWithContent copies n's element identity and attributes into a new
// detached node holding children.
func cloneWithContent(n *html.Node, children []*html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for _, c := range children {
		clone.AppendChild(c)
	}
	return clone
}
