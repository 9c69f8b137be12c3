// Package render turns Markdown or HTML into HTML whose commit mentions are
// shortened against a repository context.
package render

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/shalinks/internal/commitlink"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/frontmatter"
	"git.home.luguber.info/inful/shalinks/internal/htmlfilter"
	"git.home.luguber.info/inful/shalinks/internal/logfields"
	"git.home.luguber.info/inful/shalinks/internal/markdown"
	"git.home.luguber.info/inful/shalinks/internal/metrics"
)

// Result is one rendered document.
type Result struct {
	HTML  []byte
	Stats htmlfilter.Stats
	// Repository is the context mentions were labelled against, after any
	// frontmatter override.
	Repository commitlink.Repository
	// Fingerprint identifies the Markdown source; empty for HTML input.
	Fingerprint string
}

// Renderer is immutable after construction and safe for concurrent use.
type Renderer struct {
	repo     commitlink.Repository
	markdown markdown.Options
	recorder metrics.Recorder
	logger   *slog.Logger
}

func New(repo commitlink.Repository, opts markdown.Options) *Renderer {
	return &Renderer{
		repo:     repo,
		markdown: opts,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder returns a copy of r reporting to rec.
func (r *Renderer) WithRecorder(rec metrics.Recorder) *Renderer {
	cp := *r
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	cp.recorder = rec
	return &cp
}

// WithLogger returns a copy of r logging to l.
func (r *Renderer) WithLogger(l *slog.Logger) *Renderer {
	cp := *r
	if l != nil {
		cp.logger = l
	}
	return &cp
}

func (r *Renderer) Repository() commitlink.Repository { return r.repo }

// ForRepository returns a copy of r for another owner/name on the same host.
func (r *Renderer) ForRepository(nameWithOwner string) (*Renderer, error) {
	owner, name, err := commitlink.ParseNameWithOwner(nameWithOwner)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid repository override").
			WithContext("repository", nameWithOwner).
			Build()
	}
	repo, err := r.repo.WithNameWithOwner(owner, name)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid repository override").Build()
	}
	cp := *r
	cp.repo = repo
	return &cp, nil
}

// RenderMarkdown renders a Markdown document, honouring a `repository`
// frontmatter field, and shortens the commit mentions in the output.
func (r *Renderer) RenderMarkdown(ctx context.Context, content []byte) (result Result, err error) {
	start := time.Now()
	defer func() { r.observe(metrics.KindMarkdown, start, result, err) }()

	repo, fm, body, err := r.splitDocument(content)
	if err != nil {
		return Result{}, err
	}

	rendered, err := markdown.Render(body, r.markdown)
	if err != nil {
		return Result{}, err
	}
	result, err = r.filter(ctx, repo, rendered)
	result.Fingerprint = frontmatter.Fingerprint(fm, body)
	return result, err
}

// splitDocument strips frontmatter and returns the repository the body
// should be labelled against.
func (r *Renderer) splitDocument(content []byte) (repo commitlink.Repository, fm, body []byte, err error) {
	fm, body, had, _, err := frontmatter.Split(content)
	if err != nil {
		return repo, nil, nil, errors.WrapError(err, errors.CategoryValidation, "failed to split frontmatter").Build()
	}
	if !had {
		return r.repo, nil, body, nil
	}

	fields, err := frontmatter.ParseYAML(fm)
	if err != nil {
		return repo, nil, nil, err
	}
	owner, name, ok, err := frontmatter.RepositoryOverride(fields)
	if err != nil {
		return repo, nil, nil, err
	}
	if !ok {
		return r.repo, fm, body, nil
	}
	repo, err = r.repo.WithNameWithOwner(owner, name)
	if err != nil {
		return repo, nil, nil, errors.WrapError(err, errors.CategoryValidation, "invalid frontmatter repository").Build()
	}
	return repo, fm, body, nil
}

// FilterHTML shortens commit mentions in an HTML fragment rendered elsewhere.
func (r *Renderer) FilterHTML(ctx context.Context, fragment []byte) (result Result, err error) {
	start := time.Now()
	defer func() { r.observe(metrics.KindFragment, start, result, err) }()

	return r.filter(ctx, r.repo, fragment)
}

// FilterDocument filters a complete HTML document from src into dst.
func (r *Renderer) FilterDocument(ctx context.Context, src io.Reader, dst io.Writer) (result Result, err error) {
	start := time.Now()
	defer func() { r.observe(metrics.KindDocument, start, result, err) }()

	stats, err := r.pipeline(r.repo).ProcessDocument(ctx, src, dst)
	return Result{Stats: stats, Repository: r.repo}, err
}

func (r *Renderer) filter(ctx context.Context, repo commitlink.Repository, fragment []byte) (Result, error) {
	out, stats, err := r.pipeline(repo).ProcessFragment(ctx, fragment)
	if err != nil {
		return Result{Stats: stats, Repository: repo}, err
	}
	return Result{HTML: out, Stats: stats, Repository: repo}, nil
}

func (r *Renderer) pipeline(repo commitlink.Repository) *htmlfilter.Pipeline {
	return htmlfilter.New(commitlink.NewFilter(repo)).
		WithRecorder(r.recorder).
		WithLogger(r.logger)
}

func (r *Renderer) observe(kind string, start time.Time, result Result, err error) {
	elapsed := time.Since(start)
	r.recorder.ObserveDocumentDuration(kind, elapsed)

	label := metrics.ResultSuccess
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		label = metrics.ResultCanceled
	case err != nil:
		label = metrics.ResultFailed
	}
	r.recorder.IncDocumentResult(kind, label)

	attrs := []any{
		logfields.Kind(kind),
		logfields.DurationMS(float64(elapsed.Microseconds()) / 1000),
		logfields.Visited(result.Stats.Visited),
		logfields.Accepted(result.Stats.Accepted),
		logfields.Rewritten(result.Stats.Rewritten),
	}
	if result.Repository.Owner != "" {
		attrs = append(attrs, logfields.Repository(result.Repository.NameWithOwner()))
	}
	if err != nil {
		r.logger.Debug("Document failed", append(attrs, logfields.Error(err))...)
		return
	}
	r.logger.Debug("Document rendered", attrs...)
}
