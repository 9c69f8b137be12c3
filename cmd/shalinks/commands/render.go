package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/logfields"
	"git.home.luguber.info/inful/shalinks/internal/markdown"
	"git.home.luguber.info/inful/shalinks/internal/render"
	"git.home.luguber.info/inful/shalinks/internal/watch"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Input  string `arg:"" help:"Markdown file to render, or - for standard input"`
	Output string `short:"o" help:"Write HTML to this file instead of standard output"`
	Watch  bool   `short:"w" help:"Re-render whenever the input file changes"`
	Unsafe bool   `help:"Pass raw HTML in the Markdown through to the output"`

	lastFingerprint string `kong:"-"`
}

func (r *RenderCmd) Run(_ *Global, root *CLI) error {
	if r.Watch && r.Input == "-" {
		return errors.ValidationError("--watch requires a file input").Build()
	}

	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	renderer, err := root.NewRenderer(cfg, markdown.Options{Unsafe: r.Unsafe})
	if err != nil {
		return err
	}

	if !r.Watch {
		return r.renderOnce(context.Background(), root, renderer)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := r.renderOnce(ctx, root, renderer); err != nil {
		slog.Error("Render failed", logfields.Path(r.Input), logfields.Error(err))
	}
	fw, err := watch.NewFileWatcher(r.Input, watch.DefaultDebounce, func(ctx context.Context) error {
		return r.renderOnce(ctx, root, renderer)
	})
	if err != nil {
		return err
	}
	return fw.WithLogger(slog.Default()).Run(ctx)
}

func (r *RenderCmd) renderOnce(ctx context.Context, root *CLI, renderer *render.Renderer) error {
	src, err := root.readInput(r.Input)
	if err != nil {
		return err
	}
	res, err := renderer.RenderMarkdown(ctx, src)
	if err != nil {
		return err
	}
	// Editors often rewrite a file without changing it.
	if r.Watch && res.Fingerprint == r.lastFingerprint {
		slog.Debug("Unchanged, skipping write", logfields.Path(r.Input))
		return nil
	}
	r.lastFingerprint = res.Fingerprint
	if err := root.writeOutput(r.Output, res.HTML); err != nil {
		return err
	}
	slog.Info("Rendered",
		logfields.Path(r.Input),
		logfields.Repository(res.Repository.NameWithOwner()),
		logfields.Rewritten(res.Stats.Rewritten))
	return nil
}
