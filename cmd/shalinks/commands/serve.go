package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/shalinks/internal/markdown"
	"git.home.luguber.info/inful/shalinks/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Address string `short:"a" help:"Listen address (overrides server.address)"`
	Metrics bool   `help:"Expose Prometheus metrics even when metrics.enabled is false"`
	Unsafe  bool   `help:"Pass raw HTML in Markdown through to the output"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if s.Address != "" {
		cfg.Server.Address = s.Address
	}
	if s.Metrics {
		cfg.Metrics.Enabled = true
	}

	renderer, err := root.NewRenderer(cfg, markdown.Options{Unsafe: s.Unsafe})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return httpserver.New(cfg, renderer, slog.Default()).Start(ctx)
}
