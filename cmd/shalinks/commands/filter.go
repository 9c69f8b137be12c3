package commands

import (
	"bytes"
	"context"
	"log/slog"

	"git.home.luguber.info/inful/shalinks/internal/logfields"
	"git.home.luguber.info/inful/shalinks/internal/markdown"
	"git.home.luguber.info/inful/shalinks/internal/render"
)

// FilterCmd implements the 'filter' command.
type FilterCmd struct {
	Input    string `arg:"" help:"HTML file to filter, or - for standard input"`
	Output   string `short:"o" help:"Write HTML to this file instead of standard output"`
	Document bool   `short:"d" help:"Treat the input as a complete HTML document instead of a fragment"`
}

func (f *FilterCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	renderer, err := root.NewRenderer(cfg, markdown.Options{})
	if err != nil {
		return err
	}
	src, err := root.readInput(f.Input)
	if err != nil {
		return err
	}

	var (
		out []byte
		res render.Result
	)
	if f.Document {
		var buf bytes.Buffer
		res, err = renderer.FilterDocument(context.Background(), bytes.NewReader(src), &buf)
		out = buf.Bytes()
	} else {
		res, err = renderer.FilterHTML(context.Background(), src)
		out = res.HTML
	}
	if err != nil {
		return err
	}
	if err := root.writeOutput(f.Output, out); err != nil {
		return err
	}
	slog.Debug("Filtered",
		logfields.Path(f.Input),
		logfields.Accepted(res.Stats.Accepted),
		logfields.Rewritten(res.Stats.Rewritten))
	return nil
}
