package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/shalinks/internal/markdown"
)

// ScanCmd implements the 'scan' command.
type ScanCmd struct {
	Files []string `arg:"" name:"file" help:"Markdown files to scan" type:"existingfile"`
}

func (s *ScanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	renderer, err := root.NewRenderer(cfg, markdown.Options{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(root.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "FILE\tURL\tOUTCOME\tLABEL")
	for _, path := range s.Files {
		src, err := root.readInput(path)
		if err != nil {
			return err
		}
		mentions, err := renderer.Mentions(src)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, m := range mentions {
			outcome := string(m.Outcome.Kind)
			if m.Outcome.Reason != "" {
				outcome += " (" + m.Outcome.Reason + ")"
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", path, m.URL, outcome, dash(m.Label()))
		}
	}
	return tw.Flush()
}
