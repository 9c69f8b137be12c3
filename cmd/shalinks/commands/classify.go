package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/shalinks/internal/commitlink"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/server/responses"
)

// ClassifyCmd implements the 'classify' command.
type ClassifyCmd struct {
	URLs   []string `arg:"" name:"url" help:"URLs to classify"`
	Format string   `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (c *ClassifyCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	repo, err := cfg.ResolveRepository()
	if err != nil {
		return err
	}
	filter := commitlink.NewFilter(repo)

	results := make([]responses.ClassifyResponse, 0, len(c.URLs))
	for _, u := range c.URLs {
		results = append(results, responses.NewClassifyResponse(filter.Classify(u)))
	}

	if c.Format == "json" {
		enc := json.NewEncoder(root.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode results").Build()
		}
		return nil
	}

	tw := tabwriter.NewWriter(root.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "URL\tOUTCOME\tSHAPE\tREASON\tLABEL")
	for _, r := range results {
		outcome := r.Outcome
		if !r.Candidate {
			outcome = "not_candidate"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.URL, outcome, dash(r.Shape), dash(r.Reason), dash(r.Label))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
