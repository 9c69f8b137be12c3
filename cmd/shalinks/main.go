package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/shalinks/cmd/shalinks/commands"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("shalinks"),
		kong.Description("Shorten commit, compare and pull request commit links in rendered Markdown."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()})
	if err != nil {
		os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(os.Stderr, err))
	}
}
