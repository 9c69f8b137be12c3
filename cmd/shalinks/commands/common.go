package commands

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/shalinks/internal/commitlink"
	"git.home.luguber.info/inful/shalinks/internal/config"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/markdown"
	"git.home.luguber.info/inful/shalinks/internal/render"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config     string           `short:"c" help:"Configuration file path (optional when it is the default)" default:"shalinks.yaml"`
	Verbose    bool             `short:"v" help:"Enable verbose logging"`
	Repository string           `short:"r" help:"Repository the content belongs to, as owner/name"`
	Host       string           `help:"Base URL of the repository host, e.g. https://github.com"`
	Version    kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render   RenderCmd   `cmd:"" help:"Render Markdown to HTML with shortened commit links"`
	Filter   FilterCmd   `cmd:"" help:"Shorten commit links in rendered HTML"`
	Classify ClassifyCmd `cmd:"" help:"Explain how URLs would be shortened"`
	Scan     ScanCmd     `cmd:"" help:"List commit mentions in Markdown files"`
	Serve    ServeCmd    `cmd:"" help:"Start the HTTP API"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`

	// stdout and stdin are swapped in tests.
	stdout io.Writer `kong:"-"`
	stdin  io.Reader `kong:"-"`
}

// AfterApply runs after flag parsing; set up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func (c *CLI) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

func (c *CLI) in() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// LoadConfig loads the configuration file and applies the global flags on
// top. A missing file is only an error when --config names a non-default path.
func (c *CLI) LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.Config == "" || c.Config == config.DefaultPath {
		cfg, err = config.LoadOrDefault(config.DefaultPath)
	} else {
		cfg, err = config.Load(c.Config)
	}
	if err != nil {
		return nil, err
	}

	if c.Repository != "" {
		owner, name, err := commitlink.ParseNameWithOwner(c.Repository)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryValidation, "invalid --repository").
				WithContext("repository", c.Repository).
				Build()
		}
		cfg.Repository.Owner, cfg.Repository.Name = owner, name
	}
	if c.Host != "" {
		cfg.Repository.Host = c.Host
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.configureLogging(cfg)
	return cfg, nil
}

// configureLogging switches to the configured level and format unless
// --verbose already forced debug output.
func (c *CLI) configureLogging(cfg *config.Config) {
	level, _ := config.ParseLogLevel(string(cfg.Logging.Level))
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	format, _ := config.ParseLogFormat(string(cfg.Logging.Format))
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// NewRenderer resolves the repository context and builds a renderer.
func (c *CLI) NewRenderer(cfg *config.Config, opts markdown.Options) (*render.Renderer, error) {
	repo, err := cfg.ResolveRepository()
	if err != nil {
		return nil, err
	}
	slog.Debug("Resolved repository", slog.String("repository", repo.String()))
	return render.New(repo, opts).WithLogger(slog.Default()), nil
}

// readInput reads a file, or standard input for "-".
func (c *CLI) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(c.in())
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read standard input").Build()
		}
		return data, nil
	}
	// #nosec G304 -- reading user-specified input is the purpose of the command
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("input file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read input").
			WithContext("path", path).
			Build()
	}
	return data, nil
}

// writeOutput writes to a file, or to standard output when path is empty.
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := io.Copy(c.out(), bytes.NewReader(data))
		return err
	}
	// #nosec G306 -- rendered HTML is meant to be readable
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("path", path).
			Build()
	}
	return nil
}
