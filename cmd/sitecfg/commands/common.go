package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"github.com/alecthomas/kong"
)

// Global carries process-wide state into subcommands.
type Global struct {
	Ctx    context.Context
	Out    io.Writer // command output; logs go to stderr
	Logger *slog.Logger
}

func (g *Global) context() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitecfg.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"1" help:"Write the site build configuration file"`
	Print    PrintCmd    `cmd:"" help:"Render the site build configuration to stdout"`
	Check    CheckCmd    `cmd:"" help:"Verify every sidebar group directory exists"`
	Discover DiscoverCmd `cmd:"" help:"List the pages each sidebar group will show"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate on configuration and content changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// TargetFlags select the variant and output on the command line.
type TargetFlags struct {
	Target string `short:"t" help:"Deployment target (static, vercel)"`
	Format string `short:"f" help:"Output format (mjs, json, yaml)"`
}

// loadConfig loads the configuration file, falling back to the defaults when
// it does not exist, and applies the file's logging settings.
func loadConfig(root *CLI, g *Global, o config.Overrides) (*config.Config, error) {
	cfg, found, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, err
	}
	if found {
		logger := cfg.Logging.NewLogger(os.Stderr, root.Verbose)
		slog.SetDefault(logger)
		g.Logger = logger
	} else {
		slog.Debug("No configuration file, using defaults", logfields.Path(root.Config))
	}
	if err := cfg.Apply(o); err != nil {
		return nil, err
	}
	return cfg, nil
}
