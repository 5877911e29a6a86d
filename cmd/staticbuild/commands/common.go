package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/staticbuild/internal/config"
	"git.home.luguber.info/inful/staticbuild/internal/logfields"
)

// logLevel is shared by the default logger so a config file can lower or raise it after parsing.
var logLevel = new(slog.LevelVar)

// Global carries state shared by all commands.
type Global struct {
	// Stdout receives human readable progress lines. Structured logs go to stderr.
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(g.stdout(), format, args...)
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: staticbuild.yaml, optional)" placeholder:"PATH"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Build the static site (default command)"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
	Serve ServeCmd `cmd:"" help:"Build, serve and rebuild the site on change with live reload"`
	Keys  KeysCmd  `cmd:"" help:"Run the toy key demo from the terminal"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv("STATICBUILD_LOG_LEVEL")).SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	logLevel.Set(level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return nil
}

// configPath returns the file to read and whether it must exist.
func (c *CLI) configPath() (string, bool) {
	if c.Config != "" {
		return c.Config, true
	}
	return config.DefaultFile, false
}

// loadConfig loads the configuration and applies its log level unless -v was given.
func (c *CLI) loadConfig() (*config.Config, error) {
	path, required := c.configPath()
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	if !c.Verbose && cfg.Logging.Level != "" {
		logLevel.Set(cfg.Logging.Level.SlogLevel())
	}
	slog.Debug("Configuration loaded", logfields.Path(path), slog.Bool("required", required))
	return cfg, nil
}

// PathFlags override the source and output locations from the configuration.
type PathFlags struct {
	Source string `short:"s" help:"Asset directory mirrored into the output (default: public)" placeholder:"DIR"`
	Output string `short:"o" help:"Output directory, deleted and recreated on every build (default: dist)" placeholder:"DIR"`
}

func (p PathFlags) apply(cfg *config.Config) {
	if p.Source != "" {
		cfg.Source = p.Source
	}
	if p.Output != "" {
		cfg.Output.Directory = p.Output
	}
}
