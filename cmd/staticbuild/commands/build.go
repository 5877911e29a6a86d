package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/staticbuild/internal/build"
	"git.home.luguber.info/inful/staticbuild/internal/config"
	"git.home.luguber.info/inful/staticbuild/internal/logfields"
	"git.home.luguber.info/inful/staticbuild/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	PathFlags   `embed:""`
	Page        string `name:"page" help:"Generated page filename (default: index.html)" placeholder:"NAME"`
	MetricsFile string `name:"metrics-file" help:"Write build metrics to this Prometheus textfile" placeholder:"PATH"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	b.apply(cfg)
	if b.Page != "" {
		cfg.Output.Page = b.Page
	}
	if b.MetricsFile != "" {
		cfg.Metrics.Textfile = b.MetricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	_, err = RunBuild(ctx, g, cfg)
	return err
}

// RunBuild performs one build, exporting metrics to the configured textfile (if any).
func RunBuild(ctx context.Context, g *Global, cfg *config.Config) (*build.Report, error) {
	opts := []build.Option{
		build.WithOutput(g.stdout()),
		build.WithLogger(slog.Default()),
	}
	var reg *prom.Registry
	if cfg.Metrics.Textfile != "" {
		reg = prom.NewRegistry()
		opts = append(opts, build.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	}

	report, err := build.NewBuilder(cfg, opts...).Build(ctx)

	if reg != nil {
		if werr := metrics.WriteTextfile(reg, cfg.Metrics.Textfile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(werr))
		} else {
			slog.Debug("Metrics textfile written", logfields.Path(cfg.Metrics.Textfile))
		}
	}
	return report, err
}
