package commands

import (
	"context"
	"log/slog"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/staticbuild/internal/build"
	"git.home.luguber.info/inful/staticbuild/internal/metrics"
	"git.home.luguber.info/inful/staticbuild/internal/server"
)

// ServeCmd builds the site, serves it and rebuilds when the source directory changes.
type ServeCmd struct {
	PathFlags    `embed:""`
	Port         int  `name:"port" help:"Preview server port (default: 8080)"`
	NoLiveReload bool `name:"no-live-reload" help:"Disable live reload event stream and script injection"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	s.apply(cfg)
	if s.Port != 0 {
		cfg.Serve.Port = s.Port
	}
	if s.NoLiveReload {
		cfg.Serve.DisableLiveReload = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prom.NewRegistry()
	builder := build.NewBuilder(cfg,
		build.WithOutput(g.stdout()),
		build.WithLogger(slog.Default()),
		build.WithRecorder(metrics.NewPrometheusRecorder(reg)))

	addr := net.JoinHostPort("", strconv.Itoa(cfg.Serve.Port))
	preview := server.NewPreview(builder, server.Options{
		Addr:       addr,
		SourceDir:  cfg.Source,
		OutputDir:  cfg.Output.Directory,
		LiveReload: !cfg.Serve.DisableLiveReload,
		Registry:   reg,
		Logger:     slog.Default(),
	})
	g.printf("Serving %s at http://localhost:%d/ (Ctrl+C to stop)\n", cfg.Output.Directory, cfg.Serve.Port)
	return preview.Run(ctx)
}
