package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/staticbuild/internal/config"
	"git.home.luguber.info/inful/staticbuild/internal/logfields"
	"git.home.luguber.info/inful/staticbuild/internal/metrics"
)

// Builder runs static site builds for one configuration.
type Builder struct {
	cfg      *config.Config
	recorder metrics.Recorder
	out      io.Writer
	logger   *slog.Logger
	newID    func() string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithOutput sets where the human readable progress lines go (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(b *Builder) {
		if w != nil {
			b.out = w
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder. cfg is read on every Build and must not be mutated concurrently.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		out:      os.Stdout,
		logger:   slog.Default(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// buildState is shared by the stages of a single build.
type buildState struct {
	builder *Builder
	cfg     *config.Config
	report  *Report
	logger  *slog.Logger
	page    []byte
}

func (st *buildState) output() string { return st.cfg.Output.Directory }

// Build clears the output directory, copies the assets, and writes the demo page.
// The returned report is never nil, even when the build fails.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report := newReport(b.newID(), b.cfg.Source, b.cfg.Output.Directory)
	logger := b.logger.With(logfields.BuildID(report.BuildID))

	b.progress("Building static site...")
	logger.Info("Starting static build",
		logfields.Source(b.cfg.Source),
		logfields.Output(b.cfg.Output.Directory))

	st := &buildState{builder: b, cfg: b.cfg, report: report, logger: logger}
	err := b.runStages(ctx, st, pipeline())

	report.finish(err)
	b.recorder.ObserveBuildDuration(report.Duration)
	b.recorder.IncBuildOutcome(report.Outcome)

	if err != nil {
		logger.Error("Build failed", logfields.Duration(report.Duration), logfields.Error(err))
		return report, err
	}

	logger.Info("Build completed",
		logfields.Files(report.Assets.Files),
		logfields.Bytes(report.Assets.Bytes),
		slog.Int("warnings", len(report.Warnings)),
		logfields.Duration(report.Duration))
	b.progress("Build completed successfully!")
	return report, nil
}

func (b *Builder) progress(format string, args ...any) {
	_, _ = fmt.Fprintf(b.out, format+"\n", args...)
}
