package build

import (
	"context"
	stderrors "errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/staticbuild/internal/assets"
	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/staticbuild/internal/logfields"
	"git.home.luguber.info/inful/staticbuild/internal/metrics"
	"git.home.luguber.info/inful/staticbuild/internal/page"
)

// StageName identifies a build stage.
type StageName string

const (
	StageClean    StageName = "clean"
	StageCopy     StageName = "copy"
	StageGenerate StageName = "generate"
	StageWrite    StageName = "write"
	StageVerify   StageName = "verify"
)

// stageFn executes one stage against the shared build state.
type stageFn func(ctx context.Context, st *buildState) error

type stageDef struct {
	name StageName
	fn   stageFn
}

// errStageSkipped lets a stage report that it had nothing to do.
var errStageSkipped = stderrors.New("stage skipped")

func pipeline() []stageDef {
	return []stageDef{
		{StageClean, stageClean},
		{StageCopy, stageCopy},
		{StageGenerate, stageGenerate},
		{StageWrite, stageWrite},
		{StageVerify, stageVerify},
	}
}

// runStages executes stages in order, recording timing and stopping on the first error.
func (b *Builder) runStages(ctx context.Context, st *buildState, stages []stageDef) error {
	for _, def := range stages {
		if err := ctx.Err(); err != nil {
			b.recorder.IncStageResult(string(def.name), metrics.ResultCanceled)
			return errors.WrapError(err, errors.CategoryCanceled, "build canceled").
				Fatal().
				WithContext("stage", string(def.name)).
				Build()
		}

		logger := st.logger.With(logfields.Stage(string(def.name)))
		logger.Debug("Stage started")

		t0 := time.Now()
		err := def.fn(ctx, st)
		dur := time.Since(t0)

		st.report.StageDurations[def.name] = dur
		b.recorder.ObserveStageDuration(string(def.name), dur)

		switch {
		case err == nil:
			b.recorder.IncStageResult(string(def.name), metrics.ResultSuccess)
			logger.Debug("Stage completed", logfields.Duration(dur))
		case stderrors.Is(err, errStageSkipped):
			b.recorder.IncStageResult(string(def.name), metrics.ResultSkipped)
			logger.Debug("Stage skipped", logfields.Duration(dur))
		default:
			b.recorder.IncStageResult(string(def.name), metrics.ResultFailed)
			return stageError(def.name, err)
		}
	}
	return nil
}

// stageError attaches the stage to a classified error, classifying it as a build error if needed.
func stageError(name StageName, err error) error {
	if classified, ok := errors.AsClassified(err); ok {
		return classified.WithContext("stage", string(name))
	}
	return errors.WrapError(err, errors.CategoryBuild, "stage failed").
		Fatal().
		WithContext("stage", string(name)).
		Build()
}

func stageClean(_ context.Context, st *buildState) error {
	return assets.ResetDir(st.output())
}

func stageCopy(_ context.Context, st *buildState) error {
	src := st.cfg.Source
	present, err := assets.Exists(src)
	if err != nil {
		return err
	}
	st.report.SourcePresent = present
	if !present {
		st.logger.Debug("Source directory not found; skipping asset copy", logfields.Source(src))
		return errStageSkipped
	}

	stats, err := assets.CopyTree(src, st.output())
	st.report.Assets = stats
	st.builder.recorder.AddFilesCopied(stats.Files)
	st.builder.recorder.AddBytesCopied(stats.Bytes)
	if err != nil {
		return err
	}
	st.logger.Info("Copied assets",
		logfields.Source(src),
		logfields.Files(stats.Files),
		logfields.Dirs(stats.Dirs),
		logfields.Bytes(stats.Bytes))
	return nil
}

func stageGenerate(_ context.Context, st *buildState) error {
	opts := page.Options{
		Title:          st.cfg.Page.Title,
		Stylesheet:     st.cfg.Page.Stylesheet,
		HashLibraryURL: st.cfg.Page.HashLibraryURL,
		DefaultMessage: st.cfg.Page.DefaultMessage,
		Intro:          st.cfg.Page.Intro,
	}
	html, err := page.Render(opts)
	if err != nil {
		return err
	}
	st.page = html
	return nil
}

func stageWrite(_ context.Context, st *buildState) error {
	target := filepath.Join(st.output(), st.cfg.Output.Page)
	// #nosec G306 -- generated page is a public asset
	if err := os.WriteFile(target, st.page, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write generated page").
			Fatal().
			WithContext("path", target).
			Build()
	}
	st.report.PagePath = target
	st.report.PageBytes = len(st.page)
	st.builder.progress("Generated %s", st.cfg.Output.Page)
	st.logger.Info("Generated page", logfields.Path(target), logfields.Bytes(int64(len(st.page))))
	return nil
}

func stageVerify(_ context.Context, st *buildState) error {
	f, err := os.Open(st.report.PagePath)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "open generated page").
			Fatal().
			WithContext("path", st.report.PagePath).
			Build()
	}
	defer func() {
		_ = f.Close()
	}()

	doc, err := page.Check(f)
	if err != nil {
		return errors.WrapError(err, errors.CategoryBuild, "generated page failed verification").
			Fatal().
			WithContext("path", st.report.PagePath).
			Build()
	}

	for _, res := range doc.InternalResources() {
		rel, ok := localPath(res.URL)
		if !ok {
			continue
		}
		if _, err := os.Stat(filepath.Join(st.output(), filepath.FromSlash(rel))); err == nil {
			continue
		}
		warning := "referenced asset not found in output: " + res.URL
		st.report.Warnings = append(st.report.Warnings, warning)
		st.logger.Warn("Referenced asset not found in output",
			logfields.Path(res.URL),
			"tag", res.Tag,
			"attribute", res.Attribute)
	}
	return nil
}

// localPath maps an internal URL to a slash-separated path below the output root.
func localPath(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "", false
	}
	clean := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	if clean == "" {
		return "", false
	}
	return clean, true
}
