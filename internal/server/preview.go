package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/staticbuild/internal/build"
	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/staticbuild/internal/logfields"
	"git.home.luguber.info/inful/staticbuild/internal/metrics"
	"git.home.luguber.info/inful/staticbuild/internal/server/middleware"
	"git.home.luguber.info/inful/staticbuild/internal/server/responses"
	"git.home.luguber.info/inful/staticbuild/internal/version"
)

// DefaultDebounce is the quiet period after the last file change before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

const shutdownTimeout = 5 * time.Second

// Builder runs a single build.
type Builder interface {
	Build(ctx context.Context) (*build.Report, error)
}

// Options configure a Preview.
type Options struct {
	Addr       string
	SourceDir  string
	OutputDir  string
	LiveReload bool
	// Registry is exposed on /metrics when set.
	Registry *prom.Registry
	Logger   *slog.Logger
	Debounce time.Duration
}

// Preview serves the output directory and rebuilds on source changes.
type Preview struct {
	opts    Options
	builder Builder
	hub     *Hub
	status  *buildStatus
	logger  *slog.Logger
}

// NewPreview creates a preview server around builder.
func NewPreview(builder Builder, opts Options) *Preview {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Preview{
		opts:    opts,
		builder: builder,
		hub:     NewHub(opts.Logger),
		status:  &buildStatus{},
		logger:  opts.Logger,
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (p *Preview) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", p.opts.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryServer, "listen").
			Fatal().
			WithContext("addr", p.opts.Addr).
			Build()
	}
	return p.Serve(ctx, ln)
}

// Serve builds once, then serves on ln and rebuilds on change until ctx is canceled.
// A failing build does not stop the server; the error is shown in the browser instead.
func (p *Preview) Serve(ctx context.Context, ln net.Listener) error {
	p.rebuild(ctx)

	watcher, err := newSourceWatcher(p.opts.SourceDir, p.logger)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer func() { _ = watcher.Close() }()

	srv := &http.Server{
		Handler:           p.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	p.logger.Info("Preview server listening",
		logfields.Addr(ln.Addr().String()),
		slog.String("url", "http://"+ln.Addr().String()+"/"))

	deb := newDebouncer(p.opts.Debounce)
	defer deb.Stop()
	go p.rebuildWorker(ctx, deb.C)

	for {
		select {
		case <-ctx.Done():
			return p.shutdown(srv)
		case err, ok := <-serveErr:
			if ok && err != nil {
				return errors.WrapError(err, errors.CategoryServer, "preview server stopped").Build()
			}
			return nil
		case ev, ok := <-watcher.w.Events:
			if !ok {
				return nil
			}
			if watcher.handle(ev) {
				deb.Trigger()
			}
		case err, ok := <-watcher.w.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (p *Preview) rebuildWorker(ctx context.Context, req <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			p.logger.Info("Change detected; rebuilding site")
			p.rebuild(ctx)
		}
	}
}

// rebuild runs one build and notifies browsers.
func (p *Preview) rebuild(ctx context.Context) {
	report, err := p.builder.Build(ctx)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryCanceled) {
			return
		}
		p.logger.Warn("Build failed", logfields.Error(err))
		p.status.setError(err)
		p.hub.Broadcast(fmt.Sprintf("error:%d", time.Now().UnixNano()))
		return
	}
	id := ""
	if report != nil {
		id = report.BuildID
	}
	if id == "" {
		id = fmt.Sprintf("build:%d", time.Now().UnixNano())
	}
	p.status.setSuccess(id)
	p.hub.Broadcast(id)
}

func (p *Preview) shutdown(srv *http.Server) error {
	p.logger.Info("Shutting down preview server...")
	p.hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		p.logger.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

// Handler returns the preview HTTP routes.
func (p *Preview) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogging(p.logger))

	r.Get("/healthz", p.handleHealth)
	if p.opts.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(p.opts.Registry))
	}
	if p.opts.LiveReload {
		r.Get("/livereload", p.hub.ServeHTTP)
		r.Get("/livereload.js", serveLiveReloadScript)
	}

	var site http.Handler = p.siteHandler(http.FileServer(http.Dir(p.opts.OutputDir)))
	if p.opts.LiveReload {
		site = injectLiveReload(site)
	}
	r.With(middleware.NoCache).Handle("/*", site)
	return r
}

// siteHandler serves the build output, or an error page for HTML requests while the last build is broken.
func (p *Preview) siteHandler(files http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := p.status.get(); err != nil && isHTMLPath(r.URL.Path) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, `<!doctype html><html><head><meta charset="utf-8"><title>Build Failed</title></head><body><h1>Build Failed</h1><p>Fix the error below and save to rebuild automatically.</p><pre>%s</pre></body></html>`,
				html.EscapeString(err.Error()))
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (p *Preview) handleHealth(w http.ResponseWriter, _ *http.Request) {
	id, builtAt, err := p.status.get()
	resp := responses.HealthResponse{
		Status:  responses.StatusOK,
		Version: version.Version,
		BuildID: id,
		BuiltAt: builtAt,
		Clients: p.hub.Clients(),
	}
	code := http.StatusOK
	if err != nil {
		resp.Status = responses.StatusBuildFailed
		resp.LastError = err.Error()
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		p.logger.Debug("write health response", logfields.Error(err))
	}
}
