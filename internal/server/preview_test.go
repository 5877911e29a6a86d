package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/staticbuild/internal/build"
	"git.home.luguber.info/inful/staticbuild/internal/config"
	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/staticbuild/internal/metrics"
	"git.home.luguber.info/inful/staticbuild/internal/server/responses"
	helpers "git.home.luguber.info/inful/staticbuild/internal/testutil/testutils"
)

type fakeBuilder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeBuilder) Build(context.Context) (*build.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return &build.Report{}, f.err
	}
	return &build.Report{BuildID: "id-" + string(rune('0'+f.calls))}, nil
}

func newTestPreview(t *testing.T, b Builder, liveReload bool) (*Preview, string) {
	t.Helper()
	out := t.TempDir()
	helpers.WriteTree(t, out, map[string]string{
		"index.html": "<!DOCTYPE html><html><head><title>t</title></head><body>page</body></html>",
		"css/a.css":  "a{}",
	})
	p := NewPreview(b, Options{
		OutputDir:  out,
		LiveReload: liveReload,
		Registry:   prom.NewRegistry(),
		Logger:     discardLogger(),
	})
	return p, out
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_ServesOutputWithLiveReload(t *testing.T) {
	p, _ := newTestPreview(t, &fakeBuilder{}, true)
	p.rebuild(context.Background())
	h := p.Handler()

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "page"+scriptTag+"</body>")
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	rec = get(t, h, "/css/a.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a{}", rec.Body.String())

	rec = get(t, h, "/livereload.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "EventSource('/livereload')")
}

func TestHandler_NoLiveReload(t *testing.T) {
	p, _ := newTestPreview(t, &fakeBuilder{}, false)
	p.rebuild(context.Background())
	h := p.Handler()

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), scriptTag)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/livereload.js").Code)
}

func TestHandler_Health(t *testing.T) {
	p, _ := newTestPreview(t, &fakeBuilder{}, true)
	p.rebuild(context.Background())

	rec := get(t, p.Handler(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp responses.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, responses.StatusOK, resp.Status)
	assert.Equal(t, "id-1", resp.BuildID)
	assert.False(t, resp.BuiltAt.IsZero())
}

func TestHandler_BuildFailure(t *testing.T) {
	fb := &fakeBuilder{err: errors.BuildError("generated page failed verification").Build()}
	p, _ := newTestPreview(t, fb, true)
	p.rebuild(context.Background())
	h := p.Handler()

	rec := get(t, h, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Build Failed")
	assert.Contains(t, rec.Body.String(), "generated page failed verification")
	assert.Contains(t, rec.Body.String(), scriptTag)

	assert.Equal(t, http.StatusOK, get(t, h, "/css/a.css").Code)

	rec = get(t, h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), responses.StatusBuildFailed)
}

func TestRebuild_CanceledBuildKeepsStatus(t *testing.T) {
	fb := &fakeBuilder{}
	p, _ := newTestPreview(t, fb, false)
	p.rebuild(context.Background())

	fb.err = errors.CanceledError("build canceled").Build()
	p.rebuild(context.Background())

	id, _, err := p.status.get()
	assert.NoError(t, err)
	assert.Equal(t, "id-1", id)
}

func TestHandler_Metrics(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.IncBuildOutcome(metrics.BuildOutcomeSuccess)

	p := NewPreview(&fakeBuilder{}, Options{OutputDir: t.TempDir(), Registry: reg, Logger: discardLogger()})
	resp := get(t, p.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "staticbuild_build_outcomes_total")
}

func TestServe_RebuildsOnSourceChange(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Source = filepath.Join(root, "public")
	cfg.Output.Directory = filepath.Join(root, "dist")
	helpers.WriteTree(t, cfg.Source, map[string]string{"css/a.css": "v1"})

	b := build.NewBuilder(cfg, build.WithOutput(io.Discard), build.WithLogger(discardLogger()))
	p := NewPreview(b, Options{
		SourceDir:  cfg.Source,
		OutputDir:  cfg.Output.Directory,
		LiveReload: true,
		Logger:     discardLogger(),
		Debounce:   20 * time.Millisecond,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx, ln) }()

	fetch := func(path string) string {
		resp, err := http.Get(base + path) //nolint:noctx // test helper
		if err != nil {
			return ""
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}

	require.Eventually(t, func() bool { return fetch("/css/a.css") == "v1" }, 3*time.Second, 20*time.Millisecond)
	assert.True(t, strings.Contains(fetch("/"), "<title>Public Private Key Demo</title>"))

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Source, "css", "a.css"), []byte("v2"), 0o644))
	require.Eventually(t, func() bool { return fetch("/css/a.css") == "v2" }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("preview did not shut down")
	}
}
