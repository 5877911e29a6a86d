package server

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// readUntil reads SSE lines until one contains want or the deadline passes.
func readUntil(t *testing.T, r *bufio.Reader, want string, within time.Duration) bool {
	t.Helper()
	found := make(chan bool, 1)
	go func() {
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				found <- false
				return
			}
			if strings.Contains(line, want) {
				found <- true
				return
			}
		}
	}()
	select {
	case ok := <-found:
		return ok
	case <-time.After(within):
		return false
	}
}

func connect(t *testing.T, url string) *bufio.Reader {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 3*time.Second)
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	return bufio.NewReader(resp.Body)
}

func TestHub_InitialConnectReceivesLastBuild(t *testing.T) {
	hub := NewHub(discardLogger())
	hub.Broadcast("build-1")

	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Shutdown()

	r := connect(t, srv.URL)
	assert.True(t, readUntil(t, r, `{"build":"build-1"}`, time.Second))
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub(discardLogger())

	srv := httptest.NewServer(hub)
	defer srv.Close()
	// Shutdown runs first so open streams end before the server waits for them.
	defer hub.Shutdown()

	r := connect(t, srv.URL)
	require.True(t, readUntil(t, r, ": connected", time.Second))
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast("build-2")
	assert.True(t, readUntil(t, r, `{"build":"build-2"}`, time.Second))
}

func TestHub_IgnoresRepeatedAndEmptyIDs(t *testing.T) {
	hub := NewHub(discardLogger())
	hub.Broadcast("a")
	hub.Broadcast("a")
	hub.Broadcast("")
	assert.Equal(t, "a", hub.last)
}

func TestHub_ShutdownRejectsClients(t *testing.T) {
	hub := NewHub(discardLogger())
	hub.Shutdown()
	hub.Shutdown()

	rec := httptest.NewRecorder()
	hub.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livereload", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
