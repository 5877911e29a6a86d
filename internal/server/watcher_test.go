package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	cases := map[string]bool{
		"public/css/a.css":      false,
		"public/index.html":     false,
		"public/.hidden":        true,
		"public/.DS_Store":      true,
		"public/a.css~":         true,
		"public/.a.css.swp":     true,
		"public/a.swx":          true,
		"public/#a.css#":        true,
		"public/Thumbs.db":      true,
		"public/notes#draft.md": false,
	}
	for path, want := range cases {
		assert.Equal(t, want, shouldIgnoreEvent(path), path)
	}
}

func TestSourceWatcher_Relevant(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "public")
	sw, err := newSourceWatcher(src, discardLogger())
	require.NoError(t, err)
	defer func() { _ = sw.Close() }()

	assert.True(t, sw.handle(fsnotify.Event{Name: src, Op: fsnotify.Create}))
	assert.True(t, sw.handle(fsnotify.Event{Name: filepath.Join(src, "a.css"), Op: fsnotify.Write}))
	assert.False(t, sw.handle(fsnotify.Event{Name: filepath.Join(root, "dist"), Op: fsnotify.Create}))
	assert.False(t, sw.handle(fsnotify.Event{Name: src + "-old", Op: fsnotify.Create}))
	assert.False(t, sw.handle(fsnotify.Event{Name: filepath.Join(src, ".swp"), Op: fsnotify.Write}))
}

func TestSourceWatcher_SeesNestedChanges(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "css"), 0o755))
	sw, err := newSourceWatcher(src, discardLogger())
	require.NoError(t, err)
	defer func() { _ = sw.Close() }()

	target := filepath.Join(src, "css", "a.css")
	require.NoError(t, os.WriteFile(target, []byte("a{}"), 0o644))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-sw.w.Events:
			if ev.Name == target && sw.handle(ev) {
				return
			}
		case <-deadline:
			t.Fatal("no event for nested file")
		}
	}
}

func TestDebouncer_Coalesces(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	defer d.Stop()

	for range 5 {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-d.C:
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}
	select {
	case <-d.C:
		t.Fatal("debouncer fired twice")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_StopPreventsFire(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	d.Trigger()
	d.Stop()
	d.Trigger()

	select {
	case <-d.C:
		t.Fatal("stopped debouncer fired")
	case <-time.After(80 * time.Millisecond):
	}
}
