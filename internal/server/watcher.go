package server

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/staticbuild/internal/assets"
	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/staticbuild/internal/logfields"
)

// sourceWatcher watches the asset source tree. The parent directory is watched as
// well so that creating or deleting the source directory itself triggers a rebuild.
type sourceWatcher struct {
	w      *fsnotify.Watcher
	root   string
	logger *slog.Logger
}

func newSourceWatcher(root string, logger *slog.Logger) (*sourceWatcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve source directory").
			WithContext("path", root).
			Build()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryServer, "create file watcher").Build()
	}
	sw := &sourceWatcher{w: w, root: abs, logger: logger}

	if present, _ := assets.Exists(abs); present {
		sw.addDirsRecursive(abs)
	} else {
		logger.Info("Source directory does not exist yet; waiting for it to appear", logfields.Source(abs))
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		logger.Warn("watch add failed", logfields.Path(filepath.Dir(abs)), logfields.Error(err))
	}
	return sw, nil
}

func (s *sourceWatcher) Close() error { return s.w.Close() }

// handle reports whether ev should trigger a rebuild. Newly created directories are watched.
func (s *sourceWatcher) handle(ev fsnotify.Event) bool {
	if !s.relevant(ev.Name) || shouldIgnoreEvent(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			s.addDirsRecursive(ev.Name)
		}
	}
	s.logger.Debug("File change detected", logfields.Path(ev.Name), logfields.Op(ev.Op.String()))
	return true
}

func (s *sourceWatcher) relevant(path string) bool {
	return path == s.root || strings.HasPrefix(path, s.root+string(filepath.Separator))
}

func (s *sourceWatcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := s.w.Add(path); err != nil {
				s.logger.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for hidden, editor temp and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

// debouncer coalesces bursts of triggers into a single signal on C after a quiet period.
type debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	stopped bool
	C       chan struct{}
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, C: make(chan struct{}, 1)}
}

func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	select {
	case d.C <- struct{}{}:
	default:
	}
}

func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
