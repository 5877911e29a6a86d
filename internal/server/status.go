package server

import (
	"sync"
	"time"
)

// buildStatus tracks the outcome of the most recent build.
type buildStatus struct {
	mu        sync.RWMutex
	lastError error
	buildID   string
	builtAt   time.Time
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess(id string) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.buildID = id
	bs.builtAt = time.Now()
}

func (bs *buildStatus) get() (id string, builtAt time.Time, err error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.buildID, bs.builtAt, bs.lastError
}
