// Package responses defines JSON response types returned by the preview server.
package responses

import "time"

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	BuildID   string    `json:"build_id,omitempty"`
	BuiltAt   time.Time `json:"built_at,omitzero"`
	LastError string    `json:"last_error,omitempty"`
	Clients   int       `json:"livereload_clients"`
}

// Health status values.
const (
	StatusOK          = "ok"
	StatusBuildFailed = "build_failed"
)
