// Package metrics provides build metrics for staticbuild.
//
// Components receive a Recorder and default to NoopRecorder, so metrics cost
// nothing unless a PrometheusRecorder is injected. The CLI injects one when a
// metrics textfile is configured, and the preview server exposes the same
// registry on /metrics.
package metrics
