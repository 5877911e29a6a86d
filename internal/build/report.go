package build

import (
	"time"

	"git.home.luguber.info/inful/staticbuild/internal/assets"
	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/staticbuild/internal/metrics"
)

// Report describes a finished (or aborted) build.
type Report struct {
	BuildID        string
	Source         string
	Output         string
	SourcePresent  bool
	Assets         assets.Stats
	PagePath       string
	PageBytes      int
	Warnings       []string
	StageDurations map[StageName]time.Duration
	Outcome        metrics.BuildOutcomeLabel
	Start          time.Time
	Duration       time.Duration
}

func newReport(id, source, output string) *Report {
	return &Report{
		BuildID:        id,
		Source:         source,
		Output:         output,
		StageDurations: make(map[StageName]time.Duration, 5),
		Start:          time.Now(),
	}
}

// finish stamps the duration and derives the outcome from the build error.
func (r *Report) finish(err error) {
	r.Duration = time.Since(r.Start)
	switch {
	case err != nil && errors.HasCategory(err, errors.CategoryCanceled):
		r.Outcome = metrics.BuildOutcomeCanceled
	case err != nil:
		r.Outcome = metrics.BuildOutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = metrics.BuildOutcomeWarning
	default:
		r.Outcome = metrics.BuildOutcomeSuccess
	}
}
