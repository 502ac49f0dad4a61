package runner

import (
	"io"
	"time"

	"waver/internal/stability"
)

// Results is the JSON document consumed by the presentation layer. The
// summary and results field names and nesting are stable contract.
type Results struct {
	RunID      string            `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Summary    stability.Summary `json:"summary"`
	Results    []stability.Row   `json:"results"`
}

// Options configures evaluation side-channels; the zero value is silent.
type Options struct {
	Verbose       bool
	VerboseWriter io.Writer
	NoColor       bool
	Now           func() time.Time
	RunID         func() string
}
