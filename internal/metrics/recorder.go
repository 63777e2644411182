package metrics

import "time"

// Outcome labels a generation run.
type Outcome string

const (
	OutcomeWritten   Outcome = "written"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	ObserveGenerateDuration(d time.Duration)
	IncGenerateOutcome(outcome Outcome)
	SetGroupPages(group string, n int)
	IncWatchEvent(source string) // source: config|content
	IncContentCheck(ok bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGenerateDuration(time.Duration) {}
func (NoopRecorder) IncGenerateOutcome(Outcome)            {}
func (NoopRecorder) SetGroupPages(string, int)             {}
func (NoopRecorder) IncWatchEvent(string)                  {}
func (NoopRecorder) IncContentCheck(bool)                  {}
