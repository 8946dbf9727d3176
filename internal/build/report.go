package build

import (
	"errors"
	"fmt"
	"time"

	"github.com/admin-esegames/esegames-site/internal/metrics"
)

// Outcome is the final result of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Artifact kinds counted in the report and in metrics.
const (
	ArtifactListing = "listing"
	ArtifactArticle = "article"
	ArtifactSitemap = "sitemap"
	ArtifactFeed    = "feed"
)

// StageResult is the per-stage classification.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// StageCount aggregates outcomes for a stage.
type StageCount struct {
	Success  int
	Warning  int
	Fatal    int
	Canceled int
}

// Report captures what a build did.
type Report struct {
	BuildID     string
	Start       time.Time
	End         time.Time
	DryRun      bool
	Environment string // content environment that answered
	Entries     int
	Articles    int
	// Artifacts counts files written (or, in a dry run, that would be) per kind.
	Artifacts map[string]int
	// Paths lists written files in order.
	Paths []string

	Errors   []error // fatal or canceled stage errors; at most one today
	Warnings []error

	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         Outcome
}

func newReport(buildID string, dryRun bool) *Report {
	return &Report{
		BuildID:         buildID,
		Start:           time.Now(),
		DryRun:          dryRun,
		Artifacts:       make(map[string]int),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

func (r *Report) finish() { r.End = time.Now() }

// Duration is the wall time between start and finish.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("build=%s environment=%s entries=%d articles=%d files=%d duration=%s errors=%d warnings=%d stages=%d outcome=%s",
		r.BuildID, r.Environment, r.Entries, r.Articles, len(r.Paths),
		r.Duration().Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), len(r.StageDurations), r.Outcome)
}

// deriveOutcome sets Outcome from the recorded errors and warnings.
func (r *Report) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

func (r *Report) recordArtifact(kind, path string) {
	r.Artifacts[kind]++
	r.Paths = append(r.Paths, path)
}

// recordStageResult updates counters and emits the matching metric.
func (r *Report) recordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	sc := r.StageCounts[stage]
	var label metrics.ResultLabel
	switch res {
	case StageResultSuccess:
		sc.Success++
		label = metrics.ResultSuccess
	case StageResultWarning:
		sc.Warning++
		label = metrics.ResultWarning
	case StageResultFatal:
		sc.Fatal++
		label = metrics.ResultFatal
	case StageResultCanceled:
		sc.Canceled++
		label = metrics.ResultCanceled
	}
	r.StageCounts[stage] = sc
	if recorder != nil {
		recorder.IncStageResult(string(stage), label)
	}
}

func outcomeLabel(o Outcome) metrics.BuildOutcomeLabel {
	switch o {
	case OutcomeSuccess:
		return metrics.BuildOutcomeSuccess
	case OutcomeWarning:
		return metrics.BuildOutcomeWarning
	case OutcomeCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}
