package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "newsbuild"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	stageDuration  *prom.HistogramVec
	buildDuration  prom.Histogram
	stageResults   *prom.CounterVec
	buildOutcome   *prom.CounterVec
	fetchAttempts  *prom.CounterVec
	entriesFetched prom.Gauge
	artifacts      *prom.CounterVec
	lastBuild      prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.fetchAttempts = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_attempts_total",
			Help:      "Content API requests by environment and HTTP status",
		}, []string{"environment", "status"})
		pr.entriesFetched = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "entries_fetched",
			Help:      "Entries returned by the content API in the last build",
		})
		pr.artifacts = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_written_total",
			Help:      "Files written by kind",
		}, []string{"kind"})
		pr.lastBuild = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time at which the last build finished",
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
			pr.fetchAttempts, pr.entriesFetched, pr.artifacts, pr.lastBuild)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

// IncBuildOutcome also stamps the last-build timestamp.
func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
	p.lastBuild.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncFetchAttempt(environment, status string) {
	if p == nil || p.fetchAttempts == nil {
		return
	}
	p.fetchAttempts.WithLabelValues(environment, status).Inc()
}

func (p *PrometheusRecorder) SetEntriesFetched(n int) {
	if p == nil || p.entriesFetched == nil {
		return
	}
	p.entriesFetched.Set(float64(n))
}

func (p *PrometheusRecorder) IncArtifactWritten(kind string) {
	if p == nil || p.artifacts == nil {
		return
	}
	p.artifacts.WithLabelValues(kind).Inc()
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format. The file is replaced atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
