// Package eventstore keeps a SQLite ledger of build events and projects it
// into per-build summaries.
package eventstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

const (
	StatusRunning = "running"
	StatusFailed  = "failed"
)

// BuildSummary is a read model of one build.
type BuildSummary struct {
	BuildID      string         `json:"build_id"`
	Status       string         `json:"status"` // running, failed, or the completed outcome
	Version      string         `json:"version,omitempty"`
	DryRun       bool           `json:"dry_run,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	Duration     time.Duration  `json:"duration,omitempty"`
	Environment  string         `json:"environment,omitempty"`
	Entries      int            `json:"entries"`
	Articles     int            `json:"articles"`
	Artifacts    map[string]int `json:"artifacts,omitempty"` // kind -> files written
	ErrorStage   string         `json:"error_stage,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// BuildHistoryProjection maintains an in-memory view of build history,
// reconstructed from events stored in the event store.
type BuildHistoryProjection struct {
	mu     sync.RWMutex
	store  Store
	builds map[string]*BuildSummary
}

func NewBuildHistoryProjection(store Store) *BuildHistoryProjection {
	return &BuildHistoryProjection{store: store, builds: make(map[string]*BuildSummary)}
}

// Rebuild reconstructs the projection from all events in the store.
func (p *BuildHistoryProjection) Rebuild(ctx context.Context) error {
	events, err := p.store.GetRange(ctx, time.Unix(0, 0), time.Now().Add(time.Hour))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.builds = make(map[string]*BuildSummary)
	for _, event := range events {
		p.applyEventLocked(event)
	}
	return nil
}

// Apply processes a single event and updates the projection.
func (p *BuildHistoryProjection) Apply(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyEventLocked(event)
}

func (p *BuildHistoryProjection) applyEventLocked(event Event) {
	buildID := event.BuildID()
	if buildID == "" {
		return
	}
	summary, exists := p.builds[buildID]
	if !exists {
		summary = &BuildSummary{BuildID: buildID, Status: StatusRunning, StartedAt: event.Timestamp()}
		p.builds[buildID] = summary
	}

	switch event.Type() {
	case TypeBuildStarted:
		summary.StartedAt = event.Timestamp()
		var meta BuildStartedMeta
		if err := json.Unmarshal(event.Payload(), &meta); err == nil {
			summary.Version = meta.Version
			summary.DryRun = meta.DryRun
		}

	case TypeContentFetched:
		var payload struct {
			Environment string `json:"environment"`
			Entries     int    `json:"entries"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.Environment = payload.Environment
			summary.Entries = payload.Entries
		}

	case TypeArtifactWritten:
		var payload struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil && payload.Kind != "" {
			if summary.Artifacts == nil {
				summary.Artifacts = make(map[string]int)
			}
			summary.Artifacts[payload.Kind]++
		}

	case TypeBuildCompleted:
		finish(summary, event.Timestamp())
		var payload struct {
			Outcome  string `json:"outcome"`
			Articles int    `json:"articles"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.Status = payload.Outcome
			summary.Articles = payload.Articles
		}

	case TypeBuildFailed:
		finish(summary, event.Timestamp())
		summary.Status = StatusFailed
		var payload struct {
			Stage string `json:"stage"`
			Error string `json:"error"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.ErrorStage = payload.Stage
			summary.ErrorMessage = payload.Error
		}
	}
}

func finish(summary *BuildSummary, at time.Time) {
	summary.CompletedAt = &at
	summary.Duration = at.Sub(summary.StartedAt)
}

// GetHistory returns up to limit builds, newest first. limit <= 0 returns all.
func (p *BuildHistoryProjection) GetHistory(limit int) []BuildSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]BuildSummary, 0, len(p.builds))
	for _, s := range p.builds {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].BuildID > out[j].BuildID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetBuild returns the summary for a specific build.
func (p *BuildHistoryProjection) GetBuild(buildID string) (BuildSummary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.builds[buildID]
	if !ok {
		return BuildSummary{}, false
	}
	return *s, true
}
