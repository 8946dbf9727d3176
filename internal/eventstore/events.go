package eventstore

import (
	"encoding/json"
	"time"

	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
)

func newBaseEvent(buildID, eventType string, payload any) (BaseEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return BaseEvent{}, errors.EventStoreError("failed to marshal "+eventType+" payload").
			WithCause(err).
			WithContext("build_id", buildID).
			Build()
	}
	return BaseEvent{
		EventBuildID:   buildID,
		EventType:      eventType,
		EventTimestamp: time.Now(),
		EventPayload:   data,
	}, nil
}

// BuildStartedMeta describes how a build was invoked.
type BuildStartedMeta struct {
	Version      string   `json:"version"`
	Environments []string `json:"environments"`
	OutputDir    string   `json:"output_dir"`
	DryRun       bool     `json:"dry_run,omitempty"`
}

// BuildStarted is emitted when a build begins.
type BuildStarted struct {
	BaseEvent
	Meta BuildStartedMeta
}

func NewBuildStarted(buildID string, meta BuildStartedMeta) (*BuildStarted, error) {
	base, err := newBaseEvent(buildID, TypeBuildStarted, meta)
	if err != nil {
		return nil, err
	}
	return &BuildStarted{BaseEvent: base, Meta: meta}, nil
}

// ContentFetched is emitted once the content API answered.
type ContentFetched struct {
	BaseEvent
	Environment string `json:"environment"`
	Entries     int    `json:"entries"`
	Assets      int    `json:"assets"`
}

func NewContentFetched(buildID, environment string, entries, assets int) (*ContentFetched, error) {
	base, err := newBaseEvent(buildID, TypeContentFetched, map[string]any{
		"environment": environment,
		"entries":     entries,
		"assets":      assets,
	})
	if err != nil {
		return nil, err
	}
	return &ContentFetched{BaseEvent: base, Environment: environment, Entries: entries, Assets: assets}, nil
}

// ArtifactWritten is emitted for every file the build writes.
type ArtifactWritten struct {
	BaseEvent
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

func NewArtifactWritten(buildID, kind, path string, size int) (*ArtifactWritten, error) {
	base, err := newBaseEvent(buildID, TypeArtifactWritten, map[string]any{
		"kind":  kind,
		"path":  path,
		"bytes": size,
	})
	if err != nil {
		return nil, err
	}
	return &ArtifactWritten{BaseEvent: base, Kind: kind, Path: path, Bytes: size}, nil
}

// BuildCompleted is emitted when every stage ran, possibly with warnings.
type BuildCompleted struct {
	BaseEvent
	Outcome  string        `json:"outcome"`
	Duration time.Duration `json:"duration_ms"`
	Articles int           `json:"articles"`
}

func NewBuildCompleted(buildID, outcome string, duration time.Duration, articles int) (*BuildCompleted, error) {
	base, err := newBaseEvent(buildID, TypeBuildCompleted, map[string]any{
		"outcome":     outcome,
		"duration_ms": duration.Milliseconds(),
		"articles":    articles,
	})
	if err != nil {
		return nil, err
	}
	return &BuildCompleted{BaseEvent: base, Outcome: outcome, Duration: duration, Articles: articles}, nil
}

// BuildFailed is emitted when a stage aborts the build.
type BuildFailed struct {
	BaseEvent
	Stage string `json:"stage"`
	Error string `json:"error"`
}

func NewBuildFailed(buildID, stage, errorMsg string) (*BuildFailed, error) {
	base, err := newBaseEvent(buildID, TypeBuildFailed, map[string]any{
		"stage": stage,
		"error": errorMsg,
	})
	if err != nil {
		return nil, err
	}
	return &BuildFailed{BaseEvent: base, Stage: stage, Error: errorMsg}, nil
}
