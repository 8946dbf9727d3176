package eventstore

import (
	"testing"
	"time"
)

func mustEvent[E Event](t *testing.T) func(E, error) E {
	return func(e E, err error) E {
		t.Helper()
		if err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
		return e
	}
}

func TestBuildHistoryProjection_ApplyEvents(t *testing.T) {
	projection := NewBuildHistoryProjection(newMemoryStore(t))
	buildID := "build-123"

	projection.Apply(mustEvent[*BuildStarted](t)(NewBuildStarted(buildID, BuildStartedMeta{Version: "1.0.0", DryRun: true})))
	summary, exists := projection.GetBuild(buildID)
	if !exists {
		t.Fatal("Expected build to exist")
	}
	if summary.Status != StatusRunning {
		t.Errorf("Expected status 'running', got %q", summary.Status)
	}
	if summary.Version != "1.0.0" || !summary.DryRun {
		t.Errorf("unexpected start fields %+v", summary)
	}

	projection.Apply(mustEvent[*ContentFetched](t)(NewContentFetched(buildID, "master", 5, 9)))
	projection.Apply(mustEvent[*ArtifactWritten](t)(NewArtifactWritten(buildID, "article", "news/a/index.html", 10)))
	projection.Apply(mustEvent[*ArtifactWritten](t)(NewArtifactWritten(buildID, "article", "news/b/index.html", 10)))
	projection.Apply(mustEvent[*ArtifactWritten](t)(NewArtifactWritten(buildID, "sitemap", "sitemap.xml", 10)))

	summary, _ = projection.GetBuild(buildID)
	if summary.Environment != "master" || summary.Entries != 5 {
		t.Errorf("unexpected fetch fields %+v", summary)
	}
	if summary.Artifacts["article"] != 2 || summary.Artifacts["sitemap"] != 1 {
		t.Errorf("unexpected artifacts %v", summary.Artifacts)
	}

	projection.Apply(mustEvent[*BuildCompleted](t)(NewBuildCompleted(buildID, "success", time.Second, 5)))
	summary, _ = projection.GetBuild(buildID)
	if summary.Status != "success" {
		t.Errorf("Expected status 'success', got %q", summary.Status)
	}
	if summary.CompletedAt == nil {
		t.Error("Expected CompletedAt to be set")
	}
	if summary.Articles != 5 {
		t.Errorf("Expected 5 articles, got %d", summary.Articles)
	}
}

func TestBuildHistoryProjection_FailedBuild(t *testing.T) {
	projection := NewBuildHistoryProjection(newMemoryStore(t))

	projection.Apply(mustEvent[*BuildStarted](t)(NewBuildStarted("b", BuildStartedMeta{})))
	projection.Apply(mustEvent[*BuildFailed](t)(NewBuildFailed("b", "fetch_content", "no content environment answered")))

	summary, _ := projection.GetBuild("b")
	if summary.Status != StatusFailed {
		t.Errorf("Expected status 'failed', got %q", summary.Status)
	}
	if summary.ErrorStage != "fetch_content" || summary.ErrorMessage != "no content environment answered" {
		t.Errorf("unexpected error fields %+v", summary)
	}
}

func TestBuildHistoryProjection_Rebuild(t *testing.T) {
	store := newMemoryStore(t)
	ctx := t.Context()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"old", "mid", "new"} {
		started := &BaseEvent{EventBuildID: id, EventType: TypeBuildStarted, EventPayload: []byte(`{"version":"v"}`), EventTimestamp: base.Add(time.Duration(i) * time.Minute)}
		done := &BaseEvent{EventBuildID: id, EventType: TypeBuildCompleted, EventPayload: []byte(`{"outcome":"success","articles":1}`), EventTimestamp: base.Add(time.Duration(i)*time.Minute + time.Second)}
		for _, ev := range []Event{started, done} {
			if err := store.Append(ctx, ev); err != nil {
				t.Fatalf("append: %v", err)
			}
		}
	}

	projection := NewBuildHistoryProjection(store)
	if err := projection.Rebuild(ctx); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	history := projection.GetHistory(2)
	if len(history) != 2 {
		t.Fatalf("expected 2 builds, got %d", len(history))
	}
	if history[0].BuildID != "new" || history[1].BuildID != "mid" {
		t.Errorf("expected newest first, got %s, %s", history[0].BuildID, history[1].BuildID)
	}
	if history[0].Duration != time.Second {
		t.Errorf("expected 1s duration, got %v", history[0].Duration)
	}
	if all := projection.GetHistory(0); len(all) != 3 {
		t.Errorf("expected 3 builds without limit, got %d", len(all))
	}
}
