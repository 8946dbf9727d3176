package build

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/admin-esegames/esegames-site/internal/config"
	"github.com/admin-esegames/esegames-site/internal/contentful"
	"github.com/admin-esegames/esegames-site/internal/eventstore"
	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
	"github.com/admin-esegames/esegames-site/internal/fsutil"
	"github.com/admin-esegames/esegames-site/internal/logfields"
	"github.com/admin-esegames/esegames-site/internal/metrics"
	"github.com/admin-esegames/esegames-site/internal/observability"
	"github.com/admin-esegames/esegames-site/internal/version"
)

// Request contains the inputs of one build.
type Request struct {
	Config *config.Config
	// DryRun fetches and renders but writes nothing.
	DryRun bool
}

// Service runs builds. The zero value is not usable; use NewService.
type Service struct {
	httpClient *http.Client
	recorder   metrics.Recorder
	store      eventstore.Store
	writer     fsutil.Writer
	stages     []StageDef
}

// NewService creates a Service with atomic file output and no metrics.
func NewService() *Service {
	return &Service{
		recorder: metrics.NoopRecorder{},
		writer:   fsutil.AtomicWriter{},
		stages:   Pipeline(),
	}
}

// WithHTTPClient overrides the content API client (default honors the
// configured timeout).
func (s *Service) WithHTTPClient(c *http.Client) *Service {
	s.httpClient = c
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithEventStore enables the build ledger.
func (s *Service) WithEventStore(store eventstore.Store) *Service {
	s.store = store
	return s
}

// WithWriter replaces the artifact writer.
func (s *Service) WithWriter(w fsutil.Writer) *Service {
	s.writer = w
	return s
}

// Run validates the configuration and executes every stage. The report is
// returned even when the build fails.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
	buildID := uuid.NewString()
	ctx = observability.WithBuildID(ctx, buildID)
	report := newReport(buildID, req.DryRun)

	if req.Config == nil {
		report.finish()
		report.Outcome = OutcomeFailed
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return report, errors.ConfigError("config required").Build()
	}
	cfg := req.Config
	if err := config.Validate(cfg); err != nil {
		report.finish()
		report.Outcome = OutcomeFailed
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return report, err
	}

	httpClient := s.httpClient
	if httpClient == nil {
		httpClient = contentful.NewHTTPClient(cfg.Content.Timeout)
	}
	client, err := contentful.NewClient(contentful.Config{
		SpaceID:      cfg.Content.SpaceID,
		AccessToken:  cfg.Content.AccessToken,
		Environments: cfg.Content.EnvironmentCandidates(),
		ContentType:  cfg.Content.ContentType,
		DateField:    cfg.Content.DateField,
		BaseURL:      cfg.Content.APIBaseURL,
	}, httpClient, s.recorder)
	if err != nil {
		report.finish()
		report.Outcome = OutcomeFailed
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return report, err
	}

	bs := newBuildState(cfg, report)
	bs.Client = client
	bs.Recorder = s.recorder
	bs.Writer = s.writer
	if req.DryRun {
		bs.Writer = &fsutil.DryRunWriter{}
	}
	bs.ledger = &ledger{store: s.store}

	observability.InfoContext(ctx, "Starting news build",
		logfields.Path(cfg.Output.Directory),
		logfields.Environment(strings.Join(client.Environments(), ",")))
	started, err := eventstore.NewBuildStarted(buildID, eventstore.BuildStartedMeta{
		Version:      version.Version,
		Environments: client.Environments(),
		OutputDir:    cfg.Output.Directory,
		DryRun:       req.DryRun,
	})
	bs.ledger.append(ctx, started, err)

	runErr := runStages(ctx, bs, s.stages)

	report.finish()
	report.deriveOutcome()
	s.recorder.ObserveBuildDuration(report.Duration())
	s.recorder.IncBuildOutcome(outcomeLabel(report.Outcome))

	// The ledger outlives a canceled build context.
	ledgerCtx := context.WithoutCancel(ctx)
	if runErr != nil {
		var stage string
		if se, ok := runErr.(*StageError); ok {
			stage = string(se.Stage)
		}
		failed, err := eventstore.NewBuildFailed(buildID, stage, runErr.Error())
		bs.ledger.append(ledgerCtx, failed, err)
		observability.ErrorContext(ctx, "News build failed", logfields.Error(runErr))
		return report, runErr
	}
	completed, err := eventstore.NewBuildCompleted(buildID, string(report.Outcome), report.Duration(), report.Articles)
	bs.ledger.append(ledgerCtx, completed, err)
	observability.InfoContext(ctx, "News build finished", logfields.Count(len(report.Paths)))
	return report, nil
}
