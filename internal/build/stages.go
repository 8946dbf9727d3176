package build

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/admin-esegames/esegames-site/internal/assets"
	"github.com/admin-esegames/esegames-site/internal/config"
	"github.com/admin-esegames/esegames-site/internal/contentful"
	"github.com/admin-esegames/esegames-site/internal/eventstore"
	"github.com/admin-esegames/esegames-site/internal/feed"
	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
	"github.com/admin-esegames/esegames-site/internal/fsutil"
	"github.com/admin-esegames/esegames-site/internal/logfields"
	"github.com/admin-esegames/esegames-site/internal/metrics"
	"github.com/admin-esegames/esegames-site/internal/observability"
	"github.com/admin-esegames/esegames-site/internal/richtext"
	"github.com/admin-esegames/esegames-site/internal/site"
)

// Stage is a discrete unit of work in the build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries inputs and intermediate results across stages.
type BuildState struct {
	Config    *config.Config
	Client    *contentful.Client
	Writer    fsutil.Writer
	Recorder  metrics.Recorder
	Report    *Report
	BuildTime time.Time

	Payload   contentful.Payload
	Entries   []contentful.Entry
	Index     assets.Index
	Assembler *site.Assembler
	Articles  []site.Article
	Template  *site.Template
	Chrome    site.Chrome

	ledger *ledger
}

func newBuildState(cfg *config.Config, report *Report) *BuildState {
	return &BuildState{
		Config:    cfg,
		Writer:    fsutil.AtomicWriter{},
		Recorder:  metrics.NoopRecorder{},
		Report:    report,
		BuildTime: time.Now(),
	}
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.recordStageResult(st.Name, StageResultCanceled, bs.Recorder)
			return se
		default:
		}

		stageCtx := observability.WithStage(ctx, string(st.Name))
		t0 := time.Now()
		err := st.Fn(stageCtx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.Name] = dur
		if bs.Recorder != nil {
			bs.Recorder.ObserveStageDuration(string(st.Name), dur)
		}

		if err == nil {
			bs.Report.recordStageResult(st.Name, StageResultSuccess, bs.Recorder)
			observability.DebugContext(stageCtx, "Stage complete", logfields.DurationMS(float64(dur.Microseconds())/1000))
			continue
		}

		var se *StageError
		if !stderrors.As(err, &se) {
			se = newFatalStageError(st.Name, err)
		}
		bs.Report.StageErrorKinds[st.Name] = se.Kind
		switch se.Kind {
		case StageErrorWarning:
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			bs.Report.recordStageResult(st.Name, StageResultWarning, bs.Recorder)
			observability.WarnContext(stageCtx, "Stage completed with warnings", logfields.Error(se.Err))
			continue
		case StageErrorCanceled:
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.recordStageResult(st.Name, StageResultCanceled, bs.Recorder)
			return se
		default:
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.recordStageResult(st.Name, StageResultFatal, bs.Recorder)
			return se
		}
	}
	return nil
}

func stageFetchContent(ctx context.Context, bs *BuildState) error {
	res, err := bs.Client.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(StageFetchContent, err)
		}
		return newFatalStageError(StageFetchContent, err)
	}
	ctx = observability.WithEnvironment(ctx, res.Environment)

	bs.Payload = res.Payload
	bs.Entries = contentful.Entries(ctx, res.Payload, bs.Config.Content.DateField)
	bs.Report.Environment = res.Environment
	bs.Report.Entries = len(bs.Entries)
	bs.Recorder.SetEntriesFetched(len(bs.Entries))
	fetched, err := eventstore.NewContentFetched(bs.Report.BuildID, res.Environment, len(bs.Entries), len(res.Payload.Includes.Asset))
	bs.ledger.append(ctx, fetched, err)

	if len(bs.Entries) == 0 {
		observability.InfoContext(ctx, "No entries published; the listing will be empty")
	}
	return nil
}

func stageIndexAssets(ctx context.Context, bs *BuildState) error {
	bs.Index = assets.NewIndex(bs.Payload.Includes.Asset)
	bs.Assembler = site.NewAssembler(siteOptions(bs.Config), bs.Index)
	bs.Articles = bs.Assembler.Prepare(bs.Entries)
	bs.Report.Articles = len(bs.Articles)

	for _, art := range bs.Articles {
		if art.Entry.HeroMedia != "" && !art.HasHero {
			observability.DebugContext(ctx, "Hero image did not resolve",
				logfields.EntryID(art.Entry.ID), logfields.AssetID(art.Entry.HeroMedia))
		}
	}
	observability.DebugContext(ctx, "Assets indexed", logfields.Count(bs.Index.Len()))
	return nil
}

func stageLoadTemplate(ctx context.Context, bs *BuildState) error {
	out := bs.Config.Output
	tpl, err := site.LoadTemplate(listingPath(bs.Config))
	if err != nil {
		return newFatalStageError(StageLoadTemplate, err)
	}
	// Check the markers before anything is written.
	if _, err := tpl.ReplaceRegion(out.StartMarker, out.EndMarker, ""); err != nil {
		return newFatalStageError(StageLoadTemplate, err)
	}
	bs.Template = tpl

	chrome, err := site.ExtractChrome(tpl.Content, bs.Assembler.Options().ListingURL)
	if err != nil {
		return newWarnStageError(StageLoadTemplate, err)
	}
	bs.Chrome = chrome
	if len(chrome.Missing) > 0 {
		return newWarnStageError(StageLoadTemplate,
			errors.TemplateError("listing template has no page chrome to reuse").
				WithContext("missing", chrome.Missing).
				WithContext("path", tpl.Path).
				Warning().
				Build())
	}
	return nil
}

func stageRenderListing(ctx context.Context, bs *BuildState) error {
	out := bs.Config.Output
	cards := bs.Assembler.RenderCards(bs.Articles)
	page, err := bs.Template.ReplaceRegion(out.StartMarker, out.EndMarker, cards)
	if err != nil {
		return newFatalStageError(StageRenderListing, err)
	}
	if err := bs.write(ctx, ArtifactListing, bs.Template.Path, []byte(page)); err != nil {
		return newFatalStageError(StageRenderListing, err)
	}
	return nil
}

func stageRenderArticles(ctx context.Context, bs *BuildState) error {
	outDir := bs.Config.Output.Directory
	for _, art := range bs.Articles {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageRenderArticles, ctx.Err())
		default:
		}
		page, err := bs.Assembler.RenderArticle(art, bs.Chrome)
		if err != nil {
			return newFatalStageError(StageRenderArticles, err)
		}
		if err := bs.write(ctx, ArtifactArticle, bs.Assembler.ArticleFile(outDir, art), []byte(page)); err != nil {
			return newFatalStageError(StageRenderArticles, err)
		}
	}
	return nil
}

func stageWriteSitemap(ctx context.Context, bs *BuildState) error {
	urls := make([]string, 0, len(bs.Articles))
	for _, art := range bs.Articles {
		urls = append(urls, art.URL)
	}
	data, err := feed.Sitemap(bs.Assembler.ListingAbsoluteURL(), urls, bs.BuildTime)
	if err != nil {
		return newFatalStageError(StageWriteSitemap, err)
	}
	path := filepath.Join(bs.Config.Output.Directory, bs.Config.Output.Sitemap)
	if err := bs.write(ctx, ArtifactSitemap, path, data); err != nil {
		return newFatalStageError(StageWriteSitemap, err)
	}
	return nil
}

func stageWriteFeed(ctx context.Context, bs *BuildState) error {
	cfg := bs.Config
	items := make([]feed.Item, 0, len(bs.Articles))
	for _, art := range bs.Articles {
		items = append(items, feed.Item{
			Title:       art.Entry.Title,
			URL:         art.URL,
			GUID:        art.Entry.ID,
			Published:   art.Entry.Date,
			Description: richtext.PlainText(art.Entry.Body, cfg.Output.FeedDescriptionLength),
		})
	}
	ch := feed.Channel{
		Title:       cfg.Site.Name,
		Link:        bs.Assembler.ListingAbsoluteURL(),
		Description: cfg.Site.Description,
		Language:    cfg.Site.Language,
		SelfURL:     bs.Assembler.AbsoluteURL(filepath.ToSlash(cfg.Output.Feed)),
	}
	data, err := feed.RSS(ch, items, bs.BuildTime)
	if err != nil {
		return newFatalStageError(StageWriteFeed, err)
	}
	path := filepath.Join(cfg.Output.Directory, cfg.Output.Feed)
	if err := bs.write(ctx, ArtifactFeed, path, data); err != nil {
		return newFatalStageError(StageWriteFeed, err)
	}
	return nil
}

// write persists one artifact and records it in the report, metrics, and ledger.
func (bs *BuildState) write(ctx context.Context, kind, path string, data []byte) error {
	if err := bs.Writer.WriteFile(path, data); err != nil {
		return errors.FileSystemError("failed to write "+kind).
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	bs.Report.recordArtifact(kind, path)
	bs.Recorder.IncArtifactWritten(kind)
	written, err := eventstore.NewArtifactWritten(bs.Report.BuildID, kind, path, len(data))
	bs.ledger.append(ctx, written, err)
	observability.DebugContext(ctx, "Wrote artifact", slog.String("kind", kind), logfields.Path(path))
	return nil
}

func siteOptions(cfg *config.Config) site.Options {
	return site.Options{
		BaseURL:           cfg.Site.BaseURL,
		SiteName:          cfg.Site.Name,
		Language:          cfg.Site.Language,
		Organization:      cfg.Site.Organization,
		Logo:              cfg.Site.Logo,
		ArticlesDir:       cfg.Output.ArticlesDir,
		ListingURL:        cfg.Output.ListingURL,
		LeadParagraphs:    cfg.Content.LeadParagraphs,
		DescriptionLength: cfg.Output.DescriptionLength,
	}
}

// listingPath resolves the listing template; relative paths are taken from
// the output directory since the file is rewritten in place.
func listingPath(cfg *config.Config) string {
	if filepath.IsAbs(cfg.Output.ListingTemplate) {
		return cfg.Output.ListingTemplate
	}
	return filepath.Join(cfg.Output.Directory, cfg.Output.ListingTemplate)
}
