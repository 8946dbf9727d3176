package build

// StageName identifies a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageFetchContent   StageName = "fetch_content"
	StageIndexAssets    StageName = "index_assets"
	StageLoadTemplate   StageName = "load_template"
	StageRenderListing  StageName = "render_listing"
	StageRenderArticles StageName = "render_articles"
	StageWriteSitemap   StageName = "write_sitemap"
	StageWriteFeed      StageName = "write_feed"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline returns the full stage list.
func Pipeline() []StageDef {
	return []StageDef{
		{StageFetchContent, stageFetchContent},
		{StageIndexAssets, stageIndexAssets},
		{StageLoadTemplate, stageLoadTemplate},
		{StageRenderListing, stageRenderListing},
		{StageRenderArticles, stageRenderArticles},
		{StageWriteSitemap, stageWriteSitemap},
		{StageWriteFeed, stageWriteFeed},
	}
}
