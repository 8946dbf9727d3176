package config

import (
	"strings"
	"time"
)

// Defaults for a news section on an existing static site.
const (
	DefaultAPIBaseURL            = "https://cdn.contentful.com"
	DefaultContentType           = "newsPost"
	DefaultDateField             = "date"
	DefaultTimeout               = 30 * time.Second
	DefaultLeadParagraphs        = 1
	DefaultOutputDir             = "."
	DefaultListingTemplate       = "news.html"
	DefaultStartMarker           = "<!-- NEWS:START -->"
	DefaultEndMarker             = "<!-- NEWS:END -->"
	DefaultArticlesDir           = "news"
	DefaultSitemap               = "sitemap.xml"
	DefaultFeed                  = "news.xml"
	DefaultDescriptionLength     = 160
	DefaultFeedDescriptionLength = 300
	DefaultLanguage              = "en"
)

// ApplyDefaults fills zero values. It is idempotent.
func ApplyDefaults(cfg *Config) {
	c := &cfg.Content
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.ContentType == "" {
		c.ContentType = DefaultContentType
	}
	if c.DateField == "" {
		c.DateField = DefaultDateField
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.LeadParagraphs <= 0 {
		c.LeadParagraphs = DefaultLeadParagraphs
	}

	s := &cfg.Site
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.Organization == "" {
		s.Organization = s.Name
	}

	o := &cfg.Output
	if o.Directory == "" {
		o.Directory = DefaultOutputDir
	}
	if o.ListingTemplate == "" {
		o.ListingTemplate = DefaultListingTemplate
	}
	if o.ListingURL == "" {
		o.ListingURL = "/" + strings.TrimLeft(o.ListingTemplate, "/")
	}
	if o.StartMarker == "" {
		o.StartMarker = DefaultStartMarker
	}
	if o.EndMarker == "" {
		o.EndMarker = DefaultEndMarker
	}
	if o.ArticlesDir == "" {
		o.ArticlesDir = DefaultArticlesDir
	}
	o.ArticlesDir = strings.Trim(o.ArticlesDir, "/")
	if o.Sitemap == "" {
		o.Sitemap = DefaultSitemap
	}
	if o.Feed == "" {
		o.Feed = DefaultFeed
	}
	if o.DescriptionLength <= 0 {
		o.DescriptionLength = DefaultDescriptionLength
	}
	if o.FeedDescriptionLength <= 0 {
		o.FeedDescriptionLength = DefaultFeedDescriptionLength
	}
}
