package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
)

// Validate runs the pre-flight checks. A missing credential is a configuration
// error raised before any network call.
func Validate(cfg *Config) error {
	var missing []string
	if cfg.Content.SpaceID == "" {
		missing = append(missing, EnvSpaceID)
	}
	if cfg.Content.AccessToken == "" {
		missing = append(missing, EnvAccessToken)
	}
	if len(missing) > 0 {
		return errors.ConfigError("missing content API credentials: set "+strings.Join(missing, " and ")).
			WithContext("missing", missing).
			Build()
	}

	if cfg.Site.BaseURL == "" {
		return errors.ConfigError("site.base_url is required (or set " + EnvBaseURL + ")").Build()
	}
	u, err := url.Parse(cfg.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigError("site.base_url must be an absolute http(s) URL").
			WithContext("base_url", cfg.Site.BaseURL).
			Build()
	}

	if cfg.Output.StartMarker == cfg.Output.EndMarker {
		return errors.ConfigError("output.start_marker and output.end_marker must differ").Build()
	}
	if cfg.Output.DescriptionLength <= 0 || cfg.Output.FeedDescriptionLength <= 0 {
		return errors.ConfigError("output.description_length and output.feed_description_length must be positive").
			WithContext("description_length", cfg.Output.DescriptionLength).
			WithContext("feed_description_length", cfg.Output.FeedDescriptionLength).
			Build()
	}
	if filepath.IsAbs(cfg.Output.ArticlesDir) || strings.Contains(cfg.Output.ArticlesDir, "..") {
		return errors.ConfigError("output.articles_dir must be relative to the output directory").
			WithContext("articles_dir", cfg.Output.ArticlesDir).
			Build()
	}
	return nil
}
