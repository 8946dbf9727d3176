package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/admin-esegames/esegames-site/internal/contentful"
)

// DefaultConfigFile is read when present; the build runs on defaults plus
// environment variables when it is missing.
const DefaultConfigFile = "newsbuild.yaml"

// Config represents the application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
}

// SiteConfig describes the public site the pages are published on.
type SiteConfig struct {
	BaseURL      string `yaml:"base_url"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description,omitempty"`
	Language     string `yaml:"language,omitempty"`
	Organization string `yaml:"organization,omitempty"`
	Logo         string `yaml:"logo,omitempty"`
}

// ContentConfig points at the headless content API.
type ContentConfig struct {
	SpaceID     string `yaml:"space_id,omitempty"`
	AccessToken string `yaml:"access_token,omitempty"`
	// Environment is tried before the built-in master/main fallbacks.
	Environment    string        `yaml:"environment,omitempty"`
	APIBaseURL     string        `yaml:"api_base_url,omitempty"`
	ContentType    string        `yaml:"content_type"`
	DateField      string        `yaml:"date_field"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
	LeadParagraphs int           `yaml:"lead_paragraphs"`
}

// OutputConfig describes where artifacts are written.
type OutputConfig struct {
	Directory       string `yaml:"directory"`
	ListingTemplate string `yaml:"listing_template"`
	ListingURL      string `yaml:"listing_url"`
	StartMarker     string `yaml:"start_marker"`
	EndMarker       string `yaml:"end_marker"`
	ArticlesDir     string `yaml:"articles_dir"`
	Sitemap         string `yaml:"sitemap"`
	Feed            string `yaml:"feed"`
	// DescriptionLength caps meta descriptions; FeedDescriptionLength caps RSS item text.
	DescriptionLength     int `yaml:"description_length"`
	FeedDescriptionLength int `yaml:"feed_description_length"`
}

// Load reads .env files, the optional YAML file at configPath, then applies
// environment overrides and defaults. Credentials are not validated here; call
// Validate before any network access.
func Load(configPath string) (*Config, error) {
	if loaded := loadEnvFiles(); len(loaded) > 0 {
		fmt.Fprintf(os.Stderr, "Loaded environment variables from %v\n", loaded)
	}

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && configPath == DefaultConfigFile:
		// optional
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(cfg)
	ApplyDefaults(cfg)
	return cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Site: SiteConfig{
			BaseURL:      "https://example.com",
			Name:         "Example",
			Description:  "Latest news",
			Language:     "en",
			Organization: "Example Ltd",
		},
		Content: ContentConfig{
			SpaceID:     "${" + EnvSpaceID + "}",
			AccessToken: "${" + EnvAccessToken + "}",
		},
	}
	ApplyDefaults(&example)

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	// #nosec G306 -- config file holds env placeholders, not secrets.
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EnvironmentCandidates returns the ordered, de-duplicated list of content
// environments to try: the configured one first, then master, then main.
func (c ContentConfig) EnvironmentCandidates() []string {
	return contentful.DedupeEnvironments(c.Environment, "master", "main")
}
