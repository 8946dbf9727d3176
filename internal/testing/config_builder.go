package testing

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/admin-esegames/esegames-site/internal/config"
)

// ConfigBuilder provides a fluent interface for creating test configurations.
type ConfigBuilder struct {
	config *config.Config
	t      *testing.T
}

// NewConfigBuilder starts from valid credentials, an example site, and a
// fresh output directory holding ListingTemplate.
func NewConfigBuilder(t *testing.T) *ConfigBuilder {
	t.Helper()
	return &ConfigBuilder{
		config: &config.Config{
			Site: config.SiteConfig{
				BaseURL:     "https://example.com",
				Name:        "Example",
				Description: "Latest news",
			},
			Content: config.ContentConfig{
				SpaceID:     "space",
				AccessToken: "token",
			},
			Output: config.OutputConfig{Directory: t.TempDir()},
		},
		t: t,
	}
}

// WithAPI points the content client at baseURL.
func (cb *ConfigBuilder) WithAPI(baseURL string) *ConfigBuilder {
	cb.config.Content.APIBaseURL = baseURL
	return cb
}

// WithEnvironment sets the environment tried before master and main.
func (cb *ConfigBuilder) WithEnvironment(env string) *ConfigBuilder {
	cb.config.Content.Environment = env
	return cb
}

// WithoutCredentials clears the access token.
func (cb *ConfigBuilder) WithoutCredentials() *ConfigBuilder {
	cb.config.Content.AccessToken = ""
	return cb
}

// WithTemplate replaces the listing template content.
func (cb *ConfigBuilder) WithTemplate(content string) *ConfigBuilder {
	cb.writeTemplate(content)
	return cb
}

func (cb *ConfigBuilder) writeTemplate(content string) {
	cb.t.Helper()
	dir := cb.config.Output.Directory
	if err := os.MkdirAll(dir, testDirPermissions); err != nil {
		cb.t.Fatalf("Failed to create output directory: %v", err)
	}
	path := filepath.Join(dir, config.DefaultListingTemplate)
	if err := os.WriteFile(path, []byte(content), testFilePermissions); err != nil {
		cb.t.Fatalf("Failed to write listing template: %v", err)
	}
}

// Build applies defaults and writes ListingTemplate unless a template exists.
func (cb *ConfigBuilder) Build() *config.Config {
	cb.t.Helper()
	path := filepath.Join(cb.config.Output.Directory, config.DefaultListingTemplate)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cb.writeTemplate(ListingTemplate)
	}
	config.ApplyDefaults(cb.config)
	return cb.config
}

// BuildAndSave builds the configuration and writes it as YAML to filePath.
func (cb *ConfigBuilder) BuildAndSave(filePath string) *config.Config {
	cb.t.Helper()
	cfg := cb.Build()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		cb.t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), testDirPermissions); err != nil {
		cb.t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(filePath, data, testFilePermissions); err != nil {
		cb.t.Fatalf("Failed to write config file: %v", err)
	}
	return cfg
}

// ClearContentEnv blanks every variable config.Load reads so the file wins.
func ClearContentEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvSpaceID, config.EnvAccessToken, config.EnvDeliveryToken, config.EnvEnvironment, config.EnvBaseURL} {
		t.Setenv(key, "")
	}
}
