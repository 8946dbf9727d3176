package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
)

func clearContentEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvSpaceID, EnvAccessToken, EnvDeliveryToken, EnvEnvironment, EnvBaseURL} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_FileWithEnvExpansion(t *testing.T) {
	clearContentEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("NEWS_TOKEN", "tok-123")

	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
site:
  base_url: https://example.com/
  name: Example
content:
  space_id: space-1
  access_token: ${NEWS_TOKEN}
  timeout: 5s
output:
  listing_template: index.html
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
	assert.Equal(t, "Example", cfg.Site.Organization)
	assert.Equal(t, "space-1", cfg.Content.SpaceID)
	assert.Equal(t, "tok-123", cfg.Content.AccessToken)
	assert.Equal(t, 5*time.Second, cfg.Content.Timeout)
	assert.Equal(t, "/index.html", cfg.Output.ListingURL)
	assert.Equal(t, DefaultStartMarker, cfg.Output.StartMarker)
	assert.Equal(t, DefaultContentType, cfg.Content.ContentType)
	require.NoError(t, Validate(cfg))
}

func TestLoad_MissingDefaultFileIsOptional(t *testing.T) {
	clearContentEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(EnvSpaceID, "space-env")
	t.Setenv(EnvDeliveryToken, "delivery-token")
	t.Setenv(EnvEnvironment, "staging")

	cfg, err := Load(DefaultConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "space-env", cfg.Content.SpaceID)
	assert.Equal(t, "delivery-token", cfg.Content.AccessToken)
	assert.Equal(t, []string{"staging", "master", "main"}, cfg.Content.EnvironmentCandidates())
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	clearContentEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestLoad_DotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	clearContentEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		EnvSpaceID+"=from-dotenv\n"+EnvAccessToken+"=\"quoted-token\"\n"), 0o600))
	t.Setenv(EnvSpaceID, "from-process")

	cfg, err := Load(DefaultConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.Content.SpaceID)
	assert.Equal(t, "quoted-token", cfg.Content.AccessToken)
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := &Config{Site: SiteConfig{BaseURL: "https://example.com"}}
	ApplyDefaults(cfg)

	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	assert.Contains(t, err.Error(), EnvSpaceID)
	assert.Contains(t, err.Error(), EnvAccessToken)
}

func TestValidate_BaseURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com":   true,
		"http://localhost:8080": true,
		"":                      false,
		"example.com":           false,
		"ftp://example.com":     false,
	}
	for base, ok := range cases {
		t.Run(base, func(t *testing.T) {
			cfg := &Config{
				Site:    SiteConfig{BaseURL: base},
				Content: ContentConfig{SpaceID: "s", AccessToken: "t"},
			}
			ApplyDefaults(cfg)
			err := Validate(cfg)
			if ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_ArticlesDirMustStayInside(t *testing.T) {
	cfg := &Config{
		Site:    SiteConfig{BaseURL: "https://example.com"},
		Content: ContentConfig{SpaceID: "s", AccessToken: "t"},
		Output:  OutputConfig{ArticlesDir: "../outside"},
	}
	ApplyDefaults(cfg)
	require.Error(t, Validate(cfg))
}

func TestEnvironmentCandidates(t *testing.T) {
	assert.Equal(t, []string{"master", "main"}, ContentConfig{}.EnvironmentCandidates())
	assert.Equal(t, []string{"master", "main"}, ContentConfig{Environment: "master"}.EnvironmentCandidates())
	assert.Equal(t, []string{"master", "main"}, ContentConfig{Environment: "  "}.EnvironmentCandidates())
	assert.Equal(t, []string{"staging", "master", "main"}, ContentConfig{Environment: " staging "}.EnvironmentCandidates())
}

func TestValidate_DescriptionLengthsMustBePositive(t *testing.T) {
	cfg := &Config{
		Site:    SiteConfig{BaseURL: "https://example.com"},
		Content: ContentConfig{SpaceID: "s", AccessToken: "t"},
	}
	ApplyDefaults(cfg)
	require.NoError(t, Validate(cfg))

	cfg.Output.FeedDescriptionLength = 0
	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	assert.Contains(t, err.Error(), "feed_description_length")
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	first := *cfg
	ApplyDefaults(cfg)
	assert.Equal(t, first, *cfg)
}

func TestInit(t *testing.T) {
	clearContentEnv(t)
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), DefaultConfigFile)

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	t.Setenv(EnvSpaceID, "space")
	t.Setenv(EnvAccessToken, "token")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "space", cfg.Content.SpaceID)
	assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Content.Timeout)
}
