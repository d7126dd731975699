package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vetsite.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefault tests the built-in configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Holistic Vet Directory", cfg.Site.Name)
	assert.Equal(t, "https://holisticvetdirectory.com", cfg.Site.BaseURL)
	assert.Equal(t, 20, cfg.Site.ListingsPerPage)
	assert.Equal(t, "csv", cfg.Source.Primary)
	assert.Equal(t, "dist", cfg.Build.OutputDir)
	assert.Equal(t, 8, cfg.Limits.FeaturedRegions)
	assert.Equal(t, 6, cfg.Limits.FeaturedPractices)
	assert.Equal(t, 6, cfg.Limits.RecentPractices)
	assert.Equal(t, 5, cfg.Limits.Nearby)
	assert.True(t, cfg.Features.Maps)
	assert.True(t, cfg.Features.Search)
	assert.False(t, cfg.Features.AdSense)
	assert.False(t, cfg.IsProduction())

	require.NoError(t, cfg.Validate())
}

// TestLoad_MissingFile tests that an absent file falls back to defaults
func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default().Site.Name, cfg.Site.Name)
}

// TestLoad_File tests TOML values layering over defaults
func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[site]
name = "Pacific Northwest Holistic Vets"
environment = "production"

[source]
primary = "table"

[table]
base_id = "appXYZ"
api_token = "key123"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Pacific Northwest Holistic Vets", cfg.Site.Name)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "table", cfg.Source.Primary)
	assert.Equal(t, "appXYZ", cfg.Table.BaseID)

	// Untouched sections keep defaults.
	assert.Equal(t, 20, cfg.Site.ListingsPerPage)
	assert.Equal(t, 5, cfg.Table.RequestsPerSecond)
}

// TestLoad_EnvOverrides tests that the environment wins over the file
func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[site]
name = "File Name"

[features]
adsense = false
`)

	t.Setenv("SITE_NAME", "Env Name")
	t.Setenv("ENABLE_ADSENSE", "true")
	t.Setenv("AIRTABLE_API_KEY", "env-token")
	t.Setenv("LISTINGS_PER_PAGE", "30")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Env Name", cfg.Site.Name)
	assert.True(t, cfg.Features.AdSense)
	assert.Equal(t, "env-token", cfg.Table.APIToken)
	assert.Equal(t, 30, cfg.Site.ListingsPerPage)
}

// TestLoad_Malformed tests the TOML parse error path
func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "[site\nname =")

	_, err := Load(path)
	assert.Error(t, err)
}

// TestConfig_Validate tests each validation failure
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.Site.Environment = "staging" },
			wantErr: ErrBadEnvironment,
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Site.BaseURL = "" },
			wantErr: ErrMissingBaseURL,
		},
		{
			name:    "bad base url",
			mutate:  func(c *Config) { c.Site.BaseURL = "holisticvetdirectory.com" },
			wantErr: ErrBadBaseURL,
		},
		{
			name:    "bad listings per page",
			mutate:  func(c *Config) { c.Site.ListingsPerPage = 0 },
			wantErr: ErrBadListingsPerPage,
		},
		{
			name:    "bad primary source",
			mutate:  func(c *Config) { c.Source.Primary = "spreadsheet" },
			wantErr: ErrBadPrimarySource,
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.Build.OutputDir = "" },
			wantErr: ErrMissingOutputDir,
		},
		{
			name:    "missing data dir",
			mutate:  func(c *Config) { c.Build.DataDir = "" },
			wantErr: ErrMissingDataDir,
		},
		{
			name:    "bad table rate limit",
			mutate:  func(c *Config) { c.Table.RequestsPerSecond = 0 },
			wantErr: ErrBadRateLimit,
		},
		{
			name:    "negative limit",
			mutate:  func(c *Config) { c.Limits.Nearby = -1 },
			wantErr: ErrBadLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

// TestConfig_GeocodeCachePath tests the cache path default
func TestConfig_GeocodeCachePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("data", "geocode_cache.json"), cfg.GeocodeCachePath())

	cfg.Geocode.CachePath = "/tmp/cache.json"
	assert.Equal(t, "/tmp/cache.json", cfg.GeocodeCachePath())
}
