// Package config provides configuration management for the vetsite CLI.
// Settings come from a TOML file layered over built-in defaults, with
// environment variables taking final precedence so deploy pipelines can
// inject credentials without touching the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Configuration validation errors.
var (
	ErrBadEnvironment     = errors.New("site.environment must be 'development' or 'production'")
	ErrMissingBaseURL     = errors.New("site.base_url is required")
	ErrBadBaseURL         = errors.New("site.base_url must start with http:// or https://")
	ErrBadListingsPerPage = errors.New("site.listings_per_page must be at least 1")
	ErrBadPrimarySource   = errors.New("source.primary must be 'table', 'csv', or 'catalog'")
	ErrMissingOutputDir   = errors.New("build.output_dir is required")
	ErrMissingDataDir     = errors.New("build.data_dir is required")
	ErrBadRateLimit       = errors.New("requests_per_second must be at least 1")
	ErrBadLimit           = errors.New("limits values must be non-negative")
)

// Config is the complete vetsite configuration.
type Config struct {
	Site      SiteConfig      `toml:"site"`
	Build     BuildConfig     `toml:"build"`
	Source    SourceConfig    `toml:"source"`
	Table     TableConfig     `toml:"table"`
	Features  FeaturesConfig  `toml:"features"`
	AdSense   AdSenseConfig   `toml:"adsense"`
	Analytics AnalyticsConfig `toml:"analytics"`
	Maps      MapsConfig      `toml:"maps"`
	Geocode   GeocodeConfig   `toml:"geocode"`
	Limits    LimitsConfig    `toml:"limits"`
}

// SiteConfig holds the public identity of the generated site.
type SiteConfig struct {
	// Name appears in page titles and headers.
	Name string `toml:"name"`

	// Description is the default meta description.
	Description string `toml:"description"`

	// BaseURL is the canonical site root, without a trailing slash.
	BaseURL string `toml:"base_url"`

	// Environment is "development" or "production".
	Environment string `toml:"environment"`

	// ListingsPerPage caps listings shown per directory page.
	ListingsPerPage int `toml:"listings_per_page"`
}

// BuildConfig holds filesystem locations for a build.
type BuildConfig struct {
	// DataDir holds the CSV exports and the geocode cache.
	DataDir string `toml:"data_dir"`

	// OutputDir receives the generated site.
	OutputDir string `toml:"output_dir"`

	// AssetsDir holds static files copied into the output as-is.
	AssetsDir string `toml:"assets_dir"`

	// CatalogPath is the SQLite catalog database location.
	CatalogPath string `toml:"catalog_path"`
}

// SourceConfig selects where record fetches start.
type SourceConfig struct {
	// Primary is the first source tried: "table", "csv", or "catalog".
	// Remaining sources stay in the fallback chain.
	Primary string `toml:"primary"`
}

// TableConfig holds remote table API settings. Missing credentials are
// not a validation error; the table source reports unavailability at
// fetch time and the chain falls back.
type TableConfig struct {
	// BaseID identifies the remote base.
	BaseID string `toml:"base_id"`

	// APIToken authenticates table requests.
	APIToken string `toml:"api_token"`

	// Endpoint overrides the API root. Empty uses the public API.
	Endpoint string `toml:"endpoint"`

	// RequestsPerSecond throttles table API calls.
	RequestsPerSecond int `toml:"requests_per_second"`
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	AdSense   bool `toml:"adsense"`
	Analytics bool `toml:"analytics"`
	Maps      bool `toml:"maps"`
	Search    bool `toml:"search"`
}

// AdSenseConfig holds ad unit identifiers.
type AdSenseConfig struct {
	ClientID    string `toml:"client_id"`
	SlotHeader  string `toml:"slot_header"`
	SlotSidebar string `toml:"slot_sidebar"`
	SlotInfeed  string `toml:"slot_infeed"`
	SlotFooter  string `toml:"slot_footer"`
}

// AnalyticsConfig holds the analytics tag.
type AnalyticsConfig struct {
	MeasurementID string `toml:"measurement_id"`
}

// MapsConfig holds the embedded map settings.
type MapsConfig struct {
	APIKey string `toml:"api_key"`
}

// LimitsConfig sizes the ranked selections on generated pages.
type LimitsConfig struct {
	// FeaturedRegions caps the homepage featured region grid.
	FeaturedRegions int `toml:"featured_regions"`

	// FeaturedPractices caps the homepage featured practice list.
	FeaturedPractices int `toml:"featured_practices"`

	// TopCategories caps the homepage category list.
	TopCategories int `toml:"top_categories"`

	// RecentPractices caps the homepage recently-added list.
	RecentPractices int `toml:"recent_practices"`

	// Nearby caps the nearby practices shown on a practice page.
	Nearby int `toml:"nearby"`
}

// GeocodeConfig holds forward-geocoding settings.
type GeocodeConfig struct {
	// Endpoint is the geocoding search URL.
	Endpoint string `toml:"endpoint"`

	// CachePath is the JSON result cache location. Empty derives
	// a path under the data directory.
	CachePath string `toml:"cache_path"`

	// UserAgent identifies the client to the geocoding service.
	UserAgent string `toml:"user_agent"`

	// RequestsPerSecond throttles geocoding calls.
	RequestsPerSecond int `toml:"requests_per_second"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Name:            "Holistic Vet Directory",
			Description:     "Find holistic and integrative veterinarians near you",
			BaseURL:         "https://holisticvetdirectory.com",
			Environment:     "development",
			ListingsPerPage: 20,
		},
		Build: BuildConfig{
			DataDir:     "data",
			OutputDir:   "dist",
			AssetsDir:   "static",
			CatalogPath: filepath.Join("data", "catalog.db"),
		},
		Source: SourceConfig{
			Primary: "csv",
		},
		Table: TableConfig{
			RequestsPerSecond: 5,
		},
		Features: FeaturesConfig{
			Maps:   true,
			Search: true,
		},
		Geocode: GeocodeConfig{
			Endpoint:          "https://nominatim.openstreetmap.org/search",
			UserAgent:         "vetsite-geocoder/1.0",
			RequestsPerSecond: 1,
		},
		Limits: LimitsConfig{
			FeaturedRegions:   8,
			FeaturedPractices: 6,
			TopCategories:     8,
			RecentPractices:   6,
			Nearby:            5,
		},
	}
}

// Load reads configuration from a TOML file layered over defaults and
// the environment. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerations and numeric ranges.
func (c *Config) Validate() error {
	env := strings.ToLower(c.Site.Environment)
	if env != "development" && env != "production" {
		return ErrBadEnvironment
	}
	if c.Site.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return ErrBadBaseURL
	}
	if c.Site.ListingsPerPage < 1 {
		return ErrBadListingsPerPage
	}
	switch c.Source.Primary {
	case "table", "csv", "catalog":
	default:
		return fmt.Errorf("%w: %q", ErrBadPrimarySource, c.Source.Primary)
	}
	if c.Build.OutputDir == "" {
		return ErrMissingOutputDir
	}
	if c.Build.DataDir == "" {
		return ErrMissingDataDir
	}
	if c.Table.RequestsPerSecond < 1 {
		return fmt.Errorf("%w: table", ErrBadRateLimit)
	}
	if c.Geocode.RequestsPerSecond < 1 {
		return fmt.Errorf("%w: geocode", ErrBadRateLimit)
	}
	if c.Limits.FeaturedRegions < 0 || c.Limits.FeaturedPractices < 0 ||
		c.Limits.TopCategories < 0 || c.Limits.RecentPractices < 0 || c.Limits.Nearby < 0 {
		return ErrBadLimit
	}
	return nil
}

// IsProduction reports whether the build targets production.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Site.Environment) == "production"
}

// GeocodeCachePath returns the configured cache path, or its default
// location under the data directory.
func (c *Config) GeocodeCachePath() string {
	if c.Geocode.CachePath != "" {
		return c.Geocode.CachePath
	}
	return filepath.Join(c.Build.DataDir, "geocode_cache.json")
}

// applyEnv overlays environment variables onto the configuration.
func (c *Config) applyEnv() {
	envString("SITE_NAME", &c.Site.Name)
	envString("SITE_DESCRIPTION", &c.Site.Description)
	envString("SITE_URL", &c.Site.BaseURL)
	envString("BUILD_ENV", &c.Site.Environment)
	envInt("LISTINGS_PER_PAGE", &c.Site.ListingsPerPage)

	envString("DATA_SOURCE", &c.Source.Primary)
	envString("VETSITE_OUTPUT_DIR", &c.Build.OutputDir)
	envString("VETSITE_DATA_DIR", &c.Build.DataDir)

	envString("AIRTABLE_BASE_ID", &c.Table.BaseID)
	envString("AIRTABLE_API_KEY", &c.Table.APIToken)

	envBool("ENABLE_ADSENSE", &c.Features.AdSense)
	envBool("ENABLE_ANALYTICS", &c.Features.Analytics)
	envBool("ENABLE_MAPS", &c.Features.Maps)
	envBool("ENABLE_SEARCH", &c.Features.Search)

	envString("ADSENSE_CLIENT_ID", &c.AdSense.ClientID)
	envString("ADSENSE_SLOT_HEADER", &c.AdSense.SlotHeader)
	envString("ADSENSE_SLOT_SIDEBAR", &c.AdSense.SlotSidebar)
	envString("ADSENSE_SLOT_INFEED", &c.AdSense.SlotInfeed)
	envString("ADSENSE_SLOT_FOOTER", &c.AdSense.SlotFooter)

	envString("GA_MEASUREMENT_ID", &c.Analytics.MeasurementID)
	envString("GOOGLE_MAPS_API_KEY", &c.Maps.APIKey)
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.ToLower(v) == "true"
	}
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
