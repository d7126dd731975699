// Package cli wires the cobra command tree. Commands talk to the core
// through driving ports; the real services are constructed lazily from
// the loaded configuration so file-only commands never touch the
// catalog database.
package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenpaws/vetsite/internal/adapters/driven/geocode"
	"github.com/greenpaws/vetsite/internal/adapters/driven/render/htmltpl"
	"github.com/greenpaws/vetsite/internal/adapters/driven/site"
	"github.com/greenpaws/vetsite/internal/adapters/driven/source/csvfile"
	"github.com/greenpaws/vetsite/internal/adapters/driven/source/table"
	"github.com/greenpaws/vetsite/internal/adapters/driven/storage/sqlite"
	"github.com/greenpaws/vetsite/internal/config"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
	"github.com/greenpaws/vetsite/internal/core/ports/driving"
	"github.com/greenpaws/vetsite/internal/core/services"
	"github.com/greenpaws/vetsite/internal/logger"
	"github.com/greenpaws/vetsite/internal/normalize"
	"github.com/greenpaws/vetsite/internal/validate"
)

// version is the build version, overridden through Execute.
var version = "dev"

// errNoConfig guards service accessors against running before the root
// command loaded configuration.
var errNoConfig = errors.New("configuration not loaded")

var (
	cfgFile string
	verbose bool

	// cfg is the loaded configuration.
	cfg *config.Config

	// Injected services take precedence over wiring from cfg (set by
	// tests; production leaves them nil).
	builder  driving.SiteBuilder
	auditor  driving.Auditor
	importer driving.Importer
	geocoder driving.GeocodeRunner
)

var rootCmd = &cobra.Command{
	Use:   "vetsite",
	Short: "Static site generator for the holistic vet directory",
	Long: `vetsite builds a static veterinary practice directory from CSV
exports, a remote table base, or the local catalog database, whichever
source in the fallback chain answers first.

Records flow through normalization and validation before any page is
generated; the finished site is staged and promoted atomically.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "vetsite.toml", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// initRoot prepares logging and loads configuration before any command
// runs. version and help stay usable without a valid config file.
func initRoot(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}
	if cfg != nil {
		return nil
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// openCatalog opens the catalog database at the configured path.
func openCatalog() (*sqlite.Store, error) {
	if cfg == nil {
		return nil, errNoConfig
	}
	return sqlite.NewStore(cfg.Build.CatalogPath)
}

// closeStore returns a cleanup that releases the catalog, logging
// failures instead of surfacing them.
func closeStore(store *sqlite.Store) func() {
	return func() {
		if err := store.Close(); err != nil {
			logger.Warn("Could not close catalog: %v", err)
		}
	}
}

// recordSources builds the fallback chain: the configured primary
// source first, the rest behind it in canonical order.
func recordSources() ([]driven.RecordSource, func(), error) {
	if cfg == nil {
		return nil, nil, errNoConfig
	}
	store, err := openCatalog()
	if err != nil {
		return nil, nil, err
	}

	tableSrc := table.NewSource(table.Config{
		BaseID:            cfg.Table.BaseID,
		APIToken:          cfg.Table.APIToken,
		Endpoint:          cfg.Table.Endpoint,
		RequestsPerSecond: cfg.Table.RequestsPerSecond,
	})
	csvSrc := csvfile.NewSource(cfg.Build.DataDir)

	var chain []driven.RecordSource
	for _, src := range []driven.RecordSource{tableSrc, csvSrc, store} {
		if src.Name() == cfg.Source.Primary {
			chain = append([]driven.RecordSource{src}, chain...)
			continue
		}
		chain = append(chain, src)
	}
	return chain, closeStore(store), nil
}

// siteBuilder returns the site builder and a cleanup for the catalog
// source in its chain, wiring the real service when none is injected.
func siteBuilder() (driving.SiteBuilder, func(), error) {
	if builder != nil {
		return builder, func() {}, nil
	}

	sources, cleanup, err := recordSources()
	if err != nil {
		return nil, nil, err
	}
	renderer, err := htmltpl.NewRenderer(siteMeta(cfg))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	writer := site.NewWriter(cfg.Build.OutputDir)
	normalizer := normalize.New(normalize.DefaultRules())

	svc := services.NewBuildService(sources, renderer, writer, normalizer, buildOptions(cfg))
	return svc, cleanup, nil
}

// recordAuditor returns the auditor. It works on CSV files alone and
// needs no cleanup.
func recordAuditor() (driving.Auditor, error) {
	if auditor != nil {
		return auditor, nil
	}
	if cfg == nil {
		return nil, errNoConfig
	}

	rules := normalize.DefaultRules()
	return services.NewAuditService(csvfile.NewFiles(), normalize.New(rules), validate.New(rules)), nil
}

// catalogImporter returns the importer and a cleanup for the catalog it
// writes to.
func catalogImporter() (driving.Importer, func(), error) {
	if importer != nil {
		return importer, func() {}, nil
	}

	store, err := openCatalog()
	if err != nil {
		return nil, nil, err
	}
	rules := normalize.DefaultRules()
	svc := services.NewImportService(csvfile.NewFiles(), store, normalize.New(rules), validate.New(rules))
	return svc, closeStore(store), nil
}

// geocodeRunner returns the geocode service and a cleanup for the
// catalog it updates.
func geocodeRunner() (driving.GeocodeRunner, func(), error) {
	if geocoder != nil {
		return geocoder, func() {}, nil
	}

	store, err := openCatalog()
	if err != nil {
		return nil, nil, err
	}
	client := geocode.NewClient(geocode.Config{
		Endpoint:          cfg.Geocode.Endpoint,
		CachePath:         cfg.GeocodeCachePath(),
		UserAgent:         cfg.Geocode.UserAgent,
		RequestsPerSecond: cfg.Geocode.RequestsPerSecond,
	})
	return services.NewGeocodeService(store, client), closeStore(store), nil
}

// siteMeta maps configuration onto the renderer's site identity.
// AdSense and analytics stay off outside production.
func siteMeta(c *config.Config) htmltpl.SiteMeta {
	return htmltpl.SiteMeta{
		Name:        c.Site.Name,
		Description: c.Site.Description,
		BaseURL:     strings.TrimRight(c.Site.BaseURL, "/"),
		Environment: c.Site.Environment,

		EnableAdSense:   c.Features.AdSense && c.IsProduction(),
		EnableAnalytics: c.Features.Analytics && c.IsProduction(),
		EnableMaps:      c.Features.Maps,
		EnableSearch:    c.Features.Search,

		AdSenseClientID:    c.AdSense.ClientID,
		AdSenseSlotHeader:  c.AdSense.SlotHeader,
		AdSenseSlotSidebar: c.AdSense.SlotSidebar,
		AdSenseSlotInFeed:  c.AdSense.SlotInfeed,
		AdSenseSlotFooter:  c.AdSense.SlotFooter,

		AnalyticsMeasurementID: c.Analytics.MeasurementID,
		MapsAPIKey:             c.Maps.APIKey,
	}
}

// buildOptions maps configuration onto the build service knobs.
func buildOptions(c *config.Config) services.BuildOptions {
	return services.BuildOptions{
		BaseURL:           strings.TrimRight(c.Site.BaseURL, "/"),
		AssetsDir:         c.Build.AssetsDir,
		FeaturedRegions:   c.Limits.FeaturedRegions,
		TopCategories:     c.Limits.TopCategories,
		FeaturedPractices: c.Limits.FeaturedPractices,
		RecentPractices:   c.Limits.RecentPractices,
		Nearby:            c.Limits.Nearby,
	}
}
