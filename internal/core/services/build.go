package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
	"github.com/greenpaws/vetsite/internal/core/ports/driving"
	"github.com/greenpaws/vetsite/internal/logger"
	"github.com/greenpaws/vetsite/internal/normalize"
)

// Ensure BuildService implements the interface.
var _ driving.SiteBuilder = (*BuildService)(nil)

// BuildOptions carries the tunable knobs for one build. The zero value
// is usable but selects nothing for the homepage; callers normally pass
// the configured limits.
type BuildOptions struct {
	// BaseURL is the canonical site URL for sitemap and robots output.
	BaseURL string

	// AssetsDir is the static asset directory copied into the output.
	AssetsDir string

	// FeaturedRegions/TopCategories/FeaturedPractices bound the
	// homepage selections.
	FeaturedRegions   int
	TopCategories     int
	FeaturedPractices int

	// RecentPractices bounds the homepage recent list.
	RecentPractices int

	// Nearby bounds the per-practice neighbor list.
	Nearby int
}

// BuildService generates the static site: it fetches records through
// the source fallback chain, normalizes and aggregates them, fans out
// every page route in a fixed order, writes the auxiliary artifacts,
// and promotes the staged output.
type BuildService struct {
	sources    []driven.RecordSource
	renderer   driven.PageRenderer
	writer     driven.SiteWriter
	normalizer *normalize.Normalizer
	opts       BuildOptions
}

// NewBuildService creates a build service. Sources are tried in the
// given order until one serves a complete record set.
func NewBuildService(
	sources []driven.RecordSource,
	renderer driven.PageRenderer,
	writer driven.SiteWriter,
	normalizer *normalize.Normalizer,
	opts BuildOptions,
) *BuildService {
	return &BuildService{
		sources:    sources,
		renderer:   renderer,
		writer:     writer,
		normalizer: normalizer,
		opts:       opts,
	}
}

// Build runs one full site generation. On failure the returned report
// still carries the source attempts made, so callers can show what was
// tried.
func (s *BuildService) Build(ctx context.Context) (*domain.BuildReport, error) {
	start := time.Now()
	logger.Info("Starting site build")

	// 1. Fetch records through the fallback chain.
	set, sourceName, attempts, err := s.fetch(ctx)
	report := &domain.BuildReport{Source: sourceName, Attempts: attempts}
	if err != nil {
		return report, fmt.Errorf("fetch records: %w", err)
	}

	// 2. Normalize the practice records into canonical form.
	records := s.normalizer.Batch(set.Practices)

	// 3. Construct the entity lists.
	practices := make([]*domain.Practice, 0, len(records))
	for _, r := range records {
		p := domain.PracticeFromRecord(r)
		practices = append(practices, &p)
	}
	categories := make([]*domain.Category, 0, len(set.Categories))
	for _, r := range set.Categories {
		c := domain.CategoryFromRecord(r)
		categories = append(categories, &c)
	}
	regions := make([]*domain.Region, 0, len(set.Regions))
	for _, r := range set.Regions {
		reg := domain.RegionFromRecord(r)
		regions = append(regions, &reg)
	}
	report.Practices = len(practices)
	report.Categories = len(categories)
	report.Regions = len(regions)
	logger.Info("Loaded %d practices, %d categories, %d regions from %s",
		len(practices), len(categories), len(regions), sourceName)
	if len(practices) == 0 {
		logger.Warn("No practice records loaded; generating an empty site")
	}

	// 4. Build the aggregation indices.
	dir := NewDirectory(practices, categories, regions)

	// 5. Stage the output tree.
	if err := s.writer.Stage(); err != nil {
		return report, fmt.Errorf("stage output: %w", err)
	}
	promoted := false
	defer func() {
		if promoted {
			return
		}
		if derr := s.writer.Discard(); derr != nil {
			logger.Warn("Discard staging area: %v", derr)
		}
	}()

	// 6. Fan out every page route in order.
	nav := dir.Nav()
	for _, page := range s.pages(dir, nav) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		data, err := s.renderer.Render(page)
		if err != nil {
			return report, fmt.Errorf("render %s: %w", page.Route.Path, err)
		}
		if err := s.writer.WritePage(page.Route.Path, data); err != nil {
			return report, fmt.Errorf("write %s: %w", page.Route.Path, err)
		}
		report.Pages++
	}

	// 7. Write the auxiliary artifacts.
	index, err := searchIndexJSON(dir)
	if err != nil {
		return report, fmt.Errorf("build search index: %w", err)
	}
	if err := s.writer.WriteFile("search-index.json", index); err != nil {
		return report, fmt.Errorf("write search-index.json: %w", err)
	}
	sitemap, err := sitemapXML(s.opts.BaseURL, time.Now(), dir)
	if err != nil {
		return report, fmt.Errorf("build sitemap: %w", err)
	}
	if err := s.writer.WriteFile("sitemap.xml", sitemap); err != nil {
		return report, fmt.Errorf("write sitemap.xml: %w", err)
	}
	if err := s.writer.WriteFile("robots.txt", robotsTxt(s.opts.BaseURL)); err != nil {
		return report, fmt.Errorf("write robots.txt: %w", err)
	}
	report.Artifacts = 3

	// 8. Copy static assets.
	if err := s.writer.CopyAssets(ctx, s.opts.AssetsDir); err != nil {
		return report, fmt.Errorf("copy assets: %w", err)
	}

	// 9. Promote the staged tree to the final output.
	if err := s.writer.Promote(); err != nil {
		return report, fmt.Errorf("promote output: %w", err)
	}
	promoted = true

	report.Duration = time.Since(start)
	logger.Info("Build complete in %s: %d pages, %d artifacts",
		report.Duration.Round(time.Millisecond), report.Pages, report.Artifacts)
	return report, nil
}

// Sources probes every configured source in fallback order.
func (s *BuildService) Sources(ctx context.Context) []domain.SourceStatus {
	statuses := make([]domain.SourceStatus, 0, len(s.sources))
	for i, src := range s.sources {
		status := domain.SourceStatus{Name: src.Name(), Position: i + 1}
		set, err := src.Fetch(ctx)
		if err != nil {
			status.Detail = err.Error()
		} else {
			status.Available = true
			status.Detail = fmt.Sprintf("%d practices, %d categories, %d regions",
				len(set.Practices), len(set.Categories), len(set.Regions))
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// fetch tries each source in order and returns the first complete
// record set, with every attempt recorded.
func (s *BuildService) fetch(ctx context.Context) (*domain.RecordSet, string, []domain.SourceAttempt, error) {
	if len(s.sources) == 0 {
		return nil, "", nil, domain.ErrNoSources
	}

	var attempts []domain.SourceAttempt
	for _, src := range s.sources {
		began := time.Now()
		set, err := src.Fetch(ctx)
		attempt := domain.SourceAttempt{Source: src.Name(), Duration: time.Since(began)}
		if err != nil {
			attempt.Err = err
			attempts = append(attempts, attempt)
			logger.Warn("Source %s failed, trying next: %v", src.Name(), err)
			continue
		}
		attempt.Practices = len(set.Practices)
		attempt.Categories = len(set.Categories)
		attempt.Regions = len(set.Regions)
		attempts = append(attempts, attempt)
		logger.Debug("Source attempt: %s", attempt)
		return set, src.Name(), attempts, nil
	}
	return nil, "", attempts, domain.ErrSourcesExhausted
}

// pages enumerates every page route in the fixed fan-out order: home,
// full listing, regions, cities, practices, category listing,
// categories, search shell, then the static shells. The order is stable
// for a fixed input.
func (s *BuildService) pages(dir *Directory, nav *domain.NavData) []*domain.Page {
	var pages []*domain.Page
	pages = append(pages, s.homePage(dir, nav))
	pages = append(pages, listingPage(dir, nav))
	pages = append(pages, regionPages(dir, nav)...)
	pages = append(pages, cityPages(dir, nav)...)
	pages = append(pages, s.practicePages(dir, nav)...)
	pages = append(pages, categoryIndexPage(dir, nav))
	pages = append(pages, categoryPages(dir, nav)...)
	pages = append(pages, searchPage(nav))
	pages = append(pages, staticPages(nav)...)
	return pages
}

func (s *BuildService) homePage(dir *Directory, nav *domain.NavData) *domain.Page {
	recent := make([]*domain.Practice, len(dir.Practices()))
	copy(recent, dir.Practices())
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Name < recent[j].Name
	})
	if len(recent) > s.opts.RecentPractices {
		recent = recent[:s.opts.RecentPractices]
	}

	return &domain.Page{
		Route:       domain.Route{Kind: domain.RouteHome, Path: "/", Template: "home"},
		Title:       "Find Holistic Vets Near Me | Holistic Veterinarian Directory",
		Description: "Find holistic vets near you. Browse our directory of integrative veterinarians offering acupuncture, herbal medicine, chiropractic care and natural treatments for pets.",
		Nav:         nav,
		View: &domain.HomeView{
			FeaturedRegions:   dir.FeaturedRegions(s.opts.FeaturedRegions),
			TopCategories:     dir.TopCategories(s.opts.TopCategories),
			FeaturedPractices: dir.FeaturedPractices(s.opts.FeaturedPractices),
			RecentPractices:   recent,
			TotalPractices:    len(dir.Practices()),
		},
	}
}

func listingPage(dir *Directory, nav *domain.NavData) *domain.Page {
	listed := make([]*domain.Practice, len(dir.Practices()))
	copy(listed, dir.Practices())
	sort.SliceStable(listed, func(i, j int) bool {
		a, b := listed[i], listed[j]
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.City != b.City {
			return a.City < b.City
		}
		return a.Name < b.Name
	})

	return &domain.Page{
		Route:       domain.Route{Kind: domain.RouteFullListing, Path: "/vets/", Template: "listing"},
		Title:       "Find a Holistic Veterinarian",
		Description: "Browse our directory of holistic and integrative veterinarians across the United States.",
		Nav:         nav,
		View: &domain.ListingView{
			Practices:  listed,
			Total:      len(listed),
			Page:       1,
			TotalPages: 1,
			HasPrev:    false,
			HasNext:    false,
		},
	}
}

func regionPages(dir *Directory, nav *domain.NavData) []*domain.Page {
	var pages []*domain.Page
	for _, region := range dir.Regions() {
		count := dir.RegionCount(region.Code)
		if count == 0 {
			continue
		}

		group := dir.PracticesInRegion(region.Code)
		listed := make([]*domain.Practice, len(group))
		copy(listed, group)
		sort.SliceStable(listed, func(i, j int) bool {
			if listed[i].City != listed[j].City {
				return listed[i].City < listed[j].City
			}
			return listed[i].Name < listed[j].Name
		})

		pages = append(pages, &domain.Page{
			Route: domain.Route{
				Kind:     domain.RouteRegion,
				Path:     region.Path(),
				Template: "region",
				Slug:     region.Slug,
			},
			Title:       fmt.Sprintf("Holistic Veterinarians in %s", region.Name),
			Description: fmt.Sprintf("Find %d holistic and integrative veterinarians in %s.", count, region.Name),
			Nav:         nav,
			View: &domain.RegionView{
				Region:    region,
				Count:     count,
				Practices: listed,
				Cities:    dir.CitiesInRegion(region.Code),
			},
		})
	}
	return pages
}

// cityPages follows the practice encounter order of region codes and
// city slugs; city groups under a region code with no catalog entry are
// skipped.
func cityPages(dir *Directory, nav *domain.NavData) []*domain.Page {
	var pages []*domain.Page
	dir.EachCityGroup(func(code, citySlug string, practices []*domain.Practice) {
		region, ok := dir.RegionByCode(code)
		if !ok {
			return
		}

		listed := make([]*domain.Practice, len(practices))
		copy(listed, practices)
		sort.SliceStable(listed, func(i, j int) bool {
			return listed[i].Name < listed[j].Name
		})
		cityName := practices[0].City

		pages = append(pages, &domain.Page{
			Route: domain.Route{
				Kind:     domain.RouteCity,
				Path:     fmt.Sprintf("/vets/%s/%s/", region.Slug, citySlug),
				Template: "city",
				Slug:     region.Slug,
				CitySlug: citySlug,
			},
			Title:       fmt.Sprintf("Holistic Veterinarians in %s, %s", cityName, region.Name),
			Description: fmt.Sprintf("Find %d holistic veterinarians in %s, %s.", len(listed), cityName, region.Name),
			Nav:         nav,
			View: &domain.CityView{
				Region:    region,
				CityName:  cityName,
				CitySlug:  citySlug,
				Practices: listed,
			},
		})
	})
	return pages
}

func (s *BuildService) practicePages(dir *Directory, nav *domain.NavData) []*domain.Page {
	var pages []*domain.Page
	for _, p := range dir.Practices() {
		region, _ := dir.RegionByCode(p.Region)

		var cats []*domain.Category
		for _, label := range p.Specialties {
			if c, ok := dir.CategoryBySlug(domain.Slugify(label)); ok {
				cats = append(cats, c)
			}
		}

		offered := p.Specialties
		if len(offered) > 3 {
			offered = offered[:3]
		}

		pages = append(pages, &domain.Page{
			Route: domain.Route{
				Kind:     domain.RoutePractice,
				Path:     p.Path(),
				Template: "practice",
				Slug:     p.Slug,
			},
			Title: fmt.Sprintf("%s - Holistic Veterinarian in %s, %s", p.Name, p.City, p.Region),
			Description: fmt.Sprintf("%s offers holistic veterinary care in %s, %s. Services include %s.",
				p.Name, p.City, p.Region, strings.Join(offered, ", ")),
			Nav: nav,
			View: &domain.PracticeView{
				Practice:   p,
				Region:     region,
				Nearby:     dir.Nearby(p, s.opts.Nearby),
				Categories: cats,
			},
		})
	}
	return pages
}

func categoryIndexPage(dir *Directory, nav *domain.NavData) *domain.Page {
	var listed []domain.CategoryCount
	for _, c := range dir.Categories() {
		if count := dir.CategoryCount(c.Slug); count > 0 {
			listed = append(listed, domain.CategoryCount{Category: c, Count: count})
		}
	}
	sort.SliceStable(listed, func(i, j int) bool {
		return listed[i].Category.Name < listed[j].Category.Name
	})

	return &domain.Page{
		Route:       domain.Route{Kind: domain.RouteCategoryListing, Path: "/specialties/", Template: "category_index"},
		Title:       "Holistic Veterinary Specialties",
		Description: "Learn about holistic veterinary modalities including acupuncture, herbal medicine, chiropractic care, and more.",
		Nav:         nav,
		View:        &domain.CategoryIndexView{Categories: listed},
	}
}

func categoryPages(dir *Directory, nav *domain.NavData) []*domain.Page {
	var pages []*domain.Page
	for _, category := range dir.Categories() {
		count := dir.CategoryCount(category.Slug)
		if count == 0 {
			continue
		}

		group := dir.PracticesInCategory(category.Slug)
		listed := make([]*domain.Practice, len(group))
		copy(listed, group)
		sort.SliceStable(listed, func(i, j int) bool {
			a, b := listed[i], listed[j]
			if a.Region != b.Region {
				return a.Region < b.Region
			}
			if a.City != b.City {
				return a.City < b.City
			}
			return a.Name < b.Name
		})

		var byRegion []domain.RegionGroup
		slot := make(map[string]int)
		for _, p := range group {
			i, ok := slot[p.Region]
			if !ok {
				i = len(byRegion)
				slot[p.Region] = i
				byRegion = append(byRegion, domain.RegionGroup{Code: p.Region})
			}
			byRegion[i].Practices = append(byRegion[i].Practices, p)
		}

		pages = append(pages, &domain.Page{
			Route: domain.Route{
				Kind:     domain.RouteCategory,
				Path:     category.Path(),
				Template: "category",
				Slug:     category.Slug,
			},
			Title:       fmt.Sprintf("%s - Holistic Veterinary Care", category.Name),
			Description: categoryDescription(category),
			Nav:         nav,
			View: &domain.CategoryView{
				Category:  category,
				Count:     count,
				Practices: listed,
				ByRegion:  byRegion,
			},
		})
	}
	return pages
}

func categoryDescription(c *domain.Category) string {
	if c.Description == "" {
		return fmt.Sprintf("Find veterinarians offering %s.", c.Name)
	}
	excerpt := []rune(c.Description)
	if len(excerpt) > 150 {
		excerpt = excerpt[:150]
	}
	return fmt.Sprintf("Find veterinarians offering %s. %s...", c.Name, string(excerpt))
}

func searchPage(nav *domain.NavData) *domain.Page {
	return &domain.Page{
		Route:       domain.Route{Kind: domain.RouteSearch, Path: "/search/", Template: "search"},
		Title:       "Find Holistic Vets Near Me | Search by Location",
		Description: "Search for holistic veterinarians near you. Find integrative vets by city, state, ZIP code, or specialty. Locate natural pet care in your area.",
		Nav:         nav,
	}
}

func staticPages(nav *domain.NavData) []*domain.Page {
	shell := func(path, template, title, description string) *domain.Page {
		kind := domain.RouteStatic
		if template == "not_found" {
			kind = domain.RouteNotFound
		}
		return &domain.Page{
			Route:       domain.Route{Kind: kind, Path: path, Template: template},
			Title:       title,
			Description: description,
			Nav:         nav,
		}
	}

	return []*domain.Page{
		shell("/about/", "about",
			"About Holistic Vet Directory",
			"Learn about our mission to connect pet owners with holistic and integrative veterinary care."),
		shell("/submit/", "submit",
			"Submit Your Practice",
			"Submit your holistic veterinary practice to our directory."),
		shell("/privacy/", "privacy",
			"Privacy Policy",
			"Privacy policy for Holistic Vet Directory."),
		shell("/terms/", "terms",
			"Terms of Service",
			"Terms of service for Holistic Vet Directory."),
		shell("/contact/", "contact",
			"Contact Us",
			"Contact us with questions about holistic veterinary care or to suggest a veterinarian."),
		shell("/success/", "success",
			"Thank You",
			"Your message has been sent successfully."),
		shell("404.html", "not_found",
			"Page Not Found",
			"The page you requested could not be found."),
	}
}
