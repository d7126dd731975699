package services

import (
	"sort"
	"strings"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/geo"
)

// nearbyRadiusMiles bounds the coordinate-based nearby lookup.
const nearbyRadiusMiles = 100.0

// Directory is the aggregation engine: every cross-reference index the
// page fan-out needs, derived once from the loaded entity lists.
//
// All groupings preserve source order, and count matching is by slug,
// so a practice labeled "acupuncture" counts toward the "Acupuncture"
// category. Entities are never mutated; derived counts live in the
// Directory's own tables. Lookups on unknown keys return empty results,
// never errors.
type Directory struct {
	practices  []*domain.Practice
	categories []*domain.Category
	regions    []*domain.Region

	regionByCode   map[string]*domain.Region
	regionBySlug   map[string]*domain.Region
	categoryBySlug map[string]*domain.Category

	regionCounts   map[string]int
	categoryCounts map[string]int

	byRegion map[string][]*domain.Practice

	// byCity is keyed by region code then city slug; cityOrder and
	// regionCityOrder keep the first-encounter iteration order that
	// page fan-out depends on.
	byCity          map[string]map[string][]*domain.Practice
	cityOrder       map[string][]string
	regionCityOrder []string

	byCategory map[string][]*domain.Practice
}

// NewDirectory builds the aggregation indices from entity lists.
func NewDirectory(practices []*domain.Practice, categories []*domain.Category, regions []*domain.Region) *Directory {
	d := &Directory{
		practices:  practices,
		categories: categories,
		regions:    regions,

		regionByCode:   make(map[string]*domain.Region, len(regions)),
		regionBySlug:   make(map[string]*domain.Region, len(regions)),
		categoryBySlug: make(map[string]*domain.Category, len(categories)),

		regionCounts:   make(map[string]int),
		categoryCounts: make(map[string]int),

		byRegion:   make(map[string][]*domain.Practice),
		byCity:     make(map[string]map[string][]*domain.Practice),
		cityOrder:  make(map[string][]string),
		byCategory: make(map[string][]*domain.Practice),
	}

	for _, r := range regions {
		d.regionByCode[r.Code] = r
		d.regionBySlug[r.Slug] = r
	}
	for _, c := range categories {
		d.categoryBySlug[c.Slug] = c
	}

	for _, p := range practices {
		if p.Region != "" {
			d.regionCounts[p.Region]++
			d.byRegion[p.Region] = append(d.byRegion[p.Region], p)

			if p.City != "" {
				citySlug := domain.Slugify(p.City)
				cities, seen := d.byCity[p.Region]
				if !seen {
					cities = make(map[string][]*domain.Practice)
					d.byCity[p.Region] = cities
					d.regionCityOrder = append(d.regionCityOrder, p.Region)
				}
				if _, seen := cities[citySlug]; !seen {
					d.cityOrder[p.Region] = append(d.cityOrder[p.Region], citySlug)
				}
				cities[citySlug] = append(cities[citySlug], p)
			}
		}

		// A practice counts once per distinct category slug, even when
		// it carries case-variant labels that collapse to one slug.
		for _, slug := range distinctSlugs(p.Specialties) {
			d.categoryCounts[slug]++
			d.byCategory[slug] = append(d.byCategory[slug], p)
		}
	}

	return d
}

func distinctSlugs(labels []string) []string {
	var slugs []string
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		slug := domain.Slugify(label)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}
	return slugs
}

// Practices returns every practice in source order.
func (d *Directory) Practices() []*domain.Practice {
	return d.practices
}

// Categories returns every category in source order.
func (d *Directory) Categories() []*domain.Category {
	return d.categories
}

// Regions returns every region in source order.
func (d *Directory) Regions() []*domain.Region {
	return d.regions
}

// RegionByCode resolves a region entity by its code.
func (d *Directory) RegionByCode(code string) (*domain.Region, bool) {
	r, ok := d.regionByCode[code]
	return r, ok
}

// CategoryBySlug resolves a category entity by its slug.
func (d *Directory) CategoryBySlug(slug string) (*domain.Category, bool) {
	c, ok := d.categoryBySlug[slug]
	return c, ok
}

// RegionCount returns the number of practices in a region.
func (d *Directory) RegionCount(code string) int {
	return d.regionCounts[code]
}

// CategoryCount returns the number of practices offering a category.
func (d *Directory) CategoryCount(slug string) int {
	return d.categoryCounts[slug]
}

// PracticesInRegion returns a region's practices in source order.
func (d *Directory) PracticesInRegion(code string) []*domain.Practice {
	return d.byRegion[code]
}

// PracticesInCategory returns a category's practices in source order.
func (d *Directory) PracticesInCategory(slug string) []*domain.Practice {
	return d.byCategory[slug]
}

// CitiesInRegion summarizes a region's cities sorted by display name.
func (d *Directory) CitiesInRegion(code string) []domain.CitySummary {
	var cities []domain.CitySummary
	for _, slug := range d.cityOrder[code] {
		group := d.byCity[code][slug]
		cities = append(cities, domain.CitySummary{
			Name:  group[0].City,
			Slug:  slug,
			Count: len(group),
		})
	}
	sort.SliceStable(cities, func(i, j int) bool {
		return cities[i].Name < cities[j].Name
	})
	return cities
}

// EachCityGroup visits every (region code, city slug, practices) group
// in first-encounter order. Page fan-out iterates city pages with it.
func (d *Directory) EachCityGroup(visit func(code, citySlug string, practices []*domain.Practice)) {
	for _, code := range d.regionCityOrder {
		for _, citySlug := range d.cityOrder[code] {
			visit(code, citySlug, d.byCity[code][citySlug])
		}
	}
}

// FeaturedRegions selects up to limit regions for the homepage grid:
// manually flagged regions with practices first, in source order, then
// the remaining slots filled by descending practice count.
func (d *Directory) FeaturedRegions(limit int) []domain.RegionCount {
	var featured []domain.RegionCount
	for _, r := range d.regions {
		if r.Featured && d.regionCounts[r.Code] > 0 {
			featured = append(featured, domain.RegionCount{Region: r, Count: d.regionCounts[r.Code]})
		}
	}

	if len(featured) < limit {
		var fill []domain.RegionCount
		for _, r := range d.regions {
			if !r.Featured && d.regionCounts[r.Code] > 0 {
				fill = append(fill, domain.RegionCount{Region: r, Count: d.regionCounts[r.Code]})
			}
		}
		sort.SliceStable(fill, func(i, j int) bool {
			return fill[i].Count > fill[j].Count
		})
		if len(fill) > limit-len(featured) {
			fill = fill[:limit-len(featured)]
		}
		featured = append(featured, fill...)
	}

	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured
}

// FeaturedPractices selects up to limit flagged practices, sorted by
// name for a stable homepage order.
func (d *Directory) FeaturedPractices(limit int) []*domain.Practice {
	var featured []*domain.Practice
	for _, p := range d.practices {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		return featured[i].Name < featured[j].Name
	})
	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured
}

// TopCategories selects up to limit categories with practices, by
// descending count.
func (d *Directory) TopCategories(limit int) []domain.CategoryCount {
	var top []domain.CategoryCount
	for _, c := range d.categories {
		if d.categoryCounts[c.Slug] > 0 {
			top = append(top, domain.CategoryCount{Category: c, Count: d.categoryCounts[c.Slug]})
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// Nearby returns up to limit practices close to p. With coordinates on
// both sides it ranks by distance within a 100 mile radius. A practice
// without coordinates falls back to its region's listing in source
// order; the fallback applies no radius.
func (d *Directory) Nearby(p *domain.Practice, limit int) []*domain.Practice {
	if !p.HasCoordinates() {
		var sameRegion []*domain.Practice
		for _, other := range d.practices {
			if other.Region == p.Region && other.Slug != p.Slug {
				sameRegion = append(sameRegion, other)
			}
		}
		if len(sameRegion) > limit {
			sameRegion = sameRegion[:limit]
		}
		return sameRegion
	}

	type ranked struct {
		practice *domain.Practice
		miles    float64
	}
	var nearby []ranked
	for _, other := range d.practices {
		if other.Slug == p.Slug || !other.HasCoordinates() {
			continue
		}
		miles := geo.Miles(*p.Coordinates, *other.Coordinates)
		if miles <= nearbyRadiusMiles {
			nearby = append(nearby, ranked{practice: other, miles: miles})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].miles < nearby[j].miles
	})
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}

	out := make([]*domain.Practice, len(nearby))
	for i, n := range nearby {
		out[i] = n.practice
	}
	return out
}

// Nav builds the navigation aggregates shared by every page: regions
// and categories with at least one practice, sorted by name.
func (d *Directory) Nav() *domain.NavData {
	nav := &domain.NavData{}
	for _, r := range d.regions {
		if d.regionCounts[r.Code] > 0 {
			nav.Regions = append(nav.Regions, domain.RegionCount{Region: r, Count: d.regionCounts[r.Code]})
		}
	}
	sort.SliceStable(nav.Regions, func(i, j int) bool {
		return nav.Regions[i].Region.Name < nav.Regions[j].Region.Name
	})

	for _, c := range d.categories {
		if d.categoryCounts[c.Slug] > 0 {
			nav.Categories = append(nav.Categories, domain.CategoryCount{Category: c, Count: d.categoryCounts[c.Slug]})
		}
	}
	sort.SliceStable(nav.Categories, func(i, j int) bool {
		return nav.Categories[i].Category.Name < nav.Categories[j].Category.Name
	})
	return nav
}

// SearchDocuments builds the client-side search index, one document per
// practice in source order.
func (d *Directory) SearchDocuments() []domain.SearchDocument {
	docs := make([]domain.SearchDocument, 0, len(d.practices))
	for _, p := range d.practices {
		docs = append(docs, domain.SearchDocument{
			Name:        p.Name,
			Vets:        strings.Join(p.Practitioners, ", "),
			City:        p.City,
			Region:      p.Region,
			Zip:         p.PostalCode,
			Specialties: p.Specialties,
			Species:     p.Species,
			Telehealth:  p.Telehealth,
			Slug:        p.Slug,
			URL:         p.Path(),
		})
	}
	return docs
}
