package domain

// RouteKind identifies what a route renders. The sitemap hint table and
// the fan-out driver are both keyed by kind.
type RouteKind int

const (
	// RouteHome is the site front page.
	RouteHome RouteKind = iota

	// RouteFullListing is the complete practice listing.
	RouteFullListing

	// RouteRegion is one region's listing page.
	RouteRegion

	// RouteCity is one city-within-region listing page.
	RouteCity

	// RoutePractice is one practice detail page.
	RoutePractice

	// RouteCategoryListing is the complete category listing.
	RouteCategoryListing

	// RouteCategory is one category detail page.
	RouteCategory

	// RouteSearch is the client-side search shell.
	RouteSearch

	// RouteStatic is an informational page (about, submit, ...).
	RouteStatic

	// RouteNotFound is the 404 page, written as a bare file.
	RouteNotFound
)

// Route is one output page: a stable path plus the template that renders
// it. Slug carries the entity identity for region/city/practice/category
// routes so the driver can rebuild the context.
type Route struct {
	// Kind classifies the route.
	Kind RouteKind

	// Path is the site-relative route, always with a trailing slash
	// for directory routes ("/vets/california/").
	Path string

	// Template is the renderer template name.
	Template string

	// Slug identifies the entity behind the route, when any.
	Slug string

	// CitySlug identifies the city for city routes.
	CitySlug string
}
