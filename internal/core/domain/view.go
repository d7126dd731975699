package domain

// Page is one renderable output page: its route, head metadata, the
// navigation aggregates shared by every page, and a route-specific view
// payload. Static shells carry a nil View.
type Page struct {
	// Route locates the page in the output tree and names its template.
	Route Route

	// Title is the document title.
	Title string

	// Description is the meta description.
	Description string

	// Nav holds the navigation aggregates rendered on every page.
	Nav *NavData

	// View is the route-specific payload: *HomeView, *ListingView,
	// *RegionView, *CityView, *PracticeView, *CategoryIndexView, or
	// *CategoryView, matching Route.Kind.
	View any
}

// NavData holds the cross-page navigation lists. Only entities with at
// least one practice appear.
type NavData struct {
	// Regions is sorted by region name.
	Regions []RegionCount

	// Categories is sorted by category name.
	Categories []CategoryCount
}

// RegionCount pairs a region with its derived practice count.
type RegionCount struct {
	Region *Region
	Count  int
}

// CategoryCount pairs a category with its derived practice count.
type CategoryCount struct {
	Category *Category
	Count    int
}

// CitySummary is one city's entry on a region page.
type CitySummary struct {
	// Name is the display spelling from the first practice encountered.
	Name string

	// Slug is the URL segment under the region page.
	Slug string

	// Count is the number of practices in the city.
	Count int
}

// RegionGroup buckets a category's practices by region code, in first
// encounter order.
type RegionGroup struct {
	Code      string
	Practices []*Practice
}

// HomeView is the homepage payload.
type HomeView struct {
	FeaturedRegions   []RegionCount
	TopCategories     []CategoryCount
	FeaturedPractices []*Practice
	RecentPractices   []*Practice
	TotalPractices    int
}

// ListingView is the full practice listing payload. The pagination
// fields describe a single page today; splitting the listing is a
// planned followup once the corpus outgrows one page.
type ListingView struct {
	// Practices is sorted by region, city, then name.
	Practices []*Practice
	Total     int

	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// RegionView is a region page payload.
type RegionView struct {
	Region *Region
	Count  int

	// Practices is sorted by city then name.
	Practices []*Practice

	// Cities is sorted by display name.
	Cities []CitySummary
}

// CityView is a city page payload.
type CityView struct {
	Region   *Region
	CityName string
	CitySlug string

	// Practices is sorted by name.
	Practices []*Practice
}

// PracticeView is a practice detail page payload.
type PracticeView struct {
	Practice *Practice

	// Region is nil when the practice carries an unknown region code.
	Region *Region

	// Nearby holds the proximity-ranked neighbor practices.
	Nearby []*Practice

	// Categories resolves the practice's category labels to catalog
	// entries; labels without a catalog entry are omitted.
	Categories []*Category
}

// CategoryIndexView is the category listing payload.
type CategoryIndexView struct {
	// Categories is sorted by name.
	Categories []CategoryCount
}

// CategoryView is a category page payload.
type CategoryView struct {
	Category *Category
	Count    int

	// Practices is sorted by region, city, then name.
	Practices []*Practice

	// ByRegion groups the practices by region code for the sidebar.
	ByRegion []RegionGroup
}

// SearchDocument is one practice entry in the client-side search index.
type SearchDocument struct {
	Name        string   `json:"name"`
	Vets        string   `json:"vets"`
	City        string   `json:"city"`
	Region      string   `json:"state"`
	Zip         string   `json:"zip"`
	Specialties []string `json:"specialties"`
	Species     []string `json:"species"`
	Telehealth  bool     `json:"telehealth"`
	Slug        string   `json:"slug"`
	URL         string   `json:"url"`
}
