package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
	"github.com/greenpaws/vetsite/internal/normalize"
)

// --- Mock implementations ---

// mockRecordSource implements driven.RecordSource for testing.
type mockRecordSource struct {
	name     string
	set      *domain.RecordSet
	fetchErr error
	calls    int
}

func (m *mockRecordSource) Name() string {
	return m.name
}

func (m *mockRecordSource) Fetch(_ context.Context) (*domain.RecordSet, error) {
	m.calls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.set, nil
}

// mockRenderer implements driven.PageRenderer for testing. It records
// every page it renders.
type mockRenderer struct {
	pages     []*domain.Page
	renderErr error
}

func (m *mockRenderer) Render(page *domain.Page) ([]byte, error) {
	if m.renderErr != nil {
		return nil, m.renderErr
	}
	m.pages = append(m.pages, page)
	return []byte("<!-- " + page.Route.Path + " -->"), nil
}

func (m *mockRenderer) pageFor(t *testing.T, path string) *domain.Page {
	t.Helper()
	for _, page := range m.pages {
		if page.Route.Path == path {
			return page
		}
	}
	t.Fatalf("no page rendered for %s", path)
	return nil
}

// mockSiteWriter implements driven.SiteWriter for testing.
type mockSiteWriter struct {
	staged    bool
	promoted  bool
	discarded bool
	pageOrder []string
	files     map[string][]byte
	assetsDir string
	writeErr  error
}

func (m *mockSiteWriter) Stage() error {
	m.staged = true
	m.files = make(map[string][]byte)
	return nil
}

func (m *mockSiteWriter) WritePage(path string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.pageOrder = append(m.pageOrder, path)
	return nil
}

func (m *mockSiteWriter) WriteFile(path string, data []byte) error {
	m.files[path] = data
	return nil
}

func (m *mockSiteWriter) CopyAssets(_ context.Context, dir string) error {
	m.assetsDir = dir
	return nil
}

func (m *mockSiteWriter) Promote() error {
	m.promoted = true
	return nil
}

func (m *mockSiteWriter) Discard() error {
	m.discarded = true
	return nil
}

// --- Test helpers ---

func testRecordSet() *domain.RecordSet {
	return &domain.RecordSet{
		Practices: []domain.Record{
			{
				domain.FieldName:        domain.String("Healing Paws"),
				domain.FieldCity:        domain.String("Portland"),
				domain.FieldRegion:      domain.String("Oregon"),
				domain.FieldSpecialties: domain.String("Acupuncture, Herbal Medicine"),
				domain.FieldFeatured:    domain.String("x"),
			},
			{
				domain.FieldName:        domain.String("Coastal Vet"),
				domain.FieldCity:        domain.String("Albany"),
				domain.FieldRegion:      domain.String("NY"),
				domain.FieldSpecialties: domain.List("Acupuncture"),
			},
		},
		Categories: []domain.Record{
			{domain.FieldCategoryName: domain.String("Acupuncture")},
			{domain.FieldCategoryName: domain.String("Herbal Medicine")},
			{domain.FieldCategoryName: domain.String("Reiki")},
		},
		Regions: []domain.Record{
			{domain.FieldRegionName: domain.String("Oregon"), domain.FieldRegionCode: domain.String("OR")},
			{domain.FieldRegionName: domain.String("New York"), domain.FieldRegionCode: domain.String("NY")},
			{domain.FieldRegionName: domain.String("California"), domain.FieldRegionCode: domain.String("CA")},
		},
	}
}

func newTestBuilder(sources []driven.RecordSource, renderer *mockRenderer, writer *mockSiteWriter) *BuildService {
	return NewBuildService(sources, renderer, writer, normalize.New(normalize.DefaultRules()), BuildOptions{
		BaseURL:           "https://www.holisticvetsnearme.com",
		AssetsDir:         "static",
		FeaturedRegions:   8,
		TopCategories:     8,
		FeaturedPractices: 6,
		RecentPractices:   6,
		Nearby:            5,
	})
}

// --- Tests ---

func TestBuildService_Build(t *testing.T) {
	source := &mockRecordSource{name: "csv", set: testRecordSet()}
	renderer := &mockRenderer{}
	writer := &mockSiteWriter{}
	svc := newTestBuilder([]driven.RecordSource{source}, renderer, writer)

	report, err := svc.Build(context.Background())

	require.NoError(t, err)
	assert.True(t, writer.staged)
	assert.True(t, writer.promoted)
	assert.False(t, writer.discarded)
	assert.Equal(t, "static", writer.assetsDir)

	assert.Equal(t, "csv", report.Source)
	require.Len(t, report.Attempts, 1)
	assert.True(t, report.Attempts[0].Succeeded())
	assert.Equal(t, 2, report.Practices)
	assert.Equal(t, 3, report.Categories)
	assert.Equal(t, 3, report.Regions)
	assert.Equal(t, 19, report.Pages)
	assert.Equal(t, 3, report.Artifacts)

	assert.Contains(t, writer.files, "search-index.json")
	assert.Contains(t, writer.files, "sitemap.xml")
	assert.Contains(t, writer.files, "robots.txt")
}

func TestBuildService_Build_RouteOrder(t *testing.T) {
	source := &mockRecordSource{name: "csv", set: testRecordSet()}
	renderer := &mockRenderer{}
	writer := &mockSiteWriter{}
	svc := newTestBuilder([]driven.RecordSource{source}, renderer, writer)

	_, err := svc.Build(context.Background())

	require.NoError(t, err)
	// California has no practices and Reiki has no members, so neither
	// produces a page.
	assert.Equal(t, []string{
		"/",
		"/vets/",
		"/vets/oregon/",
		"/vets/new-york/",
		"/vets/oregon/portland/",
		"/vets/new-york/albany/",
		"/vet/healing-paws/",
		"/vet/coastal-vet/",
		"/specialties/",
		"/specialty/acupuncture/",
		"/specialty/herbal-medicine/",
		"/search/",
		"/about/",
		"/submit/",
		"/privacy/",
		"/terms/",
		"/contact/",
		"/success/",
		"404.html",
	}, writer.pageOrder)
}

func TestBuildService_Build_PageContexts(t *testing.T) {
	source := &mockRecordSource{name: "csv", set: testRecordSet()}
	renderer := &mockRenderer{}
	writer := &mockSiteWriter{}
	svc := newTestBuilder([]driven.RecordSource{source}, renderer, writer)

	_, err := svc.Build(context.Background())
	require.NoError(t, err)

	home := renderer.pageFor(t, "/")
	assert.Equal(t, "Find Holistic Vets Near Me | Holistic Veterinarian Directory", home.Title)
	homeView, ok := home.View.(*domain.HomeView)
	require.True(t, ok)
	assert.Equal(t, 2, homeView.TotalPractices)
	assert.Equal(t, []string{"healing-paws"}, practiceSlugs(homeView.FeaturedPractices))
	require.Len(t, homeView.FeaturedRegions, 2)
	assert.Equal(t, "OR", homeView.FeaturedRegions[0].Region.Code)

	region := renderer.pageFor(t, "/vets/oregon/")
	assert.Equal(t, "Holistic Veterinarians in Oregon", region.Title)
	assert.Equal(t, "Find 1 holistic and integrative veterinarians in Oregon.", region.Description)
	require.NotNil(t, region.Nav)
	assert.Len(t, region.Nav.Regions, 2)

	city := renderer.pageFor(t, "/vets/oregon/portland/")
	cityView, ok := city.View.(*domain.CityView)
	require.True(t, ok)
	assert.Equal(t, "Portland", cityView.CityName)
	assert.Equal(t, "portland", cityView.CitySlug)

	practice := renderer.pageFor(t, "/vet/healing-paws/")
	assert.Equal(t, "Healing Paws - Holistic Veterinarian in Portland, OR", practice.Title)
	assert.Equal(t, "Healing Paws offers holistic veterinary care in Portland, OR. Services include Acupuncture, Herbal Medicine.", practice.Description)
	practiceView, ok := practice.View.(*domain.PracticeView)
	require.True(t, ok)
	require.NotNil(t, practiceView.Region)
	assert.Equal(t, "OR", practiceView.Region.Code)
	require.Len(t, practiceView.Categories, 2)
	assert.Equal(t, "acupuncture", practiceView.Categories[0].Slug)

	categories := renderer.pageFor(t, "/specialties/")
	indexView, ok := categories.View.(*domain.CategoryIndexView)
	require.True(t, ok)
	require.Len(t, indexView.Categories, 2)
	assert.Equal(t, "Acupuncture", indexView.Categories[0].Category.Name)
	assert.Equal(t, 2, indexView.Categories[0].Count)

	category := renderer.pageFor(t, "/specialty/acupuncture/")
	assert.Equal(t, "Acupuncture - Holistic Veterinary Care", category.Title)
	categoryView, ok := category.View.(*domain.CategoryView)
	require.True(t, ok)
	assert.Equal(t, 2, categoryView.Count)
	require.Len(t, categoryView.ByRegion, 2)
	assert.Equal(t, "OR", categoryView.ByRegion[0].Code)
}

func TestBuildService_Build_Fallback(t *testing.T) {
	failing := &mockRecordSource{name: "table", fetchErr: errors.New("401 unauthorized")}
	working := &mockRecordSource{name: "csv", set: testRecordSet()}
	renderer := &mockRenderer{}
	writer := &mockSiteWriter{}
	svc := newTestBuilder([]driven.RecordSource{failing, working}, renderer, writer)

	report, err := svc.Build(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "csv", report.Source)
	require.Len(t, report.Attempts, 2)
	assert.Equal(t, "table", report.Attempts[0].Source)
	assert.False(t, report.Attempts[0].Succeeded())
	assert.True(t, report.Attempts[1].Succeeded())
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
}

func TestBuildService_Build_SourcesExhausted(t *testing.T) {
	first := &mockRecordSource{name: "table", fetchErr: errors.New("401 unauthorized")}
	second := &mockRecordSource{name: "csv", fetchErr: errors.New("open data: no such file")}
	renderer := &mockRenderer{}
	writer := &mockSiteWriter{}
	svc := newTestBuilder([]driven.RecordSource{first, second}, renderer, writer)

	report, err := svc.Build(context.Background())

	require.ErrorIs(t, err, domain.ErrSourcesExhausted)
	require.NotNil(t, report)
	assert.Len(t, report.Attempts, 2)
	assert.False(t, writer.staged)
}

func TestBuildService_Build_NoSources(t *testing.T) {
	svc := newTestBuilder(nil, &mockRenderer{}, &mockSiteWriter{})

	_, err := svc.Build(context.Background())

	require.ErrorIs(t, err, domain.ErrNoSources)
}

func TestBuildService_Build_RenderFailureDiscards(t *testing.T) {
	source := &mockRecordSource{name: "csv", set: testRecordSet()}
	renderer := &mockRenderer{renderErr: errors.New("template: home not defined")}
	writer := &mockSiteWriter{}
	svc := newTestBuilder([]driven.RecordSource{source}, renderer, writer)

	_, err := svc.Build(context.Background())

	require.Error(t, err)
	assert.True(t, writer.staged)
	assert.False(t, writer.promoted)
	assert.True(t, writer.discarded)
}

func TestBuildService_Build_EmptyCorpus(t *testing.T) {
	source := &mockRecordSource{name: "csv", set: &domain.RecordSet{}}
	renderer := &mockRenderer{}
	writer := &mockSiteWriter{}
	svc := newTestBuilder([]driven.RecordSource{source}, renderer, writer)

	report, err := svc.Build(context.Background())

	require.NoError(t, err)
	assert.True(t, writer.promoted)
	// Home, listing, category index, search, and the static shells.
	assert.Equal(t, 11, report.Pages)
	assert.Equal(t, 0, report.Practices)
}

func TestBuildService_Build_SearchIndex(t *testing.T) {
	source := &mockRecordSource{name: "csv", set: testRecordSet()}
	renderer := &mockRenderer{}
	writer := &mockSiteWriter{}
	svc := newTestBuilder([]driven.RecordSource{source}, renderer, writer)

	_, err := svc.Build(context.Background())
	require.NoError(t, err)

	var docs []domain.SearchDocument
	require.NoError(t, json.Unmarshal(writer.files["search-index.json"], &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "Healing Paws", docs[0].Name)
	assert.Equal(t, "OR", docs[0].Region)
	assert.Equal(t, "/vet/healing-paws/", docs[0].URL)
}

func TestBuildService_Sources(t *testing.T) {
	working := &mockRecordSource{name: "csv", set: testRecordSet()}
	failing := &mockRecordSource{name: "table", fetchErr: errors.New("401 unauthorized")}
	svc := newTestBuilder([]driven.RecordSource{failing, working}, &mockRenderer{}, &mockSiteWriter{})

	statuses := svc.Sources(context.Background())

	require.Len(t, statuses, 2)
	assert.Equal(t, "table", statuses[0].Name)
	assert.Equal(t, 1, statuses[0].Position)
	assert.False(t, statuses[0].Available)
	assert.Contains(t, statuses[0].Detail, "401")

	assert.Equal(t, "csv", statuses[1].Name)
	assert.Equal(t, 2, statuses[1].Position)
	assert.True(t, statuses[1].Available)
	assert.Equal(t, "2 practices, 3 categories, 3 regions", statuses[1].Detail)
}

func TestBuildService_Build_Canceled(t *testing.T) {
	source := &mockRecordSource{name: "csv", set: testRecordSet()}
	renderer := &mockRenderer{}
	writer := &mockSiteWriter{}
	svc := newTestBuilder([]driven.RecordSource{source}, renderer, writer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Build(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, writer.promoted)
	assert.True(t, writer.discarded)
}
