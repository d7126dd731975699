package htmltpl

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// SiteMeta is the site identity and the integration settings shared by
// every rendered page.
type SiteMeta struct {
	// Name appears in headers and titles.
	Name string

	// Description is the default meta description.
	Description string

	// BaseURL is the canonical site root, without a trailing slash.
	BaseURL string

	// Environment is "development" or "production".
	Environment string

	EnableAdSense   bool
	EnableAnalytics bool
	EnableMaps      bool
	EnableSearch    bool

	AdSenseClientID    string
	AdSenseSlotHeader  string
	AdSenseSlotSidebar string
	AdSenseSlotInFeed  string
	AdSenseSlotFooter  string

	AnalyticsMeasurementID string
	MapsAPIKey             string
}

// Renderer renders pages from the embedded template set.
type Renderer struct {
	templates *template.Template
	site      SiteMeta
	now       func() time.Time
}

var _ driven.PageRenderer = (*Renderer)(nil)

// NewRenderer parses the embedded template set.
func NewRenderer(site SiteMeta) (*Renderer, error) {
	templates, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Renderer{
		templates: templates,
		site:      site,
		now:       time.Now,
	}, nil
}

// pageData is the root context every template executes against.
type pageData struct {
	Site SiteMeta
	Now  time.Time
	Page *domain.Page
}

// Render produces the document for one page. The route's template name
// selects the file; an unknown name reports ErrNotFound.
func (r *Renderer) Render(page *domain.Page) ([]byte, error) {
	tpl := r.templates.Lookup(page.Route.Template + ".html.tmpl")
	if tpl == nil {
		return nil, fmt.Errorf("no template named %s: %w", page.Route.Template, domain.ErrNotFound)
	}

	var buf bytes.Buffer
	data := &pageData{Site: r.site, Now: r.now(), Page: page}
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", page.Route.Path, err)
	}
	return buf.Bytes(), nil
}
