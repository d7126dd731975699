package driven

import (
	"github.com/greenpaws/vetsite/internal/core/domain"
)

// PageRenderer turns a page context into a rendered document. The core
// is agnostic to the templating technology: it supplies the route, the
// head metadata, and a typed view payload, and receives bytes.
type PageRenderer interface {
	// Render produces the document for one page.
	Render(page *domain.Page) ([]byte, error)
}
