package driving

import (
	"context"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// SiteBuilder generates the static site end to end: fetch records,
// aggregate, fan out pages and artifacts, promote the output.
type SiteBuilder interface {
	// Build runs one full generation.
	Build(ctx context.Context) (*domain.BuildReport, error)

	// Sources probes every configured source in fallback order.
	Sources(ctx context.Context) []domain.SourceStatus
}
