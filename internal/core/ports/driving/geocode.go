package driving

import (
	"context"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// GeocodeRunner fills missing coordinates on catalog practices.
type GeocodeRunner interface {
	// Fill geocodes practices without coordinates, writing results
	// back to the catalog. A limit of 0 means no cap.
	Fill(ctx context.Context, limit int) (*domain.GeocodeReport, error)
}
