package out

import (
	"context"

	"photobooth/internal/modules/template/domain"
)

// CatalogStore reads the ordered template catalog from its backing source.
// Implementations report unreadable sources as errors; the service decides
// how to fall back.
type CatalogStore interface {
	Load(ctx context.Context) ([]domain.Template, error)
}
