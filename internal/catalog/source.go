package catalog

import (
	"context"

	"stylist-engine/internal/domain"
)

// Source yields the full catalog. The recommend service calls Load at most
// once per cache lifetime; implementations own retries/timeouts themselves.
type Source interface {
	Load(ctx context.Context) ([]domain.CatalogItem, error)
}

// SourceFunc adapts a plain function to Source, mostly for tests.
type SourceFunc func(ctx context.Context) ([]domain.CatalogItem, error)

func (f SourceFunc) Load(ctx context.Context) ([]domain.CatalogItem, error) {
	return f(ctx)
}
