package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"stylist-engine/internal/config"
	"stylist-engine/internal/domain"
	"stylist-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Recommendation entrypoints (injected for testability)
	GetRecommendations func(ctx context.Context, prefs domain.PreferenceRecord) (domain.RecommendationResult, error)
	CatalogStatus      func() (loaded bool, count int)
	ReloadCatalog      func(ctx context.Context) (count int, err error)
}
