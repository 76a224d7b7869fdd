package recommend

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"stylist-engine/internal/catalog"
	"stylist-engine/internal/domain"
	"stylist-engine/internal/score"
)

// DefaultPerCategory is the per-bucket cap when the config leaves it unset.
const DefaultPerCategory = 4

// Service orchestrates scoring across the catalog and buckets the sorted
// result. The catalog is loaded once from the injected Source and reused for
// the life of the service; ClearCache forces a reload.
type Service struct {
	src   catalog.Source
	limit int

	mu     sync.RWMutex
	items  []domain.CatalogItem
	loaded bool

	sf singleflight.Group
}

func NewService(src catalog.Source, perCategory int) *Service {
	if perCategory <= 0 {
		perCategory = DefaultPerCategory
	}
	return &Service{src: src, limit: perCategory}
}

// Catalog returns the cached catalog, loading it on first use. Concurrent
// first callers share a single in-flight load.
func (s *Service) Catalog(ctx context.Context) ([]domain.CatalogItem, error) {
	s.mu.RLock()
	if s.loaded {
		items := s.items
		s.mu.RUnlock()
		return items, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.sf.Do("catalog", func() (any, error) {
		// Re-check under the flight: ClearCache may have raced a loader in.
		s.mu.RLock()
		if s.loaded {
			items := s.items
			s.mu.RUnlock()
			return items, nil
		}
		s.mu.RUnlock()

		items, err := s.src.Load(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.items = items
		s.loaded = true
		s.mu.Unlock()
		return items, nil
	})
	if err != nil {
		return nil, &CatalogLoadError{Err: err}
	}
	return v.([]domain.CatalogItem), nil
}

// ClearCache drops the cached catalog so the next call reloads it.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.items = nil
	s.loaded = false
	s.mu.Unlock()
}

// Loaded reports whether a catalog is currently cached, and its size.
func (s *Service) Loaded() (bool, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded, len(s.items)
}

// GetRecommendations scores the whole catalog against prefs and returns the
// top items per category. Empty buckets are a legitimate outcome; the only
// error path is a catalog load failure.
func (s *Service) GetRecommendations(ctx context.Context, prefs domain.PreferenceRecord) (domain.RecommendationResult, error) {
	items, err := s.Catalog(ctx)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	scored := score.ScoreAll(items, prefs)
	log.Printf("[recommend] scored=%d gender=%s lifestyle=%s bodyType=%s",
		len(scored), prefs.Gender, prefs.Lifestyle, prefs.BodyType)

	result := domain.RecommendationResult{
		Shirts:  topByCategory(scored, shirtKeywords, s.limit),
		Jackets: topByCategory(scored, jacketKeywords, s.limit),
		Jeans:   topByCategory(scored, jeanKeywords, s.limit),
		Shoes:   topByCategory(scored, shoeKeywords, s.limit),
	}

	log.Printf("[recommend] buckets shirts=%d jackets=%d jeans=%d shoes=%d",
		len(result.Shirts), len(result.Jackets), len(result.Jeans), len(result.Shoes))
	return result, nil
}
