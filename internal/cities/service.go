package cities

import (
	"context"

	"colabatr_backend/platform/logger"
)

// Service answers city search queries against the reference dataset.
type Service struct {
	dataset *Dataset
	cache   *Cache
	log     *logger.Logger
}

// NewService creates the cities service. cache may be nil.
func NewService(dataset *Dataset, cache *Cache, log *logger.Logger) *Service {
	return &Service{dataset: dataset, cache: cache, log: log}
}

// Search filters the dataset by the query. An empty result is a normal,
// displayable state, never an error.
func (s *Service) Search(ctx context.Context, query string) []Entry {
	if cached, ok := s.cache.Get(ctx, query); ok {
		return cached
	}

	matches := Filter(s.dataset.Entries(), query)
	s.cache.Set(ctx, query, matches)
	return matches
}

// Dataset exposes the underlying reference dataset for the onboarding step.
func (s *Service) Dataset() *Dataset {
	return s.dataset
}
