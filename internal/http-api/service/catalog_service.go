package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"

	"github.com/redis/go-redis/v9"
)

const labelCacheKey = "catalog:filters"

// Filters is the derived, deduplicated label listing over current catalog
// rows. It is distinct from the canonical vocabularies the import pipeline
// maintains: this is a live scan, not the reference documents.
type Filters struct {
	Tags     []string `json:"tags"`
	Factions []string `json:"factions"`
}

type CatalogService interface {
	ListSeries(ctx context.Context) ([]models.Series, error)
	ListItems(ctx context.Context, category models.Category) ([]models.Item, error)
	ListUniqueLabels(ctx context.Context) (*Filters, error)
	InvalidateLabelCache(ctx context.Context)
}

type catalogService struct {
	repo     repository.ItemRepository
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewCatalogService(repo repository.ItemRepository, cache *redis.Client, cacheTTL time.Duration) CatalogService {
	return &catalogService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *catalogService) ListSeries(ctx context.Context) ([]models.Series, error) {
	return s.repo.ListSeriesWithBooks(ctx)
}

func (s *catalogService) ListItems(ctx context.Context, category models.Category) ([]models.Item, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.ListByCategory(ctx, category)
}

// ListUniqueLabels scans every item's tag and faction lists and returns the
// sorted, deduplicated union. Results are served from redis when available;
// cache failures fall back to the scan rather than surfacing an error.
func (s *catalogService) ListUniqueLabels(ctx context.Context) (*Filters, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, labelCacheKey).Bytes(); err == nil {
			var cached Filters
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	items, err := s.repo.ListLabels(ctx)
	if err != nil {
		return nil, err
	}

	tagSet := make(map[string]struct{})
	factionSet := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.Tags {
			tagSet[tag] = struct{}{}
		}
		for _, faction := range item.Faction {
			factionSet[faction] = struct{}{}
		}
	}

	filters := &Filters{
		Tags:     sortedKeys(tagSet),
		Factions: sortedKeys(factionSet),
	}

	if s.cache != nil {
		if data, err := json.Marshal(filters); err == nil {
			s.cache.Set(ctx, labelCacheKey, data, s.cacheTTL)
		}
	}
	return filters, nil
}

// InvalidateLabelCache drops the cached filter listing; called after a
// successful import so new labels show up immediately.
func (s *catalogService) InvalidateLabelCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, labelCacheKey)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
