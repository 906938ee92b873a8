package service

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/metrics"
	"github.com/dtroode/sympathy-server/internal/model"
)

const (
	DefaultCacheTTL      = 60 * time.Second
	DefaultCacheCapacity = 100
)

var _ model.CandidateFinder = (*CachedCandidates)(nil)

// CachedCandidates memoizes candidate query results per requester and filter set.
// Entries expire a fixed TTL after insertion; the least recently used entry is
// evicted once capacity is reached. Email lookups and failed queries are never cached.
type CachedCandidates struct {
	next   model.CandidateFinder
	cache  *expirable.LRU[string, []model.Profile]
	logger *logger.Logger
}

func NewCachedCandidates(next model.CandidateFinder, capacity int, ttl time.Duration, logger *logger.Logger) *CachedCandidates {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedCandidates{
		next:   next,
		cache:  expirable.NewLRU[string, []model.Profile](capacity, nil, ttl),
		logger: logger,
	}
}

func (c *CachedCandidates) Find(ctx context.Context, requester model.Requester, query model.CandidateQuery) ([]model.Profile, error) {
	if query.Email != "" {
		return c.next.Find(ctx, requester, query)
	}

	key, err := CacheKey(requester, query)
	if err != nil {
		c.logger.Warn("Candidate cache: failed to build key, bypassing cache",
			"requester", requester.String(),
			"error", err.Error())
		return c.next.Find(ctx, requester, query)
	}

	if cached, ok := c.cache.Get(key); ok {
		metrics.CandidateCacheHits.Inc()
		return slices.Clone(cached), nil
	}
	metrics.CandidateCacheMisses.Inc()

	result, err := c.next.Find(ctx, requester, query)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, slices.Clone(result))
	return result, nil
}

// Len reports the number of live entries.
func (c *CachedCandidates) Len() int {
	return c.cache.Len()
}

type cacheKey struct {
	Requester     string   `json:"requester"`
	Sort          string   `json:"sort"`
	Gender        string   `json:"gender,omitempty"`
	FirstName     string   `json:"first_name,omitempty"`
	LastName      string   `json:"last_name,omitempty"`
	CreatedAt     string   `json:"created_at,omitempty"`
	MaxDistanceKm *float64 `json:"max_distance_km,omitempty"`
}

// CacheKey serializes the requester identity, the sort order and the filters into a
// canonical string. Logically equal queries produce equal keys: the sort order defaults
// to asc, names are lowercased (matching is case-insensitive) and timestamps are rendered in UTC.
func CacheKey(requester model.Requester, query model.CandidateQuery) (string, error) {
	sort := query.Sort
	if sort == "" {
		sort = model.SortAsc
	}

	key := cacheKey{
		Requester:     requester.String(),
		Sort:          string(sort),
		Gender:        string(query.Gender),
		FirstName:     strings.ToLower(query.FirstName),
		LastName:      strings.ToLower(query.LastName),
		MaxDistanceKm: query.MaxDistanceKm,
	}
	if query.CreatedAt != nil {
		key.CreatedAt = query.CreatedAt.UTC().Format(time.RFC3339Nano)
	}

	b, err := json.Marshal(key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
