package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/utafrali/shopmobile/internal/backend"
	"github.com/utafrali/shopmobile/internal/domain"
)

const categoryCacheKey = "categories"

// CatalogService owns the current filter criteria and the product collection
// they last matched. Catalog and category fetch failures degrade silently:
// the previous collection stays in place and the error is only logged.
type CatalogService struct {
	backend *backend.Client
	logger  *slog.Logger
	cache   *gocache.Cache

	mu       sync.Mutex
	criteria domain.FilterCriteria
	products []domain.Product
	querySeq uint64
}

// NewCatalogService creates a new catalog service. Category listings are
// cached for categoryTTL since they change far less often than products.
func NewCatalogService(client *backend.Client, logger *slog.Logger, categoryTTL time.Duration) *CatalogService {
	return &CatalogService{
		backend:  client,
		logger:   logger,
		cache:    gocache.New(categoryTTL, 2*categoryTTL),
		products: []domain.Product{},
	}
}

// Search stores the given criteria, issues exactly one catalog request for
// their canonical query, and on success replaces the product collection.
// On failure the previous collection is left unchanged. A response that has
// been superseded by a newer query before it resolved is discarded, so stale
// results can never overwrite fresher ones. The current collection is
// returned either way.
func (s *CatalogService) Search(ctx context.Context, criteria domain.FilterCriteria) []domain.Product {
	s.mu.Lock()
	s.criteria = criteria
	s.querySeq++
	seq := s.querySeq
	s.mu.Unlock()

	products, err := s.backend.SearchProducts(ctx, criteria)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.WarnContext(ctx, "catalog query failed, keeping previous products",
			slog.String("query", criteria.Encode()),
			slog.String("error", err.Error()),
		)
		return s.productsLocked()
	}

	if seq != s.querySeq {
		s.logger.DebugContext(ctx, "discarding stale catalog response",
			slog.Uint64("seq", seq),
			slog.Uint64("latest", s.querySeq),
		)
		return s.productsLocked()
	}

	s.products = products
	return s.productsLocked()
}

// Products returns the product collection from the most recent successful
// query.
func (s *CatalogService) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productsLocked()
}

// Criteria returns the most recently applied filter criteria.
func (s *CatalogService) Criteria() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Categories returns the catalog categories, served from the TTL cache when
// fresh. A fetch failure falls back to an empty list and is only logged.
func (s *CatalogService) Categories(ctx context.Context) []domain.Category {
	if cached, ok := s.cache.Get(categoryCacheKey); ok {
		return cached.([]domain.Category)
	}

	categories, err := s.backend.ListCategories(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "category listing failed",
			slog.String("error", err.Error()),
		)
		return []domain.Category{}
	}

	s.cache.SetDefault(categoryCacheKey, categories)
	return categories
}

func (s *CatalogService) productsLocked() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}
