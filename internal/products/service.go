package products

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 5 * time.Minute

// Service handles catalog business logic with read-through caching
type Service struct {
	repo  *Repository
	cache *redis.Client
}

// NewService creates a new products service. The Redis client may be nil,
// in which case caching is disabled and every read hits Postgres.
func NewService(repo *Repository, cache *redis.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

// Create adds a product and invalidates the listing cache
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	p, err := s.repo.Create(ctx, req.Name, req.Description, req.Price, req.ImageURL)
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	return p, nil
}

// Get retrieves a product by ID with caching
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	key := fmt.Sprintf("product:%s", id)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var p Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			s.cache.Set(ctx, key, data, cacheTTL)
		}
	}

	return p, nil
}

// List retrieves a catalog page with caching
func (s *Service) List(ctx context.Context, page, pageSize int) (*PaginatedProductsResponse, error) {
	key := fmt.Sprintf("products:page:%d:size:%d", page, pageSize)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var resp PaginatedProductsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	items, totalCount, err := s.repo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	resp := &PaginatedProductsResponse{
		Products:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, key, data, cacheTTL)
		}
	}

	return resp, nil
}

// Update modifies a product and invalidates its caches
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*Product, error) {
	p, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.invalidateListings(ctx)

	return p, nil
}

// Delete removes a product and invalidates its caches
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.invalidateListings(ctx)

	return nil
}

func (s *Service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, fmt.Sprintf("product:%s", id)).Err(); err != nil {
		log.Printf("Warning: failed to invalidate product cache: %v", err)
	}
}

func (s *Service) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, "products:page:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("Warning: failed to invalidate listing cache: %v", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("Warning: listing cache scan failed: %v", err)
	}
}
