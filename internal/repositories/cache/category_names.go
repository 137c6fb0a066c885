package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hanko-field/frontend-metadata/internal/repositories"
)

// CategoryNameCatalog decorates a catalog repository with a read-through cache of category names.
// Product and category snapshots always go to the underlying repository.
type CategoryNameCatalog struct {
	repositories.CatalogRepository
	names *expirable.LRU[string, string]
}

// NewCategoryNameCatalog wraps next. A non-positive size returns next unchanged.
func NewCategoryNameCatalog(next repositories.CatalogRepository, size int, ttl time.Duration) (repositories.CatalogRepository, error) {
	if next == nil {
		return nil, errors.New("category name cache requires catalog repository")
	}
	if size <= 0 {
		return next, nil
	}
	return &CategoryNameCatalog{
		CatalogRepository: next,
		names:             expirable.NewLRU[string, string](size, nil, ttl),
	}, nil
}

// CategoryNames serves cached names and fetches the remainder in one batch.
func (c *CategoryNameCatalog) CategoryNames(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	var missing []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if name, ok := c.names.Get(id); ok {
			out[id] = name
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := c.CatalogRepository.CategoryNames(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, name := range fetched {
		c.names.Add(id, name)
		out[id] = name
	}
	return out, nil
}

// Len reports the number of cached names.
func (c *CategoryNameCatalog) Len() int {
	return c.names.Len()
}
