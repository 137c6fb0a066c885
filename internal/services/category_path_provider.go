package services

import (
	"context"
	"errors"
	"strings"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	"github.com/hanko-field/frontend-metadata/internal/repositories"
)

// CategoryPathSeparator joins category names in the breadcrumb path.
const CategoryPathSeparator = "/"

// rootLevels is the number of leading path ids skipped: the tree root and the store root.
const rootLevels = 2

type categoryPathProvider struct {
	catalog repositories.CatalogRepository
}

var _ CategoryPathProvider = (*categoryPathProvider)(nil)

// NewCategoryPathProvider builds breadcrumb paths such as "Women/Tops/Jackets".
func NewCategoryPathProvider(catalog repositories.CatalogRepository) (CategoryPathProvider, error) {
	if catalog == nil {
		return nil, errors.New("category path provider: catalog repository is required")
	}
	return &categoryPathProvider{catalog: catalog}, nil
}

func (p *categoryPathProvider) Path(ctx context.Context, category domain.Category) string {
	ids := category.PathIDs
	if len(ids) <= rootLevels {
		return ""
	}
	ids = ids[rootLevels:]
	if len(ids) == 1 {
		return category.Name
	}

	names, err := p.catalog.CategoryNames(ctx, ids)
	if err != nil {
		logLookupFailure(ctx, "categoryPathProvider.Path", lookupError("catalog.CategoryNames", err))
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, names[id])
	}
	return strings.Join(parts, CategoryPathSeparator)
}
