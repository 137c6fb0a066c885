package services

import (
	"context"
	"errors"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	"github.com/hanko-field/frontend-metadata/internal/repositories"
)

type productIDProvider struct {
	catalog repositories.CatalogRepository
}

var _ ProductIDProvider = (*productIDProvider)(nil)

// NewProductIDProvider resolves catalog identifiers, expanding configurable products with their
// first available variant.
func NewProductIDProvider(catalog repositories.CatalogRepository) (ProductIDProvider, error) {
	if catalog == nil {
		return nil, errors.New("product id provider: catalog repository is required")
	}
	return &productIDProvider{catalog: catalog}, nil
}

func (p *productIDProvider) ItemID(ctx context.Context, product domain.Product) string {
	if product.Type != domain.ProductTypeConfigurable {
		return product.ID
	}
	childID := p.firstAvailableChildID(ctx, product)
	if childID == "" {
		return product.ID
	}
	return product.ID + "-" + childID
}

func (p *productIDProvider) ItemGroupID(product domain.Product) string {
	if product.Type == domain.ProductTypeConfigurable {
		return product.ID
	}
	return ""
}

func (p *productIDProvider) firstAvailableChildID(ctx context.Context, product domain.Product) string {
	if len(product.ChildIDs) == 0 {
		return ""
	}
	children, err := p.catalog.ListProducts(ctx, product.ChildIDs)
	if err != nil {
		logLookupFailure(ctx, "productIDProvider.ItemID", lookupError("catalog.ListProducts", err))
		return ""
	}
	for _, child := range children {
		if child.Available {
			return child.ID
		}
	}
	return ""
}
