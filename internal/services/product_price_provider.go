package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
	"github.com/hanko-field/frontend-metadata/internal/repositories"
)

// ProductPriceProviderDeps bundles collaborators for the price provider.
type ProductPriceProviderDeps struct {
	Catalog repositories.CatalogRepository
	Clock   func() time.Time
}

type productPriceProvider struct {
	catalog repositories.CatalogRepository
	clock   func() time.Time
}

var _ ProductPriceProvider = (*productPriceProvider)(nil)

// NewProductPriceProvider resolves display prices. Grouped products show the lowest price of
// their available associated products.
func NewProductPriceProvider(deps ProductPriceProviderDeps) (ProductPriceProvider, error) {
	if deps.Catalog == nil {
		return nil, errors.New("product price provider: catalog repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &productPriceProvider{
		catalog: deps.Catalog,
		clock: func() time.Time {
			return clock().UTC()
		},
	}, nil
}

func (p *productPriceProvider) Price(ctx context.Context, product domain.Product) float64 {
	now := p.clock()
	if product.Type != domain.ProductTypeGrouped {
		return product.FinalPrice(now)
	}
	if price, ok := p.minimumChildPrice(ctx, product, now); ok {
		return price
	}
	return product.FinalPrice(now)
}

func (p *productPriceProvider) minimumChildPrice(ctx context.Context, product domain.Product, now time.Time) (float64, bool) {
	if len(product.ChildIDs) == 0 {
		return 0, false
	}
	children, err := p.catalog.ListProducts(ctx, product.ChildIDs)
	if err != nil {
		observability.FromContext(ctx).Warn("grouped price lookup failed, using own price",
			zap.String("method", "productPriceProvider.Price"),
			zap.String("productId", product.ID),
			zap.Error(err),
		)
		return 0, false
	}

	var (
		lowest float64
		found  bool
	)
	for _, child := range children {
		if !child.Available {
			continue
		}
		price := child.FinalPrice(now)
		if !found || price < lowest {
			lowest = price
			found = true
		}
	}
	return lowest, found
}
