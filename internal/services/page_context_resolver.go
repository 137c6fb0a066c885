package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
	"github.com/hanko-field/frontend-metadata/internal/repositories"
)

// ErrStoreNotFound is returned when the requested store does not exist.
var ErrStoreNotFound = errors.New("page context: store not found")

// PageContextResolverDeps bundles collaborators for the resolver.
type PageContextResolverDeps struct {
	Stores  repositories.StoreRepository
	Catalog repositories.CatalogRepository
}

type pageContextResolver struct {
	stores  repositories.StoreRepository
	catalog repositories.CatalogRepository
}

var _ PageContextResolver = (*pageContextResolver)(nil)

// NewPageContextResolver constructs a resolver backed by the store and catalog repositories.
func NewPageContextResolver(deps PageContextResolverDeps) (PageContextResolver, error) {
	if deps.Stores == nil {
		return nil, errors.New("page context resolver: store repository is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("page context resolver: catalog repository is required")
	}
	return &pageContextResolver{stores: deps.Stores, catalog: deps.Catalog}, nil
}

// Resolve loads the store, current product and current category. Only the store is required:
// a product or category that cannot be loaded leaves the corresponding field nil.
func (r *pageContextResolver) Resolve(ctx context.Context, req PageRequest) (PageContext, error) {
	storeCode := strings.TrimSpace(req.StoreCode)
	if storeCode == "" {
		return PageContext{}, ErrStoreNotFound
	}
	store, err := r.stores.FindStore(ctx, storeCode)
	if err != nil {
		if repositories.IsNotFound(err) {
			return PageContext{}, ErrStoreNotFound
		}
		return PageContext{}, err
	}

	page := PageContext{
		Store:     store,
		Route:     domain.ParseRoute(req.Route),
		SessionID: strings.TrimSpace(req.SessionID),
	}

	if id := strings.TrimSpace(req.ProductID); id != "" {
		product, err := r.catalog.FindProduct(ctx, id)
		switch {
		case err == nil:
			page.Product = &product
		case repositories.IsNotFound(err):
			observability.FromContext(ctx).Debug("current product not found", zap.String("productId", id))
		default:
			logLookupFailure(ctx, "pageContextResolver.Resolve", lookupError("catalog.FindProduct", err))
		}
	}

	if id := strings.TrimSpace(req.CategoryID); id != "" {
		category, err := r.catalog.FindCategory(ctx, id)
		switch {
		case err == nil:
			page.Category = &category
		case repositories.IsNotFound(err):
			observability.FromContext(ctx).Debug("current category not found", zap.String("categoryId", id))
		default:
			logLookupFailure(ctx, "pageContextResolver.Resolve", lookupError("catalog.FindCategory", err))
		}
	}

	return page, nil
}
