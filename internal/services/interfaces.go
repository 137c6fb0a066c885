package services

import (
	"context"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

// PageContext is the request-scoped state every metadata provider reads from. Product and
// Category are nil when the rendered page has no current product or category.
type PageContext struct {
	Store     domain.Store
	Route     domain.Route
	Product   *domain.Product
	Category  *domain.Category
	SessionID string
}

// PageRequest identifies the storefront page being rendered.
type PageRequest struct {
	StoreCode  string
	Route      string
	ProductID  string
	CategoryID string
	SessionID  string
}

// MetaProvider produces one named section of the page metadata payload. Providers never fail:
// lookup problems are logged and an empty section is returned.
type MetaProvider interface {
	Get(ctx context.Context, page PageContext) any
}

// ProductIDProvider resolves catalog identifiers for the product page.
type ProductIDProvider interface {
	ItemID(ctx context.Context, product domain.Product) string
	ItemGroupID(product domain.Product) string
}

// ProductPriceProvider resolves the price shown for a product.
type ProductPriceProvider interface {
	Price(ctx context.Context, product domain.Product) float64
}

// CartItemIDProvider resolves identifiers for quote lines.
type CartItemIDProvider interface {
	ItemID(quote domain.Quote, item domain.QuoteItem) (string, error)
	ItemGroupID(item domain.QuoteItem) string
}

// CategoryPathProvider builds the breadcrumb path of a category.
type CategoryPathProvider interface {
	Path(ctx context.Context, category domain.Category) string
}

// IsEnabledCondition decides whether metadata is rendered for a store. Returning ErrOutputDisabled
// abstains from the decision.
type IsEnabledCondition interface {
	Execute(ctx context.Context, store domain.Store) (bool, error)
}

// SectionLayout lists the sections rendered for a route handle.
type SectionLayout interface {
	SectionsFor(handle string) []string
}

// PageMetaService gates and assembles the page metadata payload.
type PageMetaService interface {
	IsEnabled(ctx context.Context, page PageContext) (bool, error)
	Meta(ctx context.Context, page PageContext) Payload
	Section(ctx context.Context, name string, page PageContext) (any, bool)
}

// PageContextResolver loads the PageContext for a request.
type PageContextResolver interface {
	Resolve(ctx context.Context, req PageRequest) (PageContext, error)
}
