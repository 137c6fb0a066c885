package repositories

import (
	"context"
	"errors"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

// Registry exposes typed repository accessors and lifecycle hooks for dependency injection.
type Registry interface {
	Close(ctx context.Context) error

	Catalog() CatalogRepository
	Quotes() QuoteRepository
	Stores() StoreRepository
	Sessions() SessionStore
	Health() HealthRepository
}

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsUnavailable() bool
}

// IsNotFound reports whether err is a repository error flagged as not found.
func IsNotFound(err error) bool {
	var repoErr RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsNotFound()
}

// CatalogRepository reads product and category snapshots.
type CatalogRepository interface {
	FindProduct(ctx context.Context, productID string) (domain.Product, error)
	// ListProducts returns the products in the order of ids, skipping ids that do not exist.
	ListProducts(ctx context.Context, ids []string) ([]domain.Product, error)
	FindCategory(ctx context.Context, categoryID string) (domain.Category, error)
	// CategoryNames resolves category names by id. Unknown ids are absent from the result.
	CategoryNames(ctx context.Context, ids []string) (map[string]string, error)
}

// QuoteRepository reads quotes.
type QuoteRepository interface {
	FindQuote(ctx context.Context, quoteID string) (domain.Quote, error)
}

// StoreRepository reads store-view settings.
type StoreRepository interface {
	FindStore(ctx context.Context, storeCode string) (domain.Store, error)
}

// SessionStore maps storefront session ids to the active quote id. An empty id with a nil error
// means the session has no quote yet.
type SessionStore interface {
	QuoteID(ctx context.Context, sessionID string) (string, error)
}

// HealthRepository reports backend readiness.
type HealthRepository interface {
	Check(ctx context.Context) error
}
