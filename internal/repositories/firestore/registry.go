package firestore

import (
	"context"
	"errors"
	"time"

	pfirestore "github.com/hanko-field/frontend-metadata/internal/platform/firestore"
	"github.com/hanko-field/frontend-metadata/internal/repositories"
	"github.com/hanko-field/frontend-metadata/internal/repositories/cache"
)

// RegistryOptions configures the Firestore-backed registry.
type RegistryOptions struct {
	Sessions          repositories.SessionStore
	CategoryCacheSize int
	CategoryCacheTTL  time.Duration
	// OnClose releases resources owned outside Firestore, such as the session client.
	OnClose func() error
}

// Registry exposes Firestore repositories alongside the session store.
type Registry struct {
	provider *pfirestore.Provider
	catalog  repositories.CatalogRepository
	quotes   repositories.QuoteRepository
	stores   repositories.StoreRepository
	health   repositories.HealthRepository
	sessions repositories.SessionStore
	onClose  func() error
}

var _ repositories.Registry = (*Registry)(nil)

// NewRegistry wires the repositories against provider.
func NewRegistry(provider *pfirestore.Provider, opts RegistryOptions) (*Registry, error) {
	if provider == nil {
		return nil, errors.New("registry requires firestore provider")
	}
	if opts.Sessions == nil {
		return nil, errors.New("registry requires session store")
	}

	catalogRepo, err := NewCatalogRepository(provider)
	if err != nil {
		return nil, err
	}
	catalog, err := cache.NewCategoryNameCatalog(catalogRepo, opts.CategoryCacheSize, opts.CategoryCacheTTL)
	if err != nil {
		return nil, err
	}
	quotes, err := NewQuoteRepository(provider)
	if err != nil {
		return nil, err
	}
	stores, err := NewStoreRepository(provider)
	if err != nil {
		return nil, err
	}
	health, err := NewHealthRepository(provider)
	if err != nil {
		return nil, err
	}

	return &Registry{
		provider: provider,
		catalog:  catalog,
		quotes:   quotes,
		stores:   stores,
		health:   health,
		sessions: opts.Sessions,
		onClose:  opts.OnClose,
	}, nil
}

// Close releases the Firestore client and any externally owned resources.
func (r *Registry) Close(context.Context) error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.onClose != nil {
		errs = append(errs, r.onClose())
	}
	if r.provider != nil {
		errs = append(errs, r.provider.Close())
	}
	return errors.Join(errs...)
}

func (r *Registry) Catalog() repositories.CatalogRepository { return r.catalog }

func (r *Registry) Quotes() repositories.QuoteRepository { return r.quotes }

func (r *Registry) Stores() repositories.StoreRepository { return r.stores }

func (r *Registry) Sessions() repositories.SessionStore { return r.sessions }

func (r *Registry) Health() repositories.HealthRepository { return r.health }
