package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hanko-field/frontend-metadata/internal/platform/config"
	"github.com/hanko-field/frontend-metadata/internal/repositories"
	"github.com/hanko-field/frontend-metadata/internal/services"
)

// Section names registered with the page metadata service.
const (
	SectionPageType = "pageType"
	SectionQuick    = "quick"
	SectionProduct  = "pdp"
	SectionCategory = "category"
	SectionCart     = "cart"
)

// Services bundles the service-layer contracts that handlers rely upon.
type Services struct {
	PageMeta services.PageMetaService
	Resolver services.PageContextResolver
}

// Container wires repositories and services for runtime use.
type Container struct {
	Config       config.Config
	Layout       config.Layout
	Repositories repositories.Registry
	Services     Services
}

// Options carries optional collaborators for NewContainer.
type Options struct {
	// Conditions gate metadata output. Nil uses the store metadata flag.
	Conditions []services.IsEnabledCondition
	Clock      func() time.Time
}

// NewContainer constructs the runtime dependencies. Configuration errors in the layout are fatal.
func NewContainer(_ context.Context, cfg config.Config, layout config.Layout, reg repositories.Registry, opts Options) (*Container, error) {
	if reg == nil {
		return nil, errors.New("repositories registry is required")
	}

	svc, err := buildServices(reg, cfg, layout, opts)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:       cfg,
		Layout:       layout,
		Repositories: reg,
		Services:     svc,
	}, nil
}

// Close releases repository clients.
func (c *Container) Close(ctx context.Context) error {
	if c == nil || c.Repositories == nil {
		return nil
	}
	return c.Repositories.Close(ctx)
}

func buildServices(reg repositories.Registry, cfg config.Config, layout config.Layout, opts Options) (Services, error) {
	var svc Services

	rules, err := services.ParsePageTypeRules(layout.PageTypes)
	if err != nil {
		return svc, err
	}
	pageTypes, err := services.NewPageTypeMetaProvider(rules)
	if err != nil {
		return svc, err
	}

	productIDs, err := services.NewProductIDProvider(reg.Catalog())
	if err != nil {
		return svc, err
	}
	prices, err := services.NewProductPriceProvider(services.ProductPriceProviderDeps{
		Catalog: reg.Catalog(),
		Clock:   opts.Clock,
	})
	if err != nil {
		return svc, err
	}
	product, err := services.NewProductMetaProvider(services.ProductMetaProviderDeps{IDs: productIDs, Prices: prices})
	if err != nil {
		return svc, err
	}

	paths, err := services.NewCategoryPathProvider(reg.Catalog())
	if err != nil {
		return svc, err
	}
	category, err := services.NewCategoryMetaProvider(paths)
	if err != nil {
		return svc, err
	}

	cart, err := services.NewCartMetaProvider(services.CartMetaProviderDeps{
		Sessions:       reg.Sessions(),
		Quotes:         reg.Quotes(),
		OutputOnRoutes: layout.Cart.OutputOnRoutes,
	})
	if err != nil {
		return svc, err
	}

	providers := map[string]services.MetaProvider{
		SectionPageType: pageTypes,
		SectionQuick:    cart.WithoutRouteGate(),
		SectionProduct:  product,
		SectionCategory: category,
		SectionCart:     cart,
	}
	if err := validateLayoutSections(layout, providers); err != nil {
		return svc, err
	}

	conditions := opts.Conditions
	if conditions == nil {
		conditions = []services.IsEnabledCondition{services.MetadataEnabledCondition{}}
	}

	pageMeta, err := services.NewPageMetaService(services.PageMetaServiceDeps{
		Providers:  providers,
		Conditions: conditions,
		Layout:     layout,
		Production: cfg.App.IsProduction(),
		Clock:      opts.Clock,
	})
	if err != nil {
		return svc, err
	}
	svc.PageMeta = pageMeta

	resolver, err := services.NewPageContextResolver(services.PageContextResolverDeps{
		Stores:  reg.Stores(),
		Catalog: reg.Catalog(),
	})
	if err != nil {
		return svc, err
	}
	svc.Resolver = resolver

	return svc, nil
}

func validateLayoutSections(layout config.Layout, providers map[string]services.MetaProvider) error {
	for handle, sections := range layout.Sections {
		for _, name := range sections {
			if _, ok := providers[name]; !ok {
				return &services.Error{
					Kind: services.KindConfiguration,
					Op:   "di.validateLayoutSections",
					Err:  fmt.Errorf("layout handle %q references unknown section %q", handle, name),
				}
			}
		}
	}
	return nil
}
