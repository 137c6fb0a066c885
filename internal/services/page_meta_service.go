package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
)

// PageMetaServiceDeps bundles collaborators required to construct the page metadata service.
type PageMetaServiceDeps struct {
	// Providers maps section names to their providers.
	Providers  map[string]MetaProvider
	Conditions []IsEnabledCondition
	Layout     SectionLayout
	// Production logs configuration errors raised while gating instead of returning them.
	Production bool
	Clock      func() time.Time
}

type pageMetaService struct {
	providers  map[string]MetaProvider
	conditions []IsEnabledCondition
	layout     SectionLayout
	production bool
	clock      func() time.Time
}

var _ PageMetaService = (*pageMetaService)(nil)

// NewPageMetaService validates the conditions and provider registry.
func NewPageMetaService(deps PageMetaServiceDeps) (PageMetaService, error) {
	if deps.Layout == nil {
		return nil, errors.New("page meta service: section layout is required")
	}
	if err := ValidateConditions(deps.Conditions); err != nil {
		return nil, err
	}
	providers := make(map[string]MetaProvider, len(deps.Providers))
	for name, provider := range deps.Providers {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, configurationError("NewPageMetaService", "provider registered without a section name")
		}
		if provider == nil {
			return nil, configurationError("NewPageMetaService", "provider for section %q is nil", name)
		}
		providers[name] = provider
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &pageMetaService{
		providers:  providers,
		conditions: append([]IsEnabledCondition(nil), deps.Conditions...),
		layout:     deps.Layout,
		production: deps.Production,
		clock:      clock,
	}, nil
}

// IsEnabled evaluates the conditions for the page's store.
func (s *pageMetaService) IsEnabled(ctx context.Context, page PageContext) (bool, error) {
	ok, err := ExecuteAnd(ctx, page.Store, s.conditions)
	if err == nil {
		return ok, nil
	}
	if KindOf(err) == KindConfiguration {
		if !s.production {
			return false, err
		}
		observability.FromContext(ctx).Error("metadata gate misconfigured",
			zap.String("method", "pageMetaService.IsEnabled"),
			zap.Error(err),
		)
		return false, nil
	}
	logLookupFailure(ctx, "pageMetaService.IsEnabled", lookupError("ExecuteAnd", err))
	return false, nil
}

// Meta assembles the sections configured for the page's route.
func (s *pageMetaService) Meta(ctx context.Context, page PageContext) Payload {
	payload := Payload{Platform: Platform}
	for _, name := range s.layout.SectionsFor(page.Route.Handle()) {
		provider, ok := s.providers[name]
		if !ok {
			observability.FromContext(ctx).Warn("no provider registered for section",
				zap.String("section", name),
				zap.String("route", page.Route.Handle()),
			)
			continue
		}
		payload.Sections = append(payload.Sections, Section{
			Name: name,
			Data: s.run(ctx, name, provider, page),
		})
	}
	return payload
}

// Section renders a single registered section regardless of the route layout.
func (s *pageMetaService) Section(ctx context.Context, name string, page PageContext) (any, bool) {
	provider, ok := s.providers[name]
	if !ok {
		return nil, false
	}
	return s.run(ctx, name, provider, page), true
}

func (s *pageMetaService) run(ctx context.Context, name string, provider MetaProvider, page PageContext) any {
	ctx, span := observability.StartSpan(ctx, fmt.Sprintf("pagemeta.section.%s", name),
		attribute.String("pagemeta.section", name),
		attribute.String("pagemeta.route", page.Route.Handle()),
	)
	defer span.End()

	start := s.clock()
	data := provider.Get(ctx, page)
	elapsed := s.clock().Sub(start)
	observability.RecordSectionDuration(ctx, name, float64(elapsed.Microseconds())/1000)
	span.SetAttributes(attribute.Bool("pagemeta.empty", IsEmptySection(data)))
	return data
}
