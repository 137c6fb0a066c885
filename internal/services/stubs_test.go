package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
)

type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }
func (notFoundError) IsNotFound() bool { return true }
func (notFoundError) IsUnavailable() bool { return false }

type stubCatalog struct {
	products      map[string]domain.Product
	categories    map[string]domain.Category
	listErr       error
	namesErr      error
	findErr       error
	listCalls     [][]string
	categoryCalls [][]string
}

func (s *stubCatalog) FindProduct(_ context.Context, id string) (domain.Product, error) {
	if s.findErr != nil {
		return domain.Product{}, s.findErr
	}
	product, ok := s.products[id]
	if !ok {
		return domain.Product{}, notFoundError{}
	}
	return product, nil
}

func (s *stubCatalog) ListProducts(_ context.Context, ids []string) ([]domain.Product, error) {
	s.listCalls = append(s.listCalls, ids)
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.Product
	for _, id := range ids {
		if product, ok := s.products[id]; ok {
			out = append(out, product)
		}
	}
	return out, nil
}

func (s *stubCatalog) FindCategory(_ context.Context, id string) (domain.Category, error) {
	if s.findErr != nil {
		return domain.Category{}, s.findErr
	}
	category, ok := s.categories[id]
	if !ok {
		return domain.Category{}, notFoundError{}
	}
	return category, nil
}

func (s *stubCatalog) CategoryNames(_ context.Context, ids []string) (map[string]string, error) {
	s.categoryCalls = append(s.categoryCalls, ids)
	if s.namesErr != nil {
		return nil, s.namesErr
	}
	out := make(map[string]string)
	for _, id := range ids {
		if category, ok := s.categories[id]; ok {
			out[id] = category.Name
		}
	}
	return out, nil
}

type stubSessions struct {
	quotes map[string]string
	err    error
}

func (s *stubSessions) QuoteID(_ context.Context, sessionID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.quotes[sessionID], nil
}

type stubQuotes struct {
	quotes map[string]domain.Quote
	err    error
}

func (s *stubQuotes) FindQuote(_ context.Context, id string) (domain.Quote, error) {
	if s.err != nil {
		return domain.Quote{}, s.err
	}
	quote, ok := s.quotes[id]
	if !ok {
		return domain.Quote{}, notFoundError{}
	}
	return quote, nil
}

type stubStores struct {
	stores map[string]domain.Store
	err    error
}

func (s *stubStores) FindStore(_ context.Context, code string) (domain.Store, error) {
	if s.err != nil {
		return domain.Store{}, s.err
	}
	store, ok := s.stores[code]
	if !ok {
		return domain.Store{}, notFoundError{}
	}
	return store, nil
}

type staticProvider struct {
	data  any
	calls int
}

func (p *staticProvider) Get(context.Context, PageContext) any {
	p.calls++
	return p.data
}

type staticLayout map[string][]string

func (l staticLayout) SectionsFor(handle string) []string {
	return append(append([]string(nil), l["default"]...), l[handle]...)
}

func observedContext(t *testing.T) (context.Context, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return observability.WithLogger(context.Background(), zap.New(core)), logs
}

func testStore() domain.Store {
	return domain.Store{
		Code:              "default",
		BaseURL:           "https://shop.example.com/",
		CurrencyCode:      "USD",
		CategoryURLSuffix: ".html",
		ProductURLSuffix:  ".html",
		Config:            map[string]string{MetadataEnabledConfigPath: "1"},
	}
}

func ptr[T any](v T) *T { return &v }

var errBackend = errors.New("backend unavailable")
