package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

func categoryCatalog() *stubCatalog {
	return &stubCatalog{categories: map[string]domain.Category{
		"1": {ID: "1", Name: "Root Catalog"},
		"2": {ID: "2", Name: "Default Category"},
		"3": {ID: "3", Name: "Women"},
		"4": {ID: "4", Name: "Tops"},
		"5": {ID: "5", Name: "Jackets"},
	}}
}

func TestCategoryPathProvider(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		want     string
	}{
		{name: "deep", category: domain.Category{ID: "5", Name: "Jackets", PathIDs: []string{"1", "2", "3", "4", "5"}}, want: "Women/Tops/Jackets"},
		{name: "single level uses own name", category: domain.Category{ID: "3", Name: "Ladies", PathIDs: []string{"1", "2", "3"}}, want: "Ladies"},
		{name: "store root", category: domain.Category{ID: "2", Name: "Default Category", PathIDs: []string{"1", "2"}}, want: ""},
		{name: "missing names stay empty", category: domain.Category{ID: "9", Name: "X", PathIDs: []string{"1", "2", "3", "9"}}, want: "Women/"},
	}
	paths, err := NewCategoryPathProvider(categoryCatalog())
	require.NoError(t, err)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, paths.Path(context.Background(), tc.category))
		})
	}
}

func TestCategoryPathProviderSingleLevelSkipsLookup(t *testing.T) {
	catalog := categoryCatalog()
	paths, err := NewCategoryPathProvider(catalog)
	require.NoError(t, err)

	paths.Path(context.Background(), domain.Category{ID: "3", Name: "Women", PathIDs: []string{"1", "2", "3"}})
	assert.Empty(t, catalog.categoryCalls)
}

func TestCategoryPathProviderLookupFailure(t *testing.T) {
	ctx, logs := observedContext(t)
	paths, err := NewCategoryPathProvider(&stubCatalog{namesErr: errBackend})
	require.NoError(t, err)

	got := paths.Path(ctx, domain.Category{ID: "5", PathIDs: []string{"1", "2", "3", "4", "5"}})
	assert.Equal(t, "", got)
	entries := logs.FilterMessage("metadata lookup failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "categoryPathProvider.Path", entries[0].ContextMap()["method"])
}

func TestCategoryMetaProvider(t *testing.T) {
	paths, err := NewCategoryPathProvider(categoryCatalog())
	require.NoError(t, err)
	provider, err := NewCategoryMetaProvider(paths)
	require.NoError(t, err)

	page := PageContext{
		Store: testStore(),
		Category: &domain.Category{
			ID: "4", Name: "Tops", URLKey: "tops", URLPath: "women/tops",
			PathIDs: []string{"1", "2", "3", "4"},
		},
	}
	encoded, err := json.Marshal(provider.Get(context.Background(), page))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"categoryUrl":"https://shop.example.com/tops.html",
		"categoryAbsolutePath":"women/tops",
		"categoryPath":"Women/Tops",
		"categoryName":"Tops"
	}`, string(encoded))
}

func TestCategoryMetaProviderWithoutCategory(t *testing.T) {
	paths, err := NewCategoryPathProvider(categoryCatalog())
	require.NoError(t, err)
	provider, err := NewCategoryMetaProvider(paths)
	require.NoError(t, err)

	assert.True(t, IsEmptySection(provider.Get(context.Background(), PageContext{Store: testStore()})))
}
