package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

func groupedLine(buyRequest string) domain.QuoteItem {
	item := domain.QuoteItem{ID: "1", ProductID: "301", ProductType: domain.ProductTypeGrouped}
	if buyRequest != "" {
		item.Options = []domain.QuoteItemOption{{Code: "info_buyRequest", Value: buyRequest}}
	}
	return item
}

func TestCartItemIDProviderGrouped(t *testing.T) {
	tests := []struct {
		name       string
		buyRequest string
		want       string
	}{
		{name: "string id", buyRequest: `{"super_product_config":{"product_id":"300"}}`, want: "300"},
		{name: "numeric id", buyRequest: `{"super_product_config":{"product_id":300}}`, want: "300"},
		{name: "missing config", buyRequest: `{"qty":1}`, want: ""},
		{name: "missing product id", buyRequest: `{"super_product_config":{"product_type":"grouped"}}`, want: ""},
		{name: "null product id", buyRequest: `{"super_product_config":{"product_id":null}}`, want: ""},
		{name: "no option", buyRequest: "", want: ""},
	}
	ids := NewCartItemIDProvider()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := groupedLine(tc.buyRequest)
			got, err := ids.ItemID(domain.Quote{Items: []domain.QuoteItem{item}}, item)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "", ids.ItemGroupID(item))
		})
	}
}

func TestCartItemIDProviderGroupedInvalidBuyRequest(t *testing.T) {
	ids := NewCartItemIDProvider()
	for _, raw := range []string{`not-json`, `{"super_product_config":{"product_id":true}}`} {
		item := groupedLine(raw)
		_, err := ids.ItemID(domain.Quote{}, item)
		require.Error(t, err, raw)
		assert.Equal(t, KindLookup, KindOf(err))
	}
}

func TestCartItemIDProviderConfigurableUsesFirstChildWithoutAvailabilityCheck(t *testing.T) {
	quote := domain.Quote{Items: []domain.QuoteItem{
		{ID: "1", ProductID: "200", ProductType: domain.ProductTypeConfigurable},
		{ID: "2", ParentItemID: "1", ProductID: "205"},
		{ID: "3", ParentItemID: "1", ProductID: "206"},
	}}
	ids := NewCartItemIDProvider()

	got, err := ids.ItemID(quote, quote.Items[0])
	require.NoError(t, err)
	assert.Equal(t, "200-205", got)
	assert.Equal(t, "200", ids.ItemGroupID(quote.Items[0]))
}

func TestCartItemIDProviderConfigurableWithoutChild(t *testing.T) {
	item := domain.QuoteItem{ID: "1", ProductID: "200", ProductType: domain.ProductTypeConfigurable}
	_, err := NewCartItemIDProvider().ItemID(domain.Quote{Items: []domain.QuoteItem{item}}, item)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLookup)
}

func TestCartItemIDProviderDefault(t *testing.T) {
	item := domain.QuoteItem{ID: "1", ProductID: "42", ProductType: domain.ProductTypeBundle}
	got, err := NewCartItemIDProvider().ItemID(domain.Quote{}, item)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}
