package services

import (
	"context"
	"errors"
)

// ProductMeta describes the product shown on a product page.
type ProductMeta struct {
	ItemID        string `json:"itemId"`
	ItemGroupID   string `json:"itemGroupId"`
	ItemName      string `json:"itemName"`
	ItemURL       string `json:"itemUrl"`
	ItemSalePrice string `json:"itemSalePrice"`
	ItemCurrency  string `json:"itemCurrency"`
}

// ProductSection is the "pdp" section payload.
type ProductSection struct {
	Products []ProductMeta `json:"products"`
}

// ProductMetaProviderDeps bundles collaborators for the product section.
type ProductMetaProviderDeps struct {
	IDs    ProductIDProvider
	Prices ProductPriceProvider
}

// ProductMetaProvider renders the current product.
type ProductMetaProvider struct {
	ids    ProductIDProvider
	prices ProductPriceProvider
}

var _ MetaProvider = (*ProductMetaProvider)(nil)

// NewProductMetaProvider constructs the product section provider.
func NewProductMetaProvider(deps ProductMetaProviderDeps) (*ProductMetaProvider, error) {
	if deps.IDs == nil {
		return nil, errors.New("product meta provider: id provider is required")
	}
	if deps.Prices == nil {
		return nil, errors.New("product meta provider: price provider is required")
	}
	return &ProductMetaProvider{ids: deps.IDs, prices: deps.Prices}, nil
}

// Get returns the product section, or an empty section when the page has no product.
func (p *ProductMetaProvider) Get(ctx context.Context, page PageContext) any {
	if page.Product == nil {
		return EmptySection
	}
	product := *page.Product
	return ProductSection{
		Products: []ProductMeta{{
			ItemID:        p.ids.ItemID(ctx, product),
			ItemGroupID:   p.ids.ItemGroupID(product),
			ItemName:      product.Name,
			ItemURL:       ProductURL(page.Store, product.ID, product.URLKey),
			ItemSalePrice: FormatPrice(p.prices.Price(ctx, product)),
			ItemCurrency:  page.Store.CurrencyCode,
		}},
	}
}
