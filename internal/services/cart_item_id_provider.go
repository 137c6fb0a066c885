package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

const buyRequestOption = "info_buyRequest"

type cartItemIDProvider struct{}

var _ CartItemIDProvider = cartItemIDProvider{}

// NewCartItemIDProvider resolves quote line identifiers. Unlike the catalog provider, configurable
// lines use the variant already chosen in the cart without checking availability.
func NewCartItemIDProvider() CartItemIDProvider {
	return cartItemIDProvider{}
}

func (cartItemIDProvider) ItemID(quote domain.Quote, item domain.QuoteItem) (string, error) {
	switch item.ProductType {
	case domain.ProductTypeConfigurable:
		children := quote.Children(item)
		if len(children) == 0 {
			return "", lookupError("cartItemIDProvider.ItemID",
				fmt.Errorf("configurable line %s has no child line", item.ID))
		}
		return item.ProductID + "-" + children[0].ProductID, nil
	case domain.ProductTypeGrouped:
		return groupedProductID(item)
	default:
		return item.ProductID, nil
	}
}

func (cartItemIDProvider) ItemGroupID(item domain.QuoteItem) string {
	if item.ProductType == domain.ProductTypeConfigurable {
		return item.ProductID
	}
	return ""
}

type buyRequest struct {
	SuperProductConfig *struct {
		ProductID json.RawMessage `json:"product_id"`
	} `json:"super_product_config"`
}

// groupedProductID reads super_product_config.product_id from the serialised buy request.
// The id may be stored as a string or a number.
func groupedProductID(item domain.QuoteItem) (string, error) {
	opt, ok := item.OptionByCode(buyRequestOption)
	if !ok || strings.TrimSpace(opt.Value) == "" {
		return "", nil
	}

	var req buyRequest
	if err := json.Unmarshal([]byte(opt.Value), &req); err != nil {
		return "", lookupError("cartItemIDProvider.ItemID", fmt.Errorf("decode buy request: %w", err))
	}
	if req.SuperProductConfig == nil || len(req.SuperProductConfig.ProductID) == 0 {
		return "", nil
	}

	raw := bytes.TrimSpace(req.SuperProductConfig.ProductID)
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String(), nil
	}
	return "", lookupError("cartItemIDProvider.ItemID", errors.New("buy request product_id is neither string nor number"))
}
