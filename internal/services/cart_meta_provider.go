package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
	"github.com/hanko-field/frontend-metadata/internal/repositories"
)

// CartItemMeta describes one visible quote line.
type CartItemMeta struct {
	ItemID         string  `json:"itemId"`
	ItemGroupID    string  `json:"itemGroupId"`
	ItemName       string  `json:"itemName"`
	ItemSalesPrice string  `json:"itemSalesPrice"`
	ItemURL        string  `json:"itemUrl"`
	ItemQty        float64 `json:"itemQty"`
}

// CartSection is the cart section payload.
type CartSection struct {
	Products []CartItemMeta `json:"products"`
}

// CartMetaProviderDeps bundles collaborators for the cart section.
type CartMetaProviderDeps struct {
	Sessions repositories.SessionStore
	Quotes   repositories.QuoteRepository
	IDs      CartItemIDProvider
	// OutputOnRoutes limits output to route handles such as "checkout_cart_index".
	// A nil list outputs on every route.
	OutputOnRoutes []string
}

// CartMetaProvider renders the lines of the session's quote.
type CartMetaProvider struct {
	sessions       repositories.SessionStore
	quotes         repositories.QuoteRepository
	ids            CartItemIDProvider
	outputOnRoutes []string
}

var _ MetaProvider = (*CartMetaProvider)(nil)

// NewCartMetaProvider constructs the cart section provider.
func NewCartMetaProvider(deps CartMetaProviderDeps) (*CartMetaProvider, error) {
	if deps.Sessions == nil {
		return nil, errors.New("cart meta provider: session store is required")
	}
	if deps.Quotes == nil {
		return nil, errors.New("cart meta provider: quote repository is required")
	}
	ids := deps.IDs
	if ids == nil {
		ids = NewCartItemIDProvider()
	}
	var routes []string
	if deps.OutputOnRoutes != nil {
		routes = make([]string, 0, len(deps.OutputOnRoutes))
		for _, route := range deps.OutputOnRoutes {
			routes = append(routes, strings.TrimSpace(route))
		}
	}
	return &CartMetaProvider{
		sessions:       deps.Sessions,
		quotes:         deps.Quotes,
		ids:            ids,
		outputOnRoutes: routes,
	}, nil
}

// WithoutRouteGate returns a copy of the provider that outputs on every route.
func (p *CartMetaProvider) WithoutRouteGate() *CartMetaProvider {
	clone := *p
	clone.outputOnRoutes = nil
	return &clone
}

// Get returns {"products":[...]} for the session's quote. Sessions without a quote yield an empty
// product list; lookup failures and disallowed routes yield an empty section.
func (p *CartMetaProvider) Get(ctx context.Context, page PageContext) any {
	if !p.shouldOutput(page.Route) {
		return EmptySection
	}

	quote, ok, err := p.currentQuote(ctx, page.Store.Code, page.SessionID)
	if err != nil {
		logLookupFailure(ctx, "cartMetaProvider.Get", err)
		return EmptySection
	}
	section := CartSection{Products: []CartItemMeta{}}
	if !ok {
		return section
	}

	for _, item := range quote.VisibleItems() {
		meta, err := p.itemMeta(page.Store, quote, item)
		if err != nil {
			logLookupFailure(ctx, "cartMetaProvider.Get", err)
			return EmptySection
		}
		section.Products = append(section.Products, meta)
	}
	return section
}

func (p *CartMetaProvider) shouldOutput(route domain.Route) bool {
	if p.outputOnRoutes == nil {
		return true
	}
	handle := route.Handle()
	for _, allowed := range p.outputOnRoutes {
		if allowed == handle {
			return true
		}
	}
	return false
}

// currentQuote resolves the session's active quote. Quotes belonging to another store view are
// treated as absent.
func (p *CartMetaProvider) currentQuote(ctx context.Context, storeCode, sessionID string) (domain.Quote, bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Quote{}, false, nil
	}
	quoteID, err := p.sessions.QuoteID(ctx, sessionID)
	if err != nil {
		return domain.Quote{}, false, lookupError("sessions.QuoteID", err)
	}
	if quoteID == "" {
		return domain.Quote{}, false, nil
	}
	quote, err := p.quotes.FindQuote(ctx, quoteID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return domain.Quote{}, false, nil
		}
		return domain.Quote{}, false, lookupError("quotes.FindQuote", err)
	}
	if !quote.IsActive {
		return domain.Quote{}, false, nil
	}
	if quote.StoreCode != "" && storeCode != "" && quote.StoreCode != storeCode {
		observability.FromContext(ctx).Debug("session quote belongs to another store",
			zap.String("quoteStore", quote.StoreCode),
			zap.String("store", storeCode),
		)
		return domain.Quote{}, false, nil
	}
	return quote, true, nil
}

func (p *CartMetaProvider) itemMeta(store domain.Store, quote domain.Quote, item domain.QuoteItem) (CartItemMeta, error) {
	itemID, err := p.ids.ItemID(quote, item)
	if err != nil {
		return CartItemMeta{}, err
	}
	salesPrice := ""
	if item.Price != 0 {
		salesPrice = FormatPrice(item.Price)
	}
	return CartItemMeta{
		ItemID:         itemID,
		ItemGroupID:    p.ids.ItemGroupID(item),
		ItemName:       item.Name,
		ItemSalesPrice: salesPrice,
		ItemURL:        ProductURL(store, item.ProductID, item.ProductURLKey),
		ItemQty:        item.Qty,
	}, nil
}
