package domain

import (
	"strings"
	"time"
)

// ProductType identifies the catalog product type of a product or quote line.
type ProductType string

const (
	ProductTypeSimple       ProductType = "simple"
	ProductTypeVirtual      ProductType = "virtual"
	ProductTypeDownloadable ProductType = "downloadable"
	ProductTypeBundle       ProductType = "bundle"
	ProductTypeConfigurable ProductType = "configurable"
	ProductTypeGrouped      ProductType = "grouped"
)

// Route is the module/controller/action triple of the storefront request being rendered.
type Route struct {
	Module     string
	Controller string
	Action     string
}

// ParseRoute splits "module/controller/action". Missing segments default to "index".
func ParseRoute(raw string) Route {
	parts := strings.Split(strings.Trim(strings.TrimSpace(raw), "/"), "/")
	route := Route{Module: "", Controller: "index", Action: "index"}
	if len(parts) > 0 {
		route.Module = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		route.Controller = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		route.Action = strings.TrimSpace(parts[2])
	}
	return route
}

// Handle joins the route with underscores, e.g. "checkout_cart_index".
func (r Route) Handle() string {
	return r.Module + "_" + r.Controller + "_" + r.Action
}

// Store holds the store-view settings consulted while building metadata.
type Store struct {
	Code              string
	BaseURL           string
	CurrencyCode      string
	CategoryURLSuffix string
	ProductURLSuffix  string
	Config            map[string]string
}

// ConfigValue returns the raw store configuration value for path.
func (s Store) ConfigValue(path string) (string, bool) {
	if s.Config == nil {
		return "", false
	}
	value, ok := s.Config[path]
	return value, ok
}

// Product is a catalog product snapshot.
type Product struct {
	ID           string
	SKU          string
	Type         ProductType
	Name         string
	URLKey       string
	Price        float64
	SpecialPrice *float64
	SpecialFrom  *time.Time
	SpecialTo    *time.Time
	Available    bool
	// ChildIDs lists configurable variants or grouped associated products in display order.
	ChildIDs []string
}

// Category is a catalog category snapshot. PathIDs runs from the tree root to the category itself.
type Category struct {
	ID      string
	Name    string
	URLKey  string
	URLPath string
	PathIDs []string
}

// QuoteItemOption is a custom option stored on a quote line, e.g. info_buyRequest.
type QuoteItemOption struct {
	Code  string
	Value string
}

// QuoteItem is a single quote line. Child lines (configurable variants, bundle selections)
// reference their parent through ParentItemID.
type QuoteItem struct {
	ID            string
	ParentItemID  string
	ProductID     string
	ProductType   ProductType
	SKU           string
	Name          string
	Price         float64
	Qty           float64
	ProductURLKey string
	Options       []QuoteItemOption
}

// OptionByCode returns the option with the given code.
func (i QuoteItem) OptionByCode(code string) (QuoteItemOption, bool) {
	for _, opt := range i.Options {
		if opt.Code == code {
			return opt, true
		}
	}
	return QuoteItemOption{}, false
}

// Quote is the in-progress order holding the customer's cart lines.
type Quote struct {
	ID        string
	StoreCode string
	Currency  string
	IsActive  bool
	Items     []QuoteItem
	UpdatedAt time.Time
}

// VisibleItems returns the top-level lines in insertion order.
func (q Quote) VisibleItems() []QuoteItem {
	out := make([]QuoteItem, 0, len(q.Items))
	for _, item := range q.Items {
		if item.ParentItemID == "" {
			out = append(out, item)
		}
	}
	return out
}

// Children returns the child lines of parent in insertion order.
func (q Quote) Children(parent QuoteItem) []QuoteItem {
	var out []QuoteItem
	for _, item := range q.Items {
		if item.ParentItemID != "" && item.ParentItemID == parent.ID {
			out = append(out, item)
		}
	}
	return out
}
