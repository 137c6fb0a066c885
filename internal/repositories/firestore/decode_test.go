package firestore

import (
	"testing"
	"time"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

func TestDecodeProductAvailability(t *testing.T) {
	special := 8.5
	from := time.Date(2024, 1, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*3600))
	tests := []struct {
		name      string
		doc       productDocument
		available bool
	}{
		{name: "enabled in stock", doc: productDocument{Status: "enabled", InStock: true}, available: true},
		{name: "no status", doc: productDocument{InStock: true}, available: true},
		{name: "disabled", doc: productDocument{Status: "disabled", InStock: true}, available: false},
		{name: "out of stock", doc: productDocument{Status: "enabled"}, available: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.doc.SpecialPrice = &special
			tc.doc.SpecialFrom = &from
			got := decodeProduct(" 42 ", tc.doc)
			if got.ID != "42" {
				t.Fatalf("expected trimmed id, got %q", got.ID)
			}
			if got.Available != tc.available {
				t.Fatalf("expected available=%v, got %v", tc.available, got.Available)
			}
			if got.Type != domain.ProductTypeSimple {
				t.Fatalf("expected default simple type, got %q", got.Type)
			}
			if got.SpecialFrom == nil || got.SpecialFrom.Location() != time.UTC {
				t.Fatalf("expected special from normalised to UTC, got %v", got.SpecialFrom)
			}
		})
	}
}

func TestDecodeProductChildIDs(t *testing.T) {
	got := decodeProduct("1", productDocument{Type: "Configurable", ChildIDs: []string{" 2 ", "", "3"}})
	if got.Type != domain.ProductTypeConfigurable {
		t.Fatalf("expected configurable, got %q", got.Type)
	}
	if len(got.ChildIDs) != 2 || got.ChildIDs[0] != "2" || got.ChildIDs[1] != "3" {
		t.Fatalf("unexpected child ids %#v", got.ChildIDs)
	}
}

func TestDecodeQuoteKeepsLineOrderAndOptions(t *testing.T) {
	updated := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	doc := quoteDocument{
		Currency: "usd",
		IsActive: true,
		Items: []quoteItemDocument{
			{ID: "10", ProductID: "100", ProductType: "configurable", Qty: 2, Price: 19.5},
			{ID: "11", ParentItemID: "10", ProductID: "101", ProductType: "simple"},
			{ID: "12", ProductID: "200", ProductType: "grouped", Options: []quoteOptionDocument{{Code: " info_buyRequest ", Value: `{"qty":1}`}}},
		},
	}
	quote := decodeQuote("q1", doc, updated)
	if quote.Currency != "USD" {
		t.Fatalf("expected upper-case currency, got %q", quote.Currency)
	}
	if !quote.UpdatedAt.Equal(updated) {
		t.Fatalf("expected update time fallback, got %v", quote.UpdatedAt)
	}
	visible := quote.VisibleItems()
	if len(visible) != 2 || visible[0].ID != "10" || visible[1].ID != "12" {
		t.Fatalf("unexpected visible items %#v", visible)
	}
	children := quote.Children(visible[0])
	if len(children) != 1 || children[0].ProductID != "101" {
		t.Fatalf("unexpected children %#v", children)
	}
	if opt, ok := visible[1].OptionByCode("info_buyRequest"); !ok || opt.Value != `{"qty":1}` {
		t.Fatalf("expected buy request option, got %#v %v", opt, ok)
	}
}

func TestDecodeStoreFlattensConfig(t *testing.T) {
	store := decodeStore("default", storeDocument{
		BaseURL:      "https://shop.example.com/",
		CurrencyCode: "gbp",
		Config: map[string]any{
			"klevu_frontend/metadata/enabled": true,
			"general/locale/code":             "en_GB",
			"catalog/frontend/grid_per_page":  int64(12),
		},
	})
	if store.CurrencyCode != "GBP" {
		t.Fatalf("expected GBP, got %q", store.CurrencyCode)
	}
	cases := map[string]string{
		"klevu_frontend/metadata/enabled": "1",
		"general/locale/code":             "en_GB",
		"catalog/frontend/grid_per_page":  "12",
	}
	for path, want := range cases {
		if got, ok := store.ConfigValue(path); !ok || got != want {
			t.Fatalf("config %s: expected %q, got %q (%v)", path, want, got, ok)
		}
	}
}
