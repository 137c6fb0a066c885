package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	"github.com/hanko-field/frontend-metadata/internal/services"
)

type stubResolver struct {
	page services.PageContext
	err  error
	req  services.PageRequest
}

func (s *stubResolver) Resolve(_ context.Context, req services.PageRequest) (services.PageContext, error) {
	s.req = req
	if s.err != nil {
		return services.PageContext{}, s.err
	}
	page := s.page
	page.Route = domain.ParseRoute(req.Route)
	page.SessionID = req.SessionID
	return page, nil
}

type stubPageMeta struct {
	enabled    bool
	enabledErr error
	payload    services.Payload
	sections   map[string]any
	lastPage   services.PageContext
}

func (s *stubPageMeta) IsEnabled(context.Context, services.PageContext) (bool, error) {
	return s.enabled, s.enabledErr
}

func (s *stubPageMeta) Meta(_ context.Context, page services.PageContext) services.Payload {
	s.lastPage = page
	return s.payload
}

func (s *stubPageMeta) Section(_ context.Context, name string, page services.PageContext) (any, bool) {
	s.lastPage = page
	data, ok := s.sections[name]
	return data, ok
}

func samplePayload() services.Payload {
	return services.Payload{
		Platform: services.Platform,
		Sections: []services.Section{
			{Name: "pageType", Data: "cart"},
			{Name: "quick", Data: services.CartSection{Products: []services.CartItemMeta{{ItemID: "1", ItemName: "Tee <b>", ItemSalesPrice: "9.00", ItemQty: 1}}}},
		},
	}
}

func newTestRouter(resolver services.PageContextResolver, meta services.PageMetaService, opts ...PageMetaOption) http.Handler {
	handlers := NewPageMetaHandlers(resolver, meta, opts...)
	return NewRouter(WithStoreRoutes(handlers.Routes))
}

func TestPageMetaReturnsPayload(t *testing.T) {
	resolver := &stubResolver{page: services.PageContext{Store: domain.Store{Code: "default"}}}
	meta := &stubPageMeta{enabled: true, payload: samplePayload()}
	router := newTestRouter(resolver, meta)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/default/page-meta?route=checkout/cart/index&productId=5&categoryId=7", nil)
	req.AddCookie(&http.Cookie{Name: "PHPSESSID", Value: "sess-1"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if resolver.req.StoreCode != "default" || resolver.req.ProductID != "5" || resolver.req.CategoryID != "7" || resolver.req.SessionID != "sess-1" {
		t.Fatalf("unexpected page request %#v", resolver.req)
	}
	if meta.lastPage.Route.Handle() != "checkout_cart_index" {
		t.Fatalf("unexpected route %q", meta.lastPage.Route.Handle())
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	system := body["system"].(map[string]any)
	if system["platform"] != "Magento" {
		t.Fatalf("unexpected platform %v", system["platform"])
	}
	page := body["page"].(map[string]any)
	if page["pageType"] != "cart" {
		t.Fatalf("unexpected page type %v", page["pageType"])
	}
}

func TestPageMetaSessionHeaderFallback(t *testing.T) {
	resolver := &stubResolver{}
	router := newTestRouter(resolver, &stubPageMeta{enabled: true, payload: samplePayload()}, WithSessionHeader("X-Quote-Session"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/default/page-meta", nil)
	req.Header.Set("X-Quote-Session", "from-header")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if resolver.req.SessionID != "from-header" {
		t.Fatalf("expected header session, got %q", resolver.req.SessionID)
	}
}

func TestPageMetaDisabled(t *testing.T) {
	router := newTestRouter(&stubResolver{}, &stubPageMeta{enabled: false})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores/default/page-meta", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores/default/page-meta/script", nil))
	if rr.Code != http.StatusOK || rr.Body.Len() != 0 {
		t.Fatalf("expected empty 200 script response, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestPageMetaErrors(t *testing.T) {
	tests := []struct {
		name     string
		resolver *stubResolver
		meta     *stubPageMeta
		status   int
		code     string
	}{
		{name: "unknown store", resolver: &stubResolver{err: services.ErrStoreNotFound}, meta: &stubPageMeta{}, status: http.StatusNotFound, code: "store_not_found"},
		{name: "store backend", resolver: &stubResolver{err: errors.New("firestore down")}, meta: &stubPageMeta{}, status: http.StatusServiceUnavailable, code: "store_unavailable"},
		{name: "misconfigured gate", resolver: &stubResolver{}, meta: &stubPageMeta{enabledErr: services.ErrConfiguration}, status: http.StatusInternalServerError, code: "metadata_misconfigured"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(tc.resolver, tc.meta)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores/missing/page-meta", nil))

			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tc.code {
				t.Fatalf("expected error %q, got %v", tc.code, body["error"])
			}
		})
	}
}

func TestPageMetaScript(t *testing.T) {
	router := newTestRouter(&stubResolver{}, &stubPageMeta{enabled: true, payload: samplePayload()})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores/default/page-meta/script?route=checkout/cart/index", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected text/html, got %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	script := doc.Find("script#klevu_meta")
	if script.Length() != 1 {
		t.Fatalf("expected a single klevu_meta script, got %d", script.Length())
	}
	if typ, _ := script.Attr("type"); typ != "text/javascript" {
		t.Fatalf("unexpected script type %q", typ)
	}

	source := strings.TrimSpace(script.Text())
	const prefix = "window.klevu_page_meta = "
	if !strings.HasPrefix(source, prefix) || !strings.HasSuffix(source, ";") {
		t.Fatalf("unexpected script body %q", source)
	}
	if strings.Contains(source, "<b>") {
		t.Fatalf("expected markup in values to be escaped, got %q", source)
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(source, prefix), ";")

	var payload struct {
		System struct {
			Platform string `json:"platform"`
		} `json:"system"`
		Page struct {
			PageType string `json:"pageType"`
			Quick    struct {
				Products []map[string]any `json:"products"`
			} `json:"quick"`
		} `json:"page"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode embedded payload: %v", err)
	}
	if payload.System.Platform != "Magento" || payload.Page.PageType != "cart" {
		t.Fatalf("unexpected payload %#v", payload)
	}
	if len(payload.Page.Quick.Products) != 1 || payload.Page.Quick.Products[0]["itemName"] != "Tee <b>" {
		t.Fatalf("unexpected products %#v", payload.Page.Quick.Products)
	}
}

func TestCustomerDataCart(t *testing.T) {
	meta := &stubPageMeta{
		enabled:  true,
		sections: map[string]any{"quick": services.CartSection{Products: []services.CartItemMeta{}}},
	}
	router := newTestRouter(&stubResolver{}, meta)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores/default/customer-data/cart", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"products":[]}` {
		t.Fatalf("unexpected body %s", got)
	}

	meta.enabled = false
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores/default/customer-data/cart", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected cart data while page output is disabled, got %d", rr.Code)
	}

	missing := newTestRouter(&stubResolver{}, meta, WithCustomerDataSection("cart-data"))
	rr = httptest.NewRecorder()
	missing.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores/default/customer-data/cart", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unregistered section, got %d", rr.Code)
	}
}
