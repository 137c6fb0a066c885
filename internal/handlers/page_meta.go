package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hanko-field/frontend-metadata/internal/platform/httpx"
	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
	"github.com/hanko-field/frontend-metadata/internal/platform/requestctx"
	"github.com/hanko-field/frontend-metadata/internal/services"
)

const (
	defaultSessionCookie       = "PHPSESSID"
	defaultSessionHeader       = "X-Session-ID"
	defaultCustomerDataSection = "quick"
)

var scriptTemplate = template.Must(template.New("klevu_meta").Parse(
	`<script type="text/javascript" id="klevu_meta">window.klevu_page_meta = {{.}};</script>`,
))

// PageMetaHandlers exposes the page metadata for a store.
type PageMetaHandlers struct {
	resolver      services.PageContextResolver
	meta          services.PageMetaService
	sessionCookie string
	sessionHeader string
	cartSection   string
}

// PageMetaOption customises PageMetaHandlers.
type PageMetaOption func(*PageMetaHandlers)

// WithSessionCookie names the cookie carrying the storefront session id.
func WithSessionCookie(name string) PageMetaOption {
	return func(h *PageMetaHandlers) {
		if name = strings.TrimSpace(name); name != "" {
			h.sessionCookie = name
		}
	}
}

// WithSessionHeader names the header carrying the storefront session id when no cookie is sent.
func WithSessionHeader(name string) PageMetaOption {
	return func(h *PageMetaHandlers) {
		if name = strings.TrimSpace(name); name != "" {
			h.sessionHeader = name
		}
	}
}

// WithCustomerDataSection names the section served by the customer-data cart endpoint.
func WithCustomerDataSection(name string) PageMetaOption {
	return func(h *PageMetaHandlers) {
		if name = strings.TrimSpace(name); name != "" {
			h.cartSection = name
		}
	}
}

// NewPageMetaHandlers constructs the page metadata handlers.
func NewPageMetaHandlers(resolver services.PageContextResolver, meta services.PageMetaService, opts ...PageMetaOption) *PageMetaHandlers {
	h := &PageMetaHandlers{
		resolver:      resolver,
		meta:          meta,
		sessionCookie: defaultSessionCookie,
		sessionHeader: defaultSessionHeader,
		cartSection:   defaultCustomerDataSection,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes wires the store-scoped endpoints onto the provided router.
func (h *PageMetaHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/page-meta", h.getPageMeta)
	r.Get("/page-meta/script", h.getPageMetaScript)
	r.Get("/customer-data/cart", h.getCustomerDataCart)
}

func (h *PageMetaHandlers) getPageMeta(w http.ResponseWriter, r *http.Request) {
	ctx, page, ok := h.enabledPage(w, r)
	if !ok {
		return
	}
	if page == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.meta.Meta(ctx, *page))
}

func (h *PageMetaHandlers) getPageMetaScript(w http.ResponseWriter, r *http.Request) {
	ctx, page, ok := h.enabledPage(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if page == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	encoded, err := json.Marshal(h.meta.Meta(ctx, *page))
	if err != nil {
		observability.FromContext(ctx).Error("encode page meta", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("encode_failed", "failed to encode page metadata", http.StatusInternalServerError))
		return
	}
	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, template.JS(encoded)); err != nil {
		observability.FromContext(ctx).Error("render page meta script", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("render_failed", "failed to render page metadata", http.StatusInternalServerError))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// getCustomerDataCart serves the cart section for client-side refreshes. It is not gated on the
// store flag; the storefront script only requests it when metadata output is on.
func (h *PageMetaHandlers) getCustomerDataCart(w http.ResponseWriter, r *http.Request) {
	ctx, page, ok := h.resolvePage(w, r)
	if !ok {
		return
	}
	data, found := h.meta.Section(ctx, h.cartSection, page)
	if !found {
		httpx.WriteError(ctx, w, httpx.NewError("section_not_found", "customer data section is not registered", http.StatusNotFound))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, data)
}

// enabledPage resolves the page context and applies the enablement gate. A nil page with ok=true
// means metadata output is disabled for the store.
func (h *PageMetaHandlers) enabledPage(w http.ResponseWriter, r *http.Request) (context.Context, *services.PageContext, bool) {
	ctx, page, ok := h.resolvePage(w, r)
	if !ok {
		return ctx, nil, false
	}

	enabled, err := h.meta.IsEnabled(ctx, page)
	if err != nil {
		observability.FromContext(ctx).Error("page meta gate failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("metadata_misconfigured", err.Error(), http.StatusInternalServerError))
		return ctx, nil, false
	}
	if !enabled {
		return ctx, nil, true
	}
	return ctx, &page, true
}

// resolvePage builds the page context of the request, writing the error response when it fails.
func (h *PageMetaHandlers) resolvePage(w http.ResponseWriter, r *http.Request) (context.Context, services.PageContext, bool) {
	ctx := r.Context()
	if h.resolver == nil || h.meta == nil {
		httpx.WriteError(ctx, w, httpx.NewError("page_meta_unavailable", "page metadata service is unavailable", http.StatusServiceUnavailable))
		return ctx, services.PageContext{}, false
	}

	sessionID := h.sessionID(r)
	ctx = requestctx.WithSessionID(ctx, sessionID)
	if sessionID != "" {
		ctx = observability.WithLogger(ctx, observability.FromContext(ctx).With(observability.SessionField(sessionID)))
	}

	query := r.URL.Query()
	page, err := h.resolver.Resolve(ctx, services.PageRequest{
		StoreCode:  chi.URLParam(r, "storeCode"),
		Route:      query.Get("route"),
		ProductID:  query.Get("productId"),
		CategoryID: query.Get("categoryId"),
		SessionID:  sessionID,
	})
	if err != nil {
		writePageContextError(ctx, w, err)
		return ctx, services.PageContext{}, false
	}
	return ctx, page, true
}

func (h *PageMetaHandlers) sessionID(r *http.Request) string {
	if cookie, err := r.Cookie(h.sessionCookie); err == nil {
		if value := strings.TrimSpace(cookie.Value); value != "" {
			return value
		}
	}
	return strings.TrimSpace(r.Header.Get(h.sessionHeader))
}

func writePageContextError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrStoreNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("store_not_found", "store not found", http.StatusNotFound))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		httpx.WriteError(ctx, w, httpx.NewError("request_timeout", "request cancelled", http.StatusGatewayTimeout))
	default:
		observability.FromContext(ctx).Error("resolve page context", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("store_unavailable", "store settings are unavailable", http.StatusServiceUnavailable))
	}
}
