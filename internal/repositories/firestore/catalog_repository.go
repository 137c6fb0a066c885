package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	pfirestore "github.com/hanko-field/frontend-metadata/internal/platform/firestore"
)

const (
	productCollection  = "products"
	categoryCollection = "categories"
)

// CatalogRepository reads product and category snapshots from Firestore.
type CatalogRepository struct {
	products   *pfirestore.Reader[productDocument]
	categories *pfirestore.Reader[categoryDocument]
}

// NewCatalogRepository constructs a Firestore-backed catalog repository.
func NewCatalogRepository(provider *pfirestore.Provider) (*CatalogRepository, error) {
	if provider == nil {
		return nil, errors.New("catalog repository requires firestore provider")
	}
	return &CatalogRepository{
		products:   pfirestore.NewReader[productDocument](provider, productCollection, nil),
		categories: pfirestore.NewReader[categoryDocument](provider, categoryCollection, nil),
	}, nil
}

// FindProduct loads a single product.
func (r *CatalogRepository) FindProduct(ctx context.Context, productID string) (domain.Product, error) {
	if r == nil || r.products == nil {
		return domain.Product{}, errors.New("catalog repository not initialised")
	}
	doc, err := r.products.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	return decodeProduct(doc.ID, doc.Data), nil
}

// ListProducts loads products in a single round trip and returns them in the order of ids.
func (r *CatalogRepository) ListProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	if r == nil || r.products == nil {
		return nil, errors.New("catalog repository not initialised")
	}
	docs, err := r.products.GetAll(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		doc, ok := docs[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, decodeProduct(doc.ID, doc.Data))
	}
	return out, nil
}

// FindCategory loads a single category.
func (r *CatalogRepository) FindCategory(ctx context.Context, categoryID string) (domain.Category, error) {
	if r == nil || r.categories == nil {
		return domain.Category{}, errors.New("catalog repository not initialised")
	}
	doc, err := r.categories.Get(ctx, categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	return decodeCategory(doc.ID, doc.Data), nil
}

// CategoryNames resolves names for the given category ids.
func (r *CatalogRepository) CategoryNames(ctx context.Context, ids []string) (map[string]string, error) {
	if r == nil || r.categories == nil {
		return nil, errors.New("catalog repository not initialised")
	}
	docs, err := r.categories.GetAll(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(docs))
	for id, doc := range docs {
		names[id] = strings.TrimSpace(doc.Data.Name)
	}
	return names, nil
}

type productDocument struct {
	SKU          string     `firestore:"sku"`
	Type         string     `firestore:"type"`
	Name         string     `firestore:"name"`
	URLKey       string     `firestore:"urlKey"`
	Price        float64    `firestore:"price"`
	SpecialPrice *float64   `firestore:"specialPrice,omitempty"`
	SpecialFrom  *time.Time `firestore:"specialFromDate,omitempty"`
	SpecialTo    *time.Time `firestore:"specialToDate,omitempty"`
	Status       string     `firestore:"status"`
	InStock      bool       `firestore:"inStock"`
	ChildIDs     []string   `firestore:"childIds,omitempty"`
}

type categoryDocument struct {
	Name    string   `firestore:"name"`
	URLKey  string   `firestore:"urlKey"`
	URLPath string   `firestore:"urlPath"`
	PathIDs []string `firestore:"pathIds"`
}

func decodeProduct(id string, doc productDocument) domain.Product {
	productType := domain.ProductType(strings.ToLower(strings.TrimSpace(doc.Type)))
	if productType == "" {
		productType = domain.ProductTypeSimple
	}
	return domain.Product{
		ID:           strings.TrimSpace(id),
		SKU:          strings.TrimSpace(doc.SKU),
		Type:         productType,
		Name:         doc.Name,
		URLKey:       strings.TrimSpace(doc.URLKey),
		Price:        doc.Price,
		SpecialPrice: doc.SpecialPrice,
		SpecialFrom:  utcPointer(doc.SpecialFrom),
		SpecialTo:    utcPointer(doc.SpecialTo),
		Available:    isEnabledStatus(doc.Status) && doc.InStock,
		ChildIDs:     trimIDs(doc.ChildIDs),
	}
}

func decodeCategory(id string, doc categoryDocument) domain.Category {
	return domain.Category{
		ID:      strings.TrimSpace(id),
		Name:    doc.Name,
		URLKey:  strings.TrimSpace(doc.URLKey),
		URLPath: strings.TrimSpace(doc.URLPath),
		PathIDs: trimIDs(doc.PathIDs),
	}
}

// Products without an explicit status are treated as enabled.
func isEnabledStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", "enabled", "active":
		return true
	default:
		return false
	}
}

func trimIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func utcPointer(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
