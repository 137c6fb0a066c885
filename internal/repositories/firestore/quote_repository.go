package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	pfirestore "github.com/hanko-field/frontend-metadata/internal/platform/firestore"
)

const quoteCollection = "quotes"

// QuoteRepository reads quotes from Firestore. Line items are embedded in the quote document.
type QuoteRepository struct {
	reader *pfirestore.Reader[quoteDocument]
}

// NewQuoteRepository constructs a Firestore-backed quote repository.
func NewQuoteRepository(provider *pfirestore.Provider) (*QuoteRepository, error) {
	if provider == nil {
		return nil, errors.New("quote repository requires firestore provider")
	}
	return &QuoteRepository{reader: pfirestore.NewReader[quoteDocument](provider, quoteCollection, nil)}, nil
}

// FindQuote loads the quote with its line items.
func (r *QuoteRepository) FindQuote(ctx context.Context, quoteID string) (domain.Quote, error) {
	if r == nil || r.reader == nil {
		return domain.Quote{}, errors.New("quote repository not initialised")
	}
	doc, err := r.reader.Get(ctx, quoteID)
	if err != nil {
		return domain.Quote{}, err
	}
	return decodeQuote(doc.ID, doc.Data, doc.UpdateTime), nil
}

type quoteDocument struct {
	StoreCode string              `firestore:"storeCode"`
	Currency  string              `firestore:"currency"`
	IsActive  bool                `firestore:"isActive"`
	Items     []quoteItemDocument `firestore:"items"`
	UpdatedAt time.Time           `firestore:"updatedAt"`
}

type quoteItemDocument struct {
	ID            string                `firestore:"id"`
	ParentItemID  string                `firestore:"parentItemId,omitempty"`
	ProductID     string                `firestore:"productId"`
	ProductType   string                `firestore:"productType"`
	SKU           string                `firestore:"sku"`
	Name          string                `firestore:"name"`
	Price         float64               `firestore:"price"`
	Qty           float64               `firestore:"qty"`
	ProductURLKey string                `firestore:"productUrlKey,omitempty"`
	Options       []quoteOptionDocument `firestore:"options,omitempty"`
}

type quoteOptionDocument struct {
	Code  string `firestore:"code"`
	Value string `firestore:"value"`
}

func decodeQuote(id string, doc quoteDocument, updateTime time.Time) domain.Quote {
	updatedAt := doc.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = updateTime.UTC()
	}
	quote := domain.Quote{
		ID:        strings.TrimSpace(id),
		StoreCode: strings.TrimSpace(doc.StoreCode),
		Currency:  strings.ToUpper(strings.TrimSpace(doc.Currency)),
		IsActive:  doc.IsActive,
		UpdatedAt: updatedAt,
	}
	if len(doc.Items) > 0 {
		quote.Items = make([]domain.QuoteItem, 0, len(doc.Items))
	}
	for _, item := range doc.Items {
		decoded := domain.QuoteItem{
			ID:            strings.TrimSpace(item.ID),
			ParentItemID:  strings.TrimSpace(item.ParentItemID),
			ProductID:     strings.TrimSpace(item.ProductID),
			ProductType:   domain.ProductType(strings.ToLower(strings.TrimSpace(item.ProductType))),
			SKU:           strings.TrimSpace(item.SKU),
			Name:          item.Name,
			Price:         item.Price,
			Qty:           item.Qty,
			ProductURLKey: strings.TrimSpace(item.ProductURLKey),
		}
		for _, opt := range item.Options {
			decoded.Options = append(decoded.Options, domain.QuoteItemOption{
				Code:  strings.TrimSpace(opt.Code),
				Value: opt.Value,
			})
		}
		quote.Items = append(quote.Items, decoded)
	}
	return quote
}
