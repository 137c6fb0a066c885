package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
	pfirestore "github.com/hanko-field/frontend-metadata/internal/platform/firestore"
)

const storeCollection = "stores"

// StoreRepository reads store-view settings from Firestore.
type StoreRepository struct {
	reader *pfirestore.Reader[storeDocument]
}

// NewStoreRepository constructs a Firestore-backed store repository.
func NewStoreRepository(provider *pfirestore.Provider) (*StoreRepository, error) {
	if provider == nil {
		return nil, errors.New("store repository requires firestore provider")
	}
	return &StoreRepository{reader: pfirestore.NewReader[storeDocument](provider, storeCollection, nil)}, nil
}

// FindStore loads the store identified by code.
func (r *StoreRepository) FindStore(ctx context.Context, storeCode string) (domain.Store, error) {
	if r == nil || r.reader == nil {
		return domain.Store{}, errors.New("store repository not initialised")
	}
	doc, err := r.reader.Get(ctx, storeCode)
	if err != nil {
		return domain.Store{}, err
	}
	return decodeStore(doc.ID, doc.Data), nil
}

type storeDocument struct {
	BaseURL           string         `firestore:"baseUrl"`
	CurrencyCode      string         `firestore:"currencyCode"`
	CategoryURLSuffix string         `firestore:"categoryUrlSuffix"`
	ProductURLSuffix  string         `firestore:"productUrlSuffix"`
	Config            map[string]any `firestore:"config"`
}

// Config values are flattened to strings the way scoped store configuration is read.
func decodeStore(code string, doc storeDocument) domain.Store {
	store := domain.Store{
		Code:              strings.TrimSpace(code),
		BaseURL:           strings.TrimSpace(doc.BaseURL),
		CurrencyCode:      strings.ToUpper(strings.TrimSpace(doc.CurrencyCode)),
		CategoryURLSuffix: strings.TrimSpace(doc.CategoryURLSuffix),
		ProductURLSuffix:  strings.TrimSpace(doc.ProductURLSuffix),
	}
	if len(doc.Config) > 0 {
		store.Config = make(map[string]string, len(doc.Config))
		for path, value := range doc.Config {
			store.Config[path] = configString(value)
		}
	}
	return store
}

func configString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(v)
	}
}
