package services

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price with two decimals and comma thousands separators, e.g. "1,299.99".
// Halves round away from zero on the shortest decimal form, so 1.005 renders as "1.01".
func FormatPrice(value float64) string {
	rounded := roundCents(value)
	if rounded == 0 {
		rounded = 0 // normalise -0
	}
	return pricePrinter.Sprint(number.Decimal(rounded, number.Scale(2)))
}

// maxExactCents bounds values whose cents fit comfortably in an int64.
const maxExactCents = 1e15

func roundCents(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || math.Abs(value) >= maxExactCents {
		return math.Round(value*100) / 100
	}
	digits := strconv.FormatFloat(math.Abs(value), 'f', -1, 64)
	whole, frac, _ := strings.Cut(digits, ".")
	frac += "000"

	cents, err := strconv.ParseInt(whole+frac[:2], 10, 64)
	if err != nil {
		return math.Round(value*100) / 100
	}
	if frac[2] >= '5' {
		cents++
	}
	rounded := float64(cents) / 100
	if value < 0 {
		rounded = -rounded
	}
	return rounded
}

// ProductURL builds the storefront URL of a product. Products without a URL key fall back to
// the catalog view route.
func ProductURL(store domain.Store, productID, urlKey string) string {
	base := strings.TrimRight(store.BaseURL, "/")
	urlKey = strings.Trim(strings.TrimSpace(urlKey), "/")
	if urlKey == "" {
		return base + "/catalog/product/view/id/" + strings.TrimSpace(productID)
	}
	return base + "/" + urlKey + store.ProductURLSuffix
}

// CategoryURL builds the storefront URL of a category.
func CategoryURL(store domain.Store, category domain.Category) string {
	return strings.TrimRight(store.BaseURL, "/") + "/" + strings.Trim(category.URLKey, "/") + store.CategoryURLSuffix
}
