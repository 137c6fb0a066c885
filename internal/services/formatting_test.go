package services

import (
	"testing"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0.00"},
		{in: 9.5, want: "9.50"},
		{in: 199.99, want: "199.99"},
		{in: 1299.99, want: "1,299.99"},
		{in: 1234567.891, want: "1,234,567.89"},
		{in: 10.006, want: "10.01"},
		{in: 1.005, want: "1.01"},
		{in: 2.675, want: "2.68"},
		{in: 1.004999, want: "1.00"},
		{in: -1.005, want: "-1.01"},
		{in: -0.004, want: "0.00"},
	}
	for _, tc := range tests {
		if got := FormatPrice(tc.in); got != tc.want {
			t.Fatalf("FormatPrice(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestProductURL(t *testing.T) {
	store := testStore()
	if got := ProductURL(store, "5", "blue-shirt"); got != "https://shop.example.com/blue-shirt.html" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := ProductURL(store, "5", ""); got != "https://shop.example.com/catalog/product/view/id/5" {
		t.Fatalf("unexpected fallback url %q", got)
	}
}

func TestCategoryURL(t *testing.T) {
	store := testStore()
	category := domain.Category{URLKey: "/women/tops/"}
	if got := CategoryURL(store, category); got != "https://shop.example.com/women/tops.html" {
		t.Fatalf("unexpected url %q", got)
	}
	store.CategoryURLSuffix = ""
	if got := CategoryURL(store, domain.Category{}); got != "https://shop.example.com/" {
		t.Fatalf("unexpected url for empty key %q", got)
	}
}
