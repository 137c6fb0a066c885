package services

import (
	"context"
	"errors"
)

// CategoryMeta describes the category shown on a category page.
type CategoryMeta struct {
	CategoryURL          string `json:"categoryUrl"`
	CategoryAbsolutePath string `json:"categoryAbsolutePath"`
	CategoryPath         string `json:"categoryPath"`
	CategoryName         string `json:"categoryName"`
}

// CategoryMetaProvider renders the current category.
type CategoryMetaProvider struct {
	paths CategoryPathProvider
}

var _ MetaProvider = (*CategoryMetaProvider)(nil)

// NewCategoryMetaProvider constructs the category section provider.
func NewCategoryMetaProvider(paths CategoryPathProvider) (*CategoryMetaProvider, error) {
	if paths == nil {
		return nil, errors.New("category meta provider: path provider is required")
	}
	return &CategoryMetaProvider{paths: paths}, nil
}

// Get returns the category section, or an empty section when the page has no category.
func (p *CategoryMetaProvider) Get(ctx context.Context, page PageContext) any {
	if page.Category == nil {
		return EmptySection
	}
	category := *page.Category
	return CategoryMeta{
		CategoryURL:          CategoryURL(page.Store, category),
		CategoryAbsolutePath: category.URLPath,
		CategoryPath:         p.paths.Path(ctx, category),
		CategoryName:         category.Name,
	}
}
