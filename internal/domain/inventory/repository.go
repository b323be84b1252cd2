package inventory

import "context"

type ItemRepository interface {
	Load(ctx context.Context) ([]Item, error)
	Store(ctx context.Context, items []Item) error
}

type CategoryRepository interface {
	Load(ctx context.Context) ([]ProductCategory, error)
	Store(ctx context.Context, categories []ProductCategory) error
}
