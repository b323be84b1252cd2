package inventory

import "context"

type InventoryService interface {
	List(ctx context.Context, req ListItemRequest) ([]Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, req ItemRequest) (Item, error)
	Update(ctx context.Context, id string, req ItemRequest) (Item, error)
	Delete(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]ProductCategory, error)
	SaveCategory(ctx context.Context, id string, req CategoryRequest) (ProductCategory, error)
	DeleteCategory(ctx context.Context, id string) error
}
