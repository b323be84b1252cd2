package inventory

import "errors"

var (
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrSKUExists          = errors.New("item with this sku already exists")
	ErrCategoryNotFound   = errors.New("product category not found")
	ErrCategoryNameExists = errors.New("product category already exists")
)
