package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrCustomerRequired  = errors.New("customer is required")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrSalesRepNotFound  = errors.New("sales representative not found")
	ErrInvalidCartAction = errors.New("invalid cart action")
)
