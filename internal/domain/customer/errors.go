package customer

import "errors"

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCustomerEmailExists = errors.New("customer with this email already exists")
	ErrCustomerHasOrders   = errors.New("customer has orders and cannot be deleted")
)
