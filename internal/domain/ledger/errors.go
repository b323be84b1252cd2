package ledger

import "errors"

var (
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrCategoryNotFound      = errors.New("account category not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
)
