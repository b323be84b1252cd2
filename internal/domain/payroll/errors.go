package payroll

import "errors"

var (
	ErrNoOrdersSelected      = errors.New("no orders selected for payout")
	ErrOrderNotEligible      = errors.New("order is not eligible for commission payout")
	ErrInvalidAmount         = errors.New("payout amount must be greater than zero")
	ErrNegativeOverride      = errors.New("commission override must not be negative")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrInvalidPaymentType    = errors.New("payment type must be Salary, Advance or Bonus")
)
