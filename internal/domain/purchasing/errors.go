package purchasing

import "errors"

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrSupplierInUse    = errors.New("supplier has purchase orders")
	ErrPONotFound       = errors.New("purchase order not found")
	ErrPONotReceivable  = errors.New("only ordered purchase orders can be received")
	ErrPONotCancellable = errors.New("only draft or ordered purchase orders can be cancelled")
	ErrProductNotFound  = errors.New("purchase order references an unknown product")
)
