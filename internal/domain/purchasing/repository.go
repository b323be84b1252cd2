package purchasing

import "context"

type SupplierRepository interface {
	Load(ctx context.Context) ([]Supplier, error)
	Store(ctx context.Context, suppliers []Supplier) error
}

type PurchaseOrderRepository interface {
	Load(ctx context.Context) ([]PurchaseOrder, error)
	Store(ctx context.Context, pos []PurchaseOrder) error
}
