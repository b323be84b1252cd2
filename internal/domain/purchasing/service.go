package purchasing

import "context"

type PurchasingService interface {
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	CreateSupplier(ctx context.Context, req SupplierRequest) (Supplier, error)
	UpdateSupplier(ctx context.Context, id string, req SupplierRequest) (Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error

	ListPOs(ctx context.Context, req ListPORequest) ([]PurchaseOrder, error)
	CreatePO(ctx context.Context, branchScope string, req CreatePORequest) (PurchaseOrder, error)
	ReceivePO(ctx context.Context, id string, req ReceivePORequest) (PurchaseOrder, error)
	CancelPO(ctx context.Context, id string) (PurchaseOrder, error)
}
