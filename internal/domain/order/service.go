package order

import (
	"context"

	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
)

type OrderService interface {
	List(ctx context.Context, req ListOrderRequest) ([]SalesOrder, error)
	GetByID(ctx context.Context, id string) (OrderDetailResponse, error)
	Create(ctx context.Context, branchScope string, req CreateOrderRequest) (SalesOrder, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (SalesOrder, error)
	AddExpense(ctx context.Context, id string, req AddExpenseRequest) (ledger.Transaction, error)
	PreviewCart(ctx context.Context, req CartPreviewRequest) (CartPreviewResponse, error)
}
