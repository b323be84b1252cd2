package ledger

import "context"

type LedgerService interface {
	List(ctx context.Context, req ListTransactionRequest) ([]Transaction, error)
	Create(ctx context.Context, req CreateTransactionRequest) (Transaction, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, branchScope string) (SummaryResponse, error)

	RecordPayment(ctx context.Context, req RecordPaymentRequest) (Transaction, error)
	RecentPayments(ctx context.Context, branchScope, paymentMethod string) ([]Transaction, error)

	ListCategories(ctx context.Context) ([]AccountCategory, error)
	CreateCategory(ctx context.Context, req CategoryRequest) (AccountCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	ListPaymentMethods(ctx context.Context, branchScope string) ([]PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, req PaymentMethodRequest) (PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error
}
