package ledger

import "context"

type TransactionRepository interface {
	Load(ctx context.Context) ([]Transaction, error)
	Store(ctx context.Context, transactions []Transaction) error
}

type CategoryRepository interface {
	Load(ctx context.Context) ([]AccountCategory, error)
	Store(ctx context.Context, categories []AccountCategory) error
}

type PaymentMethodRepository interface {
	Load(ctx context.Context) ([]PaymentMethod, error)
	Store(ctx context.Context, methods []PaymentMethod) error
}
