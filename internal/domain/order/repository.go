package order

import "context"

type OrderRepository interface {
	Load(ctx context.Context) ([]SalesOrder, error)
	Store(ctx context.Context, orders []SalesOrder) error
}
