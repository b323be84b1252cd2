package customer

import "context"

type CustomerRepository interface {
	Load(ctx context.Context) ([]Customer, error)
	Store(ctx context.Context, customers []Customer) error
}
