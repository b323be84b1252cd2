package customer

import "context"

type CustomerService interface {
	List(ctx context.Context, req ListCustomerRequest) ([]CustomerResponse, error)
	GetByID(ctx context.Context, id string) (CustomerResponse, error)
	Detail(ctx context.Context, id string) (DetailResponse, error)
	Create(ctx context.Context, branchScope string, req CustomerRequest) (CustomerResponse, error)
	Update(ctx context.Context, id string, req CustomerRequest) (CustomerResponse, error)
	Delete(ctx context.Context, id string) error
}
