package employee

import "context"

type EmployeeService interface {
	List(ctx context.Context, req ListEmployeeRequest) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	ListDepartments(ctx context.Context) ([]Department, error)
	CreateDepartment(ctx context.Context, req NamedRequest) (Department, error)
	DeleteDepartment(ctx context.Context, id string) error

	ListStatuses(ctx context.Context) ([]EmployeeStatus, error)
	CreateStatus(ctx context.Context, req NamedRequest) (EmployeeStatus, error)
	DeleteStatus(ctx context.Context, id string) error
}
