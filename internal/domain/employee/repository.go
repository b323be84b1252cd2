package employee

import "context"

type EmployeeRepository interface {
	Load(ctx context.Context) ([]Employee, error)
	Store(ctx context.Context, employees []Employee) error
}

type DepartmentRepository interface {
	Load(ctx context.Context) ([]Department, error)
	Store(ctx context.Context, departments []Department) error
}

type StatusRepository interface {
	Load(ctx context.Context) ([]EmployeeStatus, error)
	Store(ctx context.Context, statuses []EmployeeStatus) error
}
