package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeEmailExists = errors.New("employee with this email already exists")
	ErrEmployeeCheckedIn   = errors.New("employee is currently checked in")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrStatusNotFound      = errors.New("employee status not found")
)
