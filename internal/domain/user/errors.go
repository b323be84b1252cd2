package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrRoleNotFound            = errors.New("role not found")
	ErrRoleNameExists          = errors.New("role with this name already exists")
	ErrCannotDeleteSystemRole  = errors.New("system role cannot be deleted")
	ErrRoleInUse               = errors.New("role is assigned to users")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
