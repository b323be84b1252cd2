package branch

import "errors"

var (
	ErrBranchNotFound           = errors.New("branch not found")
	ErrBranchIDExists           = errors.New("branch with this id already exists")
	ErrCannotDeleteHeadquarters = errors.New("headquarters branch cannot be deleted")
	ErrBranchLocationNotSet     = errors.New("branch location is not configured")
)
