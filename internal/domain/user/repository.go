package user

import "context"

type UserRepository interface {
	Load(ctx context.Context) ([]User, error)
	Store(ctx context.Context, users []User) error
}

type RoleRepository interface {
	Load(ctx context.Context) ([]Role, error)
	Store(ctx context.Context, roles []Role) error
}
