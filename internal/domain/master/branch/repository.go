package branch

import "context"

type BranchRepository interface {
	Load(ctx context.Context) ([]Branch, error)
	Store(ctx context.Context, branches []Branch) error
}
