package club

import "context"

type Repository interface {
	ListClubs(ctx context.Context) ([]Club, error)
}
