package match

import "context"

type Repository interface {
	ListMatches(ctx context.Context) ([]Match, error)
}
