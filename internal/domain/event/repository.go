package event

import "context"

type Repository interface {
	ListEvents(ctx context.Context) ([]GameEvent, error)
}
