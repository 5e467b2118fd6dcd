package player

import "context"

// Repository describes the player tables needed by the analytics use cases.
type Repository interface {
	ListPlayers(ctx context.Context) ([]Player, error)
	ListAppearances(ctx context.Context) ([]Appearance, error)
}
