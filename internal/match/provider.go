package match

import (
	"context"

	"boardmatch/internal/bgg"
)

// Provider is the external game database surface the fetcher consumes.
type Provider interface {
	SearchTitle(ctx context.Context, title string) ([]bgg.Game, error)
	SearchDesigner(ctx context.Context, name string) (string, error)
	DesignerGames(ctx context.Context, designerID string) ([]bgg.Game, error)
	GameDetails(ctx context.Context, id string) (bgg.GameDetails, error)
}

var _ Provider = (*bgg.Client)(nil)
