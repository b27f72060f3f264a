package usecase

import (
	"context"

	"github.com/courtsidelive/courtside/internal/domain/game"
	"github.com/courtsidelive/courtside/internal/domain/headline"
	"github.com/courtsidelive/courtside/internal/domain/social"
	"github.com/courtsidelive/courtside/internal/domain/stats"
	"github.com/courtsidelive/courtside/internal/ingest/grid"
)

// Source contracts implemented by the external clients. Services depend on
// these, never on concrete clients.

type SheetSource interface {
	FetchGrid(ctx context.Context, sheetID, gid string) (grid.Grid, error)
}

type ScoreSource interface {
	FetchGames(ctx context.Context) ([]game.Game, error)
}

type HeadlineSource interface {
	FetchHeadlines(ctx context.Context) ([]headline.Headline, error)
}

type SocialSource interface {
	FetchPosts(ctx context.Context) ([]social.Post, error)
}

type StatSource interface {
	FetchSet(ctx context.Context, season string) (stats.Set, error)
}
