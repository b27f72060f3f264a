package usecase

import (
	"context"
	"time"

	"github.com/courtsidelive/courtside/internal/domain/game"
	"github.com/courtsidelive/courtside/internal/platform/cache"
	"github.com/courtsidelive/courtside/internal/platform/logging"
)

// ScoresService runs the live-scores pipeline. Its cache TTL is a function
// of the payload: short while any game is in progress, long once the slate
// is final or has not started.
type ScoresService struct {
	source ScoreSource
	cache  *cache.Fallback[[]game.Game]
	logger *logging.Logger
}

func NewScoresService(source ScoreSource, liveTTL, idleTTL time.Duration, logger *logging.Logger) *ScoresService {
	if logger == nil {
		logger = logging.Default()
	}
	ttl := func(games []game.Game) time.Duration {
		if game.AnyLive(games) {
			return liveTTL
		}
		return idleTTL
	}
	return &ScoresService{
		source: source,
		logger: logger,
		// No empty check: a day without games is a valid empty payload
		// and must overwrite yesterday's slate.
		cache: cache.NewFallback[[]game.Game]("scores", ttl, logger),
	}
}

func (s *ScoresService) Refresh(ctx context.Context) []game.Game {
	ctx, span := startUsecaseSpan(ctx, "ScoresService.Refresh")
	defer span.End()

	return s.cache.GetOrFetch(ctx, func(ctx context.Context) ([]game.Game, error) {
		return s.source.FetchGames(ctx)
	})
}

func (s *ScoresService) Games() []game.Game {
	games, _ := s.cache.Peek()
	return games
}

func (s *ScoresService) Status() cache.Status {
	return s.cache.Status()
}
