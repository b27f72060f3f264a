package usecase

import (
	"context"
	"time"

	"github.com/courtsidelive/courtside/internal/domain/stats"
	"github.com/courtsidelive/courtside/internal/platform/cache"
	"github.com/courtsidelive/courtside/internal/platform/logging"
)

// StatsService runs the statistics pipeline: one attribute bag table per
// measure, keyed by whatever name spelling the provider uses.
type StatsService struct {
	source StatSource
	season string
	cache  *cache.Fallback[stats.Set]
	logger *logging.Logger
}

func NewStatsService(source StatSource, season string, ttl time.Duration, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		source: source,
		season: season,
		logger: logger,
		cache: cache.NewFallback[stats.Set](
			"stats",
			cache.StaticTTL[stats.Set](ttl),
			logger,
			cache.WithEmptyCheck(func(s stats.Set) bool { return len(s) == 0 }),
		),
	}
}

func (s *StatsService) Refresh(ctx context.Context) stats.Set {
	ctx, span := startUsecaseSpan(ctx, "StatsService.Refresh")
	defer span.End()

	return s.cache.GetOrFetch(ctx, func(ctx context.Context) (stats.Set, error) {
		return s.source.FetchSet(ctx, s.season)
	})
}

// Set returns the last-good measures without fetching.
func (s *StatsService) Set() stats.Set {
	set, _ := s.cache.Peek()
	return set
}

func (s *StatsService) Status() cache.Status {
	return s.cache.Status()
}
