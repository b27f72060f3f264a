package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtsidelive/courtside/internal/domain/player"
	"github.com/courtsidelive/courtside/internal/merge"
	"github.com/courtsidelive/courtside/internal/platform/logging"
)

// RankingsService builds the merge-engine views: ranking boards and
// head-to-head comparisons. Reads run through each pipeline's cache, so a
// stale entry triggers its refresh and a failing source serves last-good.
type RankingsService struct {
	engine *merge.Engine
	salary *SalaryService
	roster *RosterService
	stats  *StatsService
	logger *logging.Logger
}

func NewRankingsService(engine *merge.Engine, salary *SalaryService, roster *RosterService, stats *StatsService, logger *logging.Logger) *RankingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingsService{
		engine: engine,
		salary: salary,
		roster: roster,
		stats:  stats,
		logger: logger,
	}
}

// PositionBoard ranks the starters at one depth chart position.
func (s *RankingsService) PositionBoard(ctx context.Context, rawPos string, limit int) (merge.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingsService.PositionBoard")
	defer span.End()

	pos, ok := player.ParsePosition(strings.ToUpper(strings.TrimSpace(rawPos)))
	if !ok {
		return merge.Board{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, rawPos)
	}

	snap := s.salary.Refresh(ctx)
	set := s.stats.Refresh(ctx)
	rosters := s.roster.Refresh(ctx)

	return s.engine.PositionLeaders(snap, set, rosters.Starters, pos, limit), nil
}

// ValueBoard ranks rating per salary million in the requested direction.
func (s *RankingsService) ValueBoard(ctx context.Context, rawDirection string, limit int) (merge.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingsService.ValueBoard")
	defer span.End()

	direction := merge.BestValue
	if trimmed := strings.TrimSpace(rawDirection); trimmed != "" {
		parsed, ok := merge.ParseValueDirection(trimmed)
		if !ok {
			return merge.Board{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, rawDirection)
		}
		direction = parsed
	}

	snap := s.salary.Refresh(ctx)
	set := s.stats.Refresh(ctx)

	return s.engine.ValueBoard(snap, set, direction, limit), nil
}

// Compare builds the head-to-head view for two raw name spellings.
func (s *RankingsService) Compare(ctx context.Context, rawA, rawB string) (merge.Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingsService.Compare")
	defer span.End()

	rawA = strings.TrimSpace(rawA)
	rawB = strings.TrimSpace(rawB)
	if rawA == "" || rawB == "" {
		return merge.Comparison{}, fmt.Errorf("%w: both player names are required", ErrInvalidInput)
	}

	snap := s.salary.Refresh(ctx)
	set := s.stats.Refresh(ctx)

	return s.engine.Compare(snap, set, rawA, rawB), nil
}
