package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/courtsidelive/courtside/internal/domain/player"
	"github.com/courtsidelive/courtside/internal/domain/roster"
	"github.com/courtsidelive/courtside/internal/ingest/grid"
	"github.com/courtsidelive/courtside/internal/platform/cache"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/resolve"
)

const placeholderSlot = "—"

// DepthChartConfig locates the depth chart tab.
type DepthChartConfig struct {
	SheetID string
	GID     string
}

// RosterData is one refresh of the depth chart pipeline: the roster screens
// plus the starting-position assignments the ranking boards consume.
type RosterData struct {
	Chart    roster.Chart
	Starters map[string]player.Position
}

// RosterService runs the depth chart pipeline: grid to blocks to voted,
// resolved roster screens.
type RosterService struct {
	sheets    SheetSource
	cfg       DepthChartConfig
	segmenter *grid.Segmenter
	holder    *resolve.Holder
	cache     *cache.Fallback[RosterData]
	logger    *logging.Logger
}

func NewRosterService(sheets SheetSource, cfg DepthChartConfig, holder *resolve.Holder, ttl time.Duration, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	labels := make([]string, 0, len(player.PositionOrder))
	for _, pos := range player.PositionOrder {
		labels = append(labels, string(pos))
	}
	return &RosterService{
		sheets:    sheets,
		cfg:       cfg,
		segmenter: grid.NewSegmenter(grid.LabelLandmark(labels, grid.DefaultMinLandmarkMatches), grid.DefaultWidth, logger),
		holder:    holder,
		logger:    logger,
		cache: cache.NewFallback[RosterData](
			"rosters",
			cache.StaticTTL[RosterData](ttl),
			logger,
			cache.WithEmptyCheck(func(d RosterData) bool { return len(d.Chart.Teams) == 0 }),
		),
	}
}

// Refresh rebuilds the roster screens when the cache entry has expired.
// Structural drift in the sheet (no blocks found) keeps the last-good
// screens serving.
func (s *RosterService) Refresh(ctx context.Context) RosterData {
	ctx, span := startUsecaseSpan(ctx, "RosterService.Refresh")
	defer span.End()

	return s.cache.GetOrFetch(ctx, func(ctx context.Context) (RosterData, error) {
		g, err := s.sheets.FetchGrid(ctx, s.cfg.SheetID, s.cfg.GID)
		if err != nil {
			return RosterData{}, err
		}

		blocks := s.segmenter.Segment(g)
		if len(blocks) == 0 {
			return RosterData{}, fmt.Errorf("depth chart produced no blocks: %w", cache.ErrEmptyResult)
		}

		data := s.buildRosters(ctx, blocks)
		s.logger.InfoContext(ctx, "built roster screens",
			"blocks", len(blocks),
			"teams", len(data.Chart.Teams),
			"starters", len(data.Starters),
		)
		return data, nil
	})
}

func (s *RosterService) Data() (RosterData, bool) {
	return s.cache.Peek()
}

func (s *RosterService) Status() cache.Status {
	return s.cache.Status()
}

// buildRosters resolves every block against the current snapshot generation
// and assigns each block to a team by majority vote. Blocks nobody
// recognizes keep the unidentified marker and contribute no starting
// positions.
func (s *RosterService) buildRosters(ctx context.Context, blocks []grid.Block) RosterData {
	snap := s.holder.Load()
	data := RosterData{Starters: make(map[string]player.Position, len(blocks)*len(player.PositionOrder))}

	for _, block := range blocks {
		names := make([]string, 0, len(block.Levels)*len(player.PositionOrder))
		for _, level := range block.Levels {
			for _, name := range level.Names {
				if name != "" && name != placeholderSlot {
					names = append(names, name)
				}
			}
		}

		vote := snap.AssignTeam(names)
		if vote.Team == roster.UnidentifiedTeam {
			s.logger.WarnContext(ctx, "depth chart block matched no team",
				"rows", fmt.Sprintf("%d-%d", block.Start, block.End),
				"names", len(names),
			)
		}

		team := roster.Team{Name: vote.Team, Levels: make([]roster.Level, 0, len(block.Levels))}
		for li, level := range block.Levels {
			out := roster.Level{Label: roster.LevelLabel(li)}
			for col, name := range level.Names {
				if name == "" || name == placeholderSlot || col >= len(player.PositionOrder) {
					continue
				}
				resolved := snap.Resolve(name)
				pos := player.PositionOrder[col]
				out.Slots = append(out.Slots, roster.Slot{
					Pos:    pos,
					Name:   resolved,
					Salary: levelSalary(level, col),
				})
				if li == 0 && vote.Team != roster.UnidentifiedTeam {
					data.Starters[resolved] = pos
				}
			}
			if len(out.Slots) > 0 {
				team.Levels = append(team.Levels, out)
			}
		}
		if len(team.Levels) > 0 {
			data.Chart.Teams = append(data.Chart.Teams, team)
		}
	}

	sort.SliceStable(data.Chart.Teams, func(i, j int) bool {
		return strings.ToLower(data.Chart.Teams[i].Name) < strings.ToLower(data.Chart.Teams[j].Name)
	})
	return data
}

func levelSalary(level grid.Level, col int) string {
	if col < len(level.Salaries) {
		return level.Salaries[col]
	}
	return ""
}
