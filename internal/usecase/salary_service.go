package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/courtsidelive/courtside/internal/domain/player"
	"github.com/courtsidelive/courtside/internal/ingest/grid"
	"github.com/courtsidelive/courtside/internal/platform/cache"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/resolve"
)

// SalarySheetConfig locates the salary tab and its columns. The sheet is the
// most authoritative source: its player names become the canonical universe
// every other pipeline resolves against.
type SalarySheetConfig struct {
	SheetID   string
	GID       string
	NameCol   int
	SalaryCol int
	TeamCol   int
}

// SalaryService runs the salary pipeline: sheet rows to canonical players to
// a published resolver snapshot.
type SalaryService struct {
	sheets SheetSource
	cfg    SalarySheetConfig
	holder *resolve.Holder
	cache  *cache.Fallback[*resolve.Snapshot]
	logger *logging.Logger
}

func NewSalaryService(sheets SheetSource, cfg SalarySheetConfig, holder *resolve.Holder, ttl time.Duration, logger *logging.Logger) *SalaryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SalaryService{
		sheets: sheets,
		cfg:    cfg,
		holder: holder,
		logger: logger,
		cache: cache.NewFallback[*resolve.Snapshot](
			"salary",
			cache.StaticTTL[*resolve.Snapshot](ttl),
			logger,
			cache.WithEmptyCheck(func(s *resolve.Snapshot) bool { return s == nil || s.Size() == 0 }),
		),
	}
}

// Refresh rebuilds the canonical snapshot when the cache entry has expired
// and publishes it for every downstream pipeline. Fetch failures keep the
// previously published generation in place.
func (s *SalaryService) Refresh(ctx context.Context) *resolve.Snapshot {
	ctx, span := startUsecaseSpan(ctx, "SalaryService.Refresh")
	defer span.End()

	snap := s.cache.GetOrFetch(ctx, func(ctx context.Context) (*resolve.Snapshot, error) {
		g, err := s.sheets.FetchGrid(ctx, s.cfg.SheetID, s.cfg.GID)
		if err != nil {
			return nil, err
		}

		players := s.parseGrid(g)
		if len(players) == 0 {
			s.logger.WarnContext(ctx, "salary sheet yielded no players, keeping previous snapshot",
				"rows", len(g))
			return nil, fmt.Errorf("salary sheet yielded no players: %w", cache.ErrEmptyResult)
		}

		next := resolve.BuildSnapshot(players)
		s.logger.InfoContext(ctx, "built canonical snapshot",
			"players", next.Size(),
			"version", next.Version(),
		)
		return next, nil
	})

	if snap != nil && snap.Version() > s.holder.Load().Version() {
		s.holder.Publish(snap)
	}
	return s.holder.Load()
}

// Snapshot returns the currently published generation without fetching.
func (s *SalaryService) Snapshot() *resolve.Snapshot {
	return s.holder.Load()
}

func (s *SalaryService) Status() cache.Status {
	return s.cache.Status()
}

// parseGrid reads one player per data row. Rows missing a name are skipped;
// a missing team or salary still yields a player because partial records are
// common near the bottom of the sheet.
func (s *SalaryService) parseGrid(g grid.Grid) []player.Player {
	players := make([]player.Player, 0, len(g))
	for ri := 1; ri < len(g); ri++ {
		name := g.Cell(ri, s.cfg.NameCol)
		if name == "" {
			continue
		}
		p := player.Player{
			Name:   name,
			Team:   g.Cell(ri, s.cfg.TeamCol),
			Salary: parseSalary(g.Cell(ri, s.cfg.SalaryCol)),
		}
		if err := p.Validate(); err != nil {
			s.logger.Debug("skipping invalid salary row", "row", ri, "error", err)
			continue
		}
		players = append(players, p)
	}
	return players
}

// parseSalary converts "$51,400,000" to 51400000. Unparseable values read
// as zero rather than dropping the player.
func parseSalary(raw string) int64 {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
