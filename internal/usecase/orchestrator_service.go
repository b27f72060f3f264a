package usecase

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/courtsidelive/courtside/internal/platform/id"
	"github.com/courtsidelive/courtside/internal/platform/logging"
)

// RefreshSummary reports one orchestrated refresh pass.
type RefreshSummary struct {
	PassID          string        `json:"passId"`
	SnapshotVersion int64         `json:"snapshotVersion"`
	Players         int           `json:"players"`
	Teams           int           `json:"teams"`
	Games           int           `json:"games"`
	Headlines       int           `json:"headlines"`
	Posts           int           `json:"posts"`
	Measures        int           `json:"measures"`
	Duration        time.Duration `json:"-"`
	DurationMs      int64         `json:"durationMs"`
}

// Orchestrator drives full refresh passes across every pipeline. The salary
// pipeline always runs first because its snapshot is the reference universe
// the others resolve against; the rest are independent and run in parallel.
type Orchestrator struct {
	salary    *SalaryService
	roster    *RosterService
	stats     *StatsService
	scores    *ScoresService
	headlines *HeadlinesService
	feed      *FeedService
	ids       id.Generator
	logger    *logging.Logger
}

func NewOrchestrator(
	salary *SalaryService,
	roster *RosterService,
	stats *StatsService,
	scores *ScoresService,
	headlines *HeadlinesService,
	feed *FeedService,
	logger *logging.Logger,
) *Orchestrator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{
		salary:    salary,
		roster:    roster,
		stats:     stats,
		scores:    scores,
		headlines: headlines,
		feed:      feed,
		ids:       id.NewRandomGenerator(),
		logger:    logger,
	}
}

// RefreshAll runs one full pass. Individual pipeline failures degrade to
// their last-good values inside each cache; the pass itself never fails.
func (o *Orchestrator) RefreshAll(ctx context.Context) RefreshSummary {
	ctx, span := startUsecaseSpan(ctx, "Orchestrator.RefreshAll")
	defer span.End()

	start := time.Now()
	summary := RefreshSummary{}
	if passID, err := o.ids.NewID(); err == nil {
		summary.PassID = passID
	}

	snap := o.salary.Refresh(ctx)
	summary.SnapshotVersion = snap.Version()
	summary.Players = snap.Size()

	var wg conc.WaitGroup
	wg.Go(func() {
		data := o.roster.Refresh(ctx)
		summary.Teams = len(data.Chart.Teams)
	})
	wg.Go(func() {
		set := o.stats.Refresh(ctx)
		summary.Measures = len(set)
	})
	wg.Go(func() {
		games := o.scores.Refresh(ctx)
		summary.Games = len(games)
	})
	wg.Go(func() {
		items := o.headlines.Refresh(ctx)
		summary.Headlines = len(items)
	})
	wg.Go(func() {
		posts := o.feed.Refresh(ctx)
		summary.Posts = len(posts)
	})
	wg.Wait()

	summary.Duration = time.Since(start)
	summary.DurationMs = summary.Duration.Milliseconds()

	o.logger.InfoContext(ctx, "refresh pass complete",
		"pass_id", summary.PassID,
		"duration_ms", summary.DurationMs,
		"snapshot_version", summary.SnapshotVersion,
		"players", summary.Players,
		"teams", summary.Teams,
		"games", summary.Games,
		"headlines", summary.Headlines,
		"posts", summary.Posts,
		"measures", summary.Measures,
	)
	return summary
}

// Prewarm runs a first refresh pass in the background so early requests hit
// warm caches instead of waiting on cold fetches.
func (o *Orchestrator) Prewarm(ctx context.Context, delay time.Duration) {
	go func() {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		o.logger.Info("prewarming source caches")
		o.RefreshAll(ctx)
	}()
}
