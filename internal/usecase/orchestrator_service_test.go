package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/courtsidelive/courtside/internal/domain/game"
	"github.com/courtsidelive/courtside/internal/domain/headline"
	"github.com/courtsidelive/courtside/internal/domain/social"
	"github.com/courtsidelive/courtside/internal/domain/stats"
	"github.com/courtsidelive/courtside/internal/ingest/grid"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/resolve"
)

type fakeScoreSource struct{ games []game.Game }

func (f *fakeScoreSource) FetchGames(context.Context) ([]game.Game, error) {
	return f.games, nil
}

type fakeHeadlineSource struct{ items []headline.Headline }

func (f *fakeHeadlineSource) FetchHeadlines(context.Context) ([]headline.Headline, error) {
	return f.items, nil
}

type fakeSocialSource struct{ err error }

func (f *fakeSocialSource) FetchPosts(context.Context) ([]social.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []social.Post{{Author: "Shams Charania", Text: "Sources: a trade."}}, nil
}

type fakeStatSource struct{ set stats.Set }

func (f *fakeStatSource) FetchSet(_ context.Context, season string) (stats.Set, error) {
	if season == "" {
		return nil, fmt.Errorf("season required")
	}
	return f.set, nil
}

func testOrchestrator(t *testing.T, posts SocialSource) (*Orchestrator, *StatusService) {
	t.Helper()

	holder := resolve.NewHolder()
	sheets := &fakeSheetSource{grids: map[string]grid.Grid{
		"sheet/0": {
			{"Player", "Salary", "Team"},
			{"Nikola Jokić", "$51,400,000", "Denver"},
			{"Jamal Murray", "$36,000,000", "Denver"},
		},
		"sheet/1": depthChartGrid(),
	}}

	salary := NewSalaryService(sheets, salaryTestConfig(), holder, time.Hour, logging.NewNop())
	roster := NewRosterService(sheets, DepthChartConfig{SheetID: "sheet", GID: "1"}, holder, time.Hour, logging.NewNop())
	statsSvc := NewStatsService(&fakeStatSource{set: stats.Set{
		stats.MeasureTotals: stats.Table{"Nikola Jokić": stats.Bag{"PTS": 26.5}},
	}}, "2025-26", time.Hour, logging.NewNop())
	scores := NewScoresService(&fakeScoreSource{games: []game.Game{
		{ID: "0022500001", Status: game.StatusLive},
		{ID: "0022500002", Status: game.StatusFinal},
	}}, 15*time.Second, 10*time.Minute, logging.NewNop())
	headlines := NewHeadlinesService(&fakeHeadlineSource{items: []headline.Headline{
		{Text: "Nuggets shake up the rotation", Time: "2h"},
	}}, time.Hour, logging.NewNop())
	feed := NewFeedService(posts, time.Hour, logging.NewNop())

	orch := NewOrchestrator(salary, roster, statsSvc, scores, headlines, feed, logging.NewNop())
	status := NewStatusService(holder, salary, roster, statsSvc, scores, headlines, feed)
	return orch, status
}

func TestOrchestrator_RefreshAll(t *testing.T) {
	t.Parallel()

	orch, _ := testOrchestrator(t, &fakeSocialSource{})

	summary := orch.RefreshAll(context.Background())
	require.Equal(t, 2, summary.Players)
	require.Equal(t, 2, summary.Teams)
	require.Equal(t, 2, summary.Games)
	require.Equal(t, 1, summary.Headlines)
	require.Equal(t, 1, summary.Posts)
	require.Equal(t, 1, summary.Measures)
	require.Positive(t, summary.SnapshotVersion)
	require.NotEmpty(t, summary.PassID)
}

func TestOrchestrator_SourceFailureDoesNotFailPass(t *testing.T) {
	t.Parallel()

	orch, status := testOrchestrator(t, &fakeSocialSource{err: fmt.Errorf("status=502")})

	summary := orch.RefreshAll(context.Background())
	require.Equal(t, 0, summary.Posts)
	require.Equal(t, 2, summary.Games)

	report := status.Report(context.Background())
	require.True(t, report.OK)
	require.Len(t, report.Sources, 6)
	require.NotEmpty(t, report.Sources["feed"].LastError)
	require.True(t, report.Sources["scores"].Fresh)
	require.Equal(t, report.Snapshot.Version, summary.SnapshotVersion)
	require.Equal(t, 2, report.Snapshot.Players)
}
