package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/courtsidelive/courtside/internal/domain/player"
	"github.com/courtsidelive/courtside/internal/domain/roster"
	"github.com/courtsidelive/courtside/internal/ingest/grid"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/resolve"
)

func depthChartHolder() *resolve.Holder {
	h := resolve.NewHolder()
	h.Publish(resolve.BuildSnapshot([]player.Player{
		{Name: "Derrick White", Team: "Boston"},
		{Name: "Jaylen Brown", Team: "Boston"},
		{Name: "Jayson Tatum", Team: "Boston"},
		{Name: "Kristaps Porziņģis", Team: "Boston"},
		{Name: "Al Horford", Team: "Boston"},
		{Name: "Jamal Murray", Team: "Denver"},
		{Name: "Christian Braun", Team: "Denver"},
		{Name: "Michael Porter Jr.", Team: "Denver"},
		{Name: "Aaron Gordon", Team: "Denver"},
		{Name: "Nikola Jokić", Team: "Denver"},
	}))
	return h
}

func depthChartGrid() grid.Grid {
	return grid.Grid{
		{"Depth Chart", "", "", "", ""},
		{"PG", "SG", "SF", "PF", "C"},
		{"D. White", "J. Brown", "J. Tatum", "K. Porziņģis", "A. Horford"},
		{"$20,000,000", "$52,400,000", "$34,800,000", "$29,300,000", "$9,500,000"},
		{"P. Pritchard", "S. Hauser", "—", "", ""},
		{"", "", "", "", ""},
		{"PG", "SG", "SF", "PF", "C"},
		{"J. Murray", "C. Braun", "M. Porter Jr.", "A. Gordon", "N. Jokić"},
	}
}

func TestRosterService_RefreshBuildsScreens(t *testing.T) {
	t.Parallel()

	source := &fakeSheetSource{grids: map[string]grid.Grid{"sheet/1": depthChartGrid()}}
	svc := NewRosterService(source, DepthChartConfig{SheetID: "sheet", GID: "1"}, depthChartHolder(), time.Hour, logging.NewNop())

	data := svc.Refresh(context.Background())
	require.Len(t, data.Chart.Teams, 2)

	boston := data.Chart.Teams[0]
	require.Equal(t, "Boston", boston.Name)
	require.Len(t, boston.Levels, 2)
	require.Equal(t, "Starters", boston.Levels[0].Label)
	require.Equal(t, "Bench", boston.Levels[1].Label)

	starters := boston.Levels[0].Slots
	require.Len(t, starters, 5)
	require.Equal(t, "Derrick White", starters[0].Name)
	require.Equal(t, player.PositionPointGuard, starters[0].Pos)
	require.Equal(t, "$20,000,000", starters[0].Salary)
	require.Equal(t, "Kristaps Porziņģis", starters[3].Name)

	// Placeholder and blank cells produce no bench slots.
	require.Len(t, boston.Levels[1].Slots, 2)
	require.Equal(t, "P. Pritchard", boston.Levels[1].Slots[0].Name)

	denver := data.Chart.Teams[1]
	require.Equal(t, "Denver", denver.Name)
	require.Empty(t, denver.Levels[0].Slots[0].Salary)

	require.Equal(t, player.PositionSmallForward, data.Starters["Jayson Tatum"])
	require.Equal(t, player.PositionCenter, data.Starters["Nikola Jokić"])
	_, benched := data.Starters["P. Pritchard"]
	require.False(t, benched)
}

func TestRosterService_RestructuredSheetKeepsLastGood(t *testing.T) {
	t.Parallel()

	source := &fakeSheetSource{grids: map[string]grid.Grid{"sheet/1": depthChartGrid()}}
	svc := NewRosterService(source, DepthChartConfig{SheetID: "sheet", GID: "1"}, depthChartHolder(), 0, logging.NewNop())

	first := svc.Refresh(context.Background())
	require.Len(t, first.Chart.Teams, 2)

	// A sheet with a single landmark row means the layout drifted.
	source.grids["sheet/1"] = grid.Grid{
		{"PG", "SG", "SF", "PF", "C"},
		{"D. White", "J. Brown", "J. Tatum", "", ""},
	}
	again := svc.Refresh(context.Background())
	require.Len(t, again.Chart.Teams, 2)

	st := svc.Status()
	require.True(t, st.HasLastGood)
	require.NotEmpty(t, st.LastError)
}

func TestRosterService_UnrecognizedBlockIsUnidentified(t *testing.T) {
	t.Parallel()

	source := &fakeSheetSource{grids: map[string]grid.Grid{"sheet/1": {
		{"PG", "SG", "SF", "PF", "C"},
		{"Someone New", "Another Rookie", "Third Signee", "", ""},
		{"PG", "SG", "SF", "PF", "C"},
		{"J. Murray", "C. Braun", "N. Jokić", "", ""},
	}}}
	svc := NewRosterService(source, DepthChartConfig{SheetID: "sheet", GID: "1"}, depthChartHolder(), time.Hour, logging.NewNop())

	data := svc.Refresh(context.Background())
	require.Len(t, data.Chart.Teams, 2)
	require.Equal(t, "Denver", data.Chart.Teams[0].Name)
	require.Equal(t, roster.UnidentifiedTeam, data.Chart.Teams[1].Name)

	// Unidentified blocks contribute no starting positions.
	for name := range data.Starters {
		_, ok := depthChartHolder().Load().Player(name)
		require.True(t, ok, "starter %q should be canonical", name)
	}
	_, ok := data.Starters["Someone New"]
	require.False(t, ok)
}
