package nbacdn

import (
	"testing"

	"github.com/courtsidelive/courtside/internal/domain/game"
)

func TestParseGameClock(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"PT04M32.00S": "4:32",
		"PT12M00.00S": "12:00",
		"PT00M09.70S": "0:09",
		"PT00M00.00S": "",
		"":            "",
		"garbage":     "",
	}
	for in, want := range cases {
		if got := parseGameClock(in); got != want {
			t.Errorf("parseGameClock(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		period, status int
		want           string
	}{
		{0, 1, "SCHEDULED"},
		{4, 3, "FINAL"},
		{0, 2, "PREGAME"},
		{1, 2, "1ST QTR"},
		{3, 2, "3RD QTR"},
		{4, 2, "4TH QTR"},
		{5, 2, "OT1"},
		{7, 2, "OT3"},
	}
	for _, tc := range cases {
		if got := periodLabel(tc.period, tc.status); got != tc.want {
			t.Errorf("periodLabel(%d, %d) = %q, want %q", tc.period, tc.status, got, tc.want)
		}
	}
}

func TestBuildQuarters(t *testing.T) {
	t.Parallel()

	quarters := buildQuarters([]sbPeriod{
		{Period: 1, Score: 28},
		{Period: 2, Score: 31},
	})
	if len(quarters) != 4 {
		t.Fatalf("got %d quarters", len(quarters))
	}
	if quarters[0] == nil || *quarters[0] != 28 {
		t.Errorf("q1 = %v", quarters[0])
	}
	if quarters[1] == nil || *quarters[1] != 31 {
		t.Errorf("q2 = %v", quarters[1])
	}
	if quarters[2] != nil || quarters[3] != nil {
		t.Error("unplayed quarters must be nil")
	}

	overtime := buildQuarters([]sbPeriod{
		{Period: 1, Score: 25}, {Period: 2, Score: 30},
		{Period: 3, Score: 22}, {Period: 4, Score: 28},
		{Period: 5, Score: 12},
	})
	if len(overtime) != 5 {
		t.Fatalf("overtime game has %d periods", len(overtime))
	}
	if overtime[4] == nil || *overtime[4] != 12 {
		t.Errorf("ot = %v", overtime[4])
	}
}

func TestLeaderName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Jayson Tatum":            "J. Tatum",
		"Shai Gilgeous-Alexander": "S. Gilgeous-Alexander",
		"Nene":                    "Nene",
		"":                        "—",
	}
	for in, want := range cases {
		if got := leaderName(in); got != want {
			t.Errorf("leaderName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTransformGame_LiveWithBoxscore(t *testing.T) {
	t.Parallel()

	sb := sbGame{
		GameID:     "0022500123",
		GameStatus: 2,
		Period:     3,
		GameClock:  "PT07M45.00S",
		AwayTeam: sbTeam{
			TeamTricode: "BOS", TeamCity: "Boston", TeamName: "Celtics",
			Wins: 40, Losses: 12, Score: 78,
			Periods: []sbPeriod{{Period: 1, Score: 28}, {Period: 2, Score: 30}, {Period: 3, Score: 20}},
		},
		HomeTeam: sbTeam{
			TeamTricode: "NYK", TeamCity: "New York", TeamName: "Knicks",
			Wins: 35, Losses: 17, Score: 74,
			Periods: []sbPeriod{{Period: 1, Score: 25}, {Period: 2, Score: 29}, {Period: 3, Score: 20}},
		},
	}
	box := &boxGame{
		HomeTeam: boxTeam{
			Statistics: boxTeamStats{FieldGoalsPercentage: 0.473, ReboundsTotal: 30},
			Players: []boxPlayer{
				{
					Status: "ACTIVE", Starter: "1", JerseyNum: "11", NameI: "J. Brunson", Position: "PG",
					Statistics: boxPlayerStats{Minutes: "PT28M30.00S", Points: 24, Assists: 7, PlusMinusPoints: 5},
				},
				{
					Status: "ACTIVE", Starter: "0", JerseyNum: "23", NameI: "M. Robinson",
					Statistics: boxPlayerStats{Minutes: "PT14M10.00S", Points: 6, ReboundsTotal: 9, PlusMinusPoints: -3},
				},
				{Status: "INACTIVE", NameI: "P. Achiuwa"},
			},
		},
	}
	box.Arena.ArenaName = "Madison Square Garden"
	box.Arena.ArenaCity = "New York"

	got := transformGame(sb, box)

	if got.Status != game.StatusLive || got.Period != "3RD QTR" || got.Clock != "7:45" {
		t.Fatalf("status/period/clock = %q/%q/%q", got.Status, got.Period, got.Clock)
	}
	if got.Venue != "Madison Square Garden, New York" {
		t.Errorf("venue = %q", got.Venue)
	}
	if got.Away.City != "BOSTON" || got.Away.Record != "40-12" || got.Away.Score != 78 {
		t.Errorf("away side = %+v", got.Away)
	}

	home := got.Home
	if home.Stats.FgPct != "47.3" || home.Stats.Reb != 30 {
		t.Errorf("home stats = %+v", home.Stats)
	}
	if len(home.Boxscore.Starters) != 1 || len(home.Boxscore.Bench) != 1 {
		t.Fatalf("boxscore split %d/%d", len(home.Boxscore.Starters), len(home.Boxscore.Bench))
	}
	starter := home.Boxscore.Starters[0]
	if starter.Name != "J. Brunson" || starter.Min != "28" || starter.Pm != "+5" {
		t.Errorf("starter line = %+v", starter)
	}
	if home.Leaders.Pts.Name != "J. Brunson" || home.Leaders.Pts.Val != 24 {
		t.Errorf("pts leader = %+v", home.Leaders.Pts)
	}
	if home.Leaders.Reb.Name != "M. Robinson" || home.Leaders.Reb.Val != 9 {
		t.Errorf("reb leader = %+v", home.Leaders.Reb)
	}

	// Away side has no boxscore and no scoreboard leaders.
	if got.Away.Leaders.Pts.Name != "—" {
		t.Errorf("away pts leader = %+v", got.Away.Leaders.Pts)
	}
	if got.Away.Stats.FgPct != "0.0" {
		t.Errorf("away stats = %+v", got.Away.Stats)
	}
}

func TestTransformGame_ScheduledUsesStatusText(t *testing.T) {
	t.Parallel()

	sb := sbGame{
		GameID:         "0022500124",
		GameStatus:     1,
		GameStatusText: "7:00 pm ET",
		ArenaName:      "Ball Arena",
		ArenaCity:      "Denver",
	}
	got := transformGame(sb, nil)
	if got.Status != game.StatusScheduled || got.Clock != "7:00 pm ET" {
		t.Fatalf("status/clock = %q/%q", got.Status, got.Clock)
	}
	if got.Venue != "Ball Arena, Denver" {
		t.Errorf("venue = %q", got.Venue)
	}
}
