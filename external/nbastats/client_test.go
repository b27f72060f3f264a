package nbastats

import (
	"testing"
)

func TestBuildTable(t *testing.T) {
	t.Parallel()

	envelope := resultSetEnvelope{ResultSets: []resultSet{{
		Name:    "LeagueDashPlayerStats",
		Headers: []string{"PLAYER_ID", "PLAYER_NAME", "TEAM_ABBREVIATION", "GP", "PTS"},
		RowSet: [][]any{
			{float64(203999), "Nikola Jokic", "DEN", float64(65), float64(26.4)},
			{float64(2544), " LeBron James ", "LAL", float64(60), float64(25.1)},
			{float64(1), "", "???", float64(1), float64(1)},
			{float64(2), nil, "???", float64(1), float64(1)},
		},
	}}}

	table := buildTable(envelope)
	if len(table) != 2 {
		t.Fatalf("got %d rows", len(table))
	}

	jokic := table["Nikola Jokic"]
	if jokic.Value("PTS") != 26.4 || jokic.Value("GP") != 65 {
		t.Errorf("jokic bag = %v", jokic)
	}
	// String columns are not part of the bag.
	if _, ok := jokic["TEAM_ABBREVIATION"]; ok {
		t.Error("string column leaked into bag")
	}
	// Names are trimmed before keying.
	if _, ok := table["LeBron James"]; !ok {
		t.Error("padded name not trimmed")
	}
}

func TestBuildTable_MissingNameColumn(t *testing.T) {
	t.Parallel()

	envelope := resultSetEnvelope{ResultSets: []resultSet{{
		Headers: []string{"TEAM_ID", "PTS"},
		RowSet:  [][]any{{float64(1), float64(110.5)}},
	}}}
	if table := buildTable(envelope); table != nil {
		t.Fatalf("expected nil table, got %v", table)
	}

	if table := buildTable(resultSetEnvelope{}); table != nil {
		t.Fatalf("expected nil table for empty envelope, got %v", table)
	}
}

func TestMeasureRequests(t *testing.T) {
	t.Parallel()

	requests := measureRequests("2025-26")
	if len(requests) != 5 {
		t.Fatalf("got %d measure requests", len(requests))
	}
	for measure, req := range requests {
		if req.path == "" {
			t.Errorf("%s: empty path", measure)
		}
		if req.query["Season"] != "2025-26" {
			t.Errorf("%s: season not threaded through", measure)
		}
	}
}
