package merge

import (
	"github.com/courtsidelive/courtside/internal/domain/stats"
	"github.com/courtsidelive/courtside/internal/resolve"
)

// Winner tags which side of a comparison row came out ahead.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "tie"
)

// StatRow is one compared statistic. Fmt is the printf verb consumers use to
// render both values.
type StatRow struct {
	Label  string  `json:"label"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	Fmt    string  `json:"fmt"`
	Winner Winner  `json:"winner"`
}

// Section groups rows sharing a theme and tallies rows won per side.
type Section struct {
	Label  string    `json:"label"`
	Stats  []StatRow `json:"stats"`
	ScoreA int       `json:"scoreA"`
	ScoreB int       `json:"scoreB"`
}

// Comparison is the full head-to-head artifact for two players.
type Comparison struct {
	NameA    string    `json:"nameA"`
	NameB    string    `json:"nameB"`
	TeamA    string    `json:"teamA,omitempty"`
	TeamB    string    `json:"teamB,omitempty"`
	Sections []Section `json:"sections"`
	ScoreA   int       `json:"scoreA"`
	ScoreB   int       `json:"scoreB"`
}

type statSpec struct {
	label         string
	key           string
	measure       stats.Measure
	fmt           string
	lowerIsBetter bool
}

type sectionSpec struct {
	label string
	stats []statSpec
}

// comparisonSections fixes row order and formatting for every comparison.
// Keys are the column headers the statistics source publishes.
var comparisonSections = []sectionSpec{
	{label: "Counting Stats", stats: []statSpec{
		{label: "Games", key: "GP", measure: stats.MeasureTotals, fmt: "%.0f"},
		{label: "Minutes", key: "MIN", measure: stats.MeasureTotals, fmt: "%.1f"},
		{label: "Points", key: "PTS", measure: stats.MeasureTotals, fmt: "%.1f"},
		{label: "Rebounds", key: "REB", measure: stats.MeasureTotals, fmt: "%.1f"},
		{label: "Assists", key: "AST", measure: stats.MeasureTotals, fmt: "%.1f"},
		{label: "FG%", key: "FG_PCT", measure: stats.MeasureTotals, fmt: "%.3f"},
		{label: "3P%", key: "FG3_PCT", measure: stats.MeasureTotals, fmt: "%.3f"},
		{label: "FT%", key: "FT_PCT", measure: stats.MeasureTotals, fmt: "%.3f"},
		{label: "Turnovers", key: "TOV", measure: stats.MeasureTotals, fmt: "%.1f", lowerIsBetter: true},
	}},
	{label: "Advanced", stats: []statSpec{
		{label: "Off Rating", key: "OFF_RATING", measure: stats.MeasureAdvanced, fmt: "%.1f"},
		{label: "Def Rating", key: "DEF_RATING", measure: stats.MeasureAdvanced, fmt: "%.1f", lowerIsBetter: true},
		{label: "Net Rating", key: "NET_RATING", measure: stats.MeasureAdvanced, fmt: "%.1f"},
		{label: "True Shooting", key: "TS_PCT", measure: stats.MeasureAdvanced, fmt: "%.3f"},
		{label: "Usage", key: "USG_PCT", measure: stats.MeasureAdvanced, fmt: "%.3f"},
		{label: "PIE", key: "PIE", measure: stats.MeasureAdvanced, fmt: "%.3f"},
	}},
	{label: "Defense", stats: []statSpec{
		{label: "Steals", key: "STL", measure: stats.MeasureTotals, fmt: "%.1f"},
		{label: "Blocks", key: "BLK", measure: stats.MeasureTotals, fmt: "%.1f"},
		{label: "Opp FG%", key: "D_FG_PCT", measure: stats.MeasureDefense, fmt: "%.3f", lowerIsBetter: true},
		{label: "FG% Diff", key: "PCT_PLUSMINUS", measure: stats.MeasureDefense, fmt: "%.3f", lowerIsBetter: true},
	}},
	{label: "Clutch", stats: []statSpec{
		{label: "Clutch Points", key: "PTS", measure: stats.MeasureClutch, fmt: "%.1f"},
		{label: "Clutch FG%", key: "FG_PCT", measure: stats.MeasureClutch, fmt: "%.3f"},
		{label: "Clutch +/-", key: "PLUS_MINUS", measure: stats.MeasureClutch, fmt: "%.1f"},
		{label: "Clutch TO", key: "TOV", measure: stats.MeasureClutch, fmt: "%.1f", lowerIsBetter: true},
	}},
	{label: "Hustle", stats: []statSpec{
		{label: "Deflections", key: "DEFLECTIONS", measure: stats.MeasureHustle, fmt: "%.1f"},
		{label: "Contested Shots", key: "CONTESTED_SHOTS", measure: stats.MeasureHustle, fmt: "%.1f"},
		{label: "Screen Assists", key: "SCREEN_ASSISTS", measure: stats.MeasureHustle, fmt: "%.1f"},
		{label: "Loose Balls", key: "LOOSE_BALLS_RECOVERED", measure: stats.MeasureHustle, fmt: "%.1f"},
		{label: "Charges Drawn", key: "CHARGES_DRAWN", measure: stats.MeasureHustle, fmt: "%.1f"},
		{label: "Box Outs", key: "BOX_OUTS", measure: stats.MeasureHustle, fmt: "%.1f"},
	}},
}

// Compare builds the head-to-head artifact for two raw name spellings. Inputs
// run through the alias resolver first, so "L. James" works anywhere the
// canonical form does. Missing bags contribute zeros, never errors.
func (e *Engine) Compare(snap *resolve.Snapshot, set stats.Set, rawA, rawB string) Comparison {
	nameA := snap.Resolve(rawA)
	nameB := snap.Resolve(rawB)

	cmp := Comparison{NameA: nameA, NameB: nameB}
	if team, ok := snap.TeamOf(nameA); ok {
		cmp.TeamA = team
	}
	if team, ok := snap.TeamOf(nameB); ok {
		cmp.TeamB = team
	}

	bagsA := make(map[stats.Measure]stats.Bag, len(stats.AllMeasures))
	bagsB := make(map[stats.Measure]stats.Bag, len(stats.AllMeasures))
	for _, m := range stats.AllMeasures {
		bagsA[m] = e.Lookup(snap, set.Table(m), nameA)
		bagsB[m] = e.Lookup(snap, set.Table(m), nameB)
	}

	cmp.Sections = make([]Section, 0, len(comparisonSections))
	for _, ss := range comparisonSections {
		section := Section{Label: ss.label, Stats: make([]StatRow, 0, len(ss.stats))}
		for _, spec := range ss.stats {
			row := StatRow{
				Label:  spec.label,
				A:      bagsA[spec.measure].Value(spec.key),
				B:      bagsB[spec.measure].Value(spec.key),
				Fmt:    spec.fmt,
				Winner: decideWinner(bagsA[spec.measure].Value(spec.key), bagsB[spec.measure].Value(spec.key), spec.lowerIsBetter),
			}
			switch row.Winner {
			case WinnerA:
				section.ScoreA++
			case WinnerB:
				section.ScoreB++
			}
			section.Stats = append(section.Stats, row)
		}
		cmp.ScoreA += section.ScoreA
		cmp.ScoreB += section.ScoreB
		cmp.Sections = append(cmp.Sections, section)
	}
	return cmp
}

func decideWinner(a, b float64, lowerIsBetter bool) Winner {
	if a == b {
		return WinnerTie
	}
	aWins := a > b
	if lowerIsBetter {
		aWins = !aWins
	}
	if aWins {
		return WinnerA
	}
	return WinnerB
}
