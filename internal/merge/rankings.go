package merge

import (
	"fmt"
	"sort"

	"github.com/courtsidelive/courtside/internal/domain/player"
	"github.com/courtsidelive/courtside/internal/domain/stats"
	"github.com/courtsidelive/courtside/internal/resolve"
)

// ValueDirection selects which end of the value-for-money board to build.
type ValueDirection string

const (
	BestValue  ValueDirection = "best"
	WorstValue ValueDirection = "worst"
)

func ParseValueDirection(s string) (ValueDirection, bool) {
	switch ValueDirection(s) {
	case BestValue, WorstValue:
		return ValueDirection(s), true
	}
	return "", false
}

const (
	// DefaultBoardSize is the top-slice length of every ranking board.
	DefaultBoardSize = 10

	// minGamesPlayed keeps small-sample players off ranking boards.
	minGamesPlayed = 15

	// minValueSalary excludes two-way and minimum deals whose tiny
	// denominators would dominate the best-value board.
	minValueSalary = int64(2_000_000)

	// topEarnerSalary restricts the worst-value board to players paid
	// enough for the label to mean something.
	topEarnerSalary = int64(20_000_000)
)

// RankedPlayer is one row of a ranking board.
type RankedPlayer struct {
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Team     string  `json:"team,omitempty"`
	Position string  `json:"position,omitempty"`
	Rating   float64 `json:"rating"`
	Games    float64 `json:"games"`
	Salary   int64   `json:"salary,omitempty"`
	Value    float64 `json:"value,omitempty"`
}

// Board is one complete ranking screen.
type Board struct {
	Title   string         `json:"title"`
	Players []RankedPlayer `json:"players"`
}

// Rating is the single headline number boards sort by: player impact
// estimate scaled to a readable 0-100 range.
func (e *Engine) Rating(snap *resolve.Snapshot, set stats.Set, name string) float64 {
	return e.Lookup(snap, set.Table(stats.MeasureAdvanced), name).Value("PIE") * 100
}

// PositionLeaders ranks every player whose depth chart starting position
// matches pos. Position assignments come from the roster pipeline, not the
// authoritative salary source, because only the depth chart knows where a
// player actually starts.
func (e *Engine) PositionLeaders(snap *resolve.Snapshot, set stats.Set, assignments map[string]player.Position, pos player.Position, limit int) Board {
	board := Board{Title: fmt.Sprintf("Top %s", pos)}

	rows := make([]RankedPlayer, 0, 64)
	for name, assigned := range assignments {
		if assigned != pos {
			continue
		}
		games := e.Lookup(snap, set.Table(stats.MeasureTotals), name).Value("GP")
		if games < minGamesPlayed {
			continue
		}
		row := RankedPlayer{
			Name:     name,
			Position: string(pos),
			Rating:   e.Rating(snap, set, name),
			Games:    games,
		}
		if team, ok := snap.TeamOf(name); ok {
			row.Team = team
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].Name < rows[j].Name
	})

	board.Players = takeRanked(rows, limit)
	return board
}

// ValueBoard ranks rating earned per salary million. Best value surfaces
// cheap overperformers; worst value is restricted to top earners so it reads
// as "expensive underperformers" rather than "anyone having a bad year".
func (e *Engine) ValueBoard(snap *resolve.Snapshot, set stats.Set, direction ValueDirection, limit int) Board {
	board := Board{Title: "Best Value"}
	if direction == WorstValue {
		board.Title = "Worst Value"
	}

	rows := make([]RankedPlayer, 0, 64)
	for _, p := range snap.Players() {
		if p.Salary < minValueSalary {
			continue
		}
		if direction == WorstValue && p.Salary < topEarnerSalary {
			continue
		}
		games := e.Lookup(snap, set.Table(stats.MeasureTotals), p.Name).Value("GP")
		if games < minGamesPlayed {
			continue
		}
		rating := e.Rating(snap, set, p.Name)
		rows = append(rows, RankedPlayer{
			Name:   p.Name,
			Team:   p.Team,
			Rating: rating,
			Games:  games,
			Salary: p.Salary,
			Value:  rating / p.SalaryMillions(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			if direction == WorstValue {
				return rows[i].Value < rows[j].Value
			}
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Name < rows[j].Name
	})

	board.Players = takeRanked(rows, limit)
	return board
}

func takeRanked(rows []RankedPlayer, limit int) []RankedPlayer {
	if limit <= 0 {
		limit = DefaultBoardSize
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
