package nbacdn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/courtsidelive/courtside/internal/domain/game"
)

var gameClockRegex = regexp.MustCompile(`PT(\d+)M([\d.]+)S`)
var minutesRegex = regexp.MustCompile(`PT(\d+)M`)

// parseGameClock converts an ISO 8601 duration (PT04M32.00S) to "4:32".
// Empty or zeroed clocks come back as "".
func parseGameClock(isoDuration string) string {
	if isoDuration == "" || isoDuration == "PT00M00.00S" {
		return ""
	}
	m := gameClockRegex.FindStringSubmatch(isoDuration)
	if m == nil {
		return ""
	}
	minutes, _ := strconv.Atoi(m[1])
	secondsFloat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d:%02d", minutes, int(secondsFloat))
}

// parseMinutes extracts whole minutes from a boxscore duration (PT24M30.00S
// becomes "24").
func parseMinutes(isoDuration string) string {
	m := minutesRegex.FindStringSubmatch(isoDuration)
	if m == nil {
		return "0"
	}
	minutes, _ := strconv.Atoi(m[1])
	return strconv.Itoa(minutes)
}

var periodOrdinals = map[int]string{1: "1ST", 2: "2ND", 3: "3RD", 4: "4TH"}

// periodLabel maps period number plus status to a display label.
func periodLabel(period, gameStatus int) string {
	switch gameStatus {
	case 3:
		return "FINAL"
	case 1:
		return "SCHEDULED"
	}
	if period == 0 {
		return "PREGAME"
	}
	if ordinal, ok := periodOrdinals[period]; ok {
		return ordinal + " QTR"
	}
	if period > 4 {
		return fmt.Sprintf("OT%d", period-4)
	}
	return fmt.Sprintf("Q%d", period)
}

func statusString(gameStatus int) string {
	switch gameStatus {
	case 2:
		return game.StatusLive
	case 3:
		return game.StatusFinal
	}
	return game.StatusScheduled
}

// buildQuarters spreads period scores into a fixed-width array with nils for
// unplayed periods, growing past four only when overtime rows exist.
func buildQuarters(periods []sbPeriod) []*int {
	size := 4
	if len(periods) > size {
		size = len(periods)
	}
	scores := make([]*int, size)
	for _, p := range periods {
		idx := p.Period - 1
		if idx >= 0 && idx < len(scores) {
			score := p.Score
			scores[idx] = &score
		}
	}
	return scores
}

// leaderName shortens "Jayson Tatum" to "J. Tatum" for the leaders strip.
func leaderName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "—"
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0][:1] + ". " + parts[len(parts)-1]
}

func formatRecord(wins, losses int) string {
	return fmt.Sprintf("%d-%d", wins, losses)
}

func transformPlayer(p boxPlayer) game.BoxLine {
	s := p.Statistics

	minutesISO := s.MinutesCalculated
	if minutesISO == "" {
		minutesISO = s.Minutes
	}

	pm := strconv.Itoa(int(s.PlusMinusPoints))
	if s.PlusMinusPoints > 0 {
		pm = "+" + pm
	}

	return game.BoxLine{
		Num:   p.JerseyNum,
		Name:  p.displayName(),
		Pos:   p.Position,
		Min:   parseMinutes(minutesISO),
		Pts:   s.Points,
		Reb:   s.ReboundsTotal,
		Ast:   s.Assists,
		Stl:   s.Steals,
		Blk:   s.Blocks,
		Fg:    fmt.Sprintf("%d-%d", s.FieldGoalsMade, s.FieldGoalsAttempted),
		Three: fmt.Sprintf("%d-%d", s.ThreePointersMade, s.ThreePointersAttempted),
		Ft:    fmt.Sprintf("%d-%d", s.FreeThrowsMade, s.FreeThrowsAttempted),
		Pm:    pm,
		To:    s.Turnovers,
	}
}

func transformTeamBoxscore(team boxTeam) game.Boxscore {
	box := game.Boxscore{Starters: []game.BoxLine{}, Bench: []game.BoxLine{}}
	for _, p := range team.Players {
		if p.Status != "ACTIVE" {
			continue
		}
		line := transformPlayer(p)
		if p.Starter == "1" {
			box.Starters = append(box.Starters, line)
		} else {
			box.Bench = append(box.Bench, line)
		}
	}
	return box
}

func teamStatsFromBoxscore(team boxTeam) game.TeamStats {
	s := team.Statistics
	return game.TeamStats{
		FgPct:    fmt.Sprintf("%.1f", s.FieldGoalsPercentage*100),
		ThreePct: fmt.Sprintf("%.1f", s.ThreePointersPercentage*100),
		FtPct:    fmt.Sprintf("%.1f", s.FreeThrowsPercentage*100),
		Reb:      s.ReboundsTotal,
		Ast:      s.Assists,
		Stl:      s.Steals,
		Blk:      s.Blocks,
		To:       s.Turnovers,
	}
}

// leadersFromBoxscore computes per-stat leaders from player lines. The
// scoreboard only names one leader for all three stats, so the boxscore is
// preferred whenever present.
func leadersFromBoxscore(players []boxPlayer) game.Leaders {
	pts, reb, ast := players[0], players[0], players[0]
	for _, p := range players[1:] {
		if p.Statistics.Points > pts.Statistics.Points {
			pts = p
		}
		if p.Statistics.ReboundsTotal > reb.Statistics.ReboundsTotal {
			reb = p
		}
		if p.Statistics.Assists > ast.Statistics.Assists {
			ast = p
		}
	}
	return game.Leaders{
		Pts: game.Leader{Name: leaderName(pts.displayName()), Val: pts.Statistics.Points},
		Reb: game.Leader{Name: leaderName(reb.displayName()), Val: reb.Statistics.ReboundsTotal},
		Ast: game.Leader{Name: leaderName(ast.displayName()), Val: ast.Statistics.Assists},
	}
}

func leadersFromScoreboard(leader sbLeader) game.Leaders {
	name := leaderName(leader.Name)
	return game.Leaders{
		Pts: game.Leader{Name: name, Val: leader.Points},
		Reb: game.Leader{Name: name, Val: leader.Rebounds},
		Ast: game.Leader{Name: name, Val: leader.Assists},
	}
}

func emptyLeaders() game.Leaders {
	blank := game.Leader{Name: "—"}
	return game.Leaders{Pts: blank, Reb: blank, Ast: blank}
}

func buildSide(team sbTeam, boxSide *boxTeam, sbLeaders sbLeader) game.Side {
	side := game.Side{
		Abbr:   team.TeamTricode,
		City:   strings.ToUpper(team.TeamCity),
		Name:   team.TeamName,
		Record: formatRecord(team.Wins, team.Losses),
		Score:  team.Score,
	}

	switch {
	case boxSide != nil && len(boxSide.Players) > 0:
		side.Leaders = leadersFromBoxscore(boxSide.Players)
	case sbLeaders.Name != "":
		side.Leaders = leadersFromScoreboard(sbLeaders)
	default:
		side.Leaders = emptyLeaders()
	}

	if boxSide != nil {
		side.Stats = teamStatsFromBoxscore(*boxSide)
		side.Boxscore = transformTeamBoxscore(*boxSide)
	} else {
		side.Stats = game.TeamStats{FgPct: "0.0", ThreePct: "0.0", FtPct: "0.0"}
		side.Boxscore = game.Boxscore{Starters: []game.BoxLine{}, Bench: []game.BoxLine{}}
	}
	return side
}

// transformGame joins one scoreboard entry with its boxscore detail, when a
// boxscore was fetched, into the served display model.
func transformGame(sb sbGame, box *boxGame) game.Game {
	out := game.Game{
		ID:        sb.GameID,
		Status:    statusString(sb.GameStatus),
		Period:    periodLabel(sb.Period, sb.GameStatus),
		PeriodNum: sb.Period,
		Quarters: game.Quarters{
			Away: buildQuarters(sb.AwayTeam.Periods),
			Home: buildQuarters(sb.HomeTeam.Periods),
		},
	}

	switch sb.GameStatus {
	case 2:
		out.Clock = parseGameClock(sb.GameClock)
	case 1:
		out.Clock = strings.TrimSpace(sb.GameStatusText)
	}

	switch {
	case box != nil && box.Arena.ArenaName != "":
		out.Venue = box.Arena.ArenaName + ", " + box.Arena.ArenaCity
	case sb.ArenaName != "":
		out.Venue = sb.ArenaName + ", " + sb.ArenaCity
	}

	var boxAway, boxHome *boxTeam
	if box != nil {
		boxAway = &box.AwayTeam
		boxHome = &box.HomeTeam
	}
	out.Away = buildSide(sb.AwayTeam, boxAway, sb.GameLeaders.AwayLeaders)
	out.Home = buildSide(sb.HomeTeam, boxHome, sb.GameLeaders.HomeLeaders)
	return out
}
