package game

// Status values as served to consumers.
const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinal     = "final"
)

// Leader is one stat leader entry for a team side.
type Leader struct {
	Name string `json:"name"`
	Val  int    `json:"val"`
}

// Leaders holds the per-stat leaders for one side.
type Leaders struct {
	Pts Leader `json:"pts"`
	Reb Leader `json:"reb"`
	Ast Leader `json:"ast"`
}

// TeamStats is the shooting and hustle summary line for one side.
// Percentages are preformatted strings ("47.3") because consumers render
// them verbatim.
type TeamStats struct {
	FgPct    string `json:"fgPct"`
	ThreePct string `json:"threePct"`
	FtPct    string `json:"ftPct"`
	Reb      int    `json:"reb"`
	Ast      int    `json:"ast"`
	Stl      int    `json:"stl"`
	Blk      int    `json:"blk"`
	To       int    `json:"to"`
}

// BoxLine is one player's boxscore row.
type BoxLine struct {
	Num   string `json:"num"`
	Name  string `json:"name"`
	Pos   string `json:"pos"`
	Min   string `json:"min"`
	Pts   int    `json:"pts"`
	Reb   int    `json:"reb"`
	Ast   int    `json:"ast"`
	Stl   int    `json:"stl"`
	Blk   int    `json:"blk"`
	Fg    string `json:"fg"`
	Three string `json:"three"`
	Ft    string `json:"ft"`
	Pm    string `json:"pm"`
	To    int    `json:"to"`
}

// Boxscore splits active players into starters and bench.
type Boxscore struct {
	Starters []BoxLine `json:"starters"`
	Bench    []BoxLine `json:"bench"`
}

// Side is one team's half of a game.
type Side struct {
	Abbr     string    `json:"abbr"`
	City     string    `json:"city"`
	Name     string    `json:"name"`
	Record   string    `json:"record"`
	Score    int       `json:"score"`
	Leaders  Leaders   `json:"leaders"`
	Stats    TeamStats `json:"stats"`
	Boxscore Boxscore  `json:"boxscore"`
}

// Quarters holds per-period scores; unplayed periods are nil so consumers
// can render them as blanks.
type Quarters struct {
	Away []*int `json:"away"`
	Home []*int `json:"home"`
}

// Game is one scoreboard entry with boxscore detail when available.
type Game struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	Period    string   `json:"period"`
	PeriodNum int      `json:"periodNum"`
	Clock     string   `json:"clock"`
	Venue     string   `json:"venue"`
	Quarters  Quarters `json:"quarters"`
	Away      Side     `json:"away"`
	Home      Side     `json:"home"`
}

// AnyLive reports whether at least one game is in progress.
func AnyLive(games []Game) bool {
	for _, g := range games {
		if g.Status == StatusLive {
			return true
		}
	}
	return false
}
