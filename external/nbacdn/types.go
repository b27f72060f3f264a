package nbacdn

// Wire shapes for the liveData CDN endpoints. Only the fields the transform
// reads are declared; the payloads carry far more.

type scoreboardEnvelope struct {
	Scoreboard struct {
		GameDate string   `json:"gameDate"`
		Games    []sbGame `json:"games"`
	} `json:"scoreboard"`
}

type sbGame struct {
	GameID         string `json:"gameId"`
	GameStatus     int    `json:"gameStatus"`
	GameStatusText string `json:"gameStatusText"`
	Period         int    `json:"period"`
	GameClock      string `json:"gameClock"`
	ArenaName      string `json:"arenaName"`
	ArenaCity      string `json:"arenaCity"`
	HomeTeam       sbTeam `json:"homeTeam"`
	AwayTeam       sbTeam `json:"awayTeam"`
	GameLeaders    struct {
		HomeLeaders sbLeader `json:"homeLeaders"`
		AwayLeaders sbLeader `json:"awayLeaders"`
	} `json:"gameLeaders"`
}

type sbTeam struct {
	TeamTricode string     `json:"teamTricode"`
	TeamCity    string     `json:"teamCity"`
	TeamName    string     `json:"teamName"`
	Wins        int        `json:"wins"`
	Losses      int        `json:"losses"`
	Score       int        `json:"score"`
	Periods     []sbPeriod `json:"periods"`
}

type sbPeriod struct {
	Period     int    `json:"period"`
	PeriodType string `json:"periodType"`
	Score      int    `json:"score"`
}

type sbLeader struct {
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Rebounds int    `json:"rebounds"`
	Assists  int    `json:"assists"`
}

type boxscoreEnvelope struct {
	Game boxGame `json:"game"`
}

type boxGame struct {
	GameID string `json:"gameId"`
	Arena  struct {
		ArenaName string `json:"arenaName"`
		ArenaCity string `json:"arenaCity"`
	} `json:"arena"`
	HomeTeam boxTeam `json:"homeTeam"`
	AwayTeam boxTeam `json:"awayTeam"`
}

type boxTeam struct {
	Statistics boxTeamStats `json:"statistics"`
	Players    []boxPlayer  `json:"players"`
}

type boxTeamStats struct {
	FieldGoalsPercentage    float64 `json:"fieldGoalsPercentage"`
	ThreePointersPercentage float64 `json:"threePointersPercentage"`
	FreeThrowsPercentage    float64 `json:"freeThrowsPercentage"`
	ReboundsTotal           int     `json:"reboundsTotal"`
	Assists                 int     `json:"assists"`
	Steals                  int     `json:"steals"`
	Blocks                  int     `json:"blocks"`
	Turnovers               int     `json:"turnovers"`
}

type boxPlayer struct {
	Status     string         `json:"status"`
	Starter    string         `json:"starter"`
	JerseyNum  string         `json:"jerseyNum"`
	NameI      string         `json:"nameI"`
	FirstName  string         `json:"firstName"`
	FamilyName string         `json:"familyName"`
	Position   string         `json:"position"`
	Statistics boxPlayerStats `json:"statistics"`
}

type boxPlayerStats struct {
	Minutes                string  `json:"minutes"`
	MinutesCalculated      string  `json:"minutesCalculated"`
	Points                 int     `json:"points"`
	ReboundsTotal          int     `json:"reboundsTotal"`
	Assists                int     `json:"assists"`
	Steals                 int     `json:"steals"`
	Blocks                 int     `json:"blocks"`
	Turnovers              int     `json:"turnovers"`
	FieldGoalsMade         int     `json:"fieldGoalsMade"`
	FieldGoalsAttempted    int     `json:"fieldGoalsAttempted"`
	ThreePointersMade      int     `json:"threePointersMade"`
	ThreePointersAttempted int     `json:"threePointersAttempted"`
	FreeThrowsMade         int     `json:"freeThrowsMade"`
	FreeThrowsAttempted    int     `json:"freeThrowsAttempted"`
	PlusMinusPoints        float64 `json:"plusMinusPoints"`
}

func (p boxPlayer) displayName() string {
	if p.NameI != "" {
		return p.NameI
	}
	return p.FirstName + " " + p.FamilyName
}
