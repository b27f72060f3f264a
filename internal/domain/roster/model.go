package roster

import "github.com/courtsidelive/courtside/internal/domain/player"

// UnidentifiedTeam labels a depth chart block whose membership evidence
// matched no known team. Blocks carrying it are excluded from the canonical
// player-to-team map.
const UnidentifiedTeam = "UNIDENTIFIED"

// Slot is one position's entry within a depth tier.
type Slot struct {
	Pos    player.Position `json:"pos"`
	Name   string          `json:"name"`
	Salary string          `json:"salary,omitempty"`
}

// Level is one depth tier of a team: up to five slots plus an optional
// salary companion row carried from the source grid.
type Level struct {
	Label string `json:"label"`
	Slots []Slot `json:"players"`
}

// Team is one reconciled depth chart block.
type Team struct {
	Name   string  `json:"name"`
	Levels []Level `json:"levels"`
}

// Chart is the full reconciled depth chart across the league.
type Chart struct {
	Teams []Team `json:"teams"`
}

func (c Chart) TeamNames() []string {
	names := make([]string, 0, len(c.Teams))
	for _, t := range c.Teams {
		names = append(names, t.Name)
	}
	return names
}

// LevelLabel names depth tiers by their order inside a block.
func LevelLabel(idx int) string {
	switch idx {
	case 0:
		return "Starters"
	case 1:
		return "Bench"
	case 2:
		return "Third Unit"
	default:
		return "Reserves"
	}
}
