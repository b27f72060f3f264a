package player

import "fmt"

// Position represents the five lineup position codes used by depth charts.
type Position string

const (
	PositionPointGuard    Position = "PG"
	PositionShootingGuard Position = "SG"
	PositionSmallForward  Position = "SF"
	PositionPowerForward  Position = "PF"
	PositionCenter        Position = "C"
)

// PositionOrder is the left-to-right column order of depth chart grids.
var PositionOrder = []Position{
	PositionPointGuard,
	PositionShootingGuard,
	PositionSmallForward,
	PositionPowerForward,
	PositionCenter,
}

var AllPositions = map[Position]struct{}{
	PositionPointGuard:    {},
	PositionShootingGuard: {},
	PositionSmallForward:  {},
	PositionPowerForward:  {},
	PositionCenter:        {},
}

func ParsePosition(s string) (Position, bool) {
	p := Position(s)
	_, ok := AllPositions[p]
	return p, ok
}

// Player is one canonical identity. The canonical full-name string is the
// primary key across every source; no synthetic ID exists.
type Player struct {
	Name     string
	Team     string
	Position Position
	Salary   int64
}

// SalaryMillions is the denominator for value-for-money ratings.
func (p Player) SalaryMillions() float64 {
	return float64(p.Salary) / 1_000_000
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Salary < 0 {
		return fmt.Errorf("player salary cannot be negative")
	}
	if p.Position != "" {
		if _, ok := AllPositions[p.Position]; !ok {
			return fmt.Errorf("invalid player position: %s", p.Position)
		}
	}
	return nil
}
