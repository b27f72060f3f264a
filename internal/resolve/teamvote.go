package resolve

import (
	"sort"

	"github.com/courtsidelive/courtside/internal/domain/roster"
)

// VoteResult describes how a block was assigned to a team.
type VoteResult struct {
	Team    string
	Votes   int
	Matched int // names that resolved to any team
	Total   int // names considered
}

// AssignTeam tallies team membership evidence for names found inside one
// depth chart block: every name that resolves to a known team casts one vote
// for that team, and the block belongs to the team with the most votes. Team
// names are tallied in sorted order so ties break deterministically across
// rebuilds. A block with zero votes is labeled UnidentifiedTeam rather than
// guessed.
func (s *Snapshot) AssignTeam(names []string) VoteResult {
	votes := make(map[string]int)
	result := VoteResult{Team: roster.UnidentifiedTeam}

	for _, raw := range names {
		if raw == "" {
			continue
		}
		result.Total++
		team, ok := s.TeamOf(s.Resolve(raw))
		if !ok {
			continue
		}
		result.Matched++
		votes[team]++
	}

	if len(votes) == 0 {
		return result
	}

	teams := make([]string, 0, len(votes))
	for team := range votes {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	for _, team := range teams {
		if votes[team] > result.Votes {
			result.Team = team
			result.Votes = votes[team]
		}
	}
	return result
}
