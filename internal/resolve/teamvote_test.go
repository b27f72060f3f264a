package resolve

import (
	"testing"

	"github.com/courtsidelive/courtside/internal/domain/player"
	"github.com/courtsidelive/courtside/internal/domain/roster"
)

func TestAssignTeam_MajorityWins(t *testing.T) {
	t.Parallel()

	s := BuildSnapshot([]player.Player{
		{Name: "Jayson Tatum", Team: "Boston"},
		{Name: "Jaylen Brown", Team: "Boston"},
		{Name: "Derrick White", Team: "Boston"},
		{Name: "Payton Pritchard", Team: "Boston"},
		{Name: "Stray Entry", Team: "UNKNOWN"},
	})

	got := s.AssignTeam([]string{
		"J. Tatum", "J. Brown", "D. White", "P. Pritchard", "Stray Entry",
	})
	if got.Team != "Boston" {
		t.Fatalf("assigned %q, want Boston", got.Team)
	}
	if got.Votes != 4 || got.Matched != 5 || got.Total != 5 {
		t.Fatalf("tally = %+v", got)
	}
}

func TestAssignTeam_NoVotes(t *testing.T) {
	t.Parallel()

	s := BuildSnapshot(nil)
	got := s.AssignTeam([]string{"Nobody Here", "Also Unknown", ""})
	if got.Team != roster.UnidentifiedTeam {
		t.Fatalf("assigned %q, want %q", got.Team, roster.UnidentifiedTeam)
	}
	if got.Votes != 0 || got.Matched != 0 || got.Total != 2 {
		t.Fatalf("tally = %+v", got)
	}
}

func TestAssignTeam_TieBreaksAlphabetically(t *testing.T) {
	t.Parallel()

	s := BuildSnapshot([]player.Player{
		{Name: "Alpha One", Team: "Utah"},
		{Name: "Beta Two", Team: "Denver"},
	})

	got := s.AssignTeam([]string{"Alpha One", "Beta Two"})
	if got.Team != "Denver" {
		t.Fatalf("assigned %q, want Denver on a 1-1 tie", got.Team)
	}
}
