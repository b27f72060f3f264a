package grid

import (
	"testing"
)

var posLabels = []string{"PG", "SG", "SF", "PF", "C"}

func landmarkRow() []string {
	return []string{"PG", "SG", "SF", "PF", "C"}
}

func TestLabelLandmark_MatchThreshold(t *testing.T) {
	t.Parallel()

	fn := LabelLandmark(posLabels, DefaultMinLandmarkMatches)

	cases := []struct {
		name string
		row  []string
		want bool
	}{
		{"all five", []string{"PG", "SG", "SF", "PF", "C"}, true},
		{"any order", []string{"C", "PF", "SF", "SG", "PG"}, true},
		{"duplicated label still matches", []string{"PG", "PG", "SF", "PF", "C"}, true},
		{"three of five", []string{"PG", "SG", "SF", "x", "y"}, true},
		{"two of five", []string{"PG", "SG", "x", "y", "z"}, false},
		{"names row", []string{"LeBron James", "Austin Reaves", "", "", ""}, false},
		{"empty", []string{"", "", "", "", ""}, false},
	}

	for _, tc := range cases {
		if got := fn(tc.row); got != tc.want {
			t.Errorf("%s: landmark=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSegment_TooFewLandmarksReturnsNil(t *testing.T) {
	t.Parallel()

	s := NewSegmenter(LabelLandmark(posLabels, DefaultMinLandmarkMatches), DefaultWidth, nil)

	g := Grid{
		landmarkRow(),
		{"A Player", "B Player", "C Player", "D Player", "E Player"},
	}
	if got := s.Segment(g); got != nil {
		t.Fatalf("one landmark should signal restructure, got %d blocks", len(got))
	}
	if got := s.Segment(Grid{{"junk"}}); got != nil {
		t.Fatalf("zero landmarks should signal restructure, got %d blocks", len(got))
	}
}

func TestSegment_BlockPerLandmark(t *testing.T) {
	t.Parallel()

	s := NewSegmenter(LabelLandmark(posLabels, DefaultMinLandmarkMatches), DefaultWidth, nil)

	g := Grid{
		landmarkRow(),
		{"A", "B", "C", "D", "E"},
		landmarkRow(),
		{"F", "G", "H", "I", "J"},
		landmarkRow(),
		{"K", "L", "M", "N", "O"},
	}
	blocks := s.Segment(g)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	if blocks[0].Start != 1 || blocks[0].End != 2 {
		t.Fatalf("first block range [%d,%d), want [1,2)", blocks[0].Start, blocks[0].End)
	}
}

func TestSegment_TrailingLandmarkWithoutDataDropped(t *testing.T) {
	t.Parallel()

	s := NewSegmenter(LabelLandmark(posLabels, DefaultMinLandmarkMatches), DefaultWidth, nil)

	g := Grid{
		landmarkRow(),
		{"A", "B", "C", "D", "E"},
		landmarkRow(),
	}
	blocks := s.Segment(g)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
}

func TestSegment_LevelGrouping(t *testing.T) {
	t.Parallel()

	s := NewSegmenter(LabelLandmark(posLabels, DefaultMinLandmarkMatches), DefaultWidth, nil)

	// One block: a names row with salary companion, a blank row, then a
	// names row without companion.
	g := Grid{
		landmarkRow(),
		{"LeBron James", "Austin Reaves", "Rui Hachimura", "LeBron James", "Jaxson Hayes"},
		{"$52,627,153", "$13,937,574", "$18,259,259", "$52,627,153", "$2,463,490"},
		{"", "", "", "", ""},
		{"Gabe Vincent", "Dalton Knecht", "", "", ""},
		landmarkRow(),
		{"A", "B", "C", "D", "E"},
	}

	blocks := s.Segment(g)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	levels := blocks[0].Levels
	if len(levels) != 2 {
		t.Fatalf("got %d levels, want 2", len(levels))
	}
	if levels[0].Salaries == nil {
		t.Fatal("first level should carry its salary companion row")
	}
	if levels[0].Salaries[0] != "$52,627,153" {
		t.Fatalf("unexpected salary cell: %q", levels[0].Salaries[0])
	}
	if levels[1].Salaries != nil {
		t.Fatal("second level has no companion row")
	}
	if levels[1].Names[0] != "Gabe Vincent" {
		t.Fatalf("unexpected name: %q", levels[1].Names[0])
	}
}

func TestSegment_InvisibleCharacterPollution(t *testing.T) {
	t.Parallel()

	s := NewSegmenter(LabelLandmark(posLabels, DefaultMinLandmarkMatches), DefaultWidth, nil)

	g := Grid{
		{"PG ", " SG", "SF", "\uFEFFPF", "C"},
		{" Nikola Jokić ", "", "", "", "", "", "trailing", "cells"},
		{"PG", "SG", "SF", "PF", "C"},
		{"A", "B", "C", "D", "E"},
	}

	blocks := s.Segment(g)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if got := blocks[0].Levels[0].Names[0]; got != "Nikola Jokić" {
		t.Fatalf("cell not cleaned: %q", got)
	}
}

func TestSegment_EmptyLevelDropped(t *testing.T) {
	t.Parallel()

	s := NewSegmenter(LabelLandmark(posLabels, DefaultMinLandmarkMatches), DefaultWidth, nil)

	g := Grid{
		landmarkRow(),
		{"—", "—", "—", "—", "—"},
		landmarkRow(),
		{"A", "B", "C", "D", "E"},
	}
	blocks := s.Segment(g)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if len(blocks[0].Levels) != 0 {
		t.Fatalf("placeholder-only level should be dropped, got %d levels", len(blocks[0].Levels))
	}
}
