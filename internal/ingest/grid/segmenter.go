package grid

import (
	"strings"

	"github.com/courtsidelive/courtside/internal/platform/logging"
)

const (
	// DefaultWidth is the designated column count of depth chart blocks.
	DefaultWidth = 5
	// DefaultMinLandmarkMatches tolerates duplicated or mistyped labels in
	// landmark rows; sources occasionally repeat a position code.
	DefaultMinLandmarkMatches = 3

	currencyMarker = "$"
)

// LandmarkFunc decides whether a row is a structural boundary. Keeping the
// predicate pluggable means source-format drift needs a new predicate, not a
// new segmenter.
type LandmarkFunc func(cells []string) bool

// LabelLandmark matches rows where at least minMatches of the first
// len(labels) cells belong to the label set, in any order.
func LabelLandmark(labels []string, minMatches int) LandmarkFunc {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[strings.ToUpper(l)] = struct{}{}
	}
	width := len(labels)
	return func(cells []string) bool {
		matched := 0
		for i := 0; i < width && i < len(cells); i++ {
			if _, ok := set[strings.ToUpper(cells[i])]; ok {
				matched++
			}
		}
		return matched >= minMatches
	}
}

// Level is one depth tier inside a block: a names row plus an optional
// currency-prefixed companion row.
type Level struct {
	Names    []string
	Salaries []string
}

// Block is a contiguous run of rows between two landmarks (or a landmark and
// grid end), decomposed into levels.
type Block struct {
	Start  int // first row after the opening landmark
	End    int // row of the next landmark, or len(grid)
	Levels []Level
}

// Segmenter splits a grid into per-team blocks using landmark detection.
type Segmenter struct {
	landmark LandmarkFunc
	width    int
	logger   *logging.Logger
}

func NewSegmenter(landmark LandmarkFunc, width int, logger *logging.Logger) *Segmenter {
	if width <= 0 {
		width = DefaultWidth
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Segmenter{landmark: landmark, width: width, logger: logger}
}

// Segment scans rows top to bottom and returns one block per landmark.
// Fewer than two landmarks means the source was restructured; Segment then
// returns nil rather than guessing, and the caller keeps serving its
// last-good result.
func (s *Segmenter) Segment(g Grid) []Block {
	landmarks := make([]int, 0, 32)
	for ri, row := range g {
		if s.landmark(CleanRow(row, s.width)) {
			landmarks = append(landmarks, ri)
		}
	}

	if len(landmarks) < 2 {
		s.logger.Warn("too few landmark rows, source may have been restructured",
			"landmarks", len(landmarks), "rows", len(g))
		return nil
	}

	blocks := make([]Block, 0, len(landmarks))
	for i, lm := range landmarks {
		start := lm + 1
		end := len(g)
		if i+1 < len(landmarks) {
			end = landmarks[i+1]
		}
		if start >= end {
			// Landmark immediately precedes grid end (or the next landmark)
			// with no data rows.
			continue
		}
		blocks = append(blocks, Block{
			Start:  start,
			End:    end,
			Levels: s.levels(g, start, end),
		})
	}
	return blocks
}

// levels groups the rows of one block: each non-blank, non-currency row
// starts a level, and an immediately following currency-prefixed row is
// consumed as that level's salary companion. Blank rows are skipped without
// breaking the current level.
func (s *Segmenter) levels(g Grid, start, end int) []Level {
	var out []Level
	for ri := start; ri < end; ri++ {
		cells := CleanRow(g[ri], s.width)
		if rowEmpty(cells) {
			continue
		}
		if isCurrencyRow(cells) {
			// Orphan salary row with no preceding names row; drop it.
			continue
		}

		level := Level{Names: cells}
		if ri+1 < end {
			next := CleanRow(g[ri+1], s.width)
			if isCurrencyRow(next) {
				level.Salaries = next
				ri++
			}
		}
		if nameCount(level.Names) == 0 {
			continue
		}
		out = append(out, level)
	}
	return out
}

func isCurrencyRow(cells []string) bool {
	if rowEmpty(cells) {
		return false
	}
	for _, c := range cells {
		if c != "" && strings.HasPrefix(c, currencyMarker) {
			return true
		}
	}
	return false
}

func nameCount(cells []string) int {
	n := 0
	for _, c := range cells {
		if c != "" && c != "—" {
			n++
		}
	}
	return n
}
