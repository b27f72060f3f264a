package grid

import "strings"

// Grid is a rectangular-ish block of string cells, row-major. Rows may be
// ragged; readers must tolerate short rows and trailing blanks.
type Grid [][]string

// Cell returns the cleaned cell at (row, col), or "" when out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return CleanCell(r[col])
}

var cellCleaner = strings.NewReplacer(
	" ", " ", // non-breaking space
	"​", "", // zero-width space
	"\uFEFF", "", // BOM
)

// CleanCell normalizes invisible-character pollution that sheet exports leak
// into cell text, then trims surrounding whitespace.
func CleanCell(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(cellCleaner.Replace(s))
}

// CleanRow returns the first width cells of row, cleaned. Cells beyond the
// declared width are ignored; missing cells read as "".
func CleanRow(row []string, width int) []string {
	out := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		out[i] = CleanCell(row[i])
	}
	return out
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
