package resolve

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain decomposes to NFD, strips combining marks, and recomposes, so
// "Jokić" and "Jokic" key identically. The statistics source spells
// diacritic-bearing names differently from the roster source, which makes
// folded keys a required lookup layer there.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics returns s with combining marks removed. On transform
// failure the input is returned unchanged; a miss is always preferable to a
// mangled key.
func FoldDiacritics(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		return s
	}
	return out
}
