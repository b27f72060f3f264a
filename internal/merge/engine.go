package merge

import (
	"sort"
	"strings"

	"github.com/courtsidelive/courtside/internal/domain/stats"
	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/resolve"
)

// Engine reads across per-source attribute bags keyed by whatever name
// spelling each source uses, reconciling to canonical names only at lookup
// time. Bags themselves are never rewritten or merged together.
type Engine struct {
	logger *logging.Logger
}

func NewEngine(logger *logging.Logger) *Engine {
	return &Engine{logger: logger}
}

// Lookup finds the attribute bag a table holds for a canonical name. Layers
// run from cheapest and most precise to broadest:
//
//  1. the canonical name is the table's own key
//  2. the diacritic-folded canonical name is the key
//  3. the generated "F. Rest" alias is the key
//  4. case- and space-insensitive scan over folded keys
//  5. last-name plus first-initial scan over folded keys
//
// Nothing matching is not an error: an empty bag comes back and every field
// reads as zero.
func (e *Engine) Lookup(snap *resolve.Snapshot, table stats.Table, name string) stats.Bag {
	if len(table) == 0 || name == "" {
		return stats.Bag{}
	}

	if bag, ok := table[name]; ok {
		return bag
	}

	folded := resolve.FoldDiacritics(name)
	if bag, ok := table[folded]; ok {
		return bag
	}

	if alias, ok := snap.AliasFor(name); ok {
		if bag, ok := table[alias]; ok {
			return bag
		}
	}

	// Scan layers iterate sorted keys so a rare double match always picks
	// the same bag across refreshes.
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	want := squash(folded)
	for _, k := range keys {
		if squash(resolve.FoldDiacritics(k)) == want {
			return table[k]
		}
	}

	wantLast := lastTokenLower(folded)
	wantInitial := firstLetterLower(folded)
	if wantLast != "" && wantInitial != "" {
		for _, k := range keys {
			fk := resolve.FoldDiacritics(k)
			if lastTokenLower(fk) == wantLast && firstLetterLower(fk) == wantInitial {
				e.logger.Debug("bag matched on surname scan", "name", name, "key", k)
				return table[k]
			}
		}
	}

	return stats.Bag{}
}

// squash lowercases and strips every space so "DeAndre  Hunter" and
// "deandre hunter" collide.
func squash(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

func lastTokenLower(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	return strings.ToLower(tokens[len(tokens)-1])
}

func firstLetterLower(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToLower(s[:1])
}
