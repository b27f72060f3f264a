package resolve

import "strings"

// Resolve maps an arbitrary name spelling to its canonical form. The cascade
// prefers exact matches over any heuristic, and the most specific
// disambiguation signal (an explicit prefix) over the weakest (first letter
// only):
//
//  1. raw is already canonical
//  2. raw is a generated first-initial alias
//  3. raw looks like "<prefix>. <lastName>": unique surname wins outright,
//     otherwise the candidate whose first name starts with the prefix
//  4. raw is "<firstToken> <lastToken>": unique surname wins, otherwise
//     first-letter match
//  5. no match: raw is returned verbatim, and callers must tolerate
//     unresolved names appearing as-is
func (s *Snapshot) Resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}

	if _, ok := s.players[raw]; ok {
		return raw
	}
	if canonical, ok := s.initialAlias[raw]; ok {
		return canonical
	}

	if prefix, lastPart, ok := strings.Cut(raw, ". "); ok && prefix != "" && lastPart != "" {
		if canonical, ok := s.byPrefix(prefix, lastPart); ok {
			return canonical
		}
	}

	if tokens := strings.Fields(raw); len(tokens) == 2 {
		if canonical, ok := s.byFirstLetter(tokens[0], tokens[1]); ok {
			return canonical
		}
	}

	return raw
}

// byPrefix handles truncated-first-name variants such as "Benn. Mathurin".
func (s *Snapshot) byPrefix(prefix, lastPart string) (string, bool) {
	cands := s.lastToken[lastTokenOf(lastPart)]
	if len(cands) == 0 {
		return "", false
	}
	if len(cands) == 1 {
		// Unique surname: the prefix does not even need to be right.
		return cands[0].canonical, true
	}

	want := strings.ToLower(strings.TrimSuffix(prefix, "."))
	for _, c := range cands {
		if strings.HasPrefix(strings.ToLower(c.first), want) {
			return c.canonical, true
		}
	}
	return "", false
}

// byFirstLetter is the weakest heuristic: two tokens, matched on the first
// letter of the first token. Ambiguity after this falls through unresolved.
func (s *Snapshot) byFirstLetter(firstToken, lastToken string) (string, bool) {
	cands := s.lastToken[lastToken]
	if len(cands) == 0 {
		return "", false
	}
	if len(cands) == 1 {
		return cands[0].canonical, true
	}

	want := firstLetterLower(firstToken)
	for _, c := range cands {
		if firstLetterLower(c.first) == want {
			return c.canonical, true
		}
	}
	return "", false
}

func lastTokenOf(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

func firstLetterLower(s string) string {
	return strings.ToLower(initialOf(s))
}
