package resolve

import (
	"sort"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/courtsidelive/courtside/internal/domain/player"
)

// candidate is one entry of the last-token bucket: the canonical name plus
// its first token, kept for prefix disambiguation.
type candidate struct {
	canonical string
	first     string
}

// Snapshot is one immutable generation of the reconciliation indexes: the
// canonical name universe, the generated alias maps, and the player records
// from the authoritative source. A rebuild produces a fresh Snapshot and
// publishes it through a Holder; nothing mutates a Snapshot after
// BuildSnapshot returns.
type Snapshot struct {
	version int64
	builtAt time.Time

	players      map[string]player.Player
	initialAlias map[string]string      // "L. James" -> "LeBron James"
	lastToken    map[string][]candidate // "James" -> all canonicals ending in James
}

var snapshotVersion atomic.Int64

// BuildSnapshot derives the alias indexes from the canonical universe. For
// each canonical name split into (first, rest) tokens it registers the
// first-initial alias and a last-token bucket entry. When two canonicals
// collide on the same alias the lexicographically smaller one keeps it, and
// candidate lists are sorted, so tie-breaks are stable across rebuilds no
// matter what order the source rows arrive in.
func BuildSnapshot(players []player.Player) *Snapshot {
	s := &Snapshot{
		version:      snapshotVersion.Add(1),
		builtAt:      time.Now(),
		players:      make(map[string]player.Player, len(players)),
		initialAlias: make(map[string]string, len(players)),
		lastToken:    make(map[string][]candidate, len(players)),
	}

	for _, p := range players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		p.Name = name
		s.players[name] = p

		first, rest, ok := strings.Cut(name, " ")
		if !ok {
			continue
		}
		alias := initialOf(first) + ". " + rest
		if prev, ok := s.initialAlias[alias]; !ok || name < prev {
			s.initialAlias[alias] = name
		}

		tokens := strings.Fields(name)
		last := tokens[len(tokens)-1]
		s.lastToken[last] = append(s.lastToken[last], candidate{canonical: name, first: first})
	}

	for _, cands := range s.lastToken {
		sort.Slice(cands, func(i, j int) bool { return cands[i].canonical < cands[j].canonical })
	}

	return s
}

func (s *Snapshot) Version() int64     { return s.version }
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }
func (s *Snapshot) Size() int          { return len(s.players) }

// Player returns the authoritative record for a canonical name.
func (s *Snapshot) Player(name string) (player.Player, bool) {
	p, ok := s.players[name]
	return p, ok
}

// TeamOf returns the team the authoritative source assigns to a canonical
// name.
func (s *Snapshot) TeamOf(name string) (string, bool) {
	p, ok := s.players[name]
	if !ok || p.Team == "" {
		return "", false
	}
	return p.Team, true
}

// Players returns every canonical record, sorted by name.
func (s *Snapshot) Players() []player.Player {
	out := make([]player.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AliasFor reverses the first-initial alias map: given a canonical name it
// returns the generated "F. Rest" form.
func (s *Snapshot) AliasFor(name string) (string, bool) {
	first, rest, ok := strings.Cut(strings.TrimSpace(name), " ")
	if !ok || first == "" {
		return "", false
	}
	alias := initialOf(first) + ". " + rest
	if s.initialAlias[alias] != name {
		return "", false
	}
	return alias, true
}

// initialOf returns the first rune, not the first byte, so names like
// "Žarko" generate a valid alias key.
func initialOf(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(r)
}

// Holder publishes snapshots by atomic pointer swap: pipelines read whatever
// generation was current when they started, and a rebuild never exposes a
// partially updated structure.
type Holder struct {
	ptr atomic.Pointer[Snapshot]
}

func NewHolder() *Holder {
	h := &Holder{}
	h.ptr.Store(BuildSnapshot(nil))
	return h
}

func (h *Holder) Load() *Snapshot { return h.ptr.Load() }

func (h *Holder) Publish(s *Snapshot) {
	if s == nil {
		return
	}
	h.ptr.Store(s)
}
