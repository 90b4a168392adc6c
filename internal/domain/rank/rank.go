// Package rank defines the coach rank hierarchy and comparison rules.
package rank

import (
	"strings"

	"github.com/coachdesk/ascend/pkg/metrics"
)

// UnknownPosition is assigned to rank strings that resolve to neither a
// canonical code nor an alias. An unknown rank compares lower than every
// known rank.
const UnknownPosition = -1

// Requirement holds the promotion bar attached to a rank that exists as a
// promotion target. A zero field is a real requirement of zero, always
// satisfied on that axis.
type Requirement struct {
	Points     int `koanf:"points" json:"points"`
	Tier1Teams int `koanf:"tier1_teams" json:"tier1_teams"`
	Tier2Teams int `koanf:"tier2_teams" json:"tier2_teams"`
	Tier3Teams int `koanf:"tier3_teams" json:"tier3_teams"`
}

// Rank is one row of the hierarchy. Position is implied by table order.
type Rank struct {
	Code        string       `koanf:"code" json:"code"`
	Name        string       `koanf:"name" json:"name"`
	Icon        string       `koanf:"icon" json:"icon"`
	Aliases     []string     `koanf:"aliases" json:"aliases,omitempty"`
	Requirement *Requirement `koanf:"requirement" json:"requirement,omitempty"`
}

// Table is an immutable, totally ordered rank hierarchy with alias
// resolution. Build one with NewTable and share it freely; it is safe for
// concurrent use.
type Table struct {
	ranks    []Rank
	position map[string]int
}

// Option applies a configuration option to the Table.
type Option func(*Table)

// WithRanks substitutes the entire hierarchy. Order in the slice is the
// total order, lowest first. Later entries win on duplicate codes.
func WithRanks(ranks []Rank) Option {
	return func(t *Table) {
		if len(ranks) > 0 {
			t.ranks = ranks
		}
	}
}

// NewTable builds a Table from the default hierarchy unless WithRanks
// overrides it.
func NewTable(opts ...Option) *Table {
	t := &Table{
		ranks: defaultRanks(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.position = make(map[string]int, len(t.ranks)*2)
	for i, r := range t.ranks {
		t.position[normalize(r.Code)] = i
		for _, a := range r.Aliases {
			t.position[normalize(a)] = i
		}
	}
	return t
}

// Position resolves a rank string to its index in the total order.
// Canonical codes and aliases resolve alike; anything else is
// UnknownPosition. Resolution is case-insensitive and ignores surrounding
// whitespace because upstream profile data is not validated.
func (t *Table) Position(code string) int {
	key := normalize(code)
	if key == "" {
		return UnknownPosition
	}
	pos, ok := t.position[key]
	if !ok {
		metrics.RecordUnknownRank()
		return UnknownPosition
	}
	return pos
}

// Compare returns the sign-bearing difference between the positions of a
// and b. Zero means equal rank (including alias pairs); positive means a
// outranks b. Total over arbitrary strings.
func (t *Table) Compare(a, b string) int {
	return t.Position(a) - t.Position(b)
}

// Meets reports whether userRank satisfies requiredRank.
//
// The asymmetry here is a contract, not an accident: a missing or unknown
// required rank gates nothing (fail open), while a missing or unknown user
// rank satisfies no non-empty requirement (fail closed). Downstream content
// gating relies on ungated units defaulting to open.
func (t *Table) Meets(userRank, requiredRank string) bool {
	if t.Position(requiredRank) == UnknownPosition {
		return true
	}
	if t.Position(userRank) == UnknownPosition {
		return false
	}
	return t.Compare(userRank, requiredRank) >= 0
}

// Lookup returns the canonical rank row for a code or alias.
func (t *Table) Lookup(code string) (Rank, bool) {
	pos := t.Position(code)
	if pos == UnknownPosition {
		return Rank{}, false
	}
	return t.ranks[pos], true
}

// Next returns the first rank above code's position that carries a
// promotion requirement, or false when code already tops the table. An
// unknown current rank starts the scan from the bottom.
func (t *Table) Next(code string) (Rank, bool) {
	for i := t.Position(code) + 1; i < len(t.ranks); i++ {
		if t.ranks[i].Requirement != nil {
			return t.ranks[i], true
		}
	}
	return Rank{}, false
}

// Ranks returns a copy of the hierarchy, lowest first.
func (t *Table) Ranks() []Rank {
	out := make([]Rank, len(t.ranks))
	copy(out, t.ranks)
	return out
}

// Len returns the number of canonical ranks.
func (t *Table) Len() int {
	return len(t.ranks)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
