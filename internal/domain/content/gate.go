// Package content gates rank-locked content units.
package content

import (
	"github.com/coachdesk/ascend/internal/domain/rank"
)

// Unit is a rank-gated content unit (module or lesson) from the external
// catalog. Only the required rank matters here; delivery is someone else's
// problem.
type Unit struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	RequiredRank string `json:"required_rank,omitempty"`
}

// Gate is a stateless predicate over the rank comparator. A unit with an
// empty or unrecognized required rank is open to everyone; a user with no
// resolvable rank only sees ungated units.
type Gate struct {
	table *rank.Table
}

// NewGate creates a Gate over the given rank table.
func NewGate(table *rank.Table) *Gate {
	return &Gate{table: table}
}

// CanAccess reports whether userRank may open content requiring
// requiredRank.
func (g *Gate) CanAccess(userRank, requiredRank string) bool {
	return g.table.Meets(userRank, requiredRank)
}

// Unlocked filters units down to those userRank may open, preserving
// catalog order.
func (g *Gate) Unlocked(userRank string, units []Unit) []Unit {
	out := make([]Unit, 0, len(units))
	for _, u := range units {
		if g.CanAccess(userRank, u.RequiredRank) {
			out = append(out, u)
		}
	}
	return out
}
