// Package progression computes promotion points and the multi-dimensional
// gap to the next rank.
package progression

import (
	"github.com/coachdesk/ascend/internal/domain/rank"
)

// defaultClientsPerPoint is how many active clients convert to one point.
const defaultClientsPerPoint = 4

// Metrics are the read-only business inputs for one coach, computed by the
// record store. Negative values are clamped to zero.
type Metrics struct {
	ActiveClients int `json:"active_clients"`
	Tier1Teams    int `json:"tier1_teams"`
	Tier2Teams    int `json:"tier2_teams"`
	Tier3Teams    int `json:"tier3_teams"`
}

// Gap is the remaining deficit per requirement dimension. Every field is
// non-negative; an all-zero gap means the coach qualifies now.
type Gap struct {
	Points     int `json:"points"`
	Tier1Teams int `json:"tier1_teams"`
	Tier2Teams int `json:"tier2_teams"`
	Tier3Teams int `json:"tier3_teams"`
}

// Qualified reports whether every dimension's gap is zero. Callers may
// equally derive this by checking the fields themselves.
func (g Gap) Qualified() bool {
	return g.Points == 0 && g.Tier1Teams == 0 && g.Tier2Teams == 0 && g.Tier3Teams == 0
}

// Progression is the calculator output. NextRank and Gap are nil when the
// current rank already tops the table.
type Progression struct {
	CurrentRank   string     `json:"current_rank"`
	CurrentPoints int        `json:"current_points"`
	NextRank      *rank.Rank `json:"next_rank,omitempty"`
	Gap           *Gap       `json:"gap,omitempty"`
}

// Calculator derives points and gaps against an injected rank table. It is
// stateless and safe for concurrent use.
type Calculator struct {
	table           *rank.Table
	clientsPerPoint int
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithClientsPerPoint overrides the client volume divisor.
func WithClientsPerPoint(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.clientsPerPoint = n
		}
	}
}

// NewCalculator creates a Calculator over the given table.
func NewCalculator(table *rank.Table, opts ...Option) *Calculator {
	c := &Calculator{
		table:           table,
		clientsPerPoint: defaultClientsPerPoint,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Points applies the two-track formula: floor(activeClients/divisor) plus
// tier-1 qualifying teams. Tiers 2 and 3 never contribute points; they are
// parallel count requirements checked by Compute.
func (c *Calculator) Points(m Metrics) int {
	return clamp(m.ActiveClients)/c.clientsPerPoint + clamp(m.Tier1Teams)
}

// Compute returns the coach's current points, the next promotion target
// above currentRank, and the per-dimension gap to it. Total over arbitrary
// rank strings: an unknown rank sits below the whole table, so the next
// target is the lowest rank carrying a requirement.
func (c *Calculator) Compute(currentRank string, m Metrics) Progression {
	p := Progression{
		CurrentRank:   currentRank,
		CurrentPoints: c.Points(m),
	}

	next, ok := c.table.Next(currentRank)
	if !ok {
		// Topped out.
		return p
	}

	req := next.Requirement
	p.NextRank = &next
	p.Gap = &Gap{
		Points:     deficit(req.Points, p.CurrentPoints),
		Tier1Teams: deficit(req.Tier1Teams, clamp(m.Tier1Teams)),
		Tier2Teams: deficit(req.Tier2Teams, clamp(m.Tier2Teams)),
		Tier3Teams: deficit(req.Tier3Teams, clamp(m.Tier3Teams)),
	}
	return p
}

func deficit(required, have int) int {
	if required > have {
		return required - have
	}
	return 0
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
