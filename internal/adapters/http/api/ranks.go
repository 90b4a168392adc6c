package api

import (
	"context"
	"net/http"

	"github.com/coachdesk/ascend/internal/domain/rank"
)

// RanksDependencies defines the interface for rank table reads.
type RanksDependencies interface {
	Ranks(ctx context.Context) []rank.Rank
}

// RanksHandler serves the loaded hierarchy.
type RanksHandler struct {
	deps RanksDependencies
}

// NewRanksHandler creates a new ranks handler.
func NewRanksHandler(deps RanksDependencies) *RanksHandler {
	return &RanksHandler{deps: deps}
}

// HandleRanks handles GET /ranks.
func (h *RanksHandler) HandleRanks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Ranks(r.Context()))
}
