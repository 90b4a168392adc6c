package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coachdesk/ascend/internal/domain/progression"
)

// ProgressionDependencies defines the interface for progression reads.
type ProgressionDependencies interface {
	Progression(ctx context.Context, currentRank string, m progression.Metrics) progression.Progression
}

// ProgressionHandler serves gap computations.
type ProgressionHandler struct {
	deps ProgressionDependencies
}

// NewProgressionHandler creates a new progression handler.
func NewProgressionHandler(deps ProgressionDependencies) *ProgressionHandler {
	return &ProgressionHandler{deps: deps}
}

// HandleProgression handles
// GET /progression?rank=ED&clients=36&tier1=1&tier2=1&tier3=0.
// The rank may be any string; unknown ranks degrade per the comparison
// rules rather than erroring.
func (h *ProgressionHandler) HandleProgression(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	m := progression.Metrics{}
	var err error
	if m.ActiveClients, err = intParam(q.Get("clients")); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if m.Tier1Teams, err = intParam(q.Get("tier1")); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if m.Tier2Teams, err = intParam(q.Get("tier2")); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if m.Tier3Teams, err = intParam(q.Get("tier3")); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.deps.Progression(r.Context(), q.Get("rank"), m))
}

// intParam parses an optional non-negative integer query value.
func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
