package api

import (
	"context"
	"net/http"
)

// ContentDependencies defines the interface for content access checks.
type ContentDependencies interface {
	CanAccess(ctx context.Context, userRank, requiredRank string) bool
}

// ContentHandler serves the rank gate predicate.
type ContentHandler struct {
	deps ContentDependencies
}

// NewContentHandler creates a new content handler.
func NewContentHandler(deps ContentDependencies) *ContentHandler {
	return &ContentHandler{deps: deps}
}

type accessResponse struct {
	Allowed bool `json:"allowed"`
}

// HandleAccess handles GET /content/access?rank=..&required=..
// Both parameters may be empty or unrecognized; the gate's degradation
// rules apply instead of an error.
func (h *ContentHandler) HandleAccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	allowed := h.deps.CanAccess(r.Context(), q.Get("rank"), q.Get("required"))
	writeJSON(w, http.StatusOK, accessResponse{Allowed: allowed})
}
