package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/coachdesk/ascend/internal/domain/pipeline"
)

// timeNow is swappable in tests.
var timeNow = time.Now

// PipelineDependencies defines the interface for funnel view operations.
type PipelineDependencies interface {
	Stages(ctx context.Context, coachID, kind string) ([]pipeline.Stage, error)
	Activity(ctx context.Context, coachID string, limit int) ([]pipeline.ActivityItem, error)
	Overdue(ctx context.Context, coachID string, today pipeline.Date) ([]pipeline.Record, error)
}

// PipelineHandler serves the stage board, activity feed and overdue list.
type PipelineHandler struct {
	deps PipelineDependencies
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(deps PipelineDependencies) *PipelineHandler {
	return &PipelineHandler{deps: deps}
}

// HandleStages handles GET /pipeline/stages?coach=..&kind=..
func (h *PipelineHandler) HandleStages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	coachID := r.URL.Query().Get("coach")
	if coachID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingCoach)
		return
	}
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = string(pipeline.KindProspect)
	}

	stages, err := h.deps.Stages(r.Context(), coachID, kind)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stages)
}

// HandleActivity handles GET /pipeline/activity?coach=..&limit=N.
func (h *PipelineHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	coachID := r.URL.Query().Get("coach")
	if coachID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingCoach)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		limit = n
	}

	feed, err := h.deps.Activity(r.Context(), coachID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// HandleOverdue handles GET /pipeline/overdue?coach=..&today=YYYY-MM-DD.
// today defaults to the server's calendar day when omitted; clients that
// care about the user's local day pass it explicitly.
func (h *PipelineHandler) HandleOverdue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	coachID := r.URL.Query().Get("coach")
	if coachID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingCoach)
		return
	}

	var today pipeline.Date
	if todayStr := r.URL.Query().Get("today"); todayStr != "" {
		parsed, err := pipeline.ParseDate(todayStr)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		today = parsed
	} else {
		today = pipeline.DateOf(timeNow())
	}

	overdue, err := h.deps.Overdue(r.Context(), coachID, today)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overdue)
}
