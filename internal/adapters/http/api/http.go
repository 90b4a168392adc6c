// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coachdesk/ascend/internal/adapters/repository"
	service "github.com/coachdesk/ascend/internal/app"
	"github.com/coachdesk/ascend/internal/domain/pipeline"
	"github.com/coachdesk/ascend/internal/domain/progression"
	"github.com/coachdesk/ascend/internal/domain/rank"
)

// Dependencies bundles everything the HTTP handlers need. Using an
// interface keeps the handler layer loosely coupled to the service.
type Dependencies interface {
	CreateRecord(ctx context.Context, in service.CreateRecordInput) (pipeline.Record, error)
	Records(ctx context.Context, coachID, kind string) ([]pipeline.Record, error)
	Transition(ctx context.Context, recordID, newStatus, requestID string) (pipeline.Record, bool, error)
	Stages(ctx context.Context, coachID, kind string) ([]pipeline.Stage, error)
	Activity(ctx context.Context, coachID string, limit int) ([]pipeline.ActivityItem, error)
	Overdue(ctx context.Context, coachID string, today pipeline.Date) ([]pipeline.Record, error)
	Progression(ctx context.Context, currentRank string, m progression.Metrics) progression.Progression
	Ranks(ctx context.Context) []rank.Rank
	CanAccess(ctx context.Context, userRank, requiredRank string) bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	recordsHandler     *RecordsHandler
	pipelineHandler    *PipelineHandler
	progressionHandler *ProgressionHandler
	ranksHandler       *RanksHandler
	contentHandler     *ContentHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		recordsHandler:     NewRecordsHandler(deps),
		pipelineHandler:    NewPipelineHandler(deps),
		progressionHandler: NewProgressionHandler(deps),
		ranksHandler:       NewRanksHandler(deps),
		contentHandler:     NewContentHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleRecords, "records"))
	mux.HandleFunc("/records/", MetricsMiddleware(s.recordsHandler.HandleTransition, "transition"))
	mux.HandleFunc("/pipeline/stages", MetricsMiddleware(s.pipelineHandler.HandleStages, "stages"))
	mux.HandleFunc("/pipeline/activity", MetricsMiddleware(s.pipelineHandler.HandleActivity, "activity"))
	mux.HandleFunc("/pipeline/overdue", MetricsMiddleware(s.pipelineHandler.HandleOverdue, "overdue"))
	mux.HandleFunc("/progression", MetricsMiddleware(s.progressionHandler.HandleProgression, "progression"))
	mux.HandleFunc("/ranks", MetricsMiddleware(s.ranksHandler.HandleRanks, "ranks"))
	mux.HandleFunc("/content/access", MetricsMiddleware(s.contentHandler.HandleAccess, "content_access"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps domain and store sentinels to HTTP statuses. An
// invalid transition is reported immediately with the offending value in
// the message; a stale write maps to 409 so the client reloads and
// retries.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidStatus),
		errors.Is(err, pipeline.ErrInvalidKind),
		errors.Is(err, pipeline.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrVersionConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, repository.ErrDuplicateID), errors.Is(err, repository.ErrMissingID):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
