package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/coachdesk/ascend/internal/app"
	"github.com/coachdesk/ascend/internal/domain/pipeline"
)

// RecordsDependencies defines the interface for record operations.
type RecordsDependencies interface {
	CreateRecord(ctx context.Context, in service.CreateRecordInput) (pipeline.Record, error)
	Records(ctx context.Context, coachID, kind string) ([]pipeline.Record, error)
	Transition(ctx context.Context, recordID, newStatus, requestID string) (pipeline.Record, bool, error)
}

// RecordsHandler handles record creation, listing and transitions.
type RecordsHandler struct {
	deps RecordsDependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps RecordsDependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

type createRecordRequest struct {
	CoachID string `json:"coach_id"`
	Kind    string `json:"kind"`
	Label   string `json:"label"`
	Phone   string `json:"phone"`
	Source  string `json:"source"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`

	NextActionDate string `json:"next_action_date"`
}

func (r createRecordRequest) validate() error {
	switch {
	case strings.TrimSpace(r.CoachID) == "":
		return errors.New("missing coach_id")
	case strings.TrimSpace(r.Kind) == "":
		return errors.New("missing kind")
	case strings.TrimSpace(r.Label) == "":
		return errors.New("missing label")
	}
	return nil
}

// HandleRecords handles POST /records and GET /records?coach=..&kind=..
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *RecordsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	rec, err := h.deps.CreateRecord(r.Context(), service.CreateRecordInput{
		CoachID:        req.CoachID,
		Kind:           req.Kind,
		Label:          req.Label,
		Phone:          req.Phone,
		Source:         req.Source,
		Status:         req.Status,
		Notes:          req.Notes,
		NextActionDate: req.NextActionDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *RecordsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	coachID := r.URL.Query().Get("coach")
	if coachID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingCoach)
		return
	}
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = string(pipeline.KindProspect)
	}

	records, err := h.deps.Records(r.Context(), coachID, kind)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type transitionRequest struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
}

type transitionResponse struct {
	Record    pipeline.Record `json:"record"`
	Duplicate bool            `json:"duplicate"`
}

// HandleTransition handles POST /records/{id}/transition.
func (h *RecordsHandler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/records/")
	id, action, found := strings.Cut(path, "/")
	if !found || id == "" || action != "transition" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing status"))
		return
	}

	rec, duplicate, err := h.deps.Transition(r.Context(), id, req.Status, req.RequestID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{Record: rec, Duplicate: duplicate})
}
