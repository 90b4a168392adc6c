package pipeline

import (
	"sort"
	"time"

	"github.com/coachdesk/ascend/pkg/metrics"
)

// Stage is one bucket of the funnel board: a status plus the records
// currently sitting in it.
type Stage struct {
	Status Status   `json:"status"`
	Label  string   `json:"label"`
	Count  int      `json:"count"`
	Items  []Record `json:"items"`
}

// ActivityItem is one row of the recent-activity feed.
type ActivityItem struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	Action    string    `json:"action"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Engine derives funnel views and applies status transitions. It holds no
// state between calls; every method is a pure function of its inputs and
// safe under unbounded concurrent use.
type Engine struct{}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// ApplyTransition validates newStatus against the record's kind and returns
// an updated snapshot with last_action_date and updated_at refreshed from
// now. next_action_date is deliberately untouched; follow-up cadence is the
// caller's call.
//
// Policy choice, not a gap: funnel ordering is NOT enforced here. A record
// may move from any status to any other status of its kind, including
// recycling exits back into the forward flow and skips ahead, so coaches
// can correct mis-entered data. The UI is expected to offer only the
// intended next steps.
//
// The input snapshot is never mutated and nothing is persisted. Callers
// must save the returned snapshot with an optimistic-concurrency write
// keyed on Version and treat a failed conditional write as a conflict to
// re-fetch and retry.
func (e *Engine) ApplyTransition(rec Record, newStatus string, now time.Time) (Record, error) {
	status, err := ParseStatus(rec.Kind, newStatus)
	if err != nil {
		metrics.RecordTransitionRejected()
		return Record{}, err
	}

	today := DateOf(now)
	rec.Status = status
	rec.LastActionDate = &today
	rec.UpdatedAt = &now

	metrics.RecordTransitionApplied(status.String())
	return rec, nil
}

// ComputeStages groups records into the fixed stage order for their kind.
// Every status of a kind present in the input yields a stage, zero-count
// ones included, so the board shape is stable across calls. Prospect stages
// precede client stages when the input mixes kinds. Single pass over the
// records; no hidden randomness.
func (e *Engine) ComputeStages(records []Record) []Stage {
	byStatus := make(map[Status][]Record, len(records))
	var hasProspects, hasClients bool
	for _, rec := range records {
		byStatus[rec.Status] = append(byStatus[rec.Status], rec)
		switch rec.Kind {
		case KindClient:
			hasClients = true
		default:
			hasProspects = true
		}
	}

	var order []Status
	if hasProspects || !hasClients {
		order = append(order, ProspectStatuses()...)
	}
	if hasClients {
		order = append(order, ClientStatuses()...)
	}

	stages := make([]Stage, 0, len(order))
	for _, status := range order {
		items := byStatus[status]
		stages = append(stages, Stage{
			Status: status,
			Label:  status.Label(),
			Count:  len(items),
			Items:  items,
		})
	}
	return stages
}

// ComputeActivity maps each record's latest status change to a feed row,
// newest first, truncated to limit (limit <= 0 means no truncation).
// Records without an updated_at timestamp cannot be ordered and are
// excluded here, though ComputeStages still counts them.
func (e *Engine) ComputeActivity(records []Record, limit int) []ActivityItem {
	items := make([]ActivityItem, 0, len(records))
	for _, rec := range records {
		if rec.UpdatedAt == nil {
			continue
		}
		items = append(items, ActivityItem{
			ID:        rec.ID,
			Kind:      rec.Kind,
			Name:      rec.Label,
			Action:    rec.Status.ActionLabel(),
			Status:    rec.Status,
			Timestamp: *rec.UpdatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].Timestamp.After(items[j].Timestamp)
		}
		// Tie-break on id so repeated calls order identically.
		return items[i].ID < items[j].ID
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// IsOverdue reports whether a prospect's next scheduled action date has
// passed while it remains in the forward flow. Strict day comparison;
// records with no next action, terminal prospects, and all client records
// are never overdue.
func (e *Engine) IsOverdue(rec Record, today Date) bool {
	if rec.Kind == KindClient {
		return false
	}
	if rec.NextActionDate == nil {
		return false
	}
	if rec.Status.Terminal() {
		return false
	}
	return rec.NextActionDate.Before(today)
}

// OverdueRecords filters records down to the overdue subset, preserving
// input order.
func (e *Engine) OverdueRecords(records []Record, today Date) []Record {
	out := make([]Record, 0)
	for _, rec := range records {
		if e.IsOverdue(rec, today) {
			out = append(out, rec)
		}
	}
	return out
}
