// Package pipeline models prospect and client records and the funnel state
// machine that moves them.
package pipeline

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two record shapes sharing the pipeline.
type Kind string

const (
	KindProspect Kind = "prospect"
	KindClient   Kind = "client"
)

// ParseKind parses a record kind, case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prospect":
		return KindProspect, nil
	case "client":
		return KindClient, nil
	default:
		return "", fmt.Errorf("%w: kind %q", ErrInvalidKind, s)
	}
}

// Status is a funnel state. Prospects and clients draw from disjoint sets;
// ParseStatus is the only entry point that admits external strings.
type Status string

// Prospect statuses. The forward flow is new -> interested -> ha_scheduled
// -> converted, with not_interested and not_closed as recycling exits and
// coach as the terminal future-coach state.
const (
	StatusNew           Status = "new"
	StatusInterested    Status = "interested"
	StatusHAScheduled   Status = "ha_scheduled"
	StatusNotClosed     Status = "not_closed"
	StatusNotInterested Status = "not_interested"
	StatusConverted     Status = "converted"
	StatusCoach         Status = "coach"
)

// Client statuses. The future-coach tagging of a client is the orthogonal
// CoachProspect flag on the record, not a status.
const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// ProspectStatuses returns the prospect set in display order.
func ProspectStatuses() []Status {
	return []Status{
		StatusNew,
		StatusInterested,
		StatusHAScheduled,
		StatusNotClosed,
		StatusNotInterested,
		StatusConverted,
		StatusCoach,
	}
}

// ClientStatuses returns the client set in display order.
func ClientStatuses() []Status {
	return []Status{StatusActive, StatusPaused, StatusCompleted}
}

// StatusesFor returns the status set for a record kind.
func StatusesFor(kind Kind) []Status {
	if kind == KindClient {
		return ClientStatuses()
	}
	return ProspectStatuses()
}

// ParseStatus parses s against the status set of kind, case-insensitive.
// Anything outside the set is ErrInvalidStatus; this is the boundary where
// loosely typed upstream strings become closed variants.
func ParseStatus(kind Kind, s string) (Status, error) {
	candidate := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range StatusesFor(kind) {
		if candidate == valid {
			return valid, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a %s status", ErrInvalidStatus, s, kind)
}

// String returns the wire representation.
func (s Status) String() string {
	return string(s)
}

// Terminal reports whether a prospect in this status has left the forward
// flow. Overdue detection skips terminal records.
func (s Status) Terminal() bool {
	switch s {
	case StatusConverted, StatusCoach, StatusNotInterested, StatusNotClosed:
		return true
	default:
		return false
	}
}

// Recycling reports whether the status is a failure exit a coach may push
// back into the forward flow.
func (s Status) Recycling() bool {
	return s == StatusNotInterested || s == StatusNotClosed
}

// Label returns the human stage label for the status.
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInterested:
		return "Interested"
	case StatusHAScheduled:
		return "HA Scheduled"
	case StatusNotClosed:
		return "Not Closed"
	case StatusNotInterested:
		return "Not Interested"
	case StatusConverted:
		return "Converted"
	case StatusCoach:
		return "Future Coach"
	case StatusActive:
		return "Active"
	case StatusPaused:
		return "Paused"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// actionLabels maps a status to the activity feed wording for a record that
// just entered it.
var actionLabels = map[Status]string{
	StatusNew:           "Added to pipeline",
	StatusInterested:    "Marked interested",
	StatusHAScheduled:   "HA Scheduled",
	StatusNotClosed:     "HA not closed",
	StatusNotInterested: "Marked not interested",
	StatusConverted:     "Became a client",
	StatusCoach:         "Moved to coach track",
	StatusActive:        "Started program",
	StatusPaused:        "Paused program",
	StatusCompleted:     "Completed program",
}

// ActionLabel returns the activity wording for the status.
func (s Status) ActionLabel() string {
	if label, ok := actionLabels[s]; ok {
		return label
	}
	return "Updated"
}
