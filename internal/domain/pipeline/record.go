package pipeline

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for day-granularity dates.
const dateLayout = "2006-01-02"

// Date is a calendar day with no timezone attached. The engine never calls
// the wall clock for "today"; callers supply it so day arithmetic stays
// deterministic.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a timestamp to its calendar day in the timestamp's own
// location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string. Malformed input is ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON renders the wire format.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts the wire format.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is the shared shape of a prospect or client. Instances are owned
// by the record store; the engine only ever receives and returns immutable
// snapshots. Version backs the store's optimistic-concurrency writes and is
// never touched by the engine.
type Record struct {
	ID      string `json:"id"`
	CoachID string `json:"coach_id"`
	Kind    Kind   `json:"kind"`
	Label   string `json:"label"`
	Phone   string `json:"phone,omitempty"`
	Status  Status `json:"status"`

	// Source is a free-form classification tag with no state machine
	// relevance.
	Source string `json:"source,omitempty"`
	Notes  string `json:"notes,omitempty"`

	LastActionDate *Date      `json:"last_action_date,omitempty"`
	NextActionDate *Date      `json:"next_action_date,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`

	// CoachProspect tags a client as a future coach. Orthogonal to Status.
	CoachProspect bool `json:"coach_prospect,omitempty"`

	Version int64 `json:"version"`
}
