// Command seed populates a running service with demo pipeline data so the
// stage, activity and overdue views have something to show.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// Default configuration constants.
const (
	defaultProspects = 12
	defaultClients   = 5
	defaultTimeout   = 10 * time.Second
	defaultRunLimit  = 2 * time.Minute
)

// prospectNames cycle through the seeded records.
var prospectNames = []string{
	"Jamie Lane", "Alex Moreno", "Sam Whitfield", "Priya Nair",
	"Chris Dolan", "Dana Reyes", "Morgan Blake", "Elif Aydin",
	"Noah Petric", "Ada Lindqvist", "Omar Haddad", "June Park",
}

// prospectFlow walks new arrivals part-way down the funnel so every stage
// has occupants.
var prospectFlow = []string{"interested", "ha_scheduled", "converted"}

type record struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type seeder struct {
	baseURL string
	client  *http.Client
}

func (s *seeder) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (s *seeder) createRecord(ctx context.Context, coach, kind, label string) (record, error) {
	var rec record
	err := s.post(ctx, "/records", map[string]string{
		"coach_id": coach,
		"kind":     kind,
		"label":    label,
	}, &rec)
	return rec, err
}

func (s *seeder) transition(ctx context.Context, id, status string) error {
	return s.post(ctx, "/records/"+id+"/transition", map[string]string{
		"status":     status,
		"request_id": uuid.NewString(),
	}, nil)
}

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		coach     = flag.String("coach", "demo-coach", "Coach id to seed records under")
		prospects = flag.Int("prospects", defaultProspects, "Number of prospects to create")
		clients   = flag.Int("clients", defaultClients, "Number of clients to create")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunLimit)
	defer cancel()

	s := &seeder{
		baseURL: *baseURL,
		client:  &http.Client{Timeout: *timeout},
	}

	created, moved := 0, 0
	for i := 0; i < *prospects; i++ {
		name := prospectNames[i%len(prospectNames)]
		rec, err := s.createRecord(ctx, *coach, "prospect", name)
		if err != nil {
			os.Stderr.WriteString("seed prospect failed: " + err.Error() + "\n")
			return
		}
		created++

		// Walk record i down i%4 steps of the funnel; step 0 stays new.
		for _, status := range prospectFlow[:i%(len(prospectFlow)+1)] {
			if err := s.transition(ctx, rec.ID, status); err != nil {
				os.Stderr.WriteString("seed transition failed: " + err.Error() + "\n")
				return
			}
			moved++
		}
	}

	for i := 0; i < *clients; i++ {
		name := fmt.Sprintf("Client %02d", i+1)
		rec, err := s.createRecord(ctx, *coach, "client", name)
		if err != nil {
			os.Stderr.WriteString("seed client failed: " + err.Error() + "\n")
			return
		}
		created++

		// Pause every third client so the client stages are not uniform.
		if i%3 == 2 {
			if err := s.transition(ctx, rec.ID, "paused"); err != nil {
				os.Stderr.WriteString("seed transition failed: " + err.Error() + "\n")
				return
			}
			moved++
		}
	}

	fmt.Printf("seeded %d records (%d transitions) for coach %s at %s\n",
		created, moved, *coach, *baseURL)
}
