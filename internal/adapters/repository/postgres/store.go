// Package postgres implements the record store on a pgx connection pool.
//
// Expected schema:
//
//	CREATE TABLE contact_records (
//	    id               text PRIMARY KEY,
//	    coach_id         text NOT NULL,
//	    kind             text NOT NULL,
//	    label            text NOT NULL,
//	    phone            text NOT NULL DEFAULT '',
//	    status           text NOT NULL,
//	    source           text NOT NULL DEFAULT '',
//	    notes            text NOT NULL DEFAULT '',
//	    last_action_date date,
//	    next_action_date date,
//	    updated_at       timestamptz,
//	    coach_prospect   boolean NOT NULL DEFAULT false,
//	    version          bigint NOT NULL
//	);
//	CREATE INDEX idx_contact_records_coach_kind ON contact_records (coach_id, kind);
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coachdesk/ascend/internal/adapters/repository"
	"github.com/coachdesk/ascend/internal/domain/pipeline"
)

// Pool tuning for a portal backend: modest concurrency, recycle hourly.
const (
	maxConns        = 16
	minConns        = 2
	maxConnLifetime = time.Hour
	maxConnIdleTime = 20 * time.Minute
)

// Store is a pgx-backed repository.Store.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a pool from a Postgres URL and pings it.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = maxConnLifetime
	cfg.MaxConnIdleTime = maxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool, mainly for tests.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Health pings the database.
func (s *Store) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const recordColumns = `id, coach_id, kind, label, phone, status, source, notes,
	last_action_date, next_action_date, updated_at, coach_prospect, version`

// Create implements repository.Store.
func (s *Store) Create(ctx context.Context, rec pipeline.Record) (pipeline.Record, error) {
	if rec.ID == "" {
		return pipeline.Record{}, repository.ErrMissingID
	}

	query := `
		INSERT INTO contact_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1)`

	_, err := s.pool.Exec(ctx, query,
		rec.ID, rec.CoachID, rec.Kind, rec.Label, rec.Phone, rec.Status,
		rec.Source, rec.Notes, dateArg(rec.LastActionDate), dateArg(rec.NextActionDate),
		rec.UpdatedAt, rec.CoachProspect,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return pipeline.Record{}, fmt.Errorf("%w: %s", repository.ErrDuplicateID, rec.ID)
		}
		return pipeline.Record{}, fmt.Errorf("insert record: %w", err)
	}

	rec.Version = 1
	return rec, nil
}

// Get implements repository.Store.
func (s *Store) Get(ctx context.Context, id string) (pipeline.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM contact_records WHERE id = $1`

	rec, err := scanRecord(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pipeline.Record{}, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
		}
		return pipeline.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// ListByCoach implements repository.Store.
func (s *Store) ListByCoach(ctx context.Context, coachID string, kind pipeline.Kind) ([]pipeline.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM contact_records
		WHERE coach_id = $1 AND kind = $2
		ORDER BY id`

	rows, err := s.pool.Query(ctx, query, coachID, kind)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := make([]pipeline.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Save implements repository.Store. The WHERE clause on version is the
// optimistic-concurrency check; zero rows affected means either a stale
// snapshot or a deleted record, disambiguated with a follow-up read.
func (s *Store) Save(ctx context.Context, rec pipeline.Record) (pipeline.Record, error) {
	query := `
		UPDATE contact_records
		SET coach_id = $3, kind = $4, label = $5, phone = $6, status = $7,
		    source = $8, notes = $9, last_action_date = $10,
		    next_action_date = $11, updated_at = $12, coach_prospect = $13,
		    version = version + 1
		WHERE id = $1 AND version = $2`

	tag, err := s.pool.Exec(ctx, query,
		rec.ID, rec.Version,
		rec.CoachID, rec.Kind, rec.Label, rec.Phone, rec.Status,
		rec.Source, rec.Notes, dateArg(rec.LastActionDate), dateArg(rec.NextActionDate),
		rec.UpdatedAt, rec.CoachProspect,
	)
	if err != nil {
		return pipeline.Record{}, fmt.Errorf("save record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := s.Get(ctx, rec.ID); getErr != nil {
			return pipeline.Record{}, getErr
		}
		return pipeline.Record{}, fmt.Errorf("%w: %s at version %d",
			repository.ErrVersionConflict, rec.ID, rec.Version)
	}

	rec.Version++
	return rec, nil
}

// Count implements repository.Store.
func (s *Store) Count(ctx context.Context) int {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM contact_records`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (pipeline.Record, error) {
	var (
		rec        pipeline.Record
		lastAction *time.Time
		nextAction *time.Time
	)
	err := row.Scan(
		&rec.ID, &rec.CoachID, &rec.Kind, &rec.Label, &rec.Phone, &rec.Status,
		&rec.Source, &rec.Notes, &lastAction, &nextAction,
		&rec.UpdatedAt, &rec.CoachProspect, &rec.Version,
	)
	if err != nil {
		return pipeline.Record{}, err
	}
	if lastAction != nil {
		d := pipeline.DateOf(*lastAction)
		rec.LastActionDate = &d
	}
	if nextAction != nil {
		d := pipeline.DateOf(*nextAction)
		rec.NextActionDate = &d
	}
	return rec, nil
}

// dateArg maps a nullable domain date to a driver value.
func dateArg(d *pipeline.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return &t
}
