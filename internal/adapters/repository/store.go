// Package repository defines the contact record store contract and errors.
package repository

import (
	"context"

	"github.com/coachdesk/ascend/internal/domain/pipeline"
)

// Store provides read/write access to contact records. Writes use
// optimistic concurrency: Save only applies when the caller's snapshot
// Version matches the stored one, so two concurrent transitions against
// the same record cannot silently clobber each other. On
// ErrVersionConflict the caller re-fetches and retries.
type Store interface {
	// Create inserts a new record. The id must be set and unused;
	// ErrDuplicateID otherwise. The stored record starts at version 1.
	Create(ctx context.Context, rec pipeline.Record) (pipeline.Record, error)

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (pipeline.Record, error)

	// ListByCoach returns a coach's records of one kind, ordered by id for
	// deterministic reads.
	ListByCoach(ctx context.Context, coachID string, kind pipeline.Kind) ([]pipeline.Record, error)

	// Save writes an updated snapshot if rec.Version still matches the
	// stored version, then bumps it. ErrVersionConflict on a stale
	// snapshot, ErrNotFound if the record disappeared between reads.
	Save(ctx context.Context, rec pipeline.Record) (pipeline.Record, error)

	// Count returns the number of records tracked.
	Count(ctx context.Context) int
}
