// Package service provides the core business service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coachdesk/ascend/internal/adapters/repository"
	"github.com/coachdesk/ascend/internal/domain/content"
	"github.com/coachdesk/ascend/internal/domain/dedupe"
	"github.com/coachdesk/ascend/internal/domain/pipeline"
	"github.com/coachdesk/ascend/internal/domain/progression"
	"github.com/coachdesk/ascend/internal/domain/rank"
	"github.com/coachdesk/ascend/pkg/logger"
	"github.com/coachdesk/ascend/pkg/metrics"
)

// Default service configuration.
const (
	defaultMaxActivityLimit = 50
	defaultDedupeSize       = 10_000
)

// Service wires the rank table, engines and record store behind one API.
// All domain calls are pure; the service owns the only shared state (the
// store and the idempotency cache), both safe for concurrent use.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	table   *rank.Table
	calc    *progression.Calculator
	engine  *pipeline.Engine
	gate    *content.Gate
	deduper dedupe.Deduper

	clientsPerPoint  int
	maxActivityLimit int
	dedupeSize       int

	started bool
	clock   func() time.Time
	newID   func() string
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a record store; defaults to the in-memory one.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRankTable substitutes the rank hierarchy.
func WithRankTable(table *rank.Table) Option {
	return func(s *Service) {
		if table != nil {
			s.table = table
		}
	}
}

// WithClientsPerPoint overrides the progression volume divisor.
func WithClientsPerPoint(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.clientsPerPoint = n
		}
	}
}

// WithMaxActivityLimit caps activity feed reads.
func WithMaxActivityLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxActivityLimit = n
		}
	}
}

// WithDedupeSize bounds the transition idempotency cache.
func WithDedupeSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.dedupeSize = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock substitutes the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		clientsPerPoint:  0, // calculator default applies
		maxActivityLimit: defaultMaxActivityLimit,
		dedupeSize:       defaultDedupeSize,
		clock:            time.Now,
		newID:            func() string { return uuid.NewString() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.table == nil {
		s.table = rank.NewTable()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory record store")
	}

	var calcOpts []progression.Option
	if s.clientsPerPoint > 0 {
		calcOpts = append(calcOpts, progression.WithClientsPerPoint(s.clientsPerPoint))
	}
	s.calc = progression.NewCalculator(s.table, calcOpts...)
	s.engine = pipeline.NewEngine()
	s.gate = content.NewGate(s.table)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	s.started = true
	s.logger.Info(ctx, "progression service started",
		logger.Int("ranks", s.table.Len()),
		logger.Int("maxActivityLimit", s.maxActivityLimit),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if closer, ok := s.store.(interface{ Close() }); ok {
		closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "progression service stopped")
}

// CreateRecordInput carries the caller-supplied fields for a new record.
type CreateRecordInput struct {
	CoachID string
	Kind    string
	Label   string
	Phone   string
	Source  string
	Status  string
	Notes   string

	// NextActionDate is an optional YYYY-MM-DD follow-up date used by
	// overdue detection.
	NextActionDate string
}

// CreateRecord validates the kind and initial status, mints an id and
// stores the record.
func (s *Service) CreateRecord(ctx context.Context, in CreateRecordInput) (pipeline.Record, error) {
	kind, err := pipeline.ParseKind(in.Kind)
	if err != nil {
		return pipeline.Record{}, err
	}

	statusStr := in.Status
	if statusStr == "" {
		// Funnel entry points.
		if kind == pipeline.KindClient {
			statusStr = pipeline.StatusActive.String()
		} else {
			statusStr = pipeline.StatusNew.String()
		}
	}
	status, err := pipeline.ParseStatus(kind, statusStr)
	if err != nil {
		return pipeline.Record{}, err
	}

	var nextAction *pipeline.Date
	if in.NextActionDate != "" {
		d, err := pipeline.ParseDate(in.NextActionDate)
		if err != nil {
			return pipeline.Record{}, err
		}
		nextAction = &d
	}

	now := s.clock()
	today := pipeline.DateOf(now)
	rec := pipeline.Record{
		ID:             s.newID(),
		CoachID:        in.CoachID,
		Kind:           kind,
		Label:          in.Label,
		Phone:          in.Phone,
		Source:         in.Source,
		Notes:          in.Notes,
		Status:         status,
		LastActionDate: &today,
		NextActionDate: nextAction,
		UpdatedAt:      &now,
	}

	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return pipeline.Record{}, err
	}
	s.logger.Debug(ctx, "record created",
		logger.String("id", created.ID),
		logger.String("coach", created.CoachID),
		logger.String("status", created.Status.String()),
	)
	return created, nil
}

// Records lists a coach's records of one kind.
func (s *Service) Records(ctx context.Context, coachID, kind string) ([]pipeline.Record, error) {
	k, err := pipeline.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return s.store.ListByCoach(ctx, coachID, k)
}

// Transition loads a record, applies the state machine and saves the
// result with the store's optimistic-concurrency check. A non-empty
// requestID makes the call idempotent: a replay acks as duplicate without
// touching the record. Returns the saved record and whether the request
// was a duplicate.
func (s *Service) Transition(ctx context.Context, recordID, newStatus, requestID string) (pipeline.Record, bool, error) {
	if requestID != "" && s.deduper.SeenAndRecord(ctx, requestID) {
		metrics.RecordDuplicateTransition()
		s.logger.Debug(ctx, "duplicate transition request",
			logger.String("requestID", requestID),
			logger.String("record", recordID),
		)
		rec, err := s.store.Get(ctx, recordID)
		return rec, true, err
	}

	rec, err := s.store.Get(ctx, recordID)
	if err != nil {
		s.unrecord(ctx, requestID)
		return pipeline.Record{}, false, err
	}

	updated, err := s.engine.ApplyTransition(rec, newStatus, s.clock())
	if err != nil {
		s.unrecord(ctx, requestID)
		return pipeline.Record{}, false, err
	}

	saved, err := s.store.Save(ctx, updated)
	if err != nil {
		// A conflict means someone else moved the record between our read
		// and write; the caller re-fetches and retries with a fresh
		// request id of their choosing.
		s.unrecord(ctx, requestID)
		return pipeline.Record{}, false, err
	}

	s.logger.Info(ctx, "transition applied",
		logger.String("record", saved.ID),
		logger.String("status", saved.Status.String()),
	)
	return saved, false, nil
}

func (s *Service) unrecord(ctx context.Context, requestID string) {
	if requestID != "" {
		s.deduper.Unrecord(ctx, requestID)
	}
}

// Stages returns the stage aggregation for a coach's records of one kind.
func (s *Service) Stages(ctx context.Context, coachID, kind string) ([]pipeline.Stage, error) {
	records, err := s.Records(ctx, coachID, kind)
	if err != nil {
		return nil, err
	}
	return s.engine.ComputeStages(records), nil
}

// Activity returns the coach's recent activity across prospects and
// clients, newest first, capped by the configured limit.
func (s *Service) Activity(ctx context.Context, coachID string, limit int) ([]pipeline.ActivityItem, error) {
	if limit <= 0 || limit > s.maxActivityLimit {
		limit = s.maxActivityLimit
	}

	prospects, err := s.store.ListByCoach(ctx, coachID, pipeline.KindProspect)
	if err != nil {
		return nil, err
	}
	clients, err := s.store.ListByCoach(ctx, coachID, pipeline.KindClient)
	if err != nil {
		return nil, err
	}
	return s.engine.ComputeActivity(append(prospects, clients...), limit), nil
}

// Overdue returns the coach's prospects whose next action date has passed
// as of today.
func (s *Service) Overdue(ctx context.Context, coachID string, today pipeline.Date) ([]pipeline.Record, error) {
	prospects, err := s.store.ListByCoach(ctx, coachID, pipeline.KindProspect)
	if err != nil {
		return nil, err
	}
	overdue := s.engine.OverdueRecords(prospects, today)
	metrics.UpdateOverdueRecords(len(overdue))
	return overdue, nil
}

// Progression computes the promotion state for a rank and metrics pair.
func (s *Service) Progression(_ context.Context, currentRank string, m progression.Metrics) progression.Progression {
	return s.calc.Compute(currentRank, m)
}

// Ranks returns the loaded hierarchy.
func (s *Service) Ranks(_ context.Context) []rank.Rank {
	return s.table.Ranks()
}

// CanAccess reports whether userRank may open content gated on
// requiredRank.
func (s *Service) CanAccess(_ context.Context, userRank, requiredRank string) bool {
	return s.gate.CanAccess(userRank, requiredRank)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"maxActivityLimit": s.maxActivityLimit,
	}
	if s.started {
		total := s.store.Count(ctx)
		stats["recordsTracked"] = total
		stats["ranks"] = s.table.Len()
		stats["dedupeEntries"] = s.deduper.Size()
		metrics.UpdateRecordsTracked(total)
	}
	return stats
}
