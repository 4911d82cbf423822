package engine

import (
	"context"
	"database/sql"
	"time"

	"soloquest/internal/storage"
)

// Service is the progression engine. Every operation executes as a single
// SQL transaction; the check-then-write sequences the idempotency
// guarantees rest on are never interleaved.
type Service struct {
	db    *sql.DB
	clock Clock
	loc   *time.Location
}

func NewService(db *sql.DB, clock Clock, loc *time.Location) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{db: db, clock: clock, loc: loc}
}

// Repos returns repos bound directly to the DB, for read-only callers
// outside the engine (CLI listings, TUI).
func (s *Service) Repos() *storage.Repos {
	return storage.NewRepos(s.db)
}

func (s *Service) runTx(ctx context.Context, fn func(r *storage.Repos) error) error {
	return storage.WithTx(ctx, s.db, fn)
}

// today returns the calendar date in the configured timezone. Client-local
// time is never consulted; streak and daily-quest idempotency depend on
// this single day boundary.
func (s *Service) today() string {
	return s.clock.Now().In(s.loc).Format("2006-01-02")
}

// nowISO returns the current instant as an ISO-8601 timestamp.
func (s *Service) nowISO() string {
	return s.clock.Now().UTC().Format(time.RFC3339)
}

// requireCharacter converts a missing character singleton into
// ErrUninitialized.
func (s *Service) requireCharacter(ctx context.Context, r *storage.Repos) (*storage.Character, error) {
	c, err := r.Characters.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrUninitialized
	}
	return c, nil
}
