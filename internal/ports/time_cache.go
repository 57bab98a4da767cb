package ports

import (
	"context"
	"delivery-optimizer-service/internal/domain"
)

// Port: a persistent cache for computed stop-pair travel times, keyed by
// the travel speed they were derived from. Entries are expected to be
// normalized (From < To) by the caller.
type TimeCache interface {
	// Load every cached pair time for one speed.
	Load(ctx context.Context, speed float64) ([]domain.TimeEntry, error)

	// Store pair times for one speed, replacing existing entries.
	Save(ctx context.Context, speed float64, entries []domain.TimeEntry) error
}
