package cache

import (
	"context"
	"database/sql"
	"delivery-optimizer-service/internal/domain"
	"delivery-optimizer-service/internal/platform/obs"
	"errors"
	"fmt"
)

// SQLite-backed cache for computed stop-pair travel times. Pair keys are
// expected to be normalized (from_stop < to_stop) by the caller.
type SqliteTimeCache struct {
	DB *sql.DB
}

func NewSqliteTimeCache(db *sql.DB) *SqliteTimeCache {
	return &SqliteTimeCache{DB: db}
}

// Fetch every cached pair time derived from one travel speed.
func (s *SqliteTimeCache) Load(ctx context.Context, speed float64) (_ []domain.TimeEntry, err error) {
	defer obs.Time(ctx, "traveltime.cache.sqlite.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("time cache: db is nil")
	}
	if speed <= 0 {
		return nil, fmt.Errorf("load time cache: speed must be greater than 0, got %v", speed)
	}

	q := `
	SELECT
		from_stop,
		to_stop,
		travel_time
	FROM travel_time_cache
	WHERE speed = ?;
	`
	rows, err := s.DB.QueryContext(ctx, q, speed)
	if err != nil {
		return nil, fmt.Errorf("load time cache: query travel_time_cache table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TimeEntry, 0, 64)
	for rows.Next() {
		var e domain.TimeEntry
		if err := rows.Scan(&e.From, &e.To, &e.Time); err != nil {
			return nil, fmt.Errorf("load time cache: scan rows: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load time cache: row iteration: %w", err)
	}

	return entries, nil
}

// Store pair times for one travel speed.
func (s *SqliteTimeCache) Save(ctx context.Context, speed float64, entries []domain.TimeEntry) (err error) {
	defer obs.Time(ctx, "traveltime.cache.sqlite.Save")(&err)

	if s.DB == nil {
		return errors.New("time cache: db is nil")
	}
	if speed <= 0 {
		return fmt.Errorf("save time cache: speed must be greater than 0, got %v", speed)
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save time cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO travel_time_cache (
		speed,
		from_stop,
		to_stop,
		travel_time
	)
	VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save time cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.From >= e.To {
			return fmt.Errorf("save time cache: pair (%d,%d) is not normalized", e.From, e.To)
		}
		if _, err := stmt.Exec(speed, e.From, e.To, e.Time); err != nil {
			return fmt.Errorf("save time cache pair=(%d,%d): %w", e.From, e.To, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save time cache commit: %w", err)
	}

	return nil
}
