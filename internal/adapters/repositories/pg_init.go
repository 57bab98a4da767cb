package repositories

import (
	"context"
	"database/sql"
	"delivery-optimizer-service/internal/domain"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitPgSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init pg schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init pg schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id INTEGER PRIMARY KEY,
		loaded_seq SERIAL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		stop_id INTEGER NOT NULL REFERENCES stops(stop_id),
		wait_time DOUBLE PRECISION NOT NULL CHECK (wait_time >= 0),
		time_limit DOUBLE PRECISION NOT NULL CHECK (time_limit >= 0)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_stop
	ON orders(stop_id);
	`

	statements := []string{
		createStopsQuery,
		createOrdersQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init pg schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init pg schema: commit tx: %w", err)
	}

	return nil
}

// Import an already-validated network into Postgres, replacing rows that
// share a primary key.
func ImportNetwork(ctx context.Context, db *sql.DB, stops []domain.Stop, orders []domain.Order) error {
	if db == nil {
		return errors.New("import network: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stopStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (stop_id, x, y)
	VALUES ($1, $2, $3)
	ON CONFLICT (stop_id) DO UPDATE
	SET x = EXCLUDED.x,
		y = EXCLUDED.y;
	`)
	if err != nil {
		return fmt.Errorf("import network: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	for _, s := range stops {
		if _, err := stopStmt.ExecContext(ctx, s.ID, s.X, s.Y); err != nil {
			return fmt.Errorf("import network: insert stop_id=%d: %w", s.ID, err)
		}
	}

	orderStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO orders (order_id, stop_id, wait_time, time_limit)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (order_id) DO UPDATE
	SET stop_id = EXCLUDED.stop_id,
		wait_time = EXCLUDED.wait_time,
		time_limit = EXCLUDED.time_limit;
	`)
	if err != nil {
		return fmt.Errorf("import network: prepare order insert: %w", err)
	}
	defer orderStmt.Close()

	for _, o := range orders {
		if _, err := orderStmt.ExecContext(ctx, o.ID, o.StopID, o.WaitTime, o.TimeLimit); err != nil {
			return fmt.Errorf("import network: insert order_id=%d: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import network: commit tx: %w", err)
	}

	return nil
}
