package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id INTEGER PRIMARY KEY,
		x REAL NOT NULL,
		y REAL NOT NULL
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		stop_id INTEGER NOT NULL REFERENCES stops(stop_id),
		wait_time REAL NOT NULL,
		time_limit REAL NOT NULL
	);
	`

	createTimeCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_time_cache (
		speed REAL NOT NULL,
		from_stop INTEGER NOT NULL,
		to_stop INTEGER NOT NULL,
		travel_time REAL NOT NULL,
		PRIMARY KEY (speed, from_stop, to_stop)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_stop
	ON orders(stop_id);
	`

	statements := []string{
		createStopsQuery,
		createOrdersQuery,
		createTimeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StopSeed struct {
	StopID int     `json:"stop_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type OrderSeed struct {
	OrderID   int     `json:"order_id"`
	StopID    int     `json:"stop_id"`
	WaitTime  float64 `json:"wait_time"`
	TimeLimit float64 `json:"time_limit"`
}

type NetworkSeed struct {
	Stops  []StopSeed  `json:"stops"`
	Orders []OrderSeed `json:"orders"`
}

// Populate the database with network data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed network: read %q: %w", jsonPath, err)
	}

	var data NetworkSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed network: parse json: %w", err)
	}

	stopIDs := map[int]struct{}{}
	for i, s := range data.Stops {
		if _, ok := stopIDs[s.StopID]; ok {
			return fmt.Errorf("seed network: duplicate stop_id %d at index %d", s.StopID, i+1)
		}
		stopIDs[s.StopID] = struct{}{}
	}

	orderIDs := map[int]struct{}{}
	for i, o := range data.Orders {
		if _, ok := orderIDs[o.OrderID]; ok {
			return fmt.Errorf("seed network: duplicate order_id %d at index %d", o.OrderID, i+1)
		}
		orderIDs[o.OrderID] = struct{}{}

		if _, ok := stopIDs[o.StopID]; !ok {
			return fmt.Errorf("seed network: order %d references unknown stop %d", o.OrderID, o.StopID)
		}
		if o.WaitTime < 0 || o.TimeLimit < 0 {
			return fmt.Errorf("seed network: order %d has negative time values", o.OrderID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stopStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO stops (
		stop_id,
		x,
		y
	)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed network: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	for _, s := range data.Stops {
		if _, err := stopStmt.Exec(s.StopID, s.X, s.Y); err != nil {
			return fmt.Errorf("seed network: insert stop_id=%d: %w", s.StopID, err)
		}
	}

	orderStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO orders (
		order_id,
		stop_id,
		wait_time,
		time_limit
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed network: prepare order insert: %w", err)
	}
	defer orderStmt.Close()

	for _, o := range data.Orders {
		if _, err := orderStmt.Exec(o.OrderID, o.StopID, o.WaitTime, o.TimeLimit); err != nil {
			return fmt.Errorf("seed network: insert order_id=%d: %w", o.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed network: commit tx: %w", err)
	}

	return nil
}
