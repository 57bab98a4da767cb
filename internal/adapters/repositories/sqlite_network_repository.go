package repositories

import (
	"context"
	"database/sql"
	"delivery-optimizer-service/internal/domain"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the NetworkRepository port.
type SqliteNetworkRepository struct{ DB *sql.DB }

func NewSqliteNetworkRepository(db *sql.DB) *SqliteNetworkRepository {
	return &SqliteNetworkRepository{DB: db}
}

// Return all stops stored in the database, in insertion order.
func (s *SqliteNetworkRepository) ListStops(ctx context.Context) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite network repository: DB is nil")
	}

	query := `
	SELECT
		stop_id,
		x,
		y
	FROM stops
	ORDER BY rowid;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 64)
	for rows.Next() {
		var stop domain.Stop
		if err := rows.Scan(&stop.ID, &stop.X, &stop.Y); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}

// Return all delivery orders stored in the database.
func (s *SqliteNetworkRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite network repository: DB is nil")
	}

	query := `
	SELECT
		order_id,
		stop_id,
		wait_time,
		time_limit
	FROM orders
	ORDER BY order_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 64)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.StopID, &o.WaitTime, &o.TimeLimit); err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}
