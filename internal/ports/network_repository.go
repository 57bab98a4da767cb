package ports

import (
	"context"
	"delivery-optimizer-service/internal/domain"
)

// Port: a boundary for loading the delivery network (stops and their
// pending orders) from a data source.
type NetworkRepository interface {
	// Retrieve all stops available for routing.
	ListStops(ctx context.Context) ([]domain.Stop, error)

	// Retrieve all delivery orders awaiting optimization.
	ListOrders(ctx context.Context) ([]domain.Order, error)
}
