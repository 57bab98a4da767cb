package domain

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrUnknownOrder signals a lookup for an order ID not present in the book.
var ErrUnknownOrder = errors.New("unknown order")

// A single delivery order. Immutable once created.
type Order struct {
	ID     int
	StopID int // the destination

	// How long the customer has already been waiting when the vehicle
	// departs. Counted toward the arrival time at this stop.
	WaitTime float64

	// Arriving later than this counts as delay.
	TimeLimit float64
}

// OrderBook owns every delivery order, keyed by ID. Built once at
// startup, read-only afterwards.
type OrderBook struct {
	orders []Order
	byID   map[int]Order
}

func NewOrderBook(orders []Order) (*OrderBook, error) {
	if len(orders) == 0 {
		return nil, errors.New("new order book: at least one order is required")
	}

	byID := make(map[int]Order, len(orders))
	for _, o := range orders {
		if _, ok := byID[o.ID]; ok {
			return nil, fmt.Errorf("new order book: duplicate order ID %d", o.ID)
		}
		if o.WaitTime < 0 {
			return nil, fmt.Errorf("new order book: order %d: negative wait time %v", o.ID, o.WaitTime)
		}
		if o.TimeLimit < 0 {
			return nil, fmt.Errorf("new order book: order %d: negative time limit %v", o.ID, o.TimeLimit)
		}
		byID[o.ID] = o
	}

	return &OrderBook{orders: append([]Order(nil), orders...), byID: byID}, nil
}

// Get returns one order by ID.
func (b *OrderBook) Get(id int) (Order, error) {
	o, ok := b.byID[id]
	if !ok {
		return Order{}, fmt.Errorf("order book: order %d: %w", id, ErrUnknownOrder)
	}
	return o, nil
}

// Orders returns all orders in load order.
func (b *OrderBook) Orders() []Order {
	return append([]Order(nil), b.orders...)
}

func (b *OrderBook) Size() int { return len(b.orders) }

// RandomRoute returns a route visiting every order exactly once, in a
// uniformly random sequence drawn from rng.
func (b *OrderBook) RandomRoute(eval *Evaluator, rng *rand.Rand) (*Route, error) {
	orders := append([]Order(nil), b.orders...)
	rng.Shuffle(len(orders), func(i, j int) {
		orders[i], orders[j] = orders[j], orders[i]
	})
	return NewRoute(eval, orders)
}
