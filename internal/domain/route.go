package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Evaluator carries the fixed depot and the shared travel-time cache
// every route is scored against. It is assembled once before any route
// is built and read-only during a search, replacing what would otherwise
// be hidden global state.
type Evaluator struct {
	depot Stop
	times *TravelTimes
}

func NewEvaluator(depot Stop, times *TravelTimes) (*Evaluator, error) {
	if times == nil {
		return nil, errors.New("new evaluator: travel times is nil")
	}
	if _, err := times.stopMap.Stop(depot.ID); err != nil {
		return nil, fmt.Errorf("new evaluator: depot: %w", err)
	}
	return &Evaluator{depot: depot, times: times}, nil
}

// Depot returns the fixed starting point of every route.
func (e *Evaluator) Depot() Stop { return e.depot }

// Route is an ordered visit sequence over the full order set, starting
// from the evaluator's depot. Routes are immutable; reordering always
// produces a new route.
type Route struct {
	eval      *Evaluator
	orders    []Order
	delay     float64
	evaluated bool
}

func NewRoute(eval *Evaluator, orders []Order) (*Route, error) {
	if eval == nil {
		return nil, errors.New("new route: evaluator is nil")
	}
	if len(orders) == 0 {
		return nil, errors.New("new route: at least one order is required")
	}
	return &Route{
		eval:   eval,
		orders: append([]Order(nil), orders...),
	}, nil
}

// Delay returns the route's total delay: for each order, the amount by
// which its arrival time (travel so far plus the customer's prior wait)
// exceeds its time limit. Computed on first call and memoized.
func (r *Route) Delay() (float64, error) {
	if r.evaluated {
		return r.delay, nil
	}

	elapsed := 0.0
	delay := 0.0
	prev := r.eval.depot.ID
	for _, o := range r.orders {
		leg, err := r.eval.times.Between(prev, o.StopID)
		if err != nil {
			return 0, fmt.Errorf("route delay: %w", err)
		}
		elapsed += leg
		if late := elapsed + o.WaitTime - o.TimeLimit; late > 0 {
			delay += late
		}
		prev = o.StopID
	}

	r.delay = delay
	r.evaluated = true
	return r.delay, nil
}

// Orders returns the visit sequence. Callers must not modify it.
func (r *Route) Orders() []Order { return r.orders }

// OrderIDs returns the visit sequence as order IDs.
func (r *Route) OrderIDs() []int {
	ids := make([]int, len(r.orders))
	for i, o := range r.orders {
		ids[i] = o.ID
	}
	return ids
}

// Evaluator returns the shared scoring context this route was built with.
func (r *Route) Evaluator() *Evaluator { return r.eval }

// String renders the route as depot -> stop -> stop.
func (r *Route) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(r.eval.depot.ID))
	for _, o := range r.orders {
		sb.WriteString(" -> ")
		sb.WriteString(strconv.Itoa(o.StopID))
	}
	return sb.String()
}
