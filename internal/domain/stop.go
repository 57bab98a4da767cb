package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownStop signals a lookup for a stop ID that was never loaded.
// Hitting it after startup validation indicates a programming error.
var ErrUnknownStop = errors.New("unknown stop")

// A single delivery destination on the map, with its 2-D position.
// Immutable after creation.
type Stop struct {
	ID int
	X  float64
	Y  float64
}

// DistanceTo returns the straight-line distance to another stop.
func (s Stop) DistanceTo(other Stop) float64 {
	dx := s.X - other.X
	dy := s.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// StopMap owns every known stop and a precomputed symmetric distance
// matrix over them. It is built once at startup and read-only afterwards,
// so it may be shared freely across goroutines.
type StopMap struct {
	stops []Stop
	idx   map[int]int
	dists [][]float64
}

func NewStopMap(stops []Stop) (*StopMap, error) {
	if len(stops) == 0 {
		return nil, errors.New("new stop map: at least one stop is required")
	}

	idx := make(map[int]int, len(stops))
	for i, s := range stops {
		if _, ok := idx[s.ID]; ok {
			return nil, fmt.Errorf("new stop map: duplicate stop ID %d", s.ID)
		}
		idx[s.ID] = i
	}

	dists := make([][]float64, len(stops))
	for i := range dists {
		dists[i] = make([]float64, len(stops))
	}
	for i := 0; i < len(stops); i++ {
		for j := i + 1; j < len(stops); j++ {
			d := stops[i].DistanceTo(stops[j])
			dists[i][j] = d
			dists[j][i] = d
		}
	}

	return &StopMap{
		stops: append([]Stop(nil), stops...),
		idx:   idx,
		dists: dists,
	}, nil
}

// Distance returns the straight-line distance between two stops by ID.
func (m *StopMap) Distance(id1, id2 int) (float64, error) {
	i, ok := m.idx[id1]
	if !ok {
		return 0, fmt.Errorf("stop map distance: stop %d: %w", id1, ErrUnknownStop)
	}
	j, ok := m.idx[id2]
	if !ok {
		return 0, fmt.Errorf("stop map distance: stop %d: %w", id2, ErrUnknownStop)
	}
	return m.dists[i][j], nil
}

// Stop returns one stop by ID.
func (m *StopMap) Stop(id int) (Stop, error) {
	i, ok := m.idx[id]
	if !ok {
		return Stop{}, fmt.Errorf("stop map: stop %d: %w", id, ErrUnknownStop)
	}
	return m.stops[i], nil
}

// Stops returns all stops in load order.
func (m *StopMap) Stops() []Stop {
	return append([]Stop(nil), m.stops...)
}

func (m *StopMap) Size() int { return len(m.stops) }
