package domain

import (
	"errors"
	"fmt"
)

// TimeEntry is one computed pair time. Persistent cache adapters exchange
// these with TravelTimes; From is always the lower stop ID.
type TimeEntry struct {
	From int
	To   int
	Time float64
}

// TravelTimes memoizes the time needed between each pair of stops:
// straight-line distance divided by a fixed travel speed. Each unordered
// pair is computed at most once and served for both query orders.
//
// After the lazy-fill phase the matrix never changes, and refilling an
// entry would write the same value, so read-only sharing is safe.
type TravelTimes struct {
	stopMap *StopMap
	speed   float64
	times   [][]float64
}

func NewTravelTimes(m *StopMap, speed float64) (*TravelTimes, error) {
	if m == nil {
		return nil, errors.New("new travel times: stop map is nil")
	}
	if speed <= 0 {
		return nil, fmt.Errorf("new travel times: speed must be greater than 0, got %v", speed)
	}

	n := m.Size()
	times := make([][]float64, n)
	for i := range times {
		times[i] = make([]float64, n)
		for j := range times[i] {
			times[i][j] = -1
		}
	}

	return &TravelTimes{stopMap: m, speed: speed, times: times}, nil
}

// Between returns the travel time between two stops by ID.
// Between(a,b) == Between(b,a) always.
func (t *TravelTimes) Between(id1, id2 int) (float64, error) {
	i, ok := t.stopMap.idx[id1]
	if !ok {
		return 0, fmt.Errorf("travel time: stop %d: %w", id1, ErrUnknownStop)
	}
	j, ok := t.stopMap.idx[id2]
	if !ok {
		return 0, fmt.Errorf("travel time: stop %d: %w", id2, ErrUnknownStop)
	}

	if t.times[i][j] < 0 {
		d, err := t.stopMap.Distance(id1, id2)
		if err != nil {
			return 0, fmt.Errorf("travel time: %w", err)
		}
		tt := d / t.speed
		t.times[i][j] = tt
		t.times[j][i] = tt
	}
	return t.times[i][j], nil
}

// Seed pre-fills the entry for one pair, typically from a persistent
// cache, so Between never has to compute it. Seeding a negative time or
// an unknown stop is rejected.
func (t *TravelTimes) Seed(id1, id2 int, tt float64) error {
	if tt < 0 {
		return fmt.Errorf("seed travel time: negative time %v for pair (%d,%d)", tt, id1, id2)
	}
	i, ok := t.stopMap.idx[id1]
	if !ok {
		return fmt.Errorf("seed travel time: stop %d: %w", id1, ErrUnknownStop)
	}
	j, ok := t.stopMap.idx[id2]
	if !ok {
		return fmt.Errorf("seed travel time: stop %d: %w", id2, ErrUnknownStop)
	}
	t.times[i][j] = tt
	t.times[j][i] = tt
	return nil
}

// WarmAll computes every pair time that has not been filled yet.
func (t *TravelTimes) WarmAll() error {
	stops := t.stopMap.stops
	for i := 0; i < len(stops); i++ {
		for j := i + 1; j < len(stops); j++ {
			if _, err := t.Between(stops[i].ID, stops[j].ID); err != nil {
				return fmt.Errorf("warm travel times: %w", err)
			}
		}
	}
	return nil
}

// Entries returns every computed pair time with From < To, for handing
// to a persistent cache.
func (t *TravelTimes) Entries() []TimeEntry {
	stops := t.stopMap.stops
	entries := make([]TimeEntry, 0, len(stops)*(len(stops)-1)/2)
	for i := 0; i < len(stops); i++ {
		for j := i + 1; j < len(stops); j++ {
			if t.times[i][j] < 0 {
				continue
			}
			from, to := stops[i].ID, stops[j].ID
			if from > to {
				from, to = to, from
			}
			entries = append(entries, TimeEntry{From: from, To: to, Time: t.times[i][j]})
		}
	}
	return entries
}

// Speed returns the configured travel speed.
func (t *TravelTimes) Speed() float64 { return t.speed }
