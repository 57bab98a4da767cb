// Package loader reads the delivery network from CSV files and enforces
// the data-integrity rules the search engine relies on: unique IDs,
// known destinations, non-negative times, positions inside the map.
package loader

import (
	"delivery-optimizer-service/internal/domain"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
)

// LoadStops reads a stops CSV (header: ID,X,Y). Positions outside the
// configured map bounds are clamped into them with a relocation warning;
// duplicate IDs are fatal.
func LoadStops(path string, width, height float64) ([]domain.Stop, error) {
	rows, err := readCSV(path, 3)
	if err != nil {
		return nil, fmt.Errorf("load stops: %w", err)
	}

	stops := make([]domain.Stop, 0, len(rows))
	seen := map[int]struct{}{}
	for i, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("load stops: row %d: parse ID %q: %w", i+2, row[0], err)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("load stops: row %d: stop %d is a duplicate", i+2, id)
		}
		seen[id] = struct{}{}

		x, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("load stops: row %d: parse X %q: %w", i+2, row[1], err)
		}
		y, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("load stops: row %d: parse Y %q: %w", i+2, row[2], err)
		}

		cx := clamp(x, 0, width)
		cy := clamp(y, 0, height)
		if cx != x || cy != y {
			log.Printf("stop %d relocated from (%v, %v) to (%v, %v)", id, x, y, cx, cy)
		}

		stops = append(stops, domain.Stop{ID: id, X: cx, Y: cy})
	}

	return stops, nil
}

// LoadOrders reads an orders CSV (header: ID,Stop,WaitTime,TimeLimit).
// Duplicate IDs, unknown destination stops and negative times are fatal.
func LoadOrders(path string, stops []domain.Stop) ([]domain.Order, error) {
	rows, err := readCSV(path, 4)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	known := make(map[int]struct{}, len(stops))
	for _, s := range stops {
		known[s.ID] = struct{}{}
	}

	orders := make([]domain.Order, 0, len(rows))
	seen := map[int]struct{}{}
	for i, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("load orders: row %d: parse ID %q: %w", i+2, row[0], err)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("load orders: row %d: order %d is a duplicate", i+2, id)
		}
		seen[id] = struct{}{}

		stopID, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("load orders: row %d: parse stop %q: %w", i+2, row[1], err)
		}
		if _, ok := known[stopID]; !ok {
			return nil, fmt.Errorf("load orders: row %d: order %d references unknown stop %d", i+2, id, stopID)
		}

		waitTime, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("load orders: row %d: parse wait time %q: %w", i+2, row[2], err)
		}
		timeLimit, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("load orders: row %d: parse time limit %q: %w", i+2, row[3], err)
		}
		if waitTime < 0 || timeLimit < 0 {
			return nil, fmt.Errorf("load orders: row %d: order %d has negative time values", i+2, id)
		}

		orders = append(orders, domain.Order{
			ID:        id,
			StopID:    stopID,
			WaitTime:  waitTime,
			TimeLimit: timeLimit,
		})
	}

	return orders, nil
}

// readCSV returns all data rows of a CSV file, skipping the header and
// requiring a fixed column count.
func readCSV(path string, columns int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = columns
	r.TrimLeadingSpace = true

	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read header of %q: %w", path, err)
	}

	rows := make([][]string, 0, 64)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
