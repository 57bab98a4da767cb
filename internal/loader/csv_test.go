package loader

import (
	"delivery-optimizer-service/internal/domain"
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoadStops(t *testing.T) {
	path := writeTempCSV(t, "stops.csv", "ID,X,Y\n1,0,0\n2,10,20\n")

	stops, err := LoadStops(path, 100, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("loaded %d stops, want 2", len(stops))
	}
	if stops[1].ID != 2 || stops[1].X != 10 || stops[1].Y != 20 {
		t.Fatalf("stop 2 = %+v", stops[1])
	}
}

func TestLoadStopsClampsPositions(t *testing.T) {
	path := writeTempCSV(t, "stops.csv", "ID,X,Y\n1,-5,250\n")

	stops, err := LoadStops(path, 100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stops[0].X != 0 || stops[0].Y != 200 {
		t.Fatalf("clamped stop = %+v, want (0, 200)", stops[0])
	}
}

func TestLoadStopsRejectsDuplicates(t *testing.T) {
	path := writeTempCSV(t, "stops.csv", "ID,X,Y\n1,0,0\n1,5,5\n")

	if _, err := LoadStops(path, 100, 100); err == nil {
		t.Fatal("expected error for duplicate stop IDs")
	}
}

func TestLoadOrders(t *testing.T) {
	stops := []domain.Stop{{ID: 1}, {ID: 2}}
	path := writeTempCSV(t, "orders.csv", "ID,Stop,WaitTime,TimeLimit\n10,1,0,50\n11,2,3.5,40\n")

	orders, err := LoadOrders(path, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("loaded %d orders, want 2", len(orders))
	}
	if orders[1].ID != 11 || orders[1].StopID != 2 || orders[1].WaitTime != 3.5 || orders[1].TimeLimit != 40 {
		t.Fatalf("order 11 = %+v", orders[1])
	}
}

func TestLoadOrdersValidation(t *testing.T) {
	stops := []domain.Stop{{ID: 1}}

	cases := []struct {
		name    string
		content string
	}{
		{"duplicate IDs", "ID,Stop,WaitTime,TimeLimit\n10,1,0,50\n10,1,0,50\n"},
		{"unknown stop", "ID,Stop,WaitTime,TimeLimit\n10,9,0,50\n"},
		{"negative wait time", "ID,Stop,WaitTime,TimeLimit\n10,1,-1,50\n"},
		{"negative time limit", "ID,Stop,WaitTime,TimeLimit\n10,1,0,-50\n"},
		{"bad column count", "ID,Stop,WaitTime,TimeLimit\n10,1,0\n"},
	}
	for _, tc := range cases {
		path := writeTempCSV(t, "orders.csv", tc.content)
		if _, err := LoadOrders(path, stops); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
