package main

import (
	"context"
	"delivery-optimizer-service/internal/services"
	"os"
	"path/filepath"
	"testing"
)

const testSeed = `{
	"stops": [
		{"stop_id": 1, "x": 0, "y": 0},
		{"stop_id": 2, "x": 10, "y": 0},
		{"stop_id": 3, "x": 10, "y": 10}
	],
	"orders": [
		{"order_id": 1, "stop_id": 2, "wait_time": 0, "time_limit": 20},
		{"order_id": 2, "stop_id": 3, "wait_time": 0, "time_limit": 40}
	]
}`

func setupSqliteEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	seedPath := filepath.Join(dir, "network.json")
	if err := os.WriteFile(seedPath, []byte(testSeed), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PATH", filepath.Join(dir, "app.db"))
	t.Setenv("SEED_PATH", seedPath)
}

func TestOpenRepositorySqliteProvidesTimeCache(t *testing.T) {
	setupSqliteEnv(t)
	ctx := context.Background()

	repo, timeCache, cleanup, err := openRepository()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	if timeCache == nil {
		t.Fatal("sqlite repository should come with a persistent time cache")
	}

	stops, err := repo.ListStops(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders, err := repo.ListOrders(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	network, err := services.BuildNetwork(stops, orders, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := services.PrewarmTravelTimes(ctx, network.Times, timeCache); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The full matrix landed in the database: 3 stops give 3 pairs.
	entries, err := timeCache.Load(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("persisted %d entries, want 3", len(entries))
	}
}

func TestSqliteTimeCacheSurvivesRestart(t *testing.T) {
	setupSqliteEnv(t)
	ctx := context.Background()

	// First boot computes and persists the pair times.
	repo, timeCache, cleanup, err := openRepository()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stops, err := repo.ListStops(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders, err := repo.ListOrders(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	network, err := services.BuildNetwork(stops, orders, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := services.PrewarmTravelTimes(ctx, network.Times, timeCache); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cleanup()

	// Second boot reads them back from the same database file.
	_, timeCache, cleanup, err = openRepository()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	entries, err := timeCache.Load(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("loaded %d entries after restart, want 3", len(entries))
	}
}
