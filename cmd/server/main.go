package main

import (
	"context"
	"database/sql"
	"delivery-optimizer-service/internal/adapters/cache"
	"delivery-optimizer-service/internal/adapters/repositories"
	"delivery-optimizer-service/internal/api"
	"delivery-optimizer-service/internal/config"
	"delivery-optimizer-service/internal/platform/db"
	"delivery-optimizer-service/internal/ports"
	"delivery-optimizer-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root. It wires a concrete network
// repository (Postgres or SQLite) and an optional Redis travel-time
// cache behind ports, builds the search network once, and starts the
// HTTP server that owns optimization runs.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	port := config.Get("PORT", "8080")

	repo, timeCache, cleanup, err := openRepository()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	ctx := context.Background()
	stops, err := repo.ListStops(ctx)
	if err != nil {
		log.Fatal(err)
	}
	orders, err := repo.ListOrders(ctx)
	if err != nil {
		log.Fatal(err)
	}

	network, err := services.BuildNetwork(stops, orders, cfg.Speed)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("network loaded: stops=%d orders=%d depot=%d",
		network.Stops.Size(), network.Orders.Size(), network.Eval.Depot().ID)

	// Pre-fill the pair-time matrix from a persistent cache so restarts
	// skip recomputing it. Redis takes precedence when configured;
	// otherwise the SQLite repository's database doubles as the cache.
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()

		timeCache = cache.NewRedisTimeCache(client)
	}
	if timeCache != nil {
		if err := services.PrewarmTravelTimes(ctx, network.Times, timeCache); err != nil {
			log.Fatal(err)
		}
	}

	runner := services.NewRunner()
	router := api.NewRouter(repo, runner, network, cfg.Search)

	// Write timeout is generous: run snapshots are small but the
	// network listing can be large.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRepository picks Postgres when DATABASE_URL is set, otherwise a
// local SQLite file that gets its schema and seed data on startup. The
// SQLite database also serves as the persistent travel-time cache;
// Postgres deployments pair with Redis for that instead.
func openRepository() (ports.NetworkRepository, ports.TimeCache, func(), error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return repositories.NewPgNetworkRepository(pg), nil, func() { _ = pg.Close() }, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/network.json")

	sqlite, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := repositories.InitSchema(sqlite); err != nil {
		_ = sqlite.Close()
		return nil, nil, nil, fmt.Errorf("init sqlite: %w", err)
	}
	if err := repositories.SeedFromJSON(sqlite, seedPath); err != nil {
		_ = sqlite.Close()
		return nil, nil, nil, fmt.Errorf("seed sqlite: %w", err)
	}

	repo := repositories.NewSqliteNetworkRepository(sqlite)
	return repo, cache.NewSqliteTimeCache(sqlite), func() { _ = sqlite.Close() }, nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	sqlite, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sqlite.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqlite, nil
}
