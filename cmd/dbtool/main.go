package main

import (
	"context"
	"database/sql"
	"delivery-optimizer-service/internal/adapters/repositories"
	"delivery-optimizer-service/internal/config"
	"delivery-optimizer-service/internal/loader"
	"delivery-optimizer-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool initializes the Postgres schema and imports the stop/order CSV
// files into it, applying the same validation and clamping rules the
// solver uses.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	if err := initAndImport(pg, cfg); err != nil {
		log.Fatal(err)
	}
}

func initAndImport(pg *sql.DB, cfg config.Config) error {
	ctx := context.Background()

	log.Println("Initializing database schema...")
	if err := repositories.InitPgSchema(ctx, pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	stops, err := loader.LoadStops(cfg.StopsPath, cfg.MapWidth, cfg.MapHeight)
	if err != nil {
		log.Fatalf("loading stops failed: %v", err)
	}
	orders, err := loader.LoadOrders(cfg.OrdersPath, stops)
	if err != nil {
		log.Fatalf("loading orders failed: %v", err)
	}

	log.Printf("Importing %d stops and %d orders...", len(stops), len(orders))
	if err := repositories.ImportNetwork(ctx, pg, stops, orders); err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Println("Import complete.")

	return nil
}
