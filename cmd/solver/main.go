package main

import (
	"context"
	"delivery-optimizer-service/internal/config"
	"delivery-optimizer-service/internal/genetic"
	"delivery-optimizer-service/internal/loader"
	"delivery-optimizer-service/internal/report"
	"delivery-optimizer-service/internal/services"
	"log"

	"github.com/joho/godotenv"
)

// solver runs one optimization to completion from CSV data: load the
// network, evolve, log every improvement, print the final best route.
// Optionally writes a fitness-over-generations plot.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	stops, err := loader.LoadStops(cfg.StopsPath, cfg.MapWidth, cfg.MapHeight)
	if err != nil {
		log.Fatal(err)
	}
	orders, err := loader.LoadOrders(cfg.OrdersPath, stops)
	if err != nil {
		log.Fatal(err)
	}

	network, err := services.BuildNetwork(stops, orders, cfg.Speed)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("network loaded: stops=%d orders=%d depot=%d",
		network.Stops.Size(), network.Orders.Size(), network.Eval.Depot().ID)

	engine, err := services.NewEngine(network, cfg.Search)
	if err != nil {
		log.Fatal(err)
	}

	prevDelay := engine.Best().Delay()
	result, err := services.Optimize(context.Background(), engine, func(res genetic.StepResult, best *genetic.Individual) {
		if !res.Improved {
			return
		}
		log.Printf("(%d) best delay improved: %.2f -> %.2f", res.Iteration+1, prevDelay, best.Delay())
		log.Printf("\t%s", best.Route())
		prevDelay = best.Delay()
	})
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("run finished: status=%s iterations=%d", result.Status, result.Iterations)
	log.Printf("shortest delay: %.2f", result.BestDelay)
	log.Printf("\t%s", result.Best.Route())

	if plotPath := config.Get("PLOT_PATH", ""); plotPath != "" {
		if err := report.SaveFitnessPlot(result.History, plotPath); err != nil {
			log.Fatal(err)
		}
		log.Printf("fitness plot written to %s", plotPath)
	}
}
