// Package config reads the search configuration from the environment.
// Hard limits (speed, population size, iteration count, map size) fail
// fast; operator rates are clamped into their legal range instead.
package config

import (
	"delivery-optimizer-service/internal/services"
	"fmt"
	"log"
	"os"
	"strconv"
)

// Get returns an environment value or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type Config struct {
	Speed     float64
	MapWidth  float64
	MapHeight float64

	Search services.SearchParams

	StopsPath  string
	OrdersPath string
}

// Load reads and validates the configuration. Returned errors identify
// the offending variable; callers are expected to abort on them.
func Load() (Config, error) {
	cfg := Config{
		StopsPath:  Get("STOPS_PATH", "data/stops.csv"),
		OrdersPath: Get("ORDERS_PATH", "data/orders.csv"),
	}

	var err error
	if cfg.Speed, err = getFloat("SPEED", 1); err != nil {
		return Config{}, err
	}
	if cfg.Speed <= 0 {
		return Config{}, fmt.Errorf("config: SPEED must be greater than 0, got %v", cfg.Speed)
	}

	if cfg.MapWidth, err = getFloat("MAP_WIDTH", 100); err != nil {
		return Config{}, err
	}
	if cfg.MapHeight, err = getFloat("MAP_HEIGHT", 100); err != nil {
		return Config{}, err
	}
	if cfg.MapWidth <= 0 || cfg.MapHeight <= 0 {
		return Config{}, fmt.Errorf("config: MAP_WIDTH and MAP_HEIGHT must be greater than 0, got %vx%v",
			cfg.MapWidth, cfg.MapHeight)
	}

	if cfg.Search.PopulationSize, err = getInt("POPULATION_SIZE", 50); err != nil {
		return Config{}, err
	}
	if cfg.Search.PopulationSize <= 0 {
		return Config{}, fmt.Errorf("config: POPULATION_SIZE must be greater than 0, got %d",
			cfg.Search.PopulationSize)
	}

	if cfg.Search.MaxIter, err = getInt("MAX_ITER", 500); err != nil {
		return Config{}, err
	}
	if cfg.Search.MaxIter <= 0 {
		return Config{}, fmt.Errorf("config: MAX_ITER must be greater than 0, got %d", cfg.Search.MaxIter)
	}

	if cfg.Search.MaxUnchangedIter, err = getInt("MAX_UNCHANGED_ITER", 0); err != nil {
		return Config{}, err
	}
	if cfg.Search.MaxUnchangedIter < 0 {
		log.Printf("MAX_UNCHANGED_ITER clamped from %d to 0", cfg.Search.MaxUnchangedIter)
		cfg.Search.MaxUnchangedIter = 0
	}

	if cfg.Search.CrossRate, err = getFloat("CROSS_RATE", 0.8); err != nil {
		return Config{}, err
	}
	cfg.Search.CrossRate = clampRate("CROSS_RATE", cfg.Search.CrossRate)

	if cfg.Search.MutateRate, err = getFloat("MUTATE_RATE", 0.05); err != nil {
		return Config{}, err
	}
	cfg.Search.MutateRate = clampRate("MUTATE_RATE", cfg.Search.MutateRate)

	if cfg.Search.Elitism, err = getBool("ELITISM", true); err != nil {
		return Config{}, err
	}

	seed, err := getInt("SEED", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.Search.Seed = int64(seed)

	return cfg, nil
}

func clampRate(key string, v float64) float64 {
	clamped := v
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}
	if clamped != v {
		log.Printf("%s clamped from %v to %v", key, v, clamped)
	}
	return clamped
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}
