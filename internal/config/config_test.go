package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Speed != 1 {
		t.Fatalf("speed = %v, want 1", cfg.Speed)
	}
	if cfg.Search.PopulationSize != 50 {
		t.Fatalf("population size = %d, want 50", cfg.Search.PopulationSize)
	}
	if !cfg.Search.Elitism {
		t.Fatal("elitism should default to true")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"SPEED", "0"},
		{"SPEED", "-2"},
		{"SPEED", "fast"},
		{"POPULATION_SIZE", "0"},
		{"MAX_ITER", "-1"},
		{"MAP_WIDTH", "0"},
		{"ELITISM", "maybe"},
	}
	for _, tc := range cases {
		t.Setenv(tc.key, tc.value)
		if _, err := Load(); err == nil {
			t.Errorf("%s=%s: expected error", tc.key, tc.value)
		}
		t.Setenv(tc.key, "")
	}
}

func TestLoadClampsRates(t *testing.T) {
	t.Setenv("CROSS_RATE", "1.8")
	t.Setenv("MUTATE_RATE", "-0.3")
	t.Setenv("MAX_UNCHANGED_ITER", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.CrossRate != 1 {
		t.Fatalf("cross rate = %v, want 1", cfg.Search.CrossRate)
	}
	if cfg.Search.MutateRate != 0 {
		t.Fatalf("mutate rate = %v, want 0", cfg.Search.MutateRate)
	}
	if cfg.Search.MaxUnchangedIter != 0 {
		t.Fatalf("max unchanged iter = %d, want 0", cfg.Search.MaxUnchangedIter)
	}
}
