package report

import (
	"delivery-optimizer-service/internal/services"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFitnessPlot(t *testing.T) {
	hist := services.History{
		Best: []float64{0.2, 0.4, 0.4, 0.7},
		Mean: []float64{0.1, 0.2, 0.3, 0.4},
	}

	path := filepath.Join(t.TempDir(), "fitness.png")
	if err := SaveFitnessPlot(hist, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("plot file is empty")
	}
}

func TestSaveFitnessPlotValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitness.png")

	if err := SaveFitnessPlot(services.History{}, path); err == nil {
		t.Fatal("expected error for empty history")
	}

	uneven := services.History{Best: []float64{1}, Mean: []float64{1, 2}}
	if err := SaveFitnessPlot(uneven, path); err == nil {
		t.Fatal("expected error for uneven history")
	}
}
