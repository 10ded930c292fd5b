package emf_test

import (
	"math"
	"testing"

	"github.com/wiless/emf"
)

func TestSweepRejectsBadConfig(t *testing.T) {
	cfg := emf.DefaultSimConfig()
	cfg.NBaseStations = 0
	if res, err := emf.RunDistanceSweep(cfg); err == nil || res != nil {
		t.Fatal("sweep with zero stations must fail before any work")
	}
}

func TestSweepOutputAlignment(t *testing.T) {
	cfg := emf.DefaultSimConfig()
	cfg.NDistances = 8
	cfg.NIterations = 50
	cfg.Seed = 11

	res, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Distances) != 8 || len(res.MeanFlux) != 8 ||
		len(res.CoverageProb) != 8 || len(res.FluxStdErr) != 8 || len(res.Anomalies) != 8 {
		t.Fatalf("output sequences not aligned to NDistances: %d %d %d %d %d",
			len(res.Distances), len(res.MeanFlux), len(res.CoverageProb),
			len(res.FluxStdErr), len(res.Anomalies))
	}
	for i := range res.Distances {
		if res.CoverageProb[i] < 0 || res.CoverageProb[i] > 1 {
			t.Errorf("coverage[%d] = %v outside [0,1]", i, res.CoverageProb[i])
		}
		if res.MeanFlux[i] < 0 {
			t.Errorf("mean flux[%d] = %v negative", i, res.MeanFlux[i])
		}
		if res.Anomalies[i] != 0 {
			t.Errorf("anomalies[%d] = %d with the default physical scenario", i, res.Anomalies[i])
		}
	}
}

func TestSweepDeterministic(t *testing.T) {
	cfg := emf.DefaultSimConfig()
	cfg.NDistances = 5
	cfg.NIterations = 40
	cfg.Seed = 99

	first, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Distances {
		if first.MeanFlux[i] != second.MeanFlux[i] {
			t.Errorf("mean flux[%d] differs between identical runs: %v vs %v", i, first.MeanFlux[i], second.MeanFlux[i])
		}
		if first.CoverageProb[i] != second.CoverageProb[i] {
			t.Errorf("coverage[%d] differs between identical runs", i)
		}
	}
}

func TestSweepParallelWorkers(t *testing.T) {
	cfg := emf.DefaultSimConfig()
	cfg.NDistances = 4
	cfg.NIterations = 60
	cfg.Seed = 5
	cfg.Threads = 4

	first, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Distances {
		if first.MeanFlux[i] != second.MeanFlux[i] {
			t.Errorf("parallel runs not reproducible at distance index %d", i)
		}
		if first.CoverageProb[i] < 0 || first.CoverageProb[i] > 1 {
			t.Errorf("coverage[%d] = %v outside [0,1]", i, first.CoverageProb[i])
		}
	}
}

func TestSweepNearFarTrend(t *testing.T) {
	cfg := emf.DefaultSimConfig()
	cfg.NIterations = 400
	cfg.Seed = 1

	res, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}

	last := len(res.Distances) - 1
	if res.CoverageProb[0] <= 0.5 {
		t.Errorf("coverage at the cluster centre = %v, expected > 0.5", res.CoverageProb[0])
	}
	if res.CoverageProb[last] >= 0.5 {
		t.Errorf("coverage at %vm = %v, expected < 0.5", res.Distances[last], res.CoverageProb[last])
	}
	if res.MeanFlux[0] < 10*res.MeanFlux[last] {
		t.Errorf("flux at centre %v not an order of magnitude above flux at %vm (%v)",
			res.MeanFlux[0], res.Distances[last], res.MeanFlux[last])
	}

	// Statistical monotone trend over binned distance ranges.
	const nbins = 5
	per := len(res.MeanFlux) / nbins
	binMean := func(b int) float64 {
		sum := 0.0
		for i := b * per; i < (b+1)*per; i++ {
			sum += res.MeanFlux[i]
		}
		return sum / float64(per)
	}
	for b := 1; b < nbins; b++ {
		if binMean(b) >= binMean(b-1) {
			t.Errorf("binned mean flux not decreasing: bin %d = %v, bin %d = %v",
				b, binMean(b), b-1, binMean(b-1))
		}
	}
}

func TestSweepExcludesNonFiniteTrials(t *testing.T) {
	cfg := emf.DefaultSimConfig()
	cfg.NDistances = 3
	cfg.NIterations = 10
	cfg.Seed = 3

	// An absurd transmit power overflows to +Inf watts, so every trial
	// produces non-finite metrics and must be excluded, never averaged.
	cfg.TxPowerDBm = 4000
	if !math.IsInf(cfg.TxPowerW(), 1) {
		t.Fatalf("TxPowerW = %v, expected overflow to +Inf", cfg.TxPowerW())
	}

	res, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range res.Distances {
		if res.Anomalies[i] != cfg.NIterations {
			t.Errorf("anomalies[%d] = %d, expected all %d trials excluded", i, res.Anomalies[i], cfg.NIterations)
		}
		if !math.IsNaN(res.MeanFlux[i]) {
			t.Errorf("mean flux[%d] = %v, expected NaN when every trial is excluded", i, res.MeanFlux[i])
		}
		if !math.IsNaN(res.CoverageProb[i]) {
			t.Errorf("coverage[%d] = %v, expected NaN when every trial is excluded", i, res.CoverageProb[i])
		}
	}
}

func TestSweepSingleTrialStdErr(t *testing.T) {
	cfg := emf.DefaultSimConfig()
	cfg.NDistances = 1
	cfg.NIterations = 1
	cfg.Seed = 7

	res, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(res.MeanFlux[0]) || res.Anomalies[0] != 0 {
		t.Fatalf("single healthy trial rejected: mean %v, anomalies %d", res.MeanFlux[0], res.Anomalies[0])
	}
	// One sample carries no spread information, so the standard error must
	// be NaN rather than a fabricated zero.
	if !math.IsNaN(res.FluxStdErr[0]) {
		t.Errorf("stderr from a single trial = %v, expected NaN", res.FluxStdErr[0])
	}
}

func TestSweepStdErrScaling(t *testing.T) {
	cfg := emf.DefaultSimConfig()
	cfg.DistanceMinM = 4000
	cfg.DistanceMaxM = 4000
	cfg.NDistances = 1
	cfg.Seed = 17

	cfg.NIterations = 200
	small, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.NIterations = 2000
	large, err := emf.RunDistanceSweep(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if math.IsNaN(small.FluxStdErr[0]) || math.IsNaN(large.FluxStdErr[0]) {
		t.Fatal("standard error not computed")
	}
	if large.FluxStdErr[0] >= small.FluxStdErr[0] {
		t.Errorf("stderr did not shrink with 10x trials: K=200 %v, K=2000 %v",
			small.FluxStdErr[0], large.FluxStdErr[0])
	}
}
