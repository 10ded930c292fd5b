package emf

import (
	"math"
	"math/rand"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/stat"
)

// RunDistanceSweep runs the full Monte Carlo experiment: for every sampled
// user distance it draws NIterations independent topologies, evaluates each
// trial and accumulates the mean EMF flux and the coverage probability.
// Non-finite trial metrics are excluded from the statistics and counted in
// SweepResult.Anomalies.
func RunDistanceSweep(cfg SimConfig) (*SweepResult, error) {
	return RunDistanceSweepProgress(cfg, nil)
}

// RunDistanceSweepProgress is RunDistanceSweep with a per-distance progress
// callback for interactive drivers. The tick function may be nil.
//
// Trials are split over cfg.Threads workers, each with its own seeded random
// stream; results are bit-reproducible for a fixed (Seed, Threads) pair.
func RunDistanceSweepProgress(cfg SimConfig, tick func(done, total int)) (*SweepResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sys := NewSystem(cfg)
	cluster := cfg.Cluster()
	distances := cfg.Distances()

	threads := cfg.Threads
	if threads <= 0 {
		threads = 1
	}
	if threads > cfg.NIterations {
		threads = cfg.NIterations
	}

	result := &SweepResult{
		Distances:    distances,
		MeanFlux:     vlib.NewVectorF(len(distances)),
		CoverageProb: vlib.NewVectorF(len(distances)),
		FluxStdErr:   vlib.NewVectorF(len(distances)),
		Anomalies:    vlib.NewVectorI(len(distances)),
	}

	for di, d := range distances {
		var user vlib.Location3D
		user.SetXY(d, 0)

		split := splitTrials(cfg.NIterations, threads)
		fluxPerWorker := make([]vlib.VectorF, threads)
		coveredPerWorker := make([]int, threads)
		anomaliesPerWorker := make([]int, threads)

		var wg sync.WaitGroup
		for w := 0; w < threads; w++ {
			wg.Add(1)
			go func(w, ntrials int) {
				defer wg.Done()
				rng := rand.New(rand.NewSource(streamSeed(cfg.Seed, di, w)))
				samples := make(vlib.VectorF, 0, ntrials)
				for k := 0; k < ntrials; k++ {
					bslocs, err := cluster.Drop(rng)
					if err != nil {
						// cannot happen after Validate, but never fold a
						// failed draw into the statistics
						anomaliesPerWorker[w]++
						continue
					}
					metric := sys.EvaluateTrial(bslocs, user)
					if !finiteTrial(metric) {
						anomaliesPerWorker[w]++
						continue
					}
					samples = append(samples, metric.FluxWm2)
					if metric.Covered {
						coveredPerWorker[w]++
					}
				}
				fluxPerWorker[w] = samples
			}(w, split[w])
		}
		wg.Wait()

		// Reduce in worker order so the float accumulation is deterministic.
		var flux vlib.VectorF
		nCovered := 0
		nBad := 0
		for w := 0; w < threads; w++ {
			flux = append(flux, fluxPerWorker[w]...)
			nCovered += coveredPerWorker[w]
			nBad += anomaliesPerWorker[w]
		}
		if nBad > 0 {
			log.Warnf("sweep : distance %.1fm : excluded %d of %d non-finite trials", d, nBad, cfg.NIterations)
		}

		result.Anomalies[di] = nBad
		if len(flux) == 0 {
			result.MeanFlux[di] = math.NaN()
			result.CoverageProb[di] = math.NaN()
			result.FluxStdErr[di] = math.NaN()
		} else {
			result.MeanFlux[di] = stat.Mean(flux, nil)
			result.CoverageProb[di] = float64(nCovered) / float64(len(flux))
			if len(flux) > 1 {
				result.FluxStdErr[di] = stat.StdDev(flux, nil) / math.Sqrt(float64(len(flux)))
			} else {
				// a single sample carries no spread information
				result.FluxStdErr[di] = math.NaN()
			}
		}

		if tick != nil {
			tick(di+1, len(distances))
		}
	}

	return result, nil
}

// splitTrials distributes K trials over n workers, remainder on the last.
func splitTrials(K, n int) []int {
	result := make([]int, n)
	per := K / n
	for i := range result {
		result[i] = per
	}
	result[n-1] += K % n
	return result
}

// streamSeed derives one independent seed per (distance, worker) stream.
func streamSeed(seed int64, distanceIdx, worker int) int64 {
	return seed + int64(distanceIdx)*104729 + int64(worker)*7919
}
