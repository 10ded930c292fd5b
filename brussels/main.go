// Runs the Brussels reference EMF-exposure and coverage sweep and exports
// the result arrays for plotting.
package main

import (
	"flag"
	"io/ioutil"
	"strings"

	"github.com/grd/statistics"
	"github.com/jszwec/csvutil"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/emf"
	"github.com/wiless/vlib"
)

var basedir = "./"

func init() {
	flag.StringVar(&basedir, "basedir", "./", "Directory for config and result files, use as -basedir=results/")
	flag.Parse()
	if !(strings.HasSuffix(basedir, "/") || strings.HasSuffix(basedir, "\\")) {
		basedir += "/"
	}
}

// SweepRow is one exported line of sweep.csv.
type SweepRow struct {
	DistanceM    float64
	MeanFluxWm2  float64
	CoverageProb float64
	FluxStdErr   float64
	Anomalies    int
}

func main() {
	cfg := ReadAppConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	log.Infof("Physics Config: F=%vGHz, Pt=%.0fW, Noise=%vdBm", cfg.CarrierFreqHz/1e9, cfg.TxPowerW(), cfg.NoiseFloorDBm)
	log.Infof("Topology: %d BS, cluster spread %vm, %d MC iterations, seed %d", cfg.NBaseStations, cfg.ClusterSpreadM, cfg.NIterations, cfg.Seed)

	bar := progressbar.Default(int64(cfg.NDistances), "Sweeping user distance")
	result, err := emf.RunDistanceSweepProgress(cfg, func(done, total int) {
		bar.Add(1)
	})
	if err != nil {
		log.Fatal(err)
	}

	SaveResults(result)
	Summarize(result)
}

// SaveResults writes sweep.csv, sweep.json and a matlab script with the
// dual-axis flux/coverage plot.
func SaveResults(result *emf.SweepResult) {
	rows := make([]SweepRow, len(result.Distances))
	for i := range result.Distances {
		rows[i] = SweepRow{
			DistanceM:    result.Distances[i],
			MeanFluxWm2:  result.MeanFlux[i],
			CoverageProb: result.CoverageProb[i],
			FluxStdErr:   result.FluxStdErr[i],
			Anomalies:    result.Anomalies[i],
		}
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		log.Fatal("SaveResults : ", err)
	}
	if err := ioutil.WriteFile(basedir+"sweep.csv", data, 0644); err != nil {
		log.Fatal("SaveResults : ", err)
	}

	vlib.SaveStructure(result, basedir+"sweep.json", true)

	matlab := vlib.NewMatlab(basedir + "emfsweep")
	matlab.Silent = true
	matlab.Export("distance", result.Distances)
	matlab.Export("meanflux", result.MeanFlux)
	matlab.Export("coverage", result.CoverageProb)
	matlab.Command("semilogy(distance,meanflux,'r');ylabel('Mean EMF Flux Density (W/m^2)');")
	matlab.Command("yyaxis right;plot(distance,coverage,'b--.');ylabel('Coverage Probability');")
	matlab.Command("xlabel('Distance from City Center (m)');grid on;")
	matlab.Close()

	log.Infof("Results written to %ssweep.csv, %ssweep.json and %semfsweep.m", basedir, basedir, basedir)
}

func Summarize(result *emf.SweepResult) {
	flux := statistics.Float64(result.MeanFlux)
	peak, idx := statistics.Max(&flux)
	log.Infof("Peak mean flux %.3e W/m2 at %.0fm from the centre", peak, result.Distances[idx])

	coverage := statistics.Float64(result.CoverageProb)
	log.Infof("Coverage probability: mean %.3f over the sweep, %.3f at the centre, %.3f at the edge",
		statistics.Mean(&coverage), result.CoverageProb[0], result.CoverageProb[len(result.CoverageProb)-1])

	total := 0
	for _, n := range result.Anomalies {
		total += n
	}
	if total > 0 {
		log.Warnf("%d trials excluded as numerically non-finite", total)
	}
}
