package emf

import (
	"math"
	"math/cmplx"

	"github.com/wiless/emf/pathloss"
	"github.com/wiless/vlib"
)

// System evaluates per-trial link aggregates for a fixed physical
// configuration. All calculations are in the linear watt domain.
type System struct {
	TxPowerW      float64
	NoiseFloorW   float64
	SINRThreshold float64
	Kappa         float64
	Model         pathloss.Attenuator
}

// NewSystem builds a System from the configuration using the closed-form
// attenuation law.
func NewSystem(cfg SimConfig) System {
	model := pathloss.NewModel(cfg.PathLossSetting())
	return System{
		TxPowerW:      cfg.TxPowerW(),
		NoiseFloorW:   cfg.NoiseFloorW(),
		SINRThreshold: cfg.SINRThreshold,
		Kappa:         model.Kappa(),
		Model:         model,
	}
}

// EvaluateTrial computes the received-power aggregates and both metrics for
// one topology draw and one user position. All stations transmit with unit
// gain; every non-serving station counts as interference. The caller must
// pass at least one station.
func (w System) EvaluateTrial(bslocs vlib.VectorC, user vlib.Location3D) TrialMetric {
	userpos := user.Cmplx()

	rxPowers := vlib.NewVectorF(len(bslocs))
	for i, bs := range bslocs {
		distance2D := cmplx.Abs(userpos - bs)
		rxPowers[i] = w.TxPowerW * w.Model.AttenuationAt(distance2D)
	}

	total := vlib.Sum(rxPowers)
	best := vlib.Max(rxPowers)
	interference := total - best
	sinr := best / (interference + w.NoiseFloorW)
	flux := (w.Kappa / (4.0 * math.Pi)) * total

	return TrialMetric{
		UserDistanceM: cmplx.Abs(userpos),
		TotalRxPowerW: total,
		BestRxPowerW:  best,
		SINR:          sinr,
		Covered:       sinr > w.SINRThreshold,
		FluxWm2:       flux,
	}
}

// finiteTrial reports whether the derived metrics are usable in statistics.
func finiteTrial(m TrialMetric) bool {
	if math.IsNaN(m.SINR) || math.IsInf(m.SINR, 0) {
		return false
	}
	if math.IsNaN(m.FluxWm2) || math.IsInf(m.FluxWm2, 0) {
		return false
	}
	return true
}
