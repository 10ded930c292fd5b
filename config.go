package emf

import (
	"fmt"
	"math"

	"github.com/wiless/emf/deployment"
	"github.com/wiless/emf/pathloss"
	"github.com/wiless/vlib"
)

// SimConfig is the full parameter set of one sweep. It is a plain immutable
// value: construct it once at startup (DefaultSimConfig or a config file) and
// pass it into RunDistanceSweep. Watt-domain powers and kappa are always
// derived through the methods below, never stored alongside the dBm inputs.
type SimConfig struct {
	CarrierFreqHz  float64
	TxPowerDBm     float64
	AlphaExp       float64
	BSHeightM      float64
	NoiseFloorDBm  float64
	NBaseStations  int
	ClusterSpreadM float64
	SimRadiusM     float64 // advisory bound, topology draws are not clipped to it
	NIterations    int
	DistanceMinM   float64
	DistanceMaxM   float64
	NDistances     int
	SINRThreshold  float64 // linear; default 0.5 (approx 0dB)
	Seed           int64
	Threads        int
}

// DefaultSimConfig returns the Brussels reference scenario (Table III).
func DefaultSimConfig() SimConfig {
	return SimConfig{
		CarrierFreqHz:  1837.5e6,
		TxPowerDBm:     62.75,
		AlphaExp:       3.2,
		BSHeightM:      33.0,
		NoiseFloorDBm:  -96.21,
		NBaseStations:  80,
		ClusterSpreadM: 1200.0,
		SimRadiusM:     7000.0,
		NIterations:    200,
		DistanceMinM:   0.0,
		DistanceMaxM:   4000.0,
		NDistances:     50,
		SINRThreshold:  0.5,
		Seed:           0,
		Threads:        1,
	}
}

// Validate reports the first configuration error. A sweep must not start any
// simulation work when this fails.
func (c SimConfig) Validate() error {
	if c.NBaseStations <= 0 {
		return fmt.Errorf("config: NBaseStations = %d, must be > 0", c.NBaseStations)
	}
	if c.NIterations <= 0 {
		return fmt.Errorf("config: NIterations = %d, must be > 0", c.NIterations)
	}
	if c.NDistances <= 0 {
		return fmt.Errorf("config: NDistances = %d, must be > 0", c.NDistances)
	}
	if c.ClusterSpreadM <= 0 {
		return fmt.Errorf("config: ClusterSpreadM = %v, must be > 0", c.ClusterSpreadM)
	}
	if !(c.CarrierFreqHz > 0) || math.IsInf(c.CarrierFreqHz, 0) {
		return fmt.Errorf("config: CarrierFreqHz = %v, must be finite and > 0", c.CarrierFreqHz)
	}
	if !(c.AlphaExp > 0) || math.IsInf(c.AlphaExp, 0) {
		return fmt.Errorf("config: AlphaExp = %v, must be finite and > 0", c.AlphaExp)
	}
	if math.IsNaN(c.TxPowerDBm) || math.IsInf(c.TxPowerDBm, 0) {
		return fmt.Errorf("config: TxPowerDBm = %v, must be finite", c.TxPowerDBm)
	}
	if math.IsNaN(c.NoiseFloorDBm) || math.IsInf(c.NoiseFloorDBm, 0) {
		return fmt.Errorf("config: NoiseFloorDBm = %v, must be finite", c.NoiseFloorDBm)
	}
	if math.IsNaN(c.BSHeightM) || math.IsInf(c.BSHeightM, 0) || c.BSHeightM < 0 {
		return fmt.Errorf("config: BSHeightM = %v, must be finite and >= 0", c.BSHeightM)
	}
	if math.IsNaN(c.DistanceMinM) || c.DistanceMinM < 0 {
		return fmt.Errorf("config: DistanceMinM = %v, must be finite and >= 0", c.DistanceMinM)
	}
	if math.IsNaN(c.DistanceMaxM) || math.IsInf(c.DistanceMaxM, 0) || c.DistanceMaxM < c.DistanceMinM {
		return fmt.Errorf("config: DistanceMaxM = %v, must be finite and >= DistanceMinM", c.DistanceMaxM)
	}
	if !(c.SINRThreshold > 0) || math.IsInf(c.SINRThreshold, 0) {
		return fmt.Errorf("config: SINRThreshold = %v, must be finite and > 0", c.SINRThreshold)
	}
	return nil
}

// TxPowerW converts the configured transmit power from dBm to watts.
func (c SimConfig) TxPowerW() float64 {
	return vlib.InvDb(c.TxPowerDBm - 30)
}

// NoiseFloorW converts the configured noise floor from dBm to watts.
func (c SimConfig) NoiseFloorW() float64 {
	return vlib.InvDb(c.NoiseFloorDBm - 30)
}

// Kappa is the path-loss constant (4pi*f/c)^2 of the configured carrier.
func (c SimConfig) Kappa() float64 {
	return math.Pow(4.0*math.Pi*c.CarrierFreqHz/pathloss.SpeedOfLight, 2)
}

// PathLossSetting maps the physical parameters into a pathloss model setting.
func (c SimConfig) PathLossSetting() pathloss.Setting {
	return pathloss.Setting{
		FreqHz:    c.CarrierFreqHz,
		AlphaExp:  c.AlphaExp,
		TxHeightM: c.BSHeightM,
	}
}

// Cluster maps the topology parameters into a deployment cluster.
func (c SimConfig) Cluster() deployment.ClusterParameter {
	return deployment.ClusterParameter{
		SpreadM: c.ClusterSpreadM,
		RadiusM: c.SimRadiusM,
		NCount:  c.NBaseStations,
	}
}

// Distances returns the sampled user distances, ascending and evenly spaced
// over [DistanceMinM, DistanceMaxM].
func (c SimConfig) Distances() vlib.VectorF {
	result := vlib.NewVectorF(c.NDistances)
	if c.NDistances == 1 {
		result[0] = c.DistanceMinM
		return result
	}
	step := (c.DistanceMaxM - c.DistanceMinM) / float64(c.NDistances-1)
	for i := 0; i < c.NDistances; i++ {
		result[i] = c.DistanceMinM + float64(i)*step
	}
	return result
}
