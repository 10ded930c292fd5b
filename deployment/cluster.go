// Drops base-station topologies for the city-cluster EMF simulation.
package deployment

import (
	"errors"
	"math/rand"

	"github.com/wiless/vlib"
)

const ORIGIN = complex(0, 0)

// ClusterParameter describes one Gaussian city cluster of base stations.
// RadiusM is the advisory simulation bound; draws are NOT clipped to it, the
// unbounded Gaussian is the intended proxy for the bounded spatial density.
type ClusterParameter struct {
	Centre  vlib.Location3D
	SpreadM float64 `json:"spreadM"`
	RadiusM float64 `json:"radiusM"`
	NCount  int
}

// GaussianPoint draws one position around centre with X and Y sampled
// independently from N(0, spread^2).
func GaussianPoint(rng *rand.Rand, centre complex128, spread float64) complex128 {
	point := complex(rng.NormFloat64()*spread, rng.NormFloat64()*spread)
	return point + centre
}

// GaussianPoints draws N positions around centre. The same rng state always
// yields bit-identical positions.
func GaussianPoints(rng *rand.Rand, centre complex128, spread float64, N int) vlib.VectorC {
	result := vlib.NewVectorC(N)
	for i := 0; i < N; i++ {
		result[i] = GaussianPoint(rng, centre, spread)
	}
	return result
}

// Drop generates one topology from the cluster parameters.
func (c ClusterParameter) Drop(rng *rand.Rand) (vlib.VectorC, error) {
	if c.NCount <= 0 {
		return nil, errors.New("deployment: NCount must be > 0")
	}
	if c.SpreadM <= 0 {
		return nil, errors.New("deployment: SpreadM must be > 0")
	}
	return GaussianPoints(rng, c.Centre.Cmplx(), c.SpreadM, c.NCount), nil
}

// Locations3D lifts dropped 2D positions to a common antenna height.
func Locations3D(locations vlib.VectorC, heightM float64) []vlib.Location3D {
	result := make([]vlib.Location3D, len(locations))
	for i, pos := range locations {
		result[i] = vlib.FromCmplx(pos)
		result[i].SetHeight(heightM)
	}
	return result
}
