// Implements the closed-form attenuation law used for EMF flux and coverage
// estimation: l = kappa^-1 * (r^2 + h^2)^(-alpha/2), kappa = (4pi*f/c)^2
package pathloss

import (
	"math"

	"github.com/wiless/vlib"
)

// SpeedOfLight in m/s
const SpeedOfLight = 3.0e8

// Attenuator maps a 2D ground distance (metres) to a linear attenuation
// factor applied on the transmit power.
type Attenuator interface {
	AttenuationAt(distance2D float64) float64
}

type Setting struct {
	FreqHz    float64
	AlphaExp  float64
	TxHeightM float64
}

func (s *Setting) SetFGHz(fGHz float64) *Setting {
	s.FreqHz = fGHz * 1e9
	return s
}

func (s *Setting) SetDefault() {
	s.FreqHz = 1837.5e6
	s.AlphaExp = 3.2
	s.TxHeightM = 33.0
}

func NewSetting() *Setting {
	result := new(Setting)
	result.SetDefault()
	return result
}

// Model evaluates the attenuation law for a fixed Setting. kappa is derived
// once in Init() and must never be edited independently of FreqHz.
type Model struct {
	Setting
	kappa         float64
	isInitialized bool
}

func NewModel(s Setting) *Model {
	result := &Model{Setting: s}
	result.Init()
	return result
}

func (m *Model) Init() {
	m.kappa = math.Pow(4.0*math.Pi*m.FreqHz/SpeedOfLight, 2)
	m.isInitialized = true
}

func (m *Model) Kappa() float64 {
	if !m.isInitialized {
		m.Init()
	}
	return m.kappa
}

// AttenuationAt returns the linear attenuation factor at a 2D ground distance
// in metres. The distance must be finite and non-negative; negative inputs
// are not physically meaningful and the output for them is undefined.
func (m *Model) AttenuationAt(distance2D float64) float64 {
	distance3DSq := distance2D*distance2D + m.TxHeightM*m.TxHeightM
	return (1.0 / m.Kappa()) * math.Pow(distance3DSq, -m.AlphaExp/2.0)
}

// AttenuationAll evaluates AttenuationAt elementwise.
func (m *Model) AttenuationAll(distances vlib.VectorF) vlib.VectorF {
	result := vlib.NewVectorF(len(distances))
	for i := 0; i < len(distances); i++ {
		result[i] = m.AttenuationAt(distances[i])
	}
	return result
}

// LossInDb is the dB view of the attenuation factor at distance2D.
func (m *Model) LossInDb(distance2D float64) float64 {
	return -vlib.Db(m.AttenuationAt(distance2D))
}
