package pathloss

import (
	log "github.com/sirupsen/logrus"
	CM "github.com/wiless/channelmodel"
	"github.com/wiless/vlib"
)

// DEFAULTERR_PL is the loss (dB) substituted when the wrapped model fails.
var DEFAULTERR_PL float64 = 999999

// DbLossModel is the slice of channelmodel's PLModel the adapter needs.
type DbLossModel interface {
	IsSupported(fGHz float64) bool
	PLbetween(src, dest vlib.Location3D) (plDb float64, isLOS bool, err error)
}

// Empirical adapts a channelmodel PLModel (3GPP RMa/UMa etc.) so it can be
// used in place of the closed-form law. The dB loss between a transmitter at
// TxHeightM and a receiver at RxHeightM is converted to a linear attenuation
// factor.
type Empirical struct {
	model     DbLossModel
	FreqGHz   float64
	TxHeightM float64
	RxHeightM float64
}

func NewEmpirical(model CM.PLModel, fGHz, txHeightM, rxHeightM float64) *Empirical {
	return NewEmpiricalLoss(model, fGHz, txHeightM, rxHeightM)
}

// NewEmpiricalLoss wraps any dB-domain loss model.
func NewEmpiricalLoss(model DbLossModel, fGHz, txHeightM, rxHeightM float64) *Empirical {
	return &Empirical{model: model, FreqGHz: fGHz, TxHeightM: txHeightM, RxHeightM: rxHeightM}
}

func (e *Empirical) AttenuationAt(distance2D float64) float64 {
	if !e.model.IsSupported(e.FreqGHz) {
		log.Fatalf("Empirical : model %#v does not support %v GHz", e.model, e.FreqGHz)
	}
	var txloc, rxloc vlib.Location3D
	txloc.SetXY(0, 0)
	txloc.SetHeight(e.TxHeightM)
	rxloc.SetXY(distance2D, 0)
	rxloc.SetHeight(e.RxHeightM)

	plDb, _, err := e.model.PLbetween(txloc, rxloc)
	if err != nil {
		log.Infof("Empirical : PL error at %vm : %v, setting to FIXED %v", distance2D, err, DEFAULTERR_PL)
		plDb = DEFAULTERR_PL
	}
	return vlib.InvDb(-plDb)
}
