// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// IsoHardPlast implements rate-independent plasticity with linear isotropic hardening
//  f = q - qy0 - H·p
type IsoHardPlast struct {
	qy0 float64 // initial yield stress
	H   float64 // hardening modulus
}

// add model to factory
func init() {
	allocators["plast"] = func() ResidualModel { return new(IsoHardPlast) }
}

// Init initialises model
func (o *IsoHardPlast) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "qy0":
			o.qy0 = p.V
		case "H":
			o.H = p.V
		}
	}
	if o.qy0 <= 0 {
		return &ConfigError{chk.Err("plast: initial yield stress must be positive. qy0=%g", o.qy0)}
	}
	if o.H < 0 {
		return &ConfigError{chk.Err("plast: softening is not supported. H=%g", o.H)}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o IsoHardPlast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "qy0", V: 250e6},
		&dbf.P{N: "H", V: 1e9},
	}
}

// InitIntVars sets the initial internal variables
func (o IsoHardPlast) InitIntVars(α *IntVars) {}

// YieldFunc computes the yield function
func (o IsoHardPlast) YieldFunc(q, p float64) float64 {
	return q - o.qy0 - o.H*p
}

// Begin returns nil if the trial state is elastic
func (o *IsoHardPlast) Begin(in *FlowInput) (Evaluator, error) {
	ftr := o.YieldFunc(in.Qtr, in.Old.EffStrain)
	if ftr <= 0 {
		return nil, nil
	}
	return &plastEval{mdl: o, p0: in.Old.EffStrain, G: in.G}, nil
}

// plastEval evaluates one elastoplastic update
type plastEval struct {
	mdl *IsoHardPlast
	p0  float64 // equivalent plastic strain at the beginning of the step
	G   float64 // shear modulus
}

// Residual returns r = f(q, p0+x)/3G
func (o *plastEval) Residual(q, dqdx, x float64) (r, drdx float64, err error) {
	g3 := 3.0 * o.G
	return o.mdl.YieldFunc(q, o.p0+x) / g3, (dqdx - o.mdl.H) / g3, nil
}

// Finalize does nothing: p is updated by the radial return
func (o *plastEval) Finalize(x, q float64, α *IntVars) error { return nil }
