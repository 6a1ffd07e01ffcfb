// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// PowerLawCreep implements power-law creep with Arrhenius temperature dependence
//  dp/dt = A · qⁿ · exp(-Q/(R·T)) · tᵐ
type PowerLawCreep struct {
	A  float64 // coefficient
	N  float64 // stress exponent
	Q  float64 // activation energy
	R  float64 // gas constant
	M  float64 // time exponent
	T0 float64 // temperature used when points carry none
}

// add model to factory
func init() {
	allocators["powerlaw"] = func() ResidualModel { return new(PowerLawCreep) }
}

// Init initialises model
func (o *PowerLawCreep) Init(prms dbf.Params) (err error) {
	o.R = 8.3143
	for _, p := range prms {
		switch p.N {
		case "A":
			o.A = p.V
		case "n":
			o.N = p.V
		case "Q":
			o.Q = p.V
		case "R":
			o.R = p.V
		case "m":
			o.M = p.V
		case "T":
			o.T0 = p.V
		}
	}
	if o.A <= 0 || o.N <= 0 {
		return &ConfigError{chk.Err("powerlaw: A and n must be positive. A=%g n=%g", o.A, o.N)}
	}
	if o.Q < 0 || o.R <= 0 {
		return &ConfigError{chk.Err("powerlaw: Q must not be negative and R must be positive. Q=%g R=%g", o.Q, o.R)}
	}
	if o.M <= -1 {
		return &ConfigError{chk.Err("powerlaw: time exponent must be greater than -1. m=%g", o.M)}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o PowerLawCreep) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "A", V: 1e-15},
		&dbf.P{N: "n", V: 4},
		&dbf.P{N: "Q", V: 3e5},
		&dbf.P{N: "R", V: 8.3143},
		&dbf.P{N: "m", V: 0},
	}
}

// InitIntVars sets the initial internal variables
func (o PowerLawCreep) InitIntVars(α *IntVars) {}

// Begin prepares one update
func (o *PowerLawCreep) Begin(in *FlowInput) (Evaluator, error) {
	T := in.Temp
	if T == 0 {
		T = o.T0
	}
	arrh := 1.0
	if o.Q > 0 {
		if T <= 0 {
			return nil, chk.Err("powerlaw: temperature must be positive. T=%g", T)
		}
		arrh = math.Exp(-o.Q / (o.R * T))
	}
	tf := in.Dt
	if o.M != 0 {
		tf = (math.Pow(in.Time+in.Dt, o.M+1) - math.Pow(in.Time, o.M+1)) / (o.M + 1)
	}
	return &powerLawEval{mdl: o, c: o.A * arrh * tf, dt: in.Dt}, nil
}

// powerLawEval evaluates one update
type powerLawEval struct {
	mdl *PowerLawCreep
	c   float64 // A·exp(-Q/RT)·∫tᵐdt
	dt  float64 // time step
}

// Residual returns r = c·qⁿ - x
func (o *powerLawEval) Residual(q, dqdx, x float64) (r, drdx float64, err error) {
	if q <= 0 {
		return -x, -1, nil
	}
	n := o.mdl.N
	qn := math.Pow(q, n)
	return o.c*qn - x, o.c*n*qn/q*dqdx - 1.0, nil
}

// Finalize does nothing: there are no additional internal variables
func (o *powerLawEval) Finalize(x, q float64, α *IntVars) error { return nil }

// Rate returns the average rate over the step at stress q
func (o *powerLawEval) Rate(q float64) (float64, error) {
	if o.dt <= 0 || q <= 0 {
		return 0, nil
	}
	return o.c * math.Pow(q, o.mdl.N) / o.dt, nil
}

// EnergyRate returns the strain energy rate density n/(n+1)·q·rate
func (o *powerLawEval) EnergyRate(q, rate float64) float64 {
	n := o.mdl.N
	return n / (n + 1) * q * rate
}
