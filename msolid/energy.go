// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/recuero/moose/mrom"
)

// EnergyRateModel is implemented by evaluators with an analytical strain
// energy rate density
type EnergyRateModel interface {
	EnergyRate(q, rate float64) float64
}

// settings of the numerical strain energy rate
var (
	EnergyRateTol            = 1e-6 // tolerance of the trapezoidal rule
	EnergyRateMaxRefinements = 20   // max number of refinements of the trapezoidal rule
)

// NumericalEnergyRate computes the strain energy rate density by integrating
// the rate over the stress
//  W = q·rate - ∫₀^q rate(σ) dσ
func NumericalEnergyRate(mdl RateModel, q, rate float64) (w float64, err error) {
	if q <= 0 {
		return 0, nil
	}
	var ferr error
	integral, err := mrom.TrapezoidalRule(func(σ float64) float64 {
		r, e := mdl.Rate(σ)
		if e != nil && ferr == nil {
			ferr = e
		}
		return r
	}, 0, q, EnergyRateTol, EnergyRateMaxRefinements)
	if err != nil {
		return
	}
	if ferr != nil {
		return 0, ferr
	}
	return q*rate - integral, nil
}

// StrainEnergyRate computes the strain energy rate density of an updated state
//  s           -- state after Update
//  old         -- internal variables at the beginning of the step
//  incremental -- use the average of the old and new rates
func (o *RadialReturn) StrainEnergyRate(s *State, old *IntVars, C *Elasticity, pt *Point, incremental bool) (w float64, err error) {

	// effective stress
	sdev := make([]float64, Nsig)
	M_Dev(sdev, s.Sig)
	prj, err := o.Aniso.Project(sdev, C.G)
	if err != nil {
		return
	}
	q := prj.Qtrial()
	if q == 0 {
		return 0, nil
	}

	// evaluator
	ev, err := o.Flow.Begin(&FlowInput{Qtr: q, G: C.G, Dt: pt.Dt, Time: pt.Time, Temp: pt.Temp, Env: pt.Env, HasEnv: pt.HasEnv, Old: old})
	if err != nil || ev == nil {
		return
	}
	rate := s.Alp.Rate
	if incremental {
		rate = (rate + old.Rate) / 2.0
	}

	// analytical
	if m, ok := ev.(EnergyRateModel); ok {
		return m.EnergyRate(q, rate), nil
	}

	// numerical
	m, ok := ev.(RateModel)
	if !ok {
		return 0, chk.Err("strain energy rate density is not available for this model")
	}
	return NumericalEnergyRate(m, q, rate)
}
