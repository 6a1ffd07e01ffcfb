// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// TimeStepAdvisor suggests the next time step after an update
type TimeStepAdvisor interface {

	// TimeStepLimit bounds the time step from the increments of the internal variables
	TimeStepLimit(dt float64, old, new *IntVars) float64

	// IntegrationErrorTimeStep bounds the time step from an estimate of the
	// integration error. +Inf means no bound
	IntegrationErrorTimeStep(dt float64, old, new *IntVars) float64
}

// MaxIncrementAdvisor limits the equivalent inelastic increment per step
type MaxIncrementAdvisor struct {
	MaxInelasticIncrement float64 // largest equivalent inelastic increment per step
	MaxIntegrationError   float64 // largest change of rate×dt between steps; 0 means no bound
}

// default settings
const (
	DefaultMaxInelasticIncrement = 1e-4
	tinyIncrement                = 1e-12
)

// Init reads "maxInelasticIncrement" and "maxIntegrationError"
func (o *MaxIncrementAdvisor) Init(prms dbf.Params) (err error) {
	o.MaxInelasticIncrement = prms.GetValueOrDefault("maxInelasticIncrement", DefaultMaxInelasticIncrement)
	o.MaxIntegrationError = prms.GetValueOrDefault("maxIntegrationError", 0)
	if o.MaxInelasticIncrement <= 0 {
		return &ConfigError{chk.Err("maxInelasticIncrement must be positive. maxInelasticIncrement=%g", o.MaxInelasticIncrement)}
	}
	if o.MaxIntegrationError < 0 {
		return &ConfigError{chk.Err("maxIntegrationError must not be negative. maxIntegrationError=%g", o.MaxIntegrationError)}
	}
	return
}

// TimeStepLimit returns dt·max/Δp
func (o *MaxIncrementAdvisor) TimeStepLimit(dt float64, old, new *IntVars) float64 {
	Δp := new.EffStrain - old.EffStrain
	if Δp <= tinyIncrement*tinyIncrement {
		return math.Inf(1)
	}
	return dt * o.MaxInelasticIncrement / Δp
}

// IntegrationErrorTimeStep compares backward-Euler and trapezoidal increments:
//  err = |rate_new - rate_old|·dt/2
func (o *MaxIncrementAdvisor) IntegrationErrorTimeStep(dt float64, old, new *IntVars) float64 {
	if o.MaxIntegrationError == 0 {
		return math.Inf(1)
	}
	e := math.Abs(new.Rate-old.Rate) * dt / 2.0
	if e <= tinyIncrement*tinyIncrement {
		return math.Inf(1)
	}
	return dt * o.MaxIntegrationError / e
}
