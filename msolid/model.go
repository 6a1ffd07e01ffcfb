// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements radial-return updates for creep and plasticity of solids
package msolid

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// FlowInput holds the data available to flow models at the beginning of an update
type FlowInput struct {
	Qtr    float64  // effective trial stress
	G      float64  // shear modulus
	Dt     float64  // time step
	Time   float64  // time at the beginning of the step
	Temp   float64  // temperature
	Env    float64  // environmental factor
	HasEnv bool     // Env is given
	Old    *IntVars // internal variables at the beginning of the step (read-only)
}

// ResidualModel defines a flow law solved by the radial return
type ResidualModel interface {
	Init(prms dbf.Params) error // Init initialises model
	GetPrms() dbf.Params        // GetPrms gets (an example) of parameters
	InitIntVars(α *IntVars)     // InitIntVars sets the initial internal variables

	// Begin prepares the evaluation of one update. A nil evaluator means that
	// there is no inelastic flow during this step
	Begin(in *FlowInput) (Evaluator, error)
}

// Evaluator evaluates the residual of one update. It belongs to one point and
// must not be shared between goroutines
type Evaluator interface {

	// Residual computes the residual and its derivative w.r.t the equivalent
	// inelastic increment x, given the updated effective stress q(x) and dq/dx
	Residual(q, dqdx, x float64) (r, drdx float64, err error)

	// Finalize writes the internal variables owned by the model
	Finalize(x, q float64, α *IntVars) error
}

// RateModel is implemented by evaluators able to compute the inelastic strain
// rate at an arbitrary effective stress
type RateModel interface {
	Rate(q float64) (float64, error)
}

// allocators holds all available models
var allocators = map[string]func() ResidualModel{}

// New returns a new flow model
func New(name string) (ResidualModel, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, &ConfigError{chk.Err("model %q is not available in 'msolid' database", name)}
	}
	return allocator(), nil
}

// Models returns the names of the available models
func Models() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
