// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrom

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// linear strain model: y = a + b·x_stress with x_stress = 2(q-qmin)/(qmax-qmin) - 1
const (
	tstA  = -9.0  // strain output at the middle of the stress window
	tstB  = 2.0   // slope of the strain output in normalised stress
	tstAc = -12.0 // cell output
	tstAw = -13.0 // wall output
)

// newTestTile returns a degree-1 tile with linear transforms
//  stressLims -- window of the stress input
//  normLims   -- normalisation window of the stress input
func newTestTile(stressLims, normLims []float64) *Tile {
	nin, nb := 5, 2
	ncoef := 1
	for i := 0; i < nin; i++ {
		ncoef *= nb
	}
	coefs := make([][]float64, Nout)
	for k := range coefs {
		coefs[k] = make([]float64, ncoef)
	}
	coefs[OutCell][0] = tstAc
	coefs[OutWall][0] = tstAw
	coefs[OutStrain][0] = tstA
	coefs[OutStrain][4] = tstB // stride of stress is nb² = 4
	transform := make([][]Transform, Nout)
	tcoefs := make([][]float64, Nout)
	for k := 0; k < Nout; k++ {
		transform[k] = make([]Transform, nin)
		tcoefs[k] = make([]float64, nin)
	}
	limits := [][]float64{{1e10, 1e14}, {1e10, 1e14}, stressLims, {0, 0.1}, {800, 1000}}
	norm := [][]float64{{1e10, 1e14}, {1e10, 1e14}, normLims, {0, 0.1}, {800, 1000}}
	return &Tile{
		Coefs:          coefs,
		Transform:      transform,
		TransformCoefs: tcoefs,
		InputLimits:    limits,
		NormLimits:     norm,
	}
}

// testInputs returns inputs inside all windows
func testInputs() Inputs {
	return Inputs{Cell: 1e12, Wall: 1e12, Strain: 0.01, Temp: 900}
}
