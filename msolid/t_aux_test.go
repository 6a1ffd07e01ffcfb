// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/recuero/moose/mrom"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// test material (MPa, s, K)
const (
	tstE   = 200e3 // Young's modulus
	tstNu  = 0.3   // Poisson's coefficient
	tstA   = 1e-3  // power-law coefficient
	tstQ   = 1e5   // activation energy
	tstT   = 900.0 // temperature
	tstQy0 = 250.0 // initial yield stress
	tstH   = 1e3   // hardening modulus
)

// newElast allocates the test elasticity tensor
func newElast(tst *testing.T) *Elasticity {
	C, err := NewIsoElasticity(tstE, tstNu)
	if err != nil {
		tst.Fatalf("NewIsoElasticity failed: %v\n", err)
	}
	return C
}

// newEngine allocates a radial return with extra parameters
func newEngine(tst *testing.T, name string, rom *mrom.Model, extra ...*dbf.P) *RadialReturn {
	prms := []*dbf.P{
		&dbf.P{N: "A", V: tstA},
		&dbf.P{N: "n", V: 2},
		&dbf.P{N: "Q", V: tstQ},
		&dbf.P{N: "qy0", V: tstQy0},
		&dbf.P{N: "H", V: tstH},
	}
	prms = append(prms, extra...)
	o, err := NewRadialReturn(name, prms, rom)
	if err != nil {
		tst.Fatalf("NewRadialReturn failed: %v\n", err)
	}
	return o
}

// devIncrement returns the deviatoric increment {d, -d/2, -d/2, 0, 0, 0}
// producing the effective trial stress qtr = 3G·d from a stress-free state
func devIncrement(qtr, G float64) []float64 {
	d := qtr / (3.0 * G)
	return []float64{d, -d / 2, -d / 2, 0, 0, 0}
}

// genIncrement returns a general increment with shear components
func genIncrement(scale float64) []float64 {
	return []float64{1.2 * scale, -0.3 * scale, 0.1 * scale, 0.8 * scale, -0.5 * scale, 0.35 * scale}
}

// romTile returns a degree-1 tile whose strain output is y = a + b·x_stress
// with the stress window [0, 200] (MPa)
func romTile(a, b, ac, aw float64) *mrom.Tile {
	nin, ncoef := 5, 32
	coefs := make([][]float64, mrom.Nout)
	trans := make([][]mrom.Transform, mrom.Nout)
	tcoef := make([][]float64, mrom.Nout)
	for k := 0; k < mrom.Nout; k++ {
		coefs[k] = make([]float64, ncoef)
		trans[k] = make([]mrom.Transform, nin)
		tcoef[k] = make([]float64, nin)
	}
	coefs[mrom.OutCell][0] = ac
	coefs[mrom.OutWall][0] = aw
	coefs[mrom.OutStrain][0] = a
	coefs[mrom.OutStrain][1<<mrom.InStress] = b
	return &mrom.Tile{
		Coefs:          coefs,
		Transform:      trans,
		TransformCoefs: tcoef,
		InputLimits:    [][]float64{{1e10, 1e14}, {1e10, 1e14}, {0, 200}, {0, 0.1}, {800, 1000}},
	}
}
