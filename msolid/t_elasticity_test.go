// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

func Test_mandel01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mandel01")

	a := []float64{-100, -200, -300, 10 * SQ2, 0, -20 * SQ2}
	s := make([]float64, Nsig)
	M_Dev(s, a)
	io.Pforan("s = %v\n", s)
	chk.Array(tst, "dev", 1e-13, s, []float64{100, 0, -100, 10 * SQ2, 0, -20 * SQ2})
	chk.Float64(tst, "tr", 1e-17, M_Tr(s), 0)
	chk.Float64(tst, "p", 1e-13, M_p(a), 200)

	// q = √(3J2) with J2 = ½s:s
	J2 := 0.5 * (100*100 + 100*100 + 2*10*10 + 2*20*20)
	chk.Float64(tst, "q", 1e-12, M_q(a), SQ3by2*SQ2*math.Sqrt(J2))

	// hydrostatic states have exactly zero deviator
	M_Dev(s, []float64{0.1, 0.1, 0.1, 0, 0, 0})
	chk.Array(tst, "dev(hydrostatic)", 1e-300, s, make([]float64, Nsig))

	// projectors
	var sum mat.SymDense
	sum.AddSym(Psd(), Piso())
	for i := 0; i < Nsig; i++ {
		for j := 0; j < Nsig; j++ {
			δ := 0.0
			if i == j {
				δ = 1
			}
			chk.Float64(tst, io.Sf("Psd+Piso[%d][%d]", i, j), 1e-15, sum.At(i, j), δ)
		}
	}
}

func Test_elast01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elast01")

	C := newElast(tst)
	io.Pforan("K=%g G=%g\n", C.K, C.G)
	chk.Float64(tst, "K", 1e-10, C.K, tstE/(3*(1-2*tstNu)))
	chk.Float64(tst, "G", 1e-10, C.G, tstE/(2*(1+tstNu)))
	chk.Float64(tst, "E", 1e-10, C.E, tstE)
	chk.Float64(tst, "ν", 1e-15, C.Nu, tstNu)
	if !C.RequiresIsotropicTensor() {
		tst.Errorf("isotropic tensor must be required\n")
		return
	}

	// uniaxial strain
	ε := []float64{1e-3, 0, 0, 0, 0, 0}
	σ := make([]float64, Nsig)
	C.CalcSig(σ, ε)
	λ := C.K - 2*C.G/3
	chk.Array(tst, "σ", 1e-10, σ, []float64{(λ + 2*C.G) * 1e-3, λ * 1e-3, λ * 1e-3, 0, 0, 0})

	// shear: Mandel components scale with 2G
	ε = []float64{0, 0, 0, 1e-3 * SQ2, 0, 0}
	C.CalcSig(σ, ε)
	chk.Array(tst, "τ", 1e-10, σ, []float64{0, 0, 0, 2 * C.G * 1e-3 * SQ2, 0, 0})

	// D matches CalcSig
	ε = genIncrement(1e-3)
	var σD mat.VecDense
	σD.MulVec(C.D, mat.NewVecDense(Nsig, ε))
	C.CalcSig(σ, ε)
	chk.Array(tst, "D:ε", 1e-9, σ, σD.RawVector().Data)

	// from tensor and parameters
	C2, err := NewElasticity(C.D)
	if err != nil {
		tst.Errorf("NewElasticity failed: %v\n", err)
		return
	}
	chk.Float64(tst, "K (tensor)", 1e-8, C2.K, C.K)
	chk.Float64(tst, "G (tensor)", 1e-8, C2.G, C.G)
	C3, err := NewElasticityPrms([]*dbf.P{&dbf.P{N: "K", V: C.K}, &dbf.P{N: "G", V: C.G}})
	if err != nil {
		tst.Errorf("NewElasticityPrms failed: %v\n", err)
		return
	}
	chk.Float64(tst, "E (K,G)", 1e-9, C3.E, tstE)
	C4, err := NewElasticityPrms([]*dbf.P{&dbf.P{N: "E", V: tstE}, &dbf.P{N: "nu", V: tstNu}})
	if err != nil {
		tst.Errorf("NewElasticityPrms failed: %v\n", err)
		return
	}
	chk.Float64(tst, "G (E,ν)", 1e-10, C4.G, C.G)
}

func Test_elast02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elast02. anisotropic tensors are rejected")

	C := newElast(tst)
	D := mat.NewSymDense(Nsig, nil)
	D.CopySym(C.D)
	D.SetSym(0, 0, 1.5*D.At(0, 0))
	_, err := NewElasticity(D)
	io.Pforan("err = %v\n", err)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		tst.Errorf("anisotropic tensor must be rejected with a configuration error: %v\n", err)
		return
	}

	// wrong size
	_, err = NewElasticity(mat.NewSymDense(3, nil))
	if !errors.As(err, &cerr) {
		tst.Errorf("3×3 tensor must be rejected: %v\n", err)
		return
	}

	// missing parameters
	_, err = NewElasticityPrms([]*dbf.P{&dbf.P{N: "E", V: tstE}})
	if !errors.As(err, &cerr) {
		tst.Errorf("missing ν must be rejected: %v\n", err)
	}
}
