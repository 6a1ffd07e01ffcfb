// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Mandel representation of symmetric second order tensors
//  a = {a_xx, a_yy, a_zz, √2·a_xy, √2·a_yz, √2·a_zx}
const Nsig = 6

// constants
const (
	SQ2    = math.Sqrt2             // √2
	SQ3by2 = 1.2247448713915890491  // √(3/2)
	SQ2by3 = 0.81649658092772603273 // √(2/3)
	TolIso = 1e-8                   // relative tolerance of the isotropy check
)

// Im is the second order identity tensor in Mandel basis
var Im = []float64{1, 1, 1, 0, 0, 0}

// Psd returns the symmetric-deviatoric projector: Psd = Isym - Im⊗Im/3
func Psd() *mat.SymDense {
	P := mat.NewSymDense(Nsig, nil)
	for i := 0; i < Nsig; i++ {
		for j := i; j < Nsig; j++ {
			v := -Im[i] * Im[j] / 3.0
			if i == j {
				v += 1
			}
			P.SetSym(i, j, v)
		}
	}
	return P
}

// Piso returns the isotropic projector: Piso = Im⊗Im/3
func Piso() *mat.SymDense {
	P := mat.NewSymDense(Nsig, nil)
	for i := 0; i < Nsig; i++ {
		for j := i; j < Nsig; j++ {
			P.SetSym(i, j, Im[i]*Im[j]/3.0)
		}
	}
	return P
}

// M_Tr returns the trace of a
func M_Tr(a []float64) float64 {
	return a[0] + a[1] + a[2]
}

// M_Dev computes the deviator s = a - tr(a)·Im/3
//  Note: equal normal components give an exactly zero deviator
func M_Dev(s, a []float64) {
	a0, a1, a2 := a[0], a[1], a[2]
	s[0] = (2.0*a0 - a1 - a2) / 3.0
	s[1] = (2.0*a1 - a2 - a0) / 3.0
	s[2] = (2.0*a2 - a0 - a1) / 3.0
	for i := 3; i < Nsig; i++ {
		s[i] = a[i]
	}
}

// M_p returns the mean pressure (compression positive): p = -tr(σ)/3
func M_p(σ []float64) float64 {
	return -M_Tr(σ) / 3.0
}

// M_q returns the von Mises equivalent stress: q = √(3/2 s:s)
func M_q(σ []float64) float64 {
	s := make([]float64, Nsig)
	M_Dev(s, σ)
	return SQ3by2 * floats.Norm(s, 2)
}
