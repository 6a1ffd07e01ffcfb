// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/recuero/moose/retmap"
	"gonum.org/v1/gonum/mat"
)

// Hill implements the generalized radial return for Hill's anisotropic
// equivalent stress, q² = σ:H:σ, with
//  q² = F(σyy-σzz)² + G(σzz-σxx)² + H(σxx-σyy)² + 2Lσyz² + 2Mσzx² + 2Nσxy²
// The return is computed in the eigenspace of H:
//  σ̃_k = s̃_k / (1 + 2G·Δγ·λ_k)
// and parameterised by w = 2GΔγ/(1+2GΔγ) ∈ [0,1] so that the maximum
// equivalent increment corresponds to w = 1
type Hill struct {
	F, G, H, L, M, N float64 // Hill constants; F=G=H=1/2 and L=M=N=3/2 give von Mises

	Tensor *mat.SymDense // H in Mandel basis [6][6]
	Lam    []float64     // eigenvalues of H; non-negative
	Vec    *mat.Dense    // eigenvectors of H (columns) [6][6]
	solver retmap.Solver // maps x to w
}

// NewHill allocates a Hill anisotropy
func NewHill(F, G, H, L, M, N float64) (o *Hill, err error) {

	// tensor
	o = &Hill{F: F, G: G, H: H, L: L, M: M, N: N}
	o.Tensor = mat.NewSymDense(Nsig, []float64{
		G + H, -H, -G, 0, 0, 0,
		-H, F + H, -F, 0, 0, 0,
		-G, -F, F + G, 0, 0, 0,
		0, 0, 0, N, 0, 0,
		0, 0, 0, 0, L, 0,
		0, 0, 0, 0, 0, M,
	})

	// eigenspace
	var eig mat.EigenSym
	if !eig.Factorize(o.Tensor, true) {
		return nil, &ConfigError{chk.Err("hill: eigen decomposition of Hill tensor failed")}
	}
	o.Lam = eig.Values(nil)
	o.Vec = mat.NewDense(Nsig, Nsig, nil)
	eig.VectorsTo(o.Vec)
	lmax := 0.0
	for _, λ := range o.Lam {
		lmax = math.Max(lmax, λ)
	}
	if lmax <= 0 {
		return nil, &ConfigError{chk.Err("hill: tensor must have a positive eigenvalue. F=%g G=%g H=%g L=%g M=%g N=%g", F, G, H, L, M, N)}
	}
	for k, λ := range o.Lam {
		if λ < -1e-10*lmax {
			return nil, &ConfigError{chk.Err("hill: tensor must be positive semi-definite. λ%d=%g", k, λ)}
		}
		if math.Abs(λ) <= 1e-10*lmax {
			o.Lam[k] = 0
		}
	}

	// inner solver
	o.solver = retmap.Solver{RelTol: 1e-14, MaxIts: 60, AcceptMult: 100, StepTol: 1e-15}
	return
}

// NewHillPrms allocates a Hill anisotropy from parameters "hF", "hG", "hH", "hL", "hM" and "hN"
func NewHillPrms(prms dbf.Params) (*Hill, error) {
	var v [6]float64
	for i, name := range []string{"hF", "hG", "hH", "hL", "hM", "hN"} {
		if prms.Find(name) == nil {
			return nil, &ConfigError{chk.Err("hill: parameter %q is missing", name)}
		}
		v[i] = prms.GetValueOrDefault(name, 0)
	}
	return NewHill(v[0], v[1], v[2], v[3], v[4], v[5])
}

// IsHill tells whether Hill parameters are given
func IsHill(prms dbf.Params) bool {
	return prms.Find("hF") != nil
}

// hillProjection holds a Hill trial state
type hillProjection struct {
	hill *Hill
	st   []float64 // trial deviator in the eigenspace
	G    float64   // shear modulus
	qtr  float64   // effective trial stress
	xmax float64   // maximum equivalent increment

	// last evaluation
	x, w float64
}

// Project prepares one update
func (o *Hill) Project(sdev []float64, G float64) (Projection, error) {
	p := &hillProjection{hill: o, st: make([]float64, Nsig), G: G, x: -1}
	var q2, m2 float64
	for k := 0; k < Nsig; k++ {
		for i := 0; i < Nsig; i++ {
			p.st[k] += o.Vec.At(i, k) * sdev[i]
		}
		λ := o.Lam[k]
		q2 += λ * p.st[k] * p.st[k]
		if λ > 0 {
			m2 += p.st[k] * p.st[k] / λ
		}
	}
	p.qtr = math.Sqrt(q2)
	p.xmax = math.Sqrt(m2) / (2.0 * G)
	return p, nil
}

// Qtrial returns the effective trial stress
func (o *hillProjection) Qtrial() float64 { return o.qtr }

// MaxIncrement returns √(Σ s̃²/λ)/2G
func (o *hillProjection) MaxIncrement() float64 { return o.xmax }

// norm computes S(w) = √(Σ λ s̃²/D²) and dS/dw with D = 1 + (λ-1)·w
func (o *hillProjection) norm(w float64) (S, dSdw float64) {
	var s2, ds2 float64
	for k, λ := range o.hill.Lam {
		if λ == 0 {
			continue
		}
		D := 1.0 + (λ-1.0)*w
		a := λ * o.st[k] * o.st[k]
		s2 += a / (D * D)
		ds2 -= 2.0 * a * (λ - 1.0) / (D * D * D)
	}
	S = math.Sqrt(s2)
	if S > 0 {
		dSdw = ds2 / (2.0 * S)
	}
	return
}

// Residual implements retmap.Problem for the map w → x(w) = w·S(w)/2G
func (o *hillProjection) Residual(w float64) (r, drdw float64, err error) {
	S, dS := o.norm(w)
	return w*S/(2.0*o.G) - o.x, (S + w*dS) / (2.0 * o.G), nil
}

// ReferenceResidual implements retmap.Problem
func (o *hillProjection) ReferenceResidual(w, r float64) float64 { return o.xmax }

// MinPermissible implements retmap.Problem
func (o *hillProjection) MinPermissible() float64 { return 0 }

// MaxPermissible implements retmap.Problem
func (o *hillProjection) MaxPermissible() float64 { return 1 }

// solve finds w corresponding to x
func (o *hillProjection) solve(x float64) (err error) {
	if x == o.x {
		return
	}
	if err = checkIncrement(x, o.xmax); err != nil {
		return
	}
	o.x = x
	switch {
	case x == 0:
		o.w = 0
	case x >= o.xmax:
		o.w = 1
	default:
		var it retmap.Iter
		it, err = o.hill.solver.Solve(o, x/o.xmax)
		if err != nil {
			o.x = -1
			return chk.Err("hill: cannot map equivalent increment %g to the eigenspace multiplier: %v", x, err)
		}
		o.w = it.X
	}
	return
}

// Effective returns q(x) = (1-w)·S(w) and dq/dx
func (o *hillProjection) Effective(x float64) (q, dqdx float64, err error) {
	if err = o.solve(x); err != nil {
		return
	}
	w := o.w
	S, dS := o.norm(w)
	q = (1.0 - w) * S
	dxdw := (S + w*dS) / (2.0 * o.G)
	if dxdw > 0 {
		dqdx = (-S + (1.0-w)*dS) / dxdw
	}
	return
}

// InelasticIncrement computes Δεin = Δγ·H:σ with Δγ·λ·σ̃ = w·λ·s̃/(2G·D)
func (o *hillProjection) InelasticIncrement(Δεin []float64, x float64) {
	if err := o.solve(x); err != nil {
		chk.Panic("%v", err)
	}
	for i := range Δεin {
		Δεin[i] = 0
	}
	for k, λ := range o.hill.Lam {
		if λ == 0 {
			continue
		}
		D := 1.0 + (λ-1.0)*o.w
		e := o.w * λ * o.st[k] / (2.0 * o.G * D)
		for i := 0; i < Nsig; i++ {
			Δεin[i] += o.hill.Vec.At(i, k) * e
		}
	}
}
