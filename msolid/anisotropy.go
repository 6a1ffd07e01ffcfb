// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Anisotropy maps the equivalent inelastic increment to stresses and strains
type Anisotropy interface {

	// Project prepares one update for the trial deviatoric stress
	Project(sdev []float64, G float64) (Projection, error)
}

// Projection holds the trial state of one update. It belongs to one point
// and must not be shared between goroutines
type Projection interface {
	Qtrial() float64                                  // effective trial stress
	Effective(x float64) (q, dqdx float64, err error) // updated effective stress for the equivalent increment x
	MaxIncrement() float64                            // largest admissible x (q vanishes there)
	InelasticIncrement(Δεin []float64, x float64)     // inelastic strain increment tensor
}

// Isotropic implements the von Mises (J2) radial return
type Isotropic struct{}

// isoProjection holds a J2 trial state
type isoProjection struct {
	s   []float64 // trial deviator
	G   float64   // shear modulus
	qtr float64   // effective trial stress
}

// Project prepares one update
func (o Isotropic) Project(sdev []float64, G float64) (Projection, error) {
	s := make([]float64, Nsig)
	copy(s, sdev)
	return &isoProjection{s: s, G: G, qtr: M_q(s)}, nil
}

// Qtrial returns the effective trial stress
func (o *isoProjection) Qtrial() float64 { return o.qtr }

// Effective returns q = qtr - 3G·x
func (o *isoProjection) Effective(x float64) (q, dqdx float64, err error) {
	return o.qtr - 3.0*o.G*x, -3.0 * o.G, nil
}

// MaxIncrement returns qtr/3G
func (o *isoProjection) MaxIncrement() float64 { return o.qtr / (3.0 * o.G) }

// InelasticIncrement computes Δεin = 3/2·x·s/qtr
func (o *isoProjection) InelasticIncrement(Δεin []float64, x float64) {
	if o.qtr == 0 {
		for i := range Δεin {
			Δεin[i] = 0
		}
		return
	}
	for i := 0; i < Nsig; i++ {
		Δεin[i] = 1.5 * x * o.s[i] / o.qtr
	}
}

// checkIncrement checks x against the admissible range
func checkIncrement(x, xmax float64) error {
	if x < 0 || math.IsNaN(x) {
		return chk.Err("equivalent inelastic increment must be non-negative. x=%g", x)
	}
	if x > xmax*(1+1e-12) {
		return chk.Err("equivalent inelastic increment %g exceeds the maximum %g", x, xmax)
	}
	return nil
}
