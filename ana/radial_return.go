// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// PowerLawReturn implements closed-form radial returns of von Mises
// power-law creep for n = 1 and n = 2
//
//  backward Euler:  x = c·(qtr - 3G·x)ⁿ  with  c = A·exp(-Q/(R·T))·Δt
//
//             q ^
//          qtr +.
//              |  `.   q = qtr - 3G·x
//              |    `.
//              |   ___`x___  x = c·qⁿ
//              |__/     `.
//              +----------+---> x
type PowerLawReturn struct {

	// input
	A float64 // coefficient
	n float64 // exponent: 1 or 2
	Q float64 // activation energy
	R float64 // gas constant
	G float64 // shear modulus
}

// Init initialises this structure
func (o *PowerLawReturn) Init(prms dbf.Params) (err error) {

	// default values
	o.n = 1
	o.R = 8.3143

	// parameters
	for _, p := range prms {
		switch p.N {
		case "A":
			o.A = p.V
		case "n":
			o.n = p.V
		case "Q":
			o.Q = p.V
		case "R":
			o.R = p.V
		case "G":
			o.G = p.V
		case "E", "nu":
		}
	}
	if e, ν := prms.Find("E"), prms.Find("nu"); e != nil && ν != nil {
		o.G = e.V / (2.0 * (1.0 + ν.V))
	}
	if o.n != 1 && o.n != 2 {
		return chk.Err("closed-form power-law return is available for n = 1 or 2 only. n=%g", o.n)
	}
	if o.A <= 0 || o.G <= 0 {
		return chk.Err("A and G must be positive. A=%g G=%g", o.A, o.G)
	}
	return
}

// Coef returns c = A·exp(-Q/(R·T))·Δt
func (o PowerLawReturn) Coef(T, Δt float64) float64 {
	if o.Q == 0 {
		return o.A * Δt
	}
	return o.A * math.Exp(-o.Q/(o.R*T)) * Δt
}

// Increment returns the equivalent creep increment x and the updated effective stress q
func (o PowerLawReturn) Increment(qtr, T, Δt float64) (x, q float64) {
	c := o.Coef(T, Δt)
	g3 := 3.0 * o.G
	if o.n == 1 {
		x = c * qtr / (1.0 + g3*c)
		return x, qtr - g3*x
	}
	q = (math.Sqrt(1.0+4.0*g3*c*qtr) - 1.0) / (2.0 * g3 * c)
	return c * q * q, q
}

// Relaxation returns the effective stress after nsteps backward-Euler steps
// of stress relaxation under fixed total strain (n = 1)
func (o PowerLawReturn) Relaxation(q0, T, Δt float64, nsteps int) float64 {
	c := o.Coef(T, Δt)
	if o.n != 1 {
		chk.Panic("relaxation is available for n = 1 only")
	}
	return q0 / math.Pow(1.0+3.0*o.G*c, float64(nsteps))
}

// RelaxationExact returns the effective stress at time t of stress
// relaxation under fixed total strain (n = 1): q = q0·exp(-3G·A·t)
func (o PowerLawReturn) RelaxationExact(q0, T, t float64) float64 {
	return q0 * math.Exp(-3.0*o.G*o.Coef(T, t))
}

// LinearHardening returns the equivalent plastic increment and the updated
// effective stress of von Mises plasticity with linear isotropic hardening
//  f = q - qy0 - H·p
func LinearHardening(qtr, G, qy0, H, p0 float64) (x, q float64) {
	ftr := qtr - qy0 - H*p0
	if ftr <= 0 {
		return 0, qtr
	}
	x = ftr / (3.0*G + H)
	return x, qtr - 3.0*G*x
}
