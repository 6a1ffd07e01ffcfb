// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrom

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// Legendre computes the Legendre polynomial P_n(x) and its derivative
func Legendre(x float64, n int) (p, dpdx float64) {
	d := legendre(dual.Number{Real: x, Emag: 1}, n)
	return d.Real, d.Emag
}

// legendre computes P_n for a dual number. Degrees up to 3 use the closed
// forms; higher degrees use Bonnet's recurrence
func legendre(x dual.Number, n int) dual.Number {
	switch n {
	case 0:
		return dual.Number{Real: 1}
	case 1:
		return x
	case 2:
		return dual.Add(dual.Scale(1.5, dual.Mul(x, x)), dual.Number{Real: -0.5})
	case 3:
		x2 := dual.Mul(x, x)
		return dual.Mul(x, dual.Add(dual.Scale(2.5, x2), dual.Number{Real: -1.5}))
	}
	pm2 := legendre(x, 2)
	pm1 := legendre(x, 3)
	var p dual.Number
	for k := 4; k <= n; k++ {
		a := dual.Scale(float64(2*k-1), dual.Mul(x, pm1))
		b := dual.Scale(float64(k-1), pm2)
		p = dual.Scale(1/float64(k), dual.Sub(a, b))
		pm2, pm1 = pm1, p
	}
	return p
}

// polynomials fills P_0..P_deg at x
func polynomials(P []dual.Number, x dual.Number) {
	for k := range P {
		P[k] = legendre(x, k)
	}
}

// Sigmoid computes the smooth step s(v) that goes from 0 at v=lower to 1 at
// v=upper, and its derivative
func Sigmoid(lower, upper, v float64) (s, dsdv float64) {
	d := sigmoid(lower, upper, dual.Number{Real: v, Emag: 1})
	return d.Real, d.Emag
}

// sigmoid computes s(x) = 1/(1+exp(1/x + 1/(x-1))) with x = (v-lower)/(upper-lower)
func sigmoid(lower, upper float64, v dual.Number) dual.Number {
	x := dual.Scale(1/(upper-lower), dual.Sub(v, dual.Number{Real: lower}))
	if x.Real <= 0 {
		return dual.Number{}
	}
	if x.Real >= 1 {
		return dual.Number{Real: 1}
	}
	g := dual.Add(dual.Inv(x), dual.Inv(dual.Sub(x, dual.Number{Real: 1})))
	if g.Real > maxExpArg {
		return dual.Number{}
	}
	if g.Real < -maxExpArg {
		return dual.Number{Real: 1}
	}
	return dual.Inv(dual.Add(dual.Number{Real: 1}, dual.Exp(g)))
}

// smootherstep computes 6t⁵ - 15t⁴ + 10t³ clamped to [0,1]
func smootherstep(t dual.Number) dual.Number {
	if t.Real <= 0 {
		return dual.Number{}
	}
	if t.Real >= 1 {
		return dual.Number{Real: 1}
	}
	t3 := dual.Mul(t, dual.Mul(t, t))
	in := dual.Add(dual.Mul(t, dual.Add(dual.Scale(6, t), dual.Number{Real: -15})), dual.Number{Real: 10})
	return dual.Mul(t3, in)
}

// maxExpArg is the largest argument of exp in sigmoid before returning the limit value
var maxExpArg = math.Log(math.MaxFloat64) - 1
