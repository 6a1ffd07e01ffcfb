// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/num/dual"
)

// Inputs holds the raw inputs of one point at the beginning of a step
type Inputs struct {
	Cell   float64 // old cell dislocation density
	Wall   float64 // old wall dislocation density
	Strain float64 // old effective inelastic strain
	Temp   float64 // temperature
	Env    float64 // environmental factor; used only by 6-input models
}

// Step evaluates the model at varying stress while all other inputs stay
// frozen. A Step belongs to one point during one time step and must not be
// shared between goroutines
type Step struct {
	mdl    *Model
	dt     float64
	old    [2]float64    // old cell and wall densities
	wfix   []float64     // [ntile] weights from the non-stress inputs
	efix   float64       // extrapolation factor from the non-stress inputs
	pre    [][][]float64 // [ntile][nout][nb] contraction over the non-stress inputs
	poly   []dual.Number // [nb] scratch
	warned [6]bool       // a WARN message was already issued for the input
	Extrap float64       // extrapolation factor of the last evaluation; 1 inside the windows
}

// Begin checks the non-stress inputs and precomputes the part of the
// expansion that does not depend on stress
func (o *Model) Begin(in Inputs, dt float64) (s *Step, err error) {

	// new step
	ntile := len(o.Tiles)
	s = &Step{
		mdl:    o,
		dt:     dt,
		old:    [2]float64{in.Cell, in.Wall},
		wfix:   make([]float64, ntile),
		efix:   1,
		pre:    make([][][]float64, ntile),
		poly:   make([]dual.Number, o.Nb),
		Extrap: 1,
	}

	// window checks
	raw := []float64{in.Cell, in.Wall, 0, in.Strain, in.Temp, in.Env}[:o.Nin]
	for i := 0; i < o.Nin; i++ {
		if i == InStress {
			continue
		}
		v, e, err := s.window(i, dual.Number{Real: raw[i]})
		if err != nil {
			return nil, err
		}
		raw[i] = v.Real
		s.efix *= e.Real
	}

	// weights
	for t := 0; t < ntile; t++ {
		s.wfix[t] = 1
		for i := 0; i < o.Nin; i++ {
			if i != InStress {
				s.wfix[t] *= o.weight(i, o.tileIv[t][i], dual.Number{Real: raw[i]}).Real
			}
		}
	}

	// precompute
	P := make([][]float64, o.Nin)
	for i := range P {
		P[i] = make([]float64, o.Nb)
	}
	for t, tile := range o.Tiles {
		if s.wfix[t] == 0 {
			continue
		}
		s.pre[t] = make([][]float64, Nout)
		for k := 0; k < Nout; k++ {
			for i := 0; i < o.Nin; i++ {
				if i == InStress {
					continue
				}
				x := o.normalize(t, k, i, dual.Number{Real: raw[i]})
				for d := 0; d < o.Nb; d++ {
					P[i][d] = legendre(x, d).Real
				}
			}
			s.pre[t][k] = o.contract(tile.Coefs[k], P)
		}
	}
	return
}

// contract sums the coefficients times the polynomials of all inputs but
// stress, grouped by the degree of the stress polynomial
func (o *Model) contract(coefs []float64, P [][]float64) (pre []float64) {
	pre = make([]float64, o.Nb)
	for c, coef := range coefs {
		val := coef
		for i := 0; i < o.Nin; i++ {
			if i != InStress {
				val *= P[i][(c/o.strides[i])%o.Nb]
			}
		}
		pre[(c/o.strides[InStress])%o.Nb] += val
	}
	return
}

// Increments computes the cell, wall and strain increments at effective
// stress q, with their derivatives with respect to q in Emag
func (o *Step) Increments(q float64) (inc [Nout]dual.Number, err error) {

	// stress input
	m := o.mdl
	v, e, err := o.window(InStress, dual.Number{Real: q * m.StressScale, Emag: m.StressScale})
	if err != nil {
		return
	}

	// tile weights
	w := make([]dual.Number, len(m.Tiles))
	var wsum dual.Number
	for t := range m.Tiles {
		if o.wfix[t] == 0 {
			continue
		}
		w[t] = dual.Scale(o.wfix[t], m.weight(InStress, m.tileIv[t][InStress], v))
		wsum = dual.Add(wsum, w[t])
	}
	if wsum.Real <= 0 {
		return inc, chk.Err("mrom: tile weights vanish at stress %g", v.Real)
	}

	// weighted sum of the converted outputs
	for t := range m.Tiles {
		if w[t].Real == 0 && w[t].Emag == 0 {
			continue
		}
		wt := dual.Mul(w[t], dual.Inv(wsum))
		for k := 0; k < Nout; k++ {
			y := o.value(t, k, v)
			inc[k] = dual.Add(inc[k], dual.Mul(wt, o.convert(k, y)))
		}
	}

	// extrapolation
	ext := dual.Scale(o.efix, e)
	for k := 0; k < Nout; k++ {
		inc[k] = dual.Mul(ext, inc[k])
	}
	o.Extrap = ext.Real
	return
}

// CreepRate returns the strain rate at effective stress q
func (o *Step) CreepRate(q float64) (rate float64, err error) {
	inc, err := o.Increments(q)
	if err != nil {
		return
	}
	return inc[OutStrain].Real / o.dt, nil
}

// value computes the expansion of tile t and output k at stress v
func (o *Step) value(t, k int, v dual.Number) (y dual.Number) {
	polynomials(o.poly, o.mdl.normalize(t, k, InStress, v))
	for d, p := range o.poly {
		y = dual.Add(y, dual.Scale(o.pre[t][k][d], p))
	}
	if k == OutStrain && o.mdl.StrainCutoff != nil && y.Real < *o.mdl.StrainCutoff {
		y = dual.Number{Real: *o.mdl.StrainCutoff}
	}
	return
}

// convert converts the output of the expansion into an increment
//  strain:      Δε = exp(y)·Δt
//  dislocation: Δρ = -exp(y)·ρ_old·Δt
func (o *Step) convert(k int, y dual.Number) dual.Number {
	ey := dual.Scale(o.dt, dual.Exp(y))
	if k == OutStrain {
		return ey
	}
	return dual.Scale(-o.old[k], ey)
}

// normalize transforms input i and maps it to [-1,1] with the limits of tile t and output k
func (o *Model) normalize(t, k, i int, v dual.Number) dual.Number {
	tile := o.Tiles[t]
	y := tile.Transform[k][i].apply(v, tile.TransformCoefs[k][i])
	lim := o.tnorm[t][k][i]
	return dual.Add(dual.Scale(2/(lim[1]-lim[0]), dual.Sub(y, dual.Number{Real: lim[0]})), dual.Number{Real: -1})
}

// weight computes the blending weight of window k along input i at v. In the
// overlap with the window below, the weight rises with the sigmoid; in the
// overlap with the window above, it decays with the complement
func (o *Model) weight(i, k int, v dual.Number) dual.Number {
	ivs := o.ivals[i]
	iv := ivs[k]
	if v.Real < iv.lo || v.Real > iv.hi {
		return dual.Number{}
	}
	w := dual.Number{Real: 1}
	if k > 0 && v.Real < ivs[k-1].hi {
		w = sigmoid(iv.lo, ivs[k-1].hi, v)
	}
	if k < len(ivs)-1 && v.Real > ivs[k+1].lo {
		w = dual.Mul(w, dual.Sub(dual.Number{Real: 1}, sigmoid(ivs[k+1].lo, iv.hi, v)))
	}
	return w
}

// TileWeights returns the normalised weights of all tiles at the given raw
// inputs, ordered as cell, wall, stress, strain, temperature and environment
func (o *Model) TileWeights(x []float64) (w []float64) {
	w = make([]float64, len(o.Tiles))
	var sum float64
	for t := range o.Tiles {
		w[t] = 1
		for i := 0; i < o.Nin; i++ {
			w[t] *= o.weight(i, o.tileIv[t][i], dual.Number{Real: x[i]}).Real
		}
		sum += w[t]
	}
	if sum > 0 {
		for t := range w {
			w[t] /= sum
		}
	}
	return
}

// window checks input i against the global limits and applies its policy.
// It returns the (possibly clamped) value and the extrapolation factor
func (o *Step) window(i int, v dual.Number) (x, ext dual.Number, err error) {
	m := o.mdl
	lo, hi := m.global[i][0], m.global[i][1]
	ext = dual.Number{Real: 1}
	if math.IsNaN(v.Real) {
		return v, ext, &WindowError{Input: i, Value: v.Real, Lower: lo, Upper: hi}
	}
	if v.Real >= lo && v.Real <= hi {
		return v, ext, nil
	}
	var d dual.Number
	if v.Real < lo {
		x = dual.Number{Real: lo}
		d = dual.Sub(x, v)
	} else {
		x = dual.Number{Real: hi}
		d = dual.Sub(v, x)
	}
	switch m.Window[i] {
	case FailError:
		return v, ext, &WindowError{Input: i, Value: v.Real, Lower: lo, Upper: hi}
	case FailWarn:
		if !o.warned[i] {
			o.warned[i] = true
			m.Log.WithFields(logrus.Fields{
				"input": InputNames[i],
				"value": v.Real,
				"lower": lo,
				"upper": hi,
			}).Warn("mrom: input outside of the window; the value is clamped")
		}
	case FailExtrapolate:
		width := m.ExtrapWidth * (hi - lo)
		ext = dual.Sub(dual.Number{Real: 1}, smootherstep(dual.Scale(1/width, d)))
	}
	return
}
